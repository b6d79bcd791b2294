package users

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	backend *testutil.FakeBackend
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.backend = testutil.NewFakeBackend(s.T())
	s.backend.Users = []model.User{
		{ID: "u1", Name: "Ada Stone", Email: "ada@rq.test", Role: model.UserRoleGeologist, Active: true},
		{ID: "u2", Name: "Bob Flint", Email: "bob@rq.test", Role: model.UserRolePlayer, Active: false},
		{ID: "u3", Name: "Cleo Quartz", Email: "cleo@rq.test", Role: model.UserRolePlayer, Active: true},
	}

	client := backend.NewClient(backend.Config{BaseURL: s.backend.URL()}, testutil.NopLogger())
	s.service = New(backend.NewAPI(client.WithTokenSource(backend.StaticToken(testutil.AdminToken))))
	s.ctx = context.Background()
}

func ids(users []model.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

func (s *ServiceSuite) TestListAll() {
	users, err := s.service.List(s.ctx, Filter{Role: "all", Status: "all"})
	s.Require().NoError(err)
	s.Equal([]string{"u1", "u2", "u3"}, ids(users))
}

func (s *ServiceSuite) TestSearchMatchesNameEmailAndID() {
	byName, _ := s.service.List(s.ctx, Filter{Search: "FLINT"})
	s.Equal([]string{"u2"}, ids(byName))

	byEmail, _ := s.service.List(s.ctx, Filter{Search: "cleo@"})
	s.Equal([]string{"u3"}, ids(byEmail))

	byID, _ := s.service.List(s.ctx, Filter{Search: "u1"})
	s.Equal([]string{"u1"}, ids(byID))
}

func (s *ServiceSuite) TestFilterByRoleAndStatus() {
	users, err := s.service.List(s.ctx, Filter{Role: "player", Status: "active"})
	s.Require().NoError(err)
	s.Equal([]string{"u3"}, ids(users))

	suspended, err := s.service.List(s.ctx, Filter{Status: "suspended"})
	s.Require().NoError(err)
	s.Equal([]string{"u2"}, ids(suspended))
}

func (s *ServiceSuite) TestToggleSuspendsActiveUser() {
	users, err := s.service.ToggleSuspension(s.ctx, "u1", model.UserStatusActive)
	s.Require().NoError(err)

	s.Equal(1, s.backend.Count(http.MethodPut, "/admin/suspend-user/u1"))
	s.Equal(model.UserStatusSuspended, users[0].Status())
}

func (s *ServiceSuite) TestToggleReinstatesSuspendedUser() {
	users, err := s.service.ToggleSuspension(s.ctx, "u2", model.UserStatusSuspended)
	s.Require().NoError(err)

	s.Equal(1, s.backend.Count(http.MethodPut, "/admin/unsuspend-user/u2"))
	s.Equal(model.UserStatusActive, users[1].Status())
}

func (s *ServiceSuite) TestMutationRefetches() {
	_, err := s.service.SetSuspended(s.ctx, "u3", true)
	s.Require().NoError(err)
	s.Equal(1, s.backend.Count(http.MethodGet, "/admin/users"))
}

func (s *ServiceSuite) TestFailedMutationSkipsRefetch() {
	_, err := s.service.SetSuspended(s.ctx, "missing", true)
	s.Require().Error(err)
	s.True(backend.IsNotFound(err))
	s.Equal(0, s.backend.Count(http.MethodGet, "/admin/users"))
}
