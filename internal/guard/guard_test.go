package guard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/testutil"
)

// memoryTokens is a TokenStore holding one token
type memoryTokens struct {
	token   string
	cleared int
	err     error
}

func (m *memoryTokens) Token(context.Context) (string, error) {
	return m.token, m.err
}

func (m *memoryTokens) Clear(context.Context) error {
	m.token = ""
	m.cleared++
	return nil
}

type GuardSuite struct {
	suite.Suite
	backend *testutil.FakeBackend
	tokens  *memoryTokens
	session *Session
	ctx     context.Context
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardSuite))
}

func (s *GuardSuite) SetupTest() {
	s.backend = testutil.NewFakeBackend(s.T())
	s.backend.Users = []model.User{{ID: "u1", Name: "Ada", Active: true}}
	s.tokens = &memoryTokens{token: testutil.AdminToken}

	client := backend.NewClient(backend.Config{BaseURL: s.backend.URL()}, testutil.NopLogger())
	s.session = New(client, s.tokens, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *GuardSuite) TestCheckWithToken() {
	s.NoError(s.session.Check(s.ctx))
}

func (s *GuardSuite) TestCheckWithoutToken() {
	s.tokens.token = ""
	s.ErrorIs(s.session.Check(s.ctx), ErrLoginRequired)
}

func (s *GuardSuite) TestCheckPropagatesStoreError() {
	s.tokens.err = errors.New("redis down")
	err := s.session.Check(s.ctx)
	s.EqualError(err, "redis down")
	s.NotErrorIs(err, ErrLoginRequired)
}

func (s *GuardSuite) TestRequestSendsStoredToken() {
	users, err := s.session.API().ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 1)

	req, ok := s.backend.LastRequest(http.MethodGet, "/admin/users")
	s.Require().True(ok)
	s.Equal("Bearer "+testutil.AdminToken, req.Authorization)
}

func (s *GuardSuite) TestNoRequestWithoutToken() {
	s.tokens.token = ""

	_, err := s.session.API().ListUsers(s.ctx)
	s.ErrorIs(err, ErrLoginRequired)
	s.Empty(s.backend.Requests())
	s.Equal(0, s.tokens.cleared)
}

func (s *GuardSuite) TestUnauthorizedClearsToken() {
	s.backend.SetToken("rotated")

	_, err := s.session.API().ListUsers(s.ctx)
	s.ErrorIs(err, ErrLoginRequired)
	s.True(backend.IsAuthError(err))
	s.Equal(1, s.tokens.cleared)
	s.Empty(s.tokens.token)

	var rejected *RejectedError
	s.Require().ErrorAs(err, &rejected)

	var se *backend.StatusError
	s.Require().ErrorAs(err, &se)
	s.Equal(http.StatusUnauthorized, se.StatusCode)
}

func (s *GuardSuite) TestForbiddenClearsToken() {
	s.backend.Fail(http.MethodPut, "/admin/suspend-user/u1", http.StatusForbidden, "Forbidden")

	err := s.session.API().SuspendUser(s.ctx, "u1")
	s.ErrorIs(err, ErrLoginRequired)
	s.Equal(1, s.tokens.cleared)
}

func (s *GuardSuite) TestOtherErrorsKeepToken() {
	s.backend.Fail(http.MethodGet, "/admin/users", http.StatusInternalServerError, "boom")

	_, err := s.session.API().ListUsers(s.ctx)
	s.Require().Error(err)
	s.NotErrorIs(err, ErrLoginRequired)
	s.Equal(0, s.tokens.cleared)
	s.Equal(testutil.AdminToken, s.tokens.token)
}

func (s *GuardSuite) TestSecondRequestAfterRejectionIsNotSent() {
	s.backend.SetToken("rotated")

	_, _ = s.session.API().ListUsers(s.ctx)
	_, err := s.session.API().ListFacts(s.ctx)

	s.ErrorIs(err, ErrLoginRequired)
	s.Equal(0, s.backend.Count(http.MethodGet, "/admin/facts"))
}
