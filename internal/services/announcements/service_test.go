package announcements

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/dependencies/mocks"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	backend *testutil.FakeBackend
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.backend = testutil.NewFakeBackend(s.T())
	s.backend.Announcements = []model.Announcement{
		{ID: "a1", Title: "Summer Event", Description: "Find volcanic rocks", Type: model.AnnouncementEvent},
		{ID: "a2", Title: "Downtime", Description: "Database upgrade", Type: model.AnnouncementMaintenance},
	}
	s.clock = mocks.NewMockClock(time.UnixMilli(1717236000123))

	client := backend.NewClient(backend.Config{BaseURL: s.backend.URL()}, testutil.NopLogger())
	s.service = New(backend.NewAPI(client.WithTokenSource(backend.StaticToken(testutil.AdminToken))), s.clock)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestSearchTitleAndDescription() {
	byTitle, err := s.service.List(s.ctx, "summer")
	s.Require().NoError(err)
	s.Len(byTitle, 1)
	s.Equal("a1", byTitle[0].ID)

	byDescription, err := s.service.List(s.ctx, "DATABASE")
	s.Require().NoError(err)
	s.Len(byDescription, 1)
	s.Equal("a2", byDescription[0].ID)

	all, err := s.service.List(s.ctx, "")
	s.Require().NoError(err)
	s.Len(all, 2)
}

func (s *ServiceSuite) TestCreate() {
	publish := model.NewTimestamp(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	list, err := s.service.Create(s.ctx, model.AnnouncementInput{
		Title:       "New Feature",
		Description: "Rock scanner",
		Type:        model.AnnouncementFeature,
		PublishDate: publish,
	})
	s.Require().NoError(err)
	s.Len(list, 3)

	req, ok := s.backend.LastRequest(http.MethodPost, "/admin/announcements")
	s.Require().True(ok)
	s.Equal("1717236000123", req.Body["announcementId"])
	s.Equal(true, req.Body["isVisible"])
	s.Equal(false, req.Body["pinned"])
	s.Equal("", req.Body["imageUrl"])
	s.Equal("feature", req.Body["type"])
	s.Equal("1717236000123", list[2].ID)
}

func (s *ServiceSuite) TestCreateValidates() {
	_, err := s.service.Create(s.ctx, model.AnnouncementInput{Type: "party"})

	var verr *model.ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "title")
	s.Contains(verr.Fields, "type")
	s.Equal(0, s.backend.Count(http.MethodPost, "/admin/announcements"))
}

func (s *ServiceSuite) TestUpdate() {
	list, err := s.service.Update(s.ctx, "a2", model.AnnouncementInput{
		Title: "Downtime extended",
		Type:  model.AnnouncementMaintenance,
	})
	s.Require().NoError(err)
	s.Equal("Downtime extended", list[1].Title)

	req, _ := s.backend.LastRequest(http.MethodPut, "/admin/announcements/a2")
	s.NotContains(req.Body, "announcementId")
}

func (s *ServiceSuite) TestDelete() {
	list, err := s.service.Delete(s.ctx, "a1")
	s.Require().NoError(err)
	s.Len(list, 1)
	s.Equal("a2", list[0].ID)
}
