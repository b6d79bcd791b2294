package moderation

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/guard"
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

func ts(day int) model.Timestamp {
	return model.NewTimestamp(time.Date(2024, 5, day, 9, 0, 0, 0, time.UTC))
}

func (s *ServiceSuite) SetupTest() {
	s.backend = testutil.NewFakeBackend(s.T())
	s.backend.ReviewPosts = []model.ReviewPost{
		{ID: "p-pending", RockName: "Granite", CreatedBy: "u1"},
		{ID: "p-approved", RockName: "Basalt", CreatedBy: "u2", Verified: true, VerifiedAt: ts(2)},
		{ID: "p-rejected", RockName: "Shale", CreatedBy: "ghost", RejectedAt: ts(3), RejectedReason: "blurry"},
		{ID: "p-reapproved", RockName: "Slate", Verified: true, RejectedAt: ts(1)},
	}
	s.backend.Reports = []model.Report{
		{ID: "r1", Reason: "spam", Status: model.ReportStatusPending},
		{ID: "r2", Reason: "abuse", Status: model.ReportStatusApproved},
		{ID: "r3", Reason: "dup", Status: model.ReportStatusRejected},
	}
	s.backend.Users = []model.User{
		{ID: "u1", Name: "ada"},
		{ID: "u2", Name: "bob"},
	}
	s.backend.Spawns = []model.Spawn{
		{ID: "s1", RockID: "p-pending", Confidence: 0.4, SpawnedAt: ts(1)},
		{ID: "s2", RockID: "p-pending", Confidence: 0.9, SpawnedAt: ts(5)},
		{ID: "s3", RockID: "p-pending", Confidence: 0.6, SpawnedAt: ts(3)},
		{ID: "s4", RockID: "p-approved", Confidence: 0, SpawnedAt: ts(2)},
	}

	client := backend.NewClient(backend.Config{BaseURL: s.backend.URL()}, testutil.NopLogger())
	s.service = New(backend.NewAPI(client.WithTokenSource(backend.StaticToken(testutil.AdminToken))))
	s.ctx = context.Background()
}

func postIDs(posts []model.ReviewPost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func (s *ServiceSuite) TestLoadPartitionsPosts() {
	board, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	s.Equal([]string{"p-pending"}, postIDs(board.PostsIn(model.PostStatePending)))
	s.Equal([]string{"p-approved", "p-reapproved"}, postIDs(board.PostsIn(model.PostStateApproved)))
	s.Equal([]string{"p-rejected"}, postIDs(board.PostsIn(model.PostStateRejected)))
}

func (s *ServiceSuite) TestLoadFetchesAllFourLists() {
	_, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	for _, path := range []string{"/admin/review", "/admin/reports", "/admin/users", "/admin/spawns"} {
		s.Equal(1, s.backend.Count(http.MethodGet, path), path)
	}
}

func (s *ServiceSuite) TestLoadFailsIfAnyFetchFails() {
	s.backend.Fail(http.MethodGet, "/admin/spawns", http.StatusInternalServerError, "down")

	_, err := s.service.Load(s.ctx)
	s.Error(err)
}

func (s *ServiceSuite) TestReportsByStatus() {
	board, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	s.Len(board.ReportsWith(model.ReportStatusPending), 1)
	s.Equal("r2", board.ReportsWith(model.ReportStatusApproved)[0].ID)
	s.Equal("r3", board.ReportsWith(model.ReportStatusRejected)[0].ID)
}

func (s *ServiceSuite) TestUsername() {
	board, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	s.Equal("ada", board.Username("u1"))
	s.Equal("Unknown User", board.Username("ghost"))
}

func (s *ServiceSuite) TestConfidenceUsesLatestSpawn() {
	board, err := s.service.Load(s.ctx)
	s.Require().NoError(err)

	c, ok := board.Confidence("p-pending")
	s.True(ok)
	s.InDelta(0.9, c, 1e-9)

	_, ok = board.Confidence("p-approved")
	s.False(ok, "zero confidence is hidden")

	_, ok = board.Confidence("p-rejected")
	s.False(ok)
}

func (s *ServiceSuite) TestApprove() {
	posts, err := s.service.Approve(s.ctx, "p-pending")
	s.Require().NoError(err)

	req, ok := s.backend.LastRequest(http.MethodPost, "/admin/verify-rock/p-pending")
	s.Require().True(ok)
	s.Equal("approve", req.Body["action"])
	s.NotContains(req.Body, "reason")

	s.Equal(model.PostStateApproved, posts[0].State())
}

func (s *ServiceSuite) TestApproveReloadFailure() {
	s.backend.Fail(http.MethodGet, "/admin/review", http.StatusBadGateway, "")

	_, err := s.service.Approve(s.ctx, "p-pending")

	s.ErrorIs(err, model.ErrReloadFailed)
	s.Equal(1, s.backend.Count(http.MethodPost, "/admin/verify-rock/p-pending"))
}

func (s *ServiceSuite) TestApproveFailureIsNotAReloadFailure() {
	s.backend.Fail(http.MethodPost, "/admin/verify-rock/p-pending", http.StatusInternalServerError, "")

	_, err := s.service.Approve(s.ctx, "p-pending")

	s.Require().Error(err)
	s.NotErrorIs(err, model.ErrReloadFailed)
	s.Equal(0, s.backend.Count(http.MethodGet, "/admin/review"))
}

func (s *ServiceSuite) TestRejectRequiresReason() {
	_, err := s.service.Reject(s.ctx, "p-pending", "   ")
	s.ErrorIs(err, model.ErrReasonRequired)
	s.Equal(0, s.backend.Count(http.MethodPost, "/admin/verify-rock/p-pending"))
}

func (s *ServiceSuite) TestRejectSendsReason() {
	posts, err := s.service.Reject(s.ctx, "p-pending", "not a rock")
	s.Require().NoError(err)

	req, _ := s.backend.LastRequest(http.MethodPost, "/admin/verify-rock/p-pending")
	s.Equal("reject", req.Body["action"])
	s.Equal("not a rock", req.Body["reason"])
	s.Equal(model.PostStateRejected, posts[0].State())
}

func (s *ServiceSuite) TestToggleApprovedPostRejects() {
	posts, err := s.service.TogglePost(s.ctx, "p-approved", "wrong id")
	s.Require().NoError(err)

	req, _ := s.backend.LastRequest(http.MethodPost, "/admin/verify-rock/p-approved")
	s.Equal("reject", req.Body["action"])
	s.Equal(model.PostStateRejected, posts[1].State())
}

func (s *ServiceSuite) TestToggleApprovedPostNeedsReason() {
	_, err := s.service.TogglePost(s.ctx, "p-approved", "")
	s.ErrorIs(err, model.ErrReasonRequired)
}

func (s *ServiceSuite) TestToggleRejectedPostApproves() {
	posts, err := s.service.TogglePost(s.ctx, "p-rejected", "")
	s.Require().NoError(err)
	s.Equal(model.PostStateApproved, posts[2].State())
}

func (s *ServiceSuite) TestTogglePendingPostRefused() {
	_, err := s.service.TogglePost(s.ctx, "p-pending", "x")
	s.ErrorIs(err, model.ErrNothingToToggle)
	s.Equal(0, s.backend.Count(http.MethodPost, "/admin/verify-rock/p-pending"))
}

func (s *ServiceSuite) TestToggleUnknownPost() {
	_, err := s.service.TogglePost(s.ctx, "nope", "x")
	s.ErrorIs(err, ErrPostNotFound)
}

func (s *ServiceSuite) TestReviewReportRefetches() {
	reports, err := s.service.ReviewReport(s.ctx, "r1", model.ActionReject)
	s.Require().NoError(err)

	s.Equal(model.ReportStatusRejected, reports[0].Status)
	s.Equal(1, s.backend.Count(http.MethodGet, "/admin/reports"))
}

func (s *ServiceSuite) TestReviewReportRejectsUnknownAction() {
	_, err := s.service.ReviewReport(s.ctx, "r1", "ban")
	s.Error(err)
	s.Equal(0, s.backend.Count(http.MethodPost, "/admin/review-report/r1"))
}

func (s *ServiceSuite) TestToggleReport() {
	reports, err := s.service.ToggleReport(s.ctx, "r2")
	s.Require().NoError(err)
	s.Equal(model.ReportStatusRejected, reports[1].Status)

	reports, err = s.service.ToggleReport(s.ctx, "r3")
	s.Require().NoError(err)
	s.Equal(model.ReportStatusApproved, reports[2].Status)

	reports, err = s.service.ToggleReport(s.ctx, "r1")
	s.Require().NoError(err)
	s.Equal(model.ReportStatusApproved, reports[0].Status)
}

func (s *ServiceSuite) TestRejectedTokenDuringLoad() {
	tokens := &staticStore{token: "stale"}
	client := backend.NewClient(backend.Config{BaseURL: s.backend.URL()}, testutil.NopLogger())
	svc := New(guard.New(client, tokens, testutil.NopLogger()).API())

	_, err := svc.Load(s.ctx)
	s.ErrorIs(err, guard.ErrLoginRequired)
	s.True(tokens.wasCleared())
}

// staticStore is shared by the concurrent fetches in Load
type staticStore struct {
	mu      sync.Mutex
	token   string
	cleared bool
}

func (s *staticStore) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *staticStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleared = true
	s.token = ""
	return nil
}

func (s *staticStore) wasCleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}
