// Package moderation reviews submitted rock identifications and user reports.
package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrReportNotFound = errors.New("report not found")
)

// Board is everything the moderation screen shows, fetched together
type Board struct {
	Posts   []model.ReviewPost
	Reports []model.Report

	usernames map[string]string
	spawns    []model.Spawn
}

// PostsIn returns the posts in state, in backend order
func (b *Board) PostsIn(state model.PostState) []model.ReviewPost {
	out := []model.ReviewPost{}
	for _, p := range b.Posts {
		if p.State() == state {
			out = append(out, p)
		}
	}
	return out
}

// ReportsWith returns the reports whose status is exactly status
func (b *Board) ReportsWith(status model.ReportStatus) []model.Report {
	out := []model.Report{}
	for _, r := range b.Reports {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// Username returns the username for a user id, or "Unknown User"
func (b *Board) Username(id string) string {
	if name := b.usernames[id]; name != "" {
		return name
	}
	return "Unknown User"
}

// Confidence returns the identification confidence of the most recent spawn
// for a post. A zero confidence is reported as absent.
func (b *Board) Confidence(postID string) (float64, bool) {
	var latest *model.Spawn
	for i := range b.spawns {
		s := &b.spawns[i]
		if s.RockID != postID {
			continue
		}
		if latest == nil || s.SpawnedAt.After(latest.SpawnedAt.Time) {
			latest = s
		}
	}
	if latest == nil || latest.Confidence == 0 {
		return 0, false
	}
	return latest.Confidence, true
}

// Service moderates posts and reports
type Service struct {
	api *backend.API
}

// New creates a moderation Service
func New(api *backend.API) *Service {
	return &Service{api: api}
}

// Load fetches posts, reports, users and spawns concurrently. The first
// failure cancels the other fetches.
func (s *Service) Load(ctx context.Context) (*Board, error) {
	var (
		board Board
		users []model.User
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		board.Posts, err = s.api.ListReviewPosts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		board.Reports, err = s.api.ListReports(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.api.ListUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		board.spawns, err = s.api.ListSpawns(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	board.usernames = make(map[string]string, len(users))
	for _, u := range users {
		board.usernames[u.ID] = u.Name
	}
	return &board, nil
}

// Posts returns all submitted posts
func (s *Service) Posts(ctx context.Context) ([]model.ReviewPost, error) {
	return s.api.ListReviewPosts(ctx)
}

// Reports returns all reports
func (s *Service) Reports(ctx context.Context) ([]model.Report, error) {
	return s.api.ListReports(ctx)
}

// Approve verifies a post, then returns the refetched posts
func (s *Service) Approve(ctx context.Context, id string) ([]model.ReviewPost, error) {
	if err := s.api.VerifyPost(ctx, id, backend.VerifyRequest{Action: model.ActionApprove}); err != nil {
		return nil, fmt.Errorf("failed to approve post %s: %w", id, err)
	}
	posts, err := s.api.ListReviewPosts(ctx)
	return posts, model.ReloadError(err)
}

// Reject rejects a post with a reason, then returns the refetched posts.
// A blank reason is refused without contacting the backend.
func (s *Service) Reject(ctx context.Context, id, reason string) ([]model.ReviewPost, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, model.ErrReasonRequired
	}

	req := backend.VerifyRequest{Action: model.ActionReject, Reason: reason}
	if err := s.api.VerifyPost(ctx, id, req); err != nil {
		return nil, fmt.Errorf("failed to reject post %s: %w", id, err)
	}
	posts, err := s.api.ListReviewPosts(ctx)
	return posts, model.ReloadError(err)
}

// TogglePost reverses a decision: an approved post is rejected (reason
// required) and a rejected post is approved. Pending posts cannot be toggled.
func (s *Service) TogglePost(ctx context.Context, id, reason string) ([]model.ReviewPost, error) {
	posts, err := s.api.ListReviewPosts(ctx)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		if p.ID != id {
			continue
		}
		switch p.State() {
		case model.PostStateApproved:
			return s.Reject(ctx, id, reason)
		case model.PostStateRejected:
			return s.Approve(ctx, id)
		default:
			return nil, model.ErrNothingToToggle
		}
	}
	return nil, ErrPostNotFound
}

// ReviewReport records a decision on a report, then returns the refetched reports
func (s *Service) ReviewReport(ctx context.Context, id string, action model.ReviewAction) ([]model.Report, error) {
	if action != model.ActionApprove && action != model.ActionReject {
		return nil, fmt.Errorf("unknown review action %q", action)
	}
	if err := s.api.ReviewReport(ctx, id, action); err != nil {
		return nil, fmt.Errorf("failed to review report %s: %w", id, err)
	}
	reports, err := s.api.ListReports(ctx)
	return reports, model.ReloadError(err)
}

// ToggleReport flips a report: approved becomes rejected, anything else
// becomes approved
func (s *Service) ToggleReport(ctx context.Context, id string) ([]model.Report, error) {
	reports, err := s.api.ListReports(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range reports {
		if r.ID == id {
			action := model.ActionApprove
			if r.Status == model.ReportStatusApproved {
				action = model.ActionReject
			}
			return s.ReviewReport(ctx, id, action)
		}
	}
	return nil, ErrReportNotFound
}
