package announcements

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/dependencies/clock"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/filter"
)

// Service manages announcements
type Service struct {
	api   *backend.API
	clock clock.Clock
}

// New creates an announcements Service
func New(api *backend.API, clock clock.Clock) *Service {
	return &Service{api: api, clock: clock}
}

// List returns the announcements whose title or description contains search
func (s *Service) List(ctx context.Context, search string) ([]model.Announcement, error) {
	all, err := s.api.ListAnnouncements(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(all, func(a model.Announcement) bool {
		return filter.Search(search, a.Title, a.Description)
	}), nil
}

// Create publishes a new visible, unpinned announcement, then returns the
// refetched list. Its id is the creation time in unix milliseconds.
func (s *Service) Create(ctx context.Context, in model.AnnouncementInput) ([]model.Announcement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	req := backend.NewAnnouncement{
		AnnouncementID: strconv.FormatInt(s.clock.Now().UnixMilli(), 10),
		Title:          in.Title,
		Description:    in.Description,
		Type:           in.Type,
		PublishDate:    in.PublishDate,
		ImageURL:       "",
		IsVisible:      true,
		Pinned:         false,
	}
	if err := s.api.CreateAnnouncement(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	announcements, err := s.api.ListAnnouncements(ctx)
	return announcements, model.ReloadError(err)
}

// Update edits an announcement, then returns the refetched list
func (s *Service) Update(ctx context.Context, id string, in model.AnnouncementInput) ([]model.Announcement, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.api.UpdateAnnouncement(ctx, id, in); err != nil {
		return nil, fmt.Errorf("failed to update announcement %s: %w", id, err)
	}
	announcements, err := s.api.ListAnnouncements(ctx)
	return announcements, model.ReloadError(err)
}

// Delete removes an announcement, then returns the refetched list
func (s *Service) Delete(ctx context.Context, id string) ([]model.Announcement, error) {
	if err := s.api.DeleteAnnouncement(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete announcement %s: %w", id, err)
	}
	announcements, err := s.api.ListAnnouncements(ctx)
	return announcements, model.ReloadError(err)
}
