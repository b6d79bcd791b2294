package quests

import (
	"context"
	"fmt"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/filter"
)

// Filter narrows the quest list. Status takes "all" or a quest status.
type Filter struct {
	Search string
	Status string
}

// Match reports whether q passes the filter
func (f Filter) Match(q model.Quest) bool {
	return filter.Search(f.Search, q.Title, q.Description) && filter.Equal(f.Status, string(q.Status))
}

// Service manages quests
type Service struct {
	api *backend.API
}

// New creates a quests Service
func New(api *backend.API) *Service {
	return &Service{api: api}
}

// List returns the quests matching f
func (s *Service) List(ctx context.Context, f Filter) ([]model.Quest, error) {
	quests, err := s.api.ListQuests(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(quests, f.Match), nil
}

// Create adds a quest, then returns the refetched quests
func (s *Service) Create(ctx context.Context, in model.QuestInput) ([]model.Quest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.api.CreateQuest(ctx, in); err != nil {
		return nil, fmt.Errorf("failed to create quest: %w", err)
	}
	quests, err := s.api.ListQuests(ctx)
	return quests, model.ReloadError(err)
}

// Update edits a quest, then returns the refetched quests
func (s *Service) Update(ctx context.Context, id string, in model.QuestInput) ([]model.Quest, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.api.UpdateQuest(ctx, id, in); err != nil {
		return nil, fmt.Errorf("failed to update quest %s: %w", id, err)
	}
	quests, err := s.api.ListQuests(ctx)
	return quests, model.ReloadError(err)
}

// Delete removes a quest, then returns the refetched quests
func (s *Service) Delete(ctx context.Context, id string) ([]model.Quest, error) {
	if err := s.api.DeleteQuest(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete quest %s: %w", id, err)
	}
	quests, err := s.api.ListQuests(ctx)
	return quests, model.ReloadError(err)
}
