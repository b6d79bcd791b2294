package rocks

import (
	"context"
	"fmt"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/filter"
)

// Filter narrows the rock list. Type takes "all" or a rock type.
type Filter struct {
	Search string
	Type   string
}

// Match reports whether r passes the filter
func (f Filter) Match(r model.Rock) bool {
	return filter.Search(f.Search, r.Name, string(r.Type)) && filter.Equal(f.Type, string(r.Type))
}

// Service manages the rock database
type Service struct {
	api *backend.API
}

// New creates a rocks Service
func New(api *backend.API) *Service {
	return &Service{api: api}
}

// List returns the rocks matching f
func (s *Service) List(ctx context.Context, f Filter) ([]model.Rock, error) {
	rocks, err := s.api.ListRocks(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(rocks, f.Match), nil
}

// Create adds a rock, then returns the refetched rocks
func (s *Service) Create(ctx context.Context, in model.RockInput) ([]model.Rock, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.api.CreateRock(ctx, in); err != nil {
		return nil, fmt.Errorf("failed to create rock: %w", err)
	}
	rocks, err := s.api.ListRocks(ctx)
	return rocks, model.ReloadError(err)
}

// Update edits a rock, then returns the refetched rocks
func (s *Service) Update(ctx context.Context, id string, in model.RockInput) ([]model.Rock, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.api.UpdateRock(ctx, id, in); err != nil {
		return nil, fmt.Errorf("failed to update rock %s: %w", id, err)
	}
	rocks, err := s.api.ListRocks(ctx)
	return rocks, model.ReloadError(err)
}

// Delete removes a rock, then returns the refetched rocks
func (s *Service) Delete(ctx context.Context, id string) ([]model.Rock, error) {
	if err := s.api.DeleteRock(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete rock %s: %w", id, err)
	}
	rocks, err := s.api.ListRocks(ctx)
	return rocks, model.ReloadError(err)
}
