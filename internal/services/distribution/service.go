// Package distribution manages rock spawn points on the map.
package distribution

import (
	"context"
	"fmt"
	"strings"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/filter"
)

// Filter narrows the spawn list. Status takes "all", "active" or
// "pendingreview".
type Filter struct {
	Search string
	Status string
}

// Match reports whether sp passes the filter
func (f Filter) Match(sp model.Spawn) bool {
	status := strings.ReplaceAll(strings.ToLower(f.Status), " ", "")
	return filter.Search(f.Search, sp.RockType, sp.Location) && filter.Equal(status, sp.StatusKey())
}

// Service manages spawns
type Service struct {
	api *backend.API
}

// New creates a distribution Service
func New(api *backend.API) *Service {
	return &Service{api: api}
}

// List returns the spawns matching f
func (s *Service) List(ctx context.Context, f Filter) ([]model.Spawn, error) {
	spawns, err := s.api.ListSpawns(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(spawns, f.Match), nil
}

// Create adds a spawn, then returns the refetched spawns
func (s *Service) Create(ctx context.Context, in model.SpawnInput) ([]model.Spawn, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.api.CreateSpawn(ctx, in); err != nil {
		return nil, fmt.Errorf("failed to create spawn: %w", err)
	}
	spawns, err := s.api.ListSpawns(ctx)
	return spawns, model.ReloadError(err)
}

// Update edits a spawn, then returns the refetched spawns
func (s *Service) Update(ctx context.Context, id string, in model.SpawnInput) ([]model.Spawn, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.api.UpdateSpawn(ctx, id, in); err != nil {
		return nil, fmt.Errorf("failed to update spawn %s: %w", id, err)
	}
	spawns, err := s.api.ListSpawns(ctx)
	return spawns, model.ReloadError(err)
}

// Delete removes a spawn, then returns the refetched spawns
func (s *Service) Delete(ctx context.Context, id string) ([]model.Spawn, error) {
	if err := s.api.DeleteSpawn(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete spawn %s: %w", id, err)
	}
	spawns, err := s.api.ListSpawns(ctx)
	return spawns, model.ReloadError(err)
}
