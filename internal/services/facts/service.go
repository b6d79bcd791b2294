package facts

import (
	"context"
	"fmt"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/filter"
)

// Service manages geologist-submitted facts
type Service struct {
	api *backend.API
}

// New creates a facts Service
func New(api *backend.API) *Service {
	return &Service{api: api}
}

// List returns facts with placeholder defaults applied, filtered by a search
// over title, description and author
func (s *Service) List(ctx context.Context, search string) ([]model.Fact, error) {
	facts, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(facts, func(f model.Fact) bool {
		return filter.Search(search, f.Title, f.Description, f.Author)
	}), nil
}

// Delete removes a fact, then returns the refetched facts
func (s *Service) Delete(ctx context.Context, id string) ([]model.Fact, error) {
	if err := s.api.DeleteFact(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete fact %s: %w", id, err)
	}
	facts, err := s.fetch(ctx)
	return facts, model.ReloadError(err)
}

func (s *Service) fetch(ctx context.Context) ([]model.Fact, error) {
	facts, err := s.api.ListFacts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range facts {
		facts[i] = facts[i].WithDefaults()
	}
	return facts, nil
}
