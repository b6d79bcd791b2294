package posts

import (
	"context"
	"fmt"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
)

// Service manages published community posts
type Service struct {
	api *backend.API
}

// New creates a posts Service
func New(api *backend.API) *Service {
	return &Service{api: api}
}

// List returns all published posts
func (s *Service) List(ctx context.Context) ([]model.Post, error) {
	return s.api.ListPosts(ctx)
}

// Delete removes a post, then returns the refetched posts
func (s *Service) Delete(ctx context.Context, id string) ([]model.Post, error) {
	if err := s.api.DeletePost(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	posts, err := s.api.ListPosts(ctx)
	return posts, model.ReloadError(err)
}
