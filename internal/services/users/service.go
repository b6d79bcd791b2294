package users

import (
	"context"
	"fmt"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/filter"
)

// Filter narrows the user list. Role and Status take "all" or a lowercase value.
type Filter struct {
	Search string
	Role   string
	Status string
}

// Match reports whether u passes the filter
func (f Filter) Match(u model.User) bool {
	return filter.Search(f.Search, u.Name, u.Email, u.ID) &&
		filter.Equal(f.Role, string(u.Role)) &&
		filter.Equal(f.Status, u.Status())
}

// Service manages RockQuest user accounts
type Service struct {
	api *backend.API
}

// New creates a users Service
func New(api *backend.API) *Service {
	return &Service{api: api}
}

// List returns the users matching f
func (s *Service) List(ctx context.Context, f Filter) ([]model.User, error) {
	users, err := s.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(users, f.Match), nil
}

// SetSuspended suspends or reinstates a user, then returns the refetched list
func (s *Service) SetSuspended(ctx context.Context, id string, suspended bool) ([]model.User, error) {
	var err error
	if suspended {
		err = s.api.SuspendUser(ctx, id)
	} else {
		err = s.api.UnsuspendUser(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	users, err := s.api.ListUsers(ctx)
	return users, model.ReloadError(err)
}

// ToggleSuspension flips a user from the status the administrator saw:
// an Active user is suspended, anyone else is reinstated
func (s *Service) ToggleSuspension(ctx context.Context, id, currentStatus string) ([]model.User, error) {
	return s.SetSuspended(ctx, id, currentStatus == model.UserStatusActive)
}
