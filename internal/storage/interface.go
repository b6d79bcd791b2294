package storage

import (
	"context"

	"github.com/mcoot/rockquest-admin/internal/model"
)

// Storage defines the interface for dashboard session persistence
type Storage interface {
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
}
