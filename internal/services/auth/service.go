package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/dependencies/clock"
	"github.com/mcoot/rockquest-admin/internal/guard"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/storage"
)

// LoginError is a failed login, carrying the message to show the administrator
type LoginError struct {
	Message string
	Cause   error
}

func (e *LoginError) Error() string {
	return e.Message
}

func (e *LoginError) Unwrap() error {
	return e.Cause
}

// Service handles administrator login and dashboard session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	sealer  *Sealer
	api     *backend.API
	logger  *slog.Logger

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// Secret derives the key that seals backend tokens at rest
	Secret string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 12 * time.Hour,
	}
}

// New creates a new auth Service. client is used unauthenticated for login.
func New(storage storage.Storage, clock clock.Clock, client *backend.Client, logger *slog.Logger, cfg Config) (*Service, error) {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	if cfg.Secret == "" {
		logger.Warn("no session secret configured; sessions will not survive a restart")
	}

	sealer, err := NewSealer(cfg.Secret)
	if err != nil {
		return nil, err
	}

	return &Service{
		storage:         storage,
		clock:           clock,
		sealer:          sealer,
		api:             backend.NewAPI(client.WithTokenSource(backend.StaticToken(""))),
		logger:          logger,
		sessionDuration: cfg.SessionDuration,
	}, nil
}

// Login exchanges credentials for a backend token and starts a session holding it
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, &LoginError{Message: "Invalid email or password", Cause: model.ErrInvalidCredentials}
	}

	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Info("login rejected", slog.String("email", email), slog.String("error", err.Error()))
		return nil, &LoginError{
			Message: backend.Message(err, "Invalid email or password"),
			Cause:   errors.Join(model.ErrInvalidCredentials, err),
		}
	}

	token := resp.BearerToken()
	if token == "" {
		return nil, &LoginError{Message: "Login failed: token not returned", Cause: model.ErrTokenNotReturned}
	}

	session, err := s.StartSession(ctx, email, token)
	if errors.Is(err, model.ErrTokenExpired) {
		s.logger.Warn("login returned an expired token", slog.String("email", email))
		return nil, &LoginError{Message: "Login failed: the server returned an expired token", Cause: err}
	}
	return session, err
}

// StartSession stores token in a new session. The session ends at the
// configured duration or at the token's own expiry, whichever is sooner. A
// token that has already expired is refused with model.ErrTokenExpired.
func (s *Service) StartSession(ctx context.Context, email, token string) (*model.Session, error) {
	now := s.clock.Now()
	claims := ReadClaims(token)
	if !claims.ExpiresAt.IsZero() && !claims.ExpiresAt.After(now) {
		return nil, model.ErrTokenExpired
	}

	id := model.SessionID(uuid.NewString())

	sealed, err := s.sealer.Seal(token, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to seal token: %w", err)
	}

	session := &model.Session{
		ID:          id,
		Email:       email,
		SealedToken: sealed,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.sessionDuration),
	}

	session.Subject = claims.Subject
	if session.Email == "" {
		session.Email = claims.Email
	}
	if !claims.ExpiresAt.IsZero() && claims.ExpiresAt.Before(session.ExpiresAt) {
		session.ExpiresAt = claims.ExpiresAt
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("session started",
		slog.String("email", session.Email),
		slog.Time("expires_at", session.ExpiresAt),
	)
	return session, nil
}

// Session returns a live session. Expired sessions are removed and reported as
// model.ErrSessionExpired.
func (s *Service) Session(ctx context.Context, id model.SessionID) (*model.Session, error) {
	if id == "" {
		return nil, model.ErrSessionNotFound
	}

	session, err := s.storage.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.Expired(s.clock.Now()) {
		_ = s.storage.DeleteSession(ctx, id)
		return nil, model.ErrSessionExpired
	}
	return session, nil
}

// Token returns the backend token held by a live session
func (s *Service) Token(ctx context.Context, id model.SessionID) (string, error) {
	session, err := s.Session(ctx, id)
	if err != nil {
		return "", err
	}

	token, err := s.sealer.Open(session.SealedToken, string(id))
	if err != nil {
		// A key change makes every stored session unreadable
		_ = s.storage.DeleteSession(ctx, id)
		return "", model.ErrSessionNotFound
	}
	return token, nil
}

// Logout ends a session
func (s *Service) Logout(ctx context.Context, id model.SessionID) error {
	if id == "" {
		return nil
	}
	return s.storage.DeleteSession(ctx, id)
}

// Tokens returns the guard.TokenStore for one session
func (s *Service) Tokens(id model.SessionID) guard.TokenStore {
	return sessionTokens{s: s, id: id}
}

type sessionTokens struct {
	s  *Service
	id model.SessionID
}

func (t sessionTokens) Token(ctx context.Context) (string, error) {
	token, err := t.s.Token(ctx, t.id)
	if errors.Is(err, model.ErrSessionNotFound) || errors.Is(err, model.ErrSessionExpired) {
		return "", nil
	}
	return token, err
}

func (t sessionTokens) Clear(ctx context.Context) error {
	return t.s.Logout(ctx, t.id)
}
