// Package guard holds the session guard shared by every screen: it refuses to
// issue backend requests without a stored token, and it forgets the token when
// the backend rejects it.
package guard

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mcoot/rockquest-admin/internal/backend"
)

// ErrLoginRequired means the caller must send the administrator to the login screen
var ErrLoginRequired = errors.New("login required")

// TokenStore is wherever the administrator's token lives between requests: a
// server-side session for the dashboard, a token file for the CLI.
type TokenStore interface {
	// Token returns the stored token, or "" if there is none
	Token(ctx context.Context) (string, error)
	// Clear forgets the stored token
	Clear(ctx context.Context) error
}

// RejectedError is returned when the backend answers 401 or 403. It matches
// ErrLoginRequired and unwraps to the backend's *StatusError.
type RejectedError struct {
	Cause error
}

func (e *RejectedError) Error() string {
	return "login required: " + e.Cause.Error()
}

func (e *RejectedError) Unwrap() error {
	return e.Cause
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrLoginRequired
}

// Session is a backend.Requester bound to one TokenStore
type Session struct {
	store  TokenStore
	client *backend.Client
	logger *slog.Logger
}

// Ensure Session satisfies Requester
var _ backend.Requester = (*Session)(nil)

// New creates a guarded session over client using store for the token
func New(client *backend.Client, store TokenStore, logger *slog.Logger) *Session {
	s := &Session{
		store:  store,
		logger: logger,
	}
	s.client = client.WithTokenSource(tokenSource{s})
	return s
}

// Check returns ErrLoginRequired if there is no stored token. Screens call it
// before doing anything else.
func (s *Session) Check(ctx context.Context) error {
	_, err := s.token(ctx)
	return err
}

// API returns the typed endpoints over this session
func (s *Session) API() *backend.API {
	return backend.NewAPI(s)
}

func (s *Session) Get(ctx context.Context, path string, result any) error {
	return s.observe(ctx, "GET", path, s.client.Get(ctx, path, result))
}

func (s *Session) Post(ctx context.Context, path string, body, result any) error {
	return s.observe(ctx, "POST", path, s.client.Post(ctx, path, body, result))
}

func (s *Session) Put(ctx context.Context, path string, body, result any) error {
	return s.observe(ctx, "PUT", path, s.client.Put(ctx, path, body, result))
}

func (s *Session) Delete(ctx context.Context, path string) error {
	return s.observe(ctx, "DELETE", path, s.client.Delete(ctx, path))
}

func (s *Session) token(ctx context.Context) (string, error) {
	token, err := s.store.Token(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", ErrLoginRequired
	}
	return token, nil
}

func (s *Session) observe(ctx context.Context, method, path string, err error) error {
	if err == nil || errors.Is(err, ErrLoginRequired) {
		return err
	}

	if backend.IsAuthError(err) {
		s.logger.Info("backend rejected session token",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		if clearErr := s.store.Clear(ctx); clearErr != nil {
			s.logger.Error("failed to clear session token", slog.String("error", clearErr.Error()))
		}
		return &RejectedError{Cause: err}
	}

	s.logger.Warn("backend request failed",
		slog.String("method", method),
		slog.String("path", path),
		slog.String("error", err.Error()),
	)
	return err
}

// tokenSource adapts the guard to backend.TokenSource so the client never sends
// a request without a token
type tokenSource struct {
	s *Session
}

func (t tokenSource) Token(ctx context.Context) (string, error) {
	return t.s.token(ctx)
}
