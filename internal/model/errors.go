package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")

	// Login errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenNotReturned   = errors.New("login failed: token not returned")
	ErrTokenExpired       = errors.New("login failed: token already expired")

	// Moderation errors
	ErrReasonRequired  = errors.New("a rejection reason is required")
	ErrNothingToToggle = errors.New("post is still pending review")

	// ErrReloadFailed marks a change that was saved where fetching the
	// updated list afterwards failed
	ErrReloadFailed = errors.New("the change was saved, but reloading failed")
)

// ReloadError wraps the error from the list fetch that follows a successful
// change. It returns nil for a nil err.
func ReloadError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrReloadFailed, err)
}
