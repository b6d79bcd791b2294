package model

import "time"

// SessionID identifies a dashboard session; it is the value of the session cookie
type SessionID string

// Session is a signed-in administrator's dashboard session. The backend token is
// never stored in the clear.
type Session struct {
	ID          SessionID
	Email       string
	Subject     string // token subject, if the backend token is a JWT
	SealedToken []byte
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

// Expired reports whether the session has expired at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
