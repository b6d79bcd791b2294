package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the admin tools read from a backend token. The signature
// is not checked; the claims only label the session and stop the token being
// used after it has expired.
type TokenClaims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// ReadClaims returns the claims of token, or zero claims if token is not a JWT
func ReadClaims(token string) TokenClaims {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return TokenClaims{}
	}

	var out TokenClaims
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	return out
}
