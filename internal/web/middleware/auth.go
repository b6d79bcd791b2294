package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/guard"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/auth"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
	guardContextKey   contextKey = "guard"

	// SessionCookieName is the cookie holding the dashboard session id
	SessionCookieName = "session"
)

// GetSession returns the signed-in administrator's session, or nil
func GetSession(ctx context.Context) *model.Session {
	session, _ := ctx.Value(sessionContextKey).(*model.Session)
	return session
}

// GetGuard returns the guarded backend session for the request, or nil
func GetGuard(ctx context.Context) *guard.Session {
	g, _ := ctx.Value(guardContextKey).(*guard.Session)
	return g
}

// API returns the guarded backend endpoints for the request
func API(ctx context.Context) *backend.API {
	return GetGuard(ctx).API()
}

// Auth requires a live dashboard session. Requests without one are sent to
// the login page before any backend call is made.
func Auth(authService *auth.Service, client *backend.Client, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := lookupSession(r, authService, logger)
			if session == nil {
				ClearSessionCookie(w, false)
				RedirectToLogin(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			ctx = context.WithValue(ctx, guardContextKey, guard.New(client, authService.Tokens(session.ID), logger))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth puts the session in the context when there is one
func OptionalAuth(authService *auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := lookupSession(r, authService, logger)
			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectToLogin sends the browser to the login page, remembering where it was
// going. htmx requests get an HX-Redirect so the whole page navigates.
func RedirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := "/login"
	if next := r.URL.RequestURI(); r.Method == http.MethodGet && next != "/" {
		target += "?next=" + url.QueryEscape(next)
	}

	if IsHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// IsHTMX reports whether r was issued by htmx
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// SetSessionCookie stores the session id in the browser until the session expires
func SetSessionCookie(w http.ResponseWriter, session *model.Session, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    string(session.ID),
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func lookupSession(r *http.Request, authService *auth.Service, logger *slog.Logger) *model.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	session, err := authService.Session(r.Context(), model.SessionID(cookie.Value))
	if err != nil {
		if !errors.Is(err, model.ErrSessionNotFound) && !errors.Is(err, model.ErrSessionExpired) {
			logger.Error("failed to load session", slog.String("error", err.Error()))
		}
		return nil
	}
	return session
}
