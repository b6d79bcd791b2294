package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/auth"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/layout"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	base
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service, logger *slog.Logger, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		base:        base{logger: logger, secureCookie: secureCookie},
		authService: authService,
	}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	next := localPath(r.URL.Query().Get("next"), "")
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, localPath(next, "/"), http.StatusSeeOther)
		return
	}

	h.render(w, r, pages.Login(pages.LoginData{
		PageData: layout.PageData{
			Title: "Login",
			Flash: middleware.GetFlash(r.Context()),
		},
		Next: next,
	}))
}

// Login exchanges the submitted credentials for a dashboard session
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := formValue(r, "email")
	next := localPath(r.FormValue("next"), "")

	session, err := h.authService.Login(r.Context(), email, r.FormValue("password"))
	if err != nil {
		message := "Login failed, please try again"
		var loginErr *auth.LoginError
		if errors.As(err, &loginErr) {
			message = loginErr.Message
		} else {
			h.logger.Error("failed to start session", slog.String("error", err.Error()))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, r, pages.Login(pages.LoginData{
			PageData: layout.PageData{Title: "Login"},
			Email:    email,
			Error:    message,
			Next:     next,
		}))
		return
	}

	middleware.SetSessionCookie(w, session, h.secureCookie)
	http.Redirect(w, r, localPath(next, "/"), http.StatusSeeOther)
}

// Logout ends the dashboard session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		if err := h.authService.Logout(r.Context(), model.SessionID(cookie.Value)); err != nil {
			h.logger.Error("failed to end session", slog.String("error", err.Error()))
		}
	}

	middleware.ClearSessionCookie(w, h.secureCookie)
	middleware.SetFlash(w, middleware.FlashInfo, "You have been logged out")
	redirect(w, r, "/login")
}
