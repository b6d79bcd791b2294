package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/guard"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/layout"
)

// base carries what every dashboard handler needs
type base struct {
	logger       *slog.Logger
	secureCookie bool
}

func (b base) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		b.logger.Error("failed to render page",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// redirect sends the browser to target after a form post
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if middleware.IsHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeReturn returns the form's "return" value when it is a local path, and
// fallback otherwise
func safeReturn(r *http.Request, fallback string) string {
	return localPath(r.FormValue("return"), fallback)
}

func localPath(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	return target
}

func pageData(r *http.Request, title, active string) layout.PageData {
	data := layout.PageData{
		Title:  title,
		Flash:  middleware.GetFlash(r.Context()),
		Active: active,
	}
	if session := middleware.GetSession(r.Context()); session != nil {
		data.Email = session.Email
	}
	return data
}

// loginRedirect handles a rejected session. It reports whether err was one.
func (b base) loginRedirect(w http.ResponseWriter, r *http.Request, err error) bool {
	if !errors.Is(err, guard.ErrLoginRequired) {
		return false
	}
	middleware.ClearSessionCookie(w, b.secureCookie)
	middleware.RedirectToLogin(w, r)
	return true
}

// loadError turns a failed list fetch into the banner message shown in place
// of the list. It returns "" and handles the response when the session was
// rejected.
func (b base) loadError(w http.ResponseWriter, r *http.Request, err error, what string) (string, bool) {
	if b.loginRedirect(w, r, err) {
		return "", true
	}
	b.logger.Error("failed to load "+what,
		slog.String("path", r.URL.Path),
		slog.String("request_id", requestID(r)),
		slog.String("error", err.Error()),
	)
	return backend.Message(err, "Failed to load "+what), false
}

// finish completes a mutation: a flash message then back to the screen
func (b base) finish(w http.ResponseWriter, r *http.Request, err error, success, fallback string) {
	target := safeReturn(r, fallback)
	if errors.Is(err, model.ErrReloadFailed) {
		b.logger.Warn("reload after change failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", requestID(r)),
			slog.String("error", err.Error()),
		)
		err = nil
	}
	if err == nil {
		middleware.SetFlash(w, middleware.FlashSuccess, success)
		redirect(w, r, target)
		return
	}
	if b.loginRedirect(w, r, err) {
		return
	}

	b.logger.Warn("dashboard action failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", requestID(r)),
		slog.String("error", err.Error()),
	)
	middleware.SetFlash(w, middleware.FlashError, describe(err))
	redirect(w, r, target)
}

// describe renders err for an administrator
func describe(err error) string {
	var validation *model.ValidationError
	switch {
	case errors.As(err, &validation):
		return strings.Join(validation.Messages(), ". ")
	case errors.Is(err, model.ErrReasonRequired):
		return "Please provide a reason for rejection"
	case errors.Is(err, model.ErrNothingToToggle):
		return "This post has not been reviewed yet"
	case backend.IsNotFound(err):
		return backend.Message(err, "Item not found")
	}
	return backend.Message(err, "Something went wrong, please try again")
}

func requestID(r *http.Request) string {
	return middleware.RequestID(r.Context())
}

// parseFloat parses a form number, recording a message when it is malformed
func parseFloat(v *model.ValidationError, field, value, label string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		v.Add(field, label+" must be a number")
	}
	return f
}

func formValue(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// editing returns the item named by the "edit" query parameter, if listed
func editing[T any](r *http.Request, items []T, idOf func(T) string) *T {
	id := r.URL.Query().Get("edit")
	if id == "" {
		return nil
	}
	for i := range items {
		if idOf(items[i]) == id {
			return &items[i]
		}
	}
	return nil
}

// listPath drops the "edit" parameter so a saved form lands on the plain list
func listPath(r *http.Request) string {
	u := *r.URL
	q := u.Query()
	q.Del("edit")
	u.RawQuery = q.Encode()
	return u.RequestURI()
}
