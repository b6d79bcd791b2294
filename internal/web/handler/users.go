package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/services/users"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// UsersHandler handles user management
type UsersHandler struct {
	base
}

// NewUsersHandler creates a new UsersHandler
func NewUsersHandler(logger *slog.Logger, secureCookie bool) *UsersHandler {
	return &UsersHandler{base: base{logger: logger, secureCookie: secureCookie}}
}

// List renders the filtered user table
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pages.UsersData{
		PageData: pageData(r, "User Management", "users"),
		Filter: users.Filter{
			Search: q.Get("search"),
			Role:   q.Get("role"),
			Status: q.Get("status"),
		},
		Return: r.URL.RequestURI(),
	}

	list, err := users.New(middleware.API(r.Context())).List(r.Context(), data.Filter)
	if err != nil {
		msg, handled := h.loadError(w, r, err, "users")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Users = list

	h.render(w, r, pages.Users(data))
}

// ToggleSuspension suspends an active user or reinstates a suspended one
func (h *UsersHandler) ToggleSuspension(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	status := r.FormValue("status")

	_, err := users.New(middleware.API(r.Context())).ToggleSuspension(r.Context(), id, status)

	success := "User suspended"
	if status != "Active" {
		success = "User reinstated"
	}
	h.finish(w, r, err, success, "/users")
}
