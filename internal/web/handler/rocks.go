package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/rocks"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// RocksHandler handles the rock database
type RocksHandler struct {
	base
}

// NewRocksHandler creates a new RocksHandler
func NewRocksHandler(logger *slog.Logger, secureCookie bool) *RocksHandler {
	return &RocksHandler{base: base{logger: logger, secureCookie: secureCookie}}
}

// List renders the filtered rocks and the editor
func (h *RocksHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pages.RocksData{
		PageData: pageData(r, "Rock Database", "rocks"),
		Filter:   rocks.Filter{Search: q.Get("search"), Type: q.Get("type")},
		Return:   listPath(r),
	}

	list, err := rocks.New(middleware.API(r.Context())).List(r.Context(), data.Filter)
	if err != nil {
		msg, handled := h.loadError(w, r, err, "rocks")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Rocks = list
	data.Editing = editing(r, list, func(rk model.Rock) string { return rk.ID })

	h.render(w, r, pages.Rocks(data))
}

// Create adds a rock
func (h *RocksHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, err := rocks.New(middleware.API(r.Context())).Create(r.Context(), rockInput(r))
	h.finish(w, r, err, "Rock added", "/rocks")
}

// Update edits a rock
func (h *RocksHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, err := rocks.New(middleware.API(r.Context())).Update(r.Context(), mux.Vars(r)["id"], rockInput(r))
	h.finish(w, r, err, "Rock updated", "/rocks")
}

// Delete removes a rock
func (h *RocksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := rocks.New(middleware.API(r.Context())).Delete(r.Context(), mux.Vars(r)["id"])
	h.finish(w, r, err, "Rock deleted", "/rocks")
}

func rockInput(r *http.Request) model.RockInput {
	return model.RockInput{
		Name:        formValue(r, "name"),
		Type:        model.RockType(formValue(r, "type")),
		Description: formValue(r, "description"),
		Image:       formValue(r, "image"),
	}
}
