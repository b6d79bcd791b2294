package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/distribution"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// DistributionHandler handles rock spawn points
type DistributionHandler struct {
	base
}

// NewDistributionHandler creates a new DistributionHandler
func NewDistributionHandler(logger *slog.Logger, secureCookie bool) *DistributionHandler {
	return &DistributionHandler{base: base{logger: logger, secureCookie: secureCookie}}
}

// List renders the filtered spawns and the editor
func (h *DistributionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pages.DistributionData{
		PageData: pageData(r, "Rock Distribution", "distribution"),
		Filter:   distribution.Filter{Search: q.Get("search"), Status: q.Get("status")},
		Return:   listPath(r),
	}

	list, err := distribution.New(middleware.API(r.Context())).List(r.Context(), data.Filter)
	if err != nil {
		msg, handled := h.loadError(w, r, err, "distribution points")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Spawns = list
	data.Editing = editing(r, list, func(sp model.Spawn) string { return sp.ID })

	h.render(w, r, pages.Distribution(data))
}

// Create adds a spawn point
func (h *DistributionHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := spawnInput(r)
	if err == nil {
		_, err = distribution.New(middleware.API(r.Context())).Create(r.Context(), in)
	}
	h.finish(w, r, err, "Distribution point added", "/distribution")
}

// Update edits a spawn point
func (h *DistributionHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, err := spawnInput(r)
	if err == nil {
		_, err = distribution.New(middleware.API(r.Context())).Update(r.Context(), mux.Vars(r)["id"], in)
	}
	h.finish(w, r, err, "Distribution point updated", "/distribution")
}

// Delete removes a spawn point
func (h *DistributionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := distribution.New(middleware.API(r.Context())).Delete(r.Context(), mux.Vars(r)["id"])
	h.finish(w, r, err, "Distribution point deleted", "/distribution")
}

// spawnInput reads the spawn form. Malformed coordinates are reported as
// validation errors.
func spawnInput(r *http.Request) (model.SpawnInput, error) {
	v := model.NewValidationError()
	in := model.SpawnInput{
		RockType:    formValue(r, "rockType"),
		Location:    formValue(r, "location"),
		Latitude:    parseFloat(v, "latitude", r.FormValue("latitude"), "Latitude"),
		Longitude:   parseFloat(v, "longitude", r.FormValue("longitude"), "Longitude"),
		Description: formValue(r, "description"),
		Status:      formValue(r, "status"),
	}
	return in, v.Err()
}
