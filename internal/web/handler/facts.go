package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/services/facts"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// FactsHandler handles geological facts
type FactsHandler struct {
	base
}

// NewFactsHandler creates a new FactsHandler
func NewFactsHandler(logger *slog.Logger, secureCookie bool) *FactsHandler {
	return &FactsHandler{base: base{logger: logger, secureCookie: secureCookie}}
}

// List renders the facts matching the search
func (h *FactsHandler) List(w http.ResponseWriter, r *http.Request) {
	data := pages.FactsData{
		PageData: pageData(r, "Geological Facts", "facts"),
		Search:   r.URL.Query().Get("search"),
		Return:   r.URL.RequestURI(),
	}

	list, err := facts.New(middleware.API(r.Context())).List(r.Context(), data.Search)
	if err != nil {
		msg, handled := h.loadError(w, r, err, "facts")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Facts = list

	h.render(w, r, pages.Facts(data))
}

// Delete removes a fact
func (h *FactsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := facts.New(middleware.API(r.Context())).Delete(r.Context(), mux.Vars(r)["id"])
	h.finish(w, r, err, "Fact deleted", "/facts")
}
