package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/rockquest-admin/internal/services/dashboard"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// DashboardHandler renders the landing page
type DashboardHandler struct {
	base
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(logger *slog.Logger, secureCookie bool) *DashboardHandler {
	return &DashboardHandler{base: base{logger: logger, secureCookie: secureCookie}}
}

// View renders the totals cards
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	data := pages.DashboardData{PageData: pageData(r, "Dashboard", "dashboard")}

	cards, err := dashboard.New(middleware.API(r.Context())).Cards(r.Context())
	if err != nil {
		msg, handled := h.loadError(w, r, err, "dashboard")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Cards = cards

	h.render(w, r, pages.Dashboard(data))
}

// Health reports that the server is up
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
