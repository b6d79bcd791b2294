package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/dependencies/clock"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/announcements"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// AnnouncementsHandler handles announcements
type AnnouncementsHandler struct {
	base
	clock clock.Clock
}

// NewAnnouncementsHandler creates a new AnnouncementsHandler
func NewAnnouncementsHandler(clk clock.Clock, logger *slog.Logger, secureCookie bool) *AnnouncementsHandler {
	return &AnnouncementsHandler{
		base:  base{logger: logger, secureCookie: secureCookie},
		clock: clk,
	}
}

func (h *AnnouncementsHandler) service(r *http.Request) *announcements.Service {
	return announcements.New(middleware.API(r.Context()), h.clock)
}

// List renders announcements and the editor
func (h *AnnouncementsHandler) List(w http.ResponseWriter, r *http.Request) {
	data := pages.AnnouncementsData{
		PageData: pageData(r, "Announcements", "announcements"),
		Search:   r.URL.Query().Get("search"),
		Return:   listPath(r),
	}

	list, err := h.service(r).List(r.Context(), data.Search)
	if err != nil {
		msg, handled := h.loadError(w, r, err, "announcements")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Announcements = list
	data.Editing = editing(r, list, func(a model.Announcement) string { return a.ID })

	h.render(w, r, pages.Announcements(data))
}

// Create publishes a new announcement
func (h *AnnouncementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, err := h.service(r).Create(r.Context(), h.input(r))
	h.finish(w, r, err, "Announcement created", "/announcements")
}

// Update edits an announcement
func (h *AnnouncementsHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, err := h.service(r).Update(r.Context(), mux.Vars(r)["id"], h.input(r))
	h.finish(w, r, err, "Announcement updated", "/announcements")
}

// Delete removes an announcement
func (h *AnnouncementsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := h.service(r).Delete(r.Context(), mux.Vars(r)["id"])
	h.finish(w, r, err, "Announcement deleted", "/announcements")
}

// input reads the announcement form. A blank publish date means today.
func (h *AnnouncementsHandler) input(r *http.Request) model.AnnouncementInput {
	publish := model.ParseTimestamp(formValue(r, "publishDate"))
	if publish.IsZero() {
		publish = model.NewTimestamp(h.clock.Now())
	}
	return model.AnnouncementInput{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Type:        model.AnnouncementType(formValue(r, "type")),
		PublishDate: publish,
	}
}
