package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/moderation"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// ModerationHandler handles review of submitted posts and reports
type ModerationHandler struct {
	base
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(logger *slog.Logger, secureCookie bool) *ModerationHandler {
	return &ModerationHandler{base: base{logger: logger, secureCookie: secureCookie}}
}

// View renders one tab of the moderation screen
func (h *ModerationHandler) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tab, filter := moderationTab(q.Get("tab"), q.Get("filter"))

	data := pages.ModerationData{
		PageData: pageData(r, "Posts & Reports", "moderation"),
		Tab:      tab,
		Filter:   filter,
		Return:   r.URL.RequestURI(),
	}

	board, err := moderation.New(middleware.API(r.Context())).Load(r.Context())
	if err != nil {
		msg, handled := h.loadError(w, r, err, "moderation queue")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Board = board

	h.render(w, r, pages.Moderation(data))
}

// moderationTab normalises the tab and filter query values
func moderationTab(tab, filter string) (string, string) {
	if tab != pages.TabReports {
		switch model.PostState(filter) {
		case model.PostStateApproved, model.PostStateRejected:
			return pages.TabPosts, filter
		default:
			return pages.TabPosts, string(model.PostStatePending)
		}
	}

	switch model.ReportStatus(filter) {
	case model.ReportStatusApproved, model.ReportStatusRejected:
		return pages.TabReports, filter
	default:
		return pages.TabReports, string(model.ReportStatusPending)
	}
}

// ApprovePost verifies a pending post
func (h *ModerationHandler) ApprovePost(w http.ResponseWriter, r *http.Request) {
	_, err := moderation.New(middleware.API(r.Context())).Approve(r.Context(), mux.Vars(r)["id"])
	h.finish(w, r, err, "Post approved", "/moderation")
}

// RejectPost rejects a pending post with the submitted reason
func (h *ModerationHandler) RejectPost(w http.ResponseWriter, r *http.Request) {
	_, err := moderation.New(middleware.API(r.Context())).Reject(r.Context(), mux.Vars(r)["id"], r.FormValue("reason"))
	h.finish(w, r, err, "Post rejected", "/moderation")
}

// TogglePost reverses the decision on a reviewed post
func (h *ModerationHandler) TogglePost(w http.ResponseWriter, r *http.Request) {
	_, err := moderation.New(middleware.API(r.Context())).TogglePost(r.Context(), mux.Vars(r)["id"], r.FormValue("reason"))
	h.finish(w, r, err, "Post decision changed", "/moderation")
}

// ApproveReport upholds a report
func (h *ModerationHandler) ApproveReport(w http.ResponseWriter, r *http.Request) {
	h.reviewReport(w, r, model.ActionApprove, "Report approved")
}

// RejectReport dismisses a report
func (h *ModerationHandler) RejectReport(w http.ResponseWriter, r *http.Request) {
	h.reviewReport(w, r, model.ActionReject, "Report rejected")
}

func (h *ModerationHandler) reviewReport(w http.ResponseWriter, r *http.Request, action model.ReviewAction, success string) {
	_, err := moderation.New(middleware.API(r.Context())).ReviewReport(r.Context(), mux.Vars(r)["id"], action)
	h.finish(w, r, err, success, "/moderation?tab=reports")
}

// ToggleReport reverses the decision on a reviewed report
func (h *ModerationHandler) ToggleReport(w http.ResponseWriter, r *http.Request) {
	_, err := moderation.New(middleware.API(r.Context())).ToggleReport(r.Context(), mux.Vars(r)["id"])
	h.finish(w, r, err, "Report decision changed", "/moderation?tab=reports")
}
