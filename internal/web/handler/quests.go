package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/quests"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// QuestsHandler handles quest management
type QuestsHandler struct {
	base
}

// NewQuestsHandler creates a new QuestsHandler
func NewQuestsHandler(logger *slog.Logger, secureCookie bool) *QuestsHandler {
	return &QuestsHandler{base: base{logger: logger, secureCookie: secureCookie}}
}

// List renders the filtered quests and the editor
func (h *QuestsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := pages.QuestsData{
		PageData: pageData(r, "Quest Management", "quests"),
		Filter:   quests.Filter{Search: q.Get("search"), Status: q.Get("status")},
		Return:   listPath(r),
	}

	list, err := quests.New(middleware.API(r.Context())).List(r.Context(), data.Filter)
	if err != nil {
		msg, handled := h.loadError(w, r, err, "quests")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Quests = list
	data.Editing = editing(r, list, func(qs model.Quest) string { return qs.ID })

	h.render(w, r, pages.Quests(data))
}

// Create adds a quest
func (h *QuestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := questInput(r)
	_, err := quests.New(middleware.API(r.Context())).Create(r.Context(), in)
	h.finish(w, r, err, "Quest created", "/quests")
}

// Update edits a quest
func (h *QuestsHandler) Update(w http.ResponseWriter, r *http.Request) {
	in := questInput(r)
	_, err := quests.New(middleware.API(r.Context())).Update(r.Context(), mux.Vars(r)["id"], in)
	h.finish(w, r, err, "Quest updated", "/quests")
}

// Delete removes a quest
func (h *QuestsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := quests.New(middleware.API(r.Context())).Delete(r.Context(), mux.Vars(r)["id"])
	h.finish(w, r, err, "Quest deleted", "/quests")
}

func questInput(r *http.Request) model.QuestInput {
	return model.QuestInput{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Type:        model.QuestType(formValue(r, "type")),
		Difficulty:  model.QuestDifficulty(formValue(r, "difficulty")),
		Reward:      formValue(r, "reward"),
		Location:    formValue(r, "location"),
		Status:      model.QuestStatus(formValue(r, "status")),
	}
}
