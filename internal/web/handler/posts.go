package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/services/posts"
	"github.com/mcoot/rockquest-admin/internal/web/middleware"
	"github.com/mcoot/rockquest-admin/internal/web/templates/pages"
)

// PostsHandler handles published posts
type PostsHandler struct {
	base
}

// NewPostsHandler creates a new PostsHandler
func NewPostsHandler(logger *slog.Logger, secureCookie bool) *PostsHandler {
	return &PostsHandler{base: base{logger: logger, secureCookie: secureCookie}}
}

// List renders the published posts
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	data := pages.PostsData{
		PageData: pageData(r, "Posts", "posts"),
		Return:   r.URL.RequestURI(),
	}

	list, err := posts.New(middleware.API(r.Context())).List(r.Context())
	if err != nil {
		msg, handled := h.loadError(w, r, err, "posts")
		if handled {
			return
		}
		data.Error = msg
	}
	data.Posts = list

	h.render(w, r, pages.Posts(data))
}

// Delete removes a post
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, err := posts.New(middleware.API(r.Context())).Delete(r.Context(), mux.Vars(r)["id"])
	h.finish(w, r, err, "Post deleted", "/posts")
}
