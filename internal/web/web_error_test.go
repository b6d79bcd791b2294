package web_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownRouteReturnsNotFound(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	rr := ts.get("/nonexistent")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWrongMethodIsRejected(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	rr := ts.request(http.MethodDelete, "/users", nil, false)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestGetOnMutationRouteDoesNotMutate(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	rr := ts.get("/posts/post-1/delete")

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, 0, ts.backend.Count(http.MethodDelete, "/admin/delete-post/post-1"))
}

func TestUnreachableBackendShowsBanner(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()
	ts.backend.Server.Close()

	doc := ts.page("/users")

	assertContainsText(t, doc, ".banner-error", "Failed to load users")
	assertNotContainsElement(t, doc, "#users")
	// the session survives a transport failure
	assert.True(t, ts.cookies.hasSession())
}

func TestUnreachableBackendFlashesOnMutation(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()
	ts.backend.Server.Close()

	rr := ts.post("/rocks/rock-1/delete", url.Values{"return": {"/rocks"}})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/rocks", rr.Header().Get("Location"))
	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsText(t, doc, ".flash-error", "Something went wrong, please try again")
}

func TestBackendErrorShapesReachTheAdministrator(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()
	ts.backend.Fail(http.MethodGet, "/admin/rocks", http.StatusServiceUnavailable, "")

	doc := ts.page("/rocks")

	// a status without a message body falls back to the generic text
	assertContainsText(t, doc, ".banner-error", "Failed to load rocks")
}

func TestFlashIsShownOnce(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/facts/fact-2/delete", url.Values{"return": {"/facts"}})
	assertContainsText(t, doc, ".flash-success", "Fact deleted")

	doc = ts.page("/facts")
	assertNotContainsElement(t, doc, ".flash")
}

func TestEditingUnknownItemShowsCreateForm(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/rocks?edit=no-such-rock")

	assertContainsElement(t, doc, "form[action='/rocks'] input[name='name']")
	assertNotContainsElement(t, doc, "form[action='/rocks/no-such-rock']")
}

func TestFailedListLoadShowsOnlyTheBanner(t *testing.T) {
	tests := []struct {
		page    string
		path    string
		message string
		list    string
	}{
		{"/users", "/admin/users", "Failed to load users", "#users"},
		{"/rocks", "/admin/rocks", "Failed to load rocks", "#rocks"},
		{"/quests", "/admin/quests", "Failed to load quests", "#quests"},
		{"/announcements", "/admin/announcements", "Failed to load announcements", "#announcements"},
		{"/distribution", "/admin/spawns", "Failed to load distribution points", "#spawns"},
		{"/posts", "/admin/posts", "Failed to load posts", "#posts"},
		{"/facts", "/admin/facts", "Failed to load facts", "#facts"},
		{"/moderation", "/admin/review", "Failed to load moderation queue", "#posts"},
		{"/moderation?tab=reports", "/admin/reports", "Failed to load moderation queue", "#reports"},
		{"/", "/admin/dashboard", "Failed to load dashboard", ".cards"},
	}
	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			ts := newSeededServer(t)
			ts.login()
			ts.backend.Fail(http.MethodGet, tt.path, http.StatusBadGateway, "")

			doc := ts.page(tt.page)

			assertContainsText(t, doc, ".banner-error", tt.message)
			assertNotContainsElement(t, doc, tt.list)
			assertNotContainsElement(t, doc, ".empty")
		})
	}
}

func TestReloadFailureAfterSavedChangeStillReportsSuccess(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()
	ts.backend.Fail(http.MethodGet, "/admin/posts", http.StatusBadGateway, "")

	doc := ts.submit("/posts/post-1/delete", url.Values{"return": {"/posts"}})

	assertContainsText(t, doc, ".flash-success", "Post deleted")
	assertNotContainsElement(t, doc, ".flash-error")
	assertContainsText(t, doc, ".banner-error", "Failed to load posts")
	assert.Equal(t, 1, ts.backend.Count(http.MethodDelete, "/admin/delete-post/post-1"))
}
