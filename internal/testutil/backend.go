package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/rockquest-admin/internal/model"
)

// Fake backend credentials
const (
	AdminEmail    = "admin@rockquest.test"
	AdminPassword = "granite"
	AdminToken    = "test-admin-token"
)

// RecordedRequest is a request seen by the fake backend
type RecordedRequest struct {
	Method        string
	Path          string
	Authorization string
	RequestID     string
	Body          map[string]any
}

// FakeBackend is an in-memory RockQuest admin backend for tests. Seed the
// exported fields before the first call to URL, which starts the server; after
// that, use Locked.
type FakeBackend struct {
	Server *httptest.Server

	start sync.Once
	mu    sync.Mutex

	// Token is the only bearer token accepted on /admin routes
	Token string
	// LoginBody, when set, replaces the successful login response
	LoginBody map[string]any

	Counts        model.DashboardCounts
	Users         []model.User
	ReviewPosts   []model.ReviewPost
	Reports       []model.Report
	Spawns        []model.Spawn
	Posts         []model.Post
	Announcements []model.Announcement
	Facts         []model.Fact
	Rocks         []model.Rock
	Quests        []model.Quest

	requests []RecordedRequest
	failures map[string]failure
	nextID   int
}

type failure struct {
	status  int
	message string
}

// NewFakeBackend creates a fake backend that is closed when the test ends
func NewFakeBackend(t testing.TB) *FakeBackend {
	f := &FakeBackend{
		Token:    AdminToken,
		failures: make(map[string]failure),
	}
	f.Server = httptest.NewUnstartedServer(f.router())
	t.Cleanup(f.Server.Close)
	return f
}

// URL starts the server on first use and returns the backend base URL
func (f *FakeBackend) URL() string {
	f.start.Do(f.Server.Start)
	return f.Server.URL
}

// Locked runs fn while holding the backend's lock, for reading or changing
// state once requests are in flight
func (f *FakeBackend) Locked(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn()
}

// SetLoginBody replaces the successful login response
func (f *FakeBackend) SetLoginBody(body map[string]any) {
	f.Locked(func() { f.LoginBody = body })
}

// Fail makes every request matching method and path answer with status
func (f *FakeBackend) Fail(method, path string, status int, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[method+" "+path] = failure{status: status, message: message}
}

// SetToken changes the accepted bearer token, invalidating the old one
func (f *FakeBackend) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Token = token
}

// Requests returns the requests seen so far
func (f *FakeBackend) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// Count returns how many requests matched method and path
func (f *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// LastRequest returns the most recent request matching method and path
func (f *FakeBackend) LastRequest(method, path string) (RecordedRequest, bool) {
	reqs := f.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return RecordedRequest{}, false
}

func (f *FakeBackend) router() http.Handler {
	r := mux.NewRouter()
	r.Use(f.record)

	r.HandleFunc("/admin-auth/login", f.login).Methods(http.MethodPost)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(f.requireToken)

	admin.HandleFunc("/dashboard", f.dashboard).Methods(http.MethodGet)

	admin.HandleFunc("/users", f.listUsers).Methods(http.MethodGet)
	admin.HandleFunc("/suspend-user/{id}", f.setUserActive(false)).Methods(http.MethodPut)
	admin.HandleFunc("/unsuspend-user/{id}", f.setUserActive(true)).Methods(http.MethodPut)

	admin.HandleFunc("/review", f.listReviewPosts).Methods(http.MethodGet)
	admin.HandleFunc("/verify-rock/{id}", f.verifyPost).Methods(http.MethodPost)
	admin.HandleFunc("/reports", f.listReports).Methods(http.MethodGet)
	admin.HandleFunc("/review-report/{id}", f.reviewReport).Methods(http.MethodPost)

	admin.HandleFunc("/spawns", f.listSpawns).Methods(http.MethodGet)
	admin.HandleFunc("/spawns", f.createSpawn).Methods(http.MethodPost)
	admin.HandleFunc("/spawns/{id}", f.updateSpawn).Methods(http.MethodPut)
	admin.HandleFunc("/spawns/{id}", f.deleteSpawn).Methods(http.MethodDelete)

	admin.HandleFunc("/posts", f.listPosts).Methods(http.MethodGet)
	admin.HandleFunc("/delete-post/{id}", f.deletePost).Methods(http.MethodDelete)

	admin.HandleFunc("/announcements", f.listAnnouncements).Methods(http.MethodGet)
	admin.HandleFunc("/announcements", f.createAnnouncement).Methods(http.MethodPost)
	admin.HandleFunc("/announcements/{id}", f.updateAnnouncement).Methods(http.MethodPut)
	admin.HandleFunc("/announcements/{id}", f.deleteAnnouncement).Methods(http.MethodDelete)

	admin.HandleFunc("/facts", f.listFacts).Methods(http.MethodGet)
	admin.HandleFunc("/delete-fact/{id}", f.deleteFact).Methods(http.MethodDelete)

	admin.HandleFunc("/rocks", f.listRocks).Methods(http.MethodGet)
	admin.HandleFunc("/rocks", f.createRock).Methods(http.MethodPost)
	admin.HandleFunc("/rocks/{id}", f.updateRock).Methods(http.MethodPut)
	admin.HandleFunc("/rocks/{id}", f.deleteRock).Methods(http.MethodDelete)

	admin.HandleFunc("/quests", f.listQuests).Methods(http.MethodGet)
	admin.HandleFunc("/quests", f.createQuest).Methods(http.MethodPost)
	admin.HandleFunc("/quests/{id}", f.updateQuest).Methods(http.MethodPut)
	admin.HandleFunc("/quests/{id}", f.deleteQuest).Methods(http.MethodDelete)

	return r
}

// record logs the request, decodes any JSON body into the request context copy
// and applies configured failures
func (f *FakeBackend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := RecordedRequest{
			Method:        r.Method,
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			RequestID:     r.Header.Get("X-Request-ID"),
		}

		var body map[string]any
		if r.Body != nil && r.ContentLength != 0 {
			_ = json.NewDecoder(r.Body).Decode(&body)
		}
		rec.Body = body

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		fail, failing := f.failures[r.Method+" "+r.URL.Path]
		f.mu.Unlock()

		if failing {
			writeJSON(w, fail.status, map[string]any{"detail": fail.message})
			return
		}

		next.ServeHTTP(w, r.WithContext(withBody(r.Context(), body)))
	})
}

func (f *FakeBackend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		want := "Bearer " + f.Token
		f.mu.Unlock()

		if r.Header.Get("Authorization") != want {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Not authenticated"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeBackend) login(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	if str(body, "email") != AdminEmail || str(body, "password") != AdminPassword {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Invalid credentials"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoginBody != nil {
		writeJSON(w, http.StatusOK, f.LoginBody)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": f.Token})
}

func (f *FakeBackend) dashboard(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, f.Counts)
}

// Users

func (f *FakeBackend) listUsers(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Users))
}

func (f *FakeBackend) setUserActive(active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i := range f.Users {
			if f.Users[i].ID == mux.Vars(r)["id"] {
				f.Users[i].Active = active
				writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
				return
			}
		}
		notFound(w)
	}
}

// Moderation

func (f *FakeBackend) listReviewPosts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.ReviewPosts))
}

func (f *FakeBackend) verifyPost(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.ReviewPosts {
		p := &f.ReviewPosts[i]
		if p.ID != mux.Vars(r)["id"] {
			continue
		}
		now := model.NewTimestamp(time.Now())
		switch str(body, "action") {
		case "approve":
			p.Verified = true
			p.VerifiedAt = now
		case "reject":
			p.Verified = false
			p.RejectedAt = now
			p.RejectedReason = str(body, "reason")
		default:
			writeJSON(w, http.StatusBadRequest, map[string]any{"detail": "unknown action"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
		return
	}
	notFound(w)
}

func (f *FakeBackend) listReports(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Reports))
}

func (f *FakeBackend) reviewReport(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Reports {
		if f.Reports[i].ID == mux.Vars(r)["id"] {
			f.Reports[i].Status = model.ReportStatus(str(body, "action"))
			f.Reports[i].ReviewedAt = model.NewTimestamp(time.Now())
			writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
			return
		}
	}
	notFound(w)
}

// Spawns

func (f *FakeBackend) listSpawns(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Spawns))
}

func (f *FakeBackend) createSpawn(w http.ResponseWriter, r *http.Request) {
	var in model.SpawnInput
	decodeInto(r, &in)
	f.mu.Lock()
	defer f.mu.Unlock()
	s := spawnFrom(f.newID("spawn"), in)
	s.SpawnedAt = model.NewTimestamp(time.Now())
	f.Spawns = append(f.Spawns, s)
	writeJSON(w, http.StatusCreated, s)
}

func (f *FakeBackend) updateSpawn(w http.ResponseWriter, r *http.Request) {
	var in model.SpawnInput
	decodeInto(r, &in)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Spawns {
		if f.Spawns[i].ID == mux.Vars(r)["id"] {
			updated := spawnFrom(f.Spawns[i].ID, in)
			updated.SpawnedAt = f.Spawns[i].SpawnedAt
			updated.Confidence = f.Spawns[i].Confidence
			f.Spawns[i] = updated
			writeJSON(w, http.StatusOK, updated)
			return
		}
	}
	notFound(w)
}

func (f *FakeBackend) deleteSpawn(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Spawns = removeByID(w, f.Spawns, mux.Vars(r)["id"], func(s model.Spawn) string { return s.ID })
}

func spawnFrom(id string, in model.SpawnInput) model.Spawn {
	return model.Spawn{
		ID:          id,
		RockID:      in.RockID,
		RockType:    in.RockType,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Description: in.Description,
		Status:      in.Status,
	}
}

// Posts

func (f *FakeBackend) listPosts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Posts))
}

func (f *FakeBackend) deletePost(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Posts = removeByID(w, f.Posts, mux.Vars(r)["id"], func(p model.Post) string { return p.ID })
}

// Announcements

func (f *FakeBackend) listAnnouncements(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Announcements))
}

func (f *FakeBackend) createAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in struct {
		AnnouncementID string                 `json:"announcementId"`
		Title          string                 `json:"title"`
		Description    string                 `json:"description"`
		Type           model.AnnouncementType `json:"type"`
		PublishDate    model.Timestamp        `json:"publishDate"`
		ImageURL       string                 `json:"imageUrl"`
		IsVisible      bool                   `json:"isVisible"`
		Pinned         bool                   `json:"pinned"`
	}
	decodeInto(r, &in)
	f.mu.Lock()
	defer f.mu.Unlock()
	a := model.Announcement{
		ID:          in.AnnouncementID,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		PublishDate: in.PublishDate,
		ImageURL:    in.ImageURL,
		IsVisible:   in.IsVisible,
		Pinned:      in.Pinned,
		CreatedBy:   AdminEmail,
		CreatedAt:   model.NewTimestamp(time.Now()),
	}
	f.Announcements = append(f.Announcements, a)
	writeJSON(w, http.StatusCreated, a)
}

func (f *FakeBackend) updateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in model.AnnouncementInput
	decodeInto(r, &in)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Announcements {
		a := &f.Announcements[i]
		if a.ID == mux.Vars(r)["id"] {
			a.Title = in.Title
			a.Description = in.Description
			a.Type = in.Type
			a.PublishDate = in.PublishDate
			writeJSON(w, http.StatusOK, a)
			return
		}
	}
	notFound(w)
}

func (f *FakeBackend) deleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Announcements = removeByID(w, f.Announcements, mux.Vars(r)["id"], func(a model.Announcement) string { return a.ID })
}

// Facts

func (f *FakeBackend) listFacts(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Facts))
}

func (f *FakeBackend) deleteFact(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Facts = removeByID(w, f.Facts, mux.Vars(r)["id"], func(fact model.Fact) string { return fact.ID })
}

// Rocks

func (f *FakeBackend) listRocks(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Rocks))
}

func (f *FakeBackend) createRock(w http.ResponseWriter, r *http.Request) {
	var in model.RockInput
	decodeInto(r, &in)
	f.mu.Lock()
	defer f.mu.Unlock()
	rock := model.Rock{
		ID:          f.newID("rock"),
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Image:       in.Image,
		DateAdded:   model.NewTimestamp(time.Now()),
	}
	f.Rocks = append(f.Rocks, rock)
	writeJSON(w, http.StatusCreated, rock)
}

func (f *FakeBackend) updateRock(w http.ResponseWriter, r *http.Request) {
	var in model.RockInput
	decodeInto(r, &in)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Rocks {
		rock := &f.Rocks[i]
		if rock.ID == mux.Vars(r)["id"] {
			rock.Name = in.Name
			rock.Type = in.Type
			rock.Description = in.Description
			rock.Image = in.Image
			writeJSON(w, http.StatusOK, rock)
			return
		}
	}
	notFound(w)
}

func (f *FakeBackend) deleteRock(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Rocks = removeByID(w, f.Rocks, mux.Vars(r)["id"], func(rock model.Rock) string { return rock.ID })
}

// Quests

func (f *FakeBackend) listQuests(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(w, http.StatusOK, nonNil(f.Quests))
}

func (f *FakeBackend) createQuest(w http.ResponseWriter, r *http.Request) {
	var in model.QuestInput
	decodeInto(r, &in)
	f.mu.Lock()
	defer f.mu.Unlock()
	q := questFrom(f.newID("quest"), in)
	q.DateCreated = model.NewTimestamp(time.Now())
	f.Quests = append(f.Quests, q)
	writeJSON(w, http.StatusCreated, q)
}

func (f *FakeBackend) updateQuest(w http.ResponseWriter, r *http.Request) {
	var in model.QuestInput
	decodeInto(r, &in)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Quests {
		if f.Quests[i].ID == mux.Vars(r)["id"] {
			updated := questFrom(f.Quests[i].ID, in)
			updated.DateCreated = f.Quests[i].DateCreated
			f.Quests[i] = updated
			writeJSON(w, http.StatusOK, updated)
			return
		}
	}
	notFound(w)
}

func (f *FakeBackend) deleteQuest(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Quests = removeByID(w, f.Quests, mux.Vars(r)["id"], func(q model.Quest) string { return q.ID })
}

func questFrom(id string, in model.QuestInput) model.Quest {
	return model.Quest{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Difficulty:  in.Difficulty,
		Reward:      in.Reward,
		Location:    in.Location,
		Status:      in.Status,
	}
}

// Helpers

// newID must be called with f.mu held
func (f *FakeBackend) newID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s-new-%d", prefix, f.nextID)
}

func removeByID[T any](w http.ResponseWriter, items []T, id string, idOf func(T) string) []T {
	for i, item := range items {
		if idOf(item) == id {
			writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
			return append(items[:i:i], items[i+1:]...)
		}
	}
	notFound(w)
	return items
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]any{"detail": "Not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func str(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

// decodeInto re-decodes the recorded body into v
func decodeInto(r *http.Request, v any) {
	data, err := json.Marshal(bodyFrom(r))
	if err != nil {
		return
	}
	_ = json.Unmarshal(data, v)
}
