package backend

import (
	"context"
	"net/url"

	"github.com/mcoot/rockquest-admin/internal/model"
)

// API exposes the backend's admin endpoints over a Requester
type API struct {
	r Requester
}

// NewAPI creates an API that issues requests through r
func NewAPI(r Requester) *API {
	return &API{r: r}
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token under either of its names
type LoginResponse struct {
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"access_token,omitempty"`
}

// BearerToken returns whichever token field is set
func (r LoginResponse) BearerToken() string {
	if r.Token != "" {
		return r.Token
	}
	return r.AccessToken
}

// VerifyRequest approves or rejects a submitted post
type VerifyRequest struct {
	Action model.ReviewAction `json:"action"`
	Reason string             `json:"reason,omitempty"`
}

// ReviewRequest approves or rejects a report
type ReviewRequest struct {
	Action model.ReviewAction `json:"action"`
}

// NewAnnouncement is the create payload for announcements
type NewAnnouncement struct {
	AnnouncementID string                 `json:"announcementId"`
	Title          string                 `json:"title"`
	Description    string                 `json:"description"`
	Type           model.AnnouncementType `json:"type"`
	PublishDate    model.Timestamp        `json:"publishDate"`
	ImageURL       string                 `json:"imageUrl"`
	IsVisible      bool                   `json:"isVisible"`
	Pinned         bool                   `json:"pinned"`
}

func escape(id string) string {
	return url.PathEscape(id)
}

// Auth

// Login exchanges admin credentials for a bearer token
func (a *API) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var resp LoginResponse
	err := a.r.Post(ctx, "/admin-auth/login", LoginRequest{Email: email, Password: password}, &resp)
	return resp, err
}

// Dashboard

// Dashboard returns the dashboard totals
func (a *API) Dashboard(ctx context.Context) (model.DashboardCounts, error) {
	var counts model.DashboardCounts
	err := a.r.Get(ctx, "/admin/dashboard", &counts)
	return counts, err
}

// Users

func (a *API) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := a.r.Get(ctx, "/admin/users", &users)
	return users, err
}

func (a *API) SuspendUser(ctx context.Context, id string) error {
	return a.r.Put(ctx, "/admin/suspend-user/"+escape(id), nil, nil)
}

func (a *API) UnsuspendUser(ctx context.Context, id string) error {
	return a.r.Put(ctx, "/admin/unsuspend-user/"+escape(id), nil, nil)
}

// Moderation

func (a *API) ListReviewPosts(ctx context.Context) ([]model.ReviewPost, error) {
	var posts []model.ReviewPost
	err := a.r.Get(ctx, "/admin/review", &posts)
	return posts, err
}

func (a *API) VerifyPost(ctx context.Context, id string, req VerifyRequest) error {
	return a.r.Post(ctx, "/admin/verify-rock/"+escape(id), req, nil)
}

func (a *API) ListReports(ctx context.Context) ([]model.Report, error) {
	var reports []model.Report
	err := a.r.Get(ctx, "/admin/reports", &reports)
	return reports, err
}

func (a *API) ReviewReport(ctx context.Context, id string, action model.ReviewAction) error {
	return a.r.Post(ctx, "/admin/review-report/"+escape(id), ReviewRequest{Action: action}, nil)
}

// Spawns (rock distribution)

func (a *API) ListSpawns(ctx context.Context) ([]model.Spawn, error) {
	var spawns []model.Spawn
	err := a.r.Get(ctx, "/admin/spawns", &spawns)
	return spawns, err
}

func (a *API) CreateSpawn(ctx context.Context, in model.SpawnInput) error {
	return a.r.Post(ctx, "/admin/spawns", in, nil)
}

func (a *API) UpdateSpawn(ctx context.Context, id string, in model.SpawnInput) error {
	return a.r.Put(ctx, "/admin/spawns/"+escape(id), in, nil)
}

func (a *API) DeleteSpawn(ctx context.Context, id string) error {
	return a.r.Delete(ctx, "/admin/spawns/"+escape(id))
}

// Posts

func (a *API) ListPosts(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := a.r.Get(ctx, "/admin/posts", &posts)
	return posts, err
}

func (a *API) DeletePost(ctx context.Context, id string) error {
	return a.r.Delete(ctx, "/admin/delete-post/"+escape(id))
}

// Announcements

func (a *API) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	var announcements []model.Announcement
	err := a.r.Get(ctx, "/admin/announcements", &announcements)
	return announcements, err
}

func (a *API) CreateAnnouncement(ctx context.Context, in NewAnnouncement) error {
	return a.r.Post(ctx, "/admin/announcements", in, nil)
}

func (a *API) UpdateAnnouncement(ctx context.Context, id string, in model.AnnouncementInput) error {
	return a.r.Put(ctx, "/admin/announcements/"+escape(id), in, nil)
}

func (a *API) DeleteAnnouncement(ctx context.Context, id string) error {
	return a.r.Delete(ctx, "/admin/announcements/"+escape(id))
}

// Facts

func (a *API) ListFacts(ctx context.Context) ([]model.Fact, error) {
	var facts []model.Fact
	err := a.r.Get(ctx, "/admin/facts", &facts)
	return facts, err
}

func (a *API) DeleteFact(ctx context.Context, id string) error {
	return a.r.Delete(ctx, "/admin/delete-fact/"+escape(id))
}

// Rocks

func (a *API) ListRocks(ctx context.Context) ([]model.Rock, error) {
	var rocks []model.Rock
	err := a.r.Get(ctx, "/admin/rocks", &rocks)
	return rocks, err
}

func (a *API) CreateRock(ctx context.Context, in model.RockInput) error {
	return a.r.Post(ctx, "/admin/rocks", in, nil)
}

func (a *API) UpdateRock(ctx context.Context, id string, in model.RockInput) error {
	return a.r.Put(ctx, "/admin/rocks/"+escape(id), in, nil)
}

func (a *API) DeleteRock(ctx context.Context, id string) error {
	return a.r.Delete(ctx, "/admin/rocks/"+escape(id))
}

// Quests

func (a *API) ListQuests(ctx context.Context) ([]model.Quest, error) {
	var quests []model.Quest
	err := a.r.Get(ctx, "/admin/quests", &quests)
	return quests, err
}

func (a *API) CreateQuest(ctx context.Context, in model.QuestInput) error {
	return a.r.Post(ctx, "/admin/quests", in, nil)
}

func (a *API) UpdateQuest(ctx context.Context, id string, in model.QuestInput) error {
	return a.r.Put(ctx, "/admin/quests/"+escape(id), in, nil)
}

func (a *API) DeleteQuest(ctx context.Context, id string) error {
	return a.r.Delete(ctx, "/admin/quests/"+escape(id))
}
