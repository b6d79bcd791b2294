package web_test

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/testutil"
)

func day(d int) model.Timestamp {
	return model.NewTimestamp(time.Date(2025, 8, d, 10, 30, 0, 0, time.UTC))
}

// seedRockQuest fills the fake backend with a small data set for every screen
func seedRockQuest(b *testutil.FakeBackend) {
	b.Counts = model.DashboardCounts{
		TotalUsers: 3, TotalPosts: 2, TotalReports: 2, TotalQuests: 2,
		TotalRocks: 2, TotalRockDistributions: 2, TotalAnnouncements: 1, TotalFacts: 2,
	}
	b.Users = []model.User{
		{ID: "u1", Name: "Ada Lovelace", Email: "ada@rockquest.test", Role: model.UserRolePlayer, Active: true, JoinDate: "2025-01-02"},
		{ID: "u2", Name: "Mary Anning", Email: "mary@rockquest.test", Role: model.UserRoleGeologist, Active: true, JoinDate: "2025-02-03"},
		{ID: "u3", Name: "<b>Mallory</b>", Email: "mallory@rockquest.test", Role: model.UserRolePlayer, Active: false, JoinDate: "N/A"},
	}
	b.ReviewPosts = []model.ReviewPost{
		{ID: "rp-pending", RockName: "Granite", Description: "Speckled", CreatedBy: "u1", CreatedAt: day(1)},
		{ID: "rp-approved", RockName: "Basalt", CreatedBy: "u2", Verified: true, VerifiedAt: day(2)},
		{ID: "rp-rejected", RockName: "Shale", CreatedBy: "ghost", RejectedAt: day(3), RejectedReason: "Blurry photo"},
	}
	b.Reports = []model.Report{
		{ID: "rep-1", ReportedBy: "u2", ReportedItemType: "post", ReportedID: "post-1", Reason: "Spam", Status: model.ReportStatusPending, ReportedAt: day(4)},
		{ID: "rep-2", ReportedBy: "u1", ReportedItemType: "fact", ReportedID: "fact-1", Reason: "Wrong", Status: model.ReportStatusApproved, ReportedAt: day(5)},
	}
	b.Spawns = []model.Spawn{
		{ID: "sp-1", RockID: "rp-pending", RockType: "Granite", Location: "Dartmoor", Latitude: 50.57, Longitude: -3.92, Status: "active", Confidence: 0.42, SpawnedAt: day(1)},
		{ID: "sp-2", RockID: "rp-pending", RockType: "Granite", Location: "Cairngorms", Latitude: 57.08, Longitude: -3.67, Status: "pending review", Confidence: 0.87, SpawnedAt: day(6)},
	}
	b.Posts = []model.Post{
		{ID: "post-1", RockName: "Obsidian", Information: "Volcanic glass", CreatorName: "Ada Lovelace", CreatorRole: "player", CreatedAt: day(7)},
		{ID: "post-2", RockName: "Marble", Information: "Metamorphosed limestone", CreatedAt: day(8)},
	}
	b.Announcements = []model.Announcement{
		{ID: "ann-1", Title: "Winter update", Description: "New quests", Type: model.AnnouncementUpdate, PublishDate: day(9), IsVisible: true},
	}
	b.Facts = []model.Fact{
		{ID: "fact-1", Title: "Oldest rock", Description: "Acasta Gneiss is four billion years old", Author: "Mary Anning", CreatedAt: day(10)},
		{ID: "fact-2", Title: "Pumice floats", Description: "Full of gas bubbles"},
	}
	b.Rocks = []model.Rock{
		{ID: "rock-1", Name: "Granite", Type: model.RockTypeIgneous, Description: "Coarse grained", DateAdded: day(11)},
		{ID: "rock-2", Name: "Sandstone", Type: model.RockTypeSedimentary, Description: "Cemented sand", DateAdded: day(12)},
	}
	b.Quests = []model.Quest{
		{ID: "quest-1", Title: "Find a geode", Type: model.QuestTypeCollection, Difficulty: model.QuestDifficultyEasy, Status: model.QuestStatusActive, DateCreated: day(13)},
		{ID: "quest-2", Title: "Map the moor", Type: model.QuestTypeGPS, Difficulty: model.QuestDifficultyHard, Status: model.QuestStatusDraft},
	}
}

func newSeededServer(t *testing.T) *webTestServer {
	return newWebTestServer(t, seedRockQuest)
}

// Dashboard

func TestDashboardCards(t *testing.T) {
	ts := newSeededServer(t)
	doc := ts.page("/")

	assert.Equal(t, 8, doc.Find(".cards a.stat").Length())
	assertContainsText(t, doc, "a.stat[href='/users'] .stat-count", "3")
	assertContainsText(t, doc, "a.stat[href='/moderation?tab=reports']", "Total Reports")
	assertContainsText(t, doc, "a.stat[href='/distribution']", "Rock Distributions")
	assertContainsElement(t, doc, "nav.sidebar a.active[href='/']")
}

func TestDashboardLoadFailureShowsBanner(t *testing.T) {
	ts := newSeededServer(t)
	ts.backend.Fail(http.MethodGet, "/admin/dashboard", http.StatusInternalServerError, "Counts unavailable")

	doc := ts.page("/")

	assertContainsText(t, doc, ".banner-error", "Counts unavailable")
	assertNotContainsElement(t, doc, "a.stat")
}

// Users

func TestUsersListAndFilters(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/users")
	assert.Equal(t, []string{"u1", "u2", "u3"}, rowIDs(doc, "#users tbody tr"))
	assertContainsText(t, doc, "#users tr[data-id='u1']", "Active")
	assertContainsText(t, doc, "#users tr[data-id='u3']", "Suspended")

	doc = ts.page("/users?search=ANNING")
	assert.Equal(t, []string{"u2"}, rowIDs(doc, "#users tbody tr"))
	assertContainsElement(t, doc, "input[name='search'][value='ANNING']")

	doc = ts.page("/users?role=player&status=suspended")
	assert.Equal(t, []string{"u3"}, rowIDs(doc, "#users tbody tr"))
	assertContainsElement(t, doc, "select[name='role'] option[value='player'][selected]")

	doc = ts.page("/users?search=nobody")
	assertContainsText(t, doc, ".empty", "No users found")
}

func TestUsersMarkupIsEscaped(t *testing.T) {
	ts := newSeededServer(t)
	doc := ts.page("/users")

	assertContainsText(t, doc, "#users tr[data-id='u3']", "<b>Mallory</b>")
	assertNotContainsElement(t, doc, "#users b")
}

func TestUsersToggleSuspension(t *testing.T) {
	ts := newSeededServer(t)
	doc := ts.page("/users?status=active")

	assertContainsElement(t, doc, "form[action='/users/u1/suspension'] input[name='status'][value='Active']")
	assertContainsElement(t, doc, "form[action='/users/u1/suspension'][hx-confirm]")

	doc = ts.submit("/users/u1/suspension", url.Values{"status": {"Active"}, "return": {"/users?status=active"}})

	assert.Equal(t, 1, ts.backend.Count(http.MethodPut, "/admin/suspend-user/u1"))
	assertContainsText(t, doc, ".flash-success", "User suspended")
	assert.Equal(t, []string{"u2"}, rowIDs(doc, "#users tbody tr"))

	doc = ts.submit("/users/u3/suspension", url.Values{"status": {"Suspended"}, "return": {"/users"}})
	assert.Equal(t, 1, ts.backend.Count(http.MethodPut, "/admin/unsuspend-user/u3"))
	assertContainsText(t, doc, ".flash-success", "User reinstated")
}

func TestUsersToggleFailureFlashesError(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/users/missing/suspension", url.Values{"status": {"Active"}, "return": {"/users"}})

	assertContainsText(t, doc, ".flash-error", "Not found")
}

func TestMutationIgnoresOffsiteReturn(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	rr := ts.post("/users/u1/suspension", url.Values{"status": {"Active"}, "return": {"//evil.example/users"}})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/users", rr.Header().Get("Location"))
}

func TestMutationHTMXRedirect(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	rr := ts.postHTMX("/users/u1/suspension", url.Values{"status": {"Active"}, "return": {"/users"}})

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "/users", rr.Header().Get("HX-Redirect"))
}

// Moderation

func TestModerationPendingPosts(t *testing.T) {
	ts := newSeededServer(t)
	doc := ts.page("/moderation")

	assert.Equal(t, []string{"rp-pending"}, rowIDs(doc, "#posts article"))
	assertContainsText(t, doc, "article[data-id='rp-pending'] .username", "Ada Lovelace")
	assertContainsText(t, doc, "article[data-id='rp-pending'] .badge", "87% confidence")
	assertContainsElement(t, doc, "form[action='/moderation/posts/rp-pending/approve']")
	assertContainsElement(t, doc, "form[action='/moderation/posts/rp-pending/reject'] input[name='reason']")
	assertContainsElement(t, doc, "a.tab.active[href='/moderation?tab=posts']")

	assert.Equal(t, 1, ts.backend.Count(http.MethodGet, "/admin/review"))
	assert.Equal(t, 1, ts.backend.Count(http.MethodGet, "/admin/reports"))
	assert.Equal(t, 1, ts.backend.Count(http.MethodGet, "/admin/users"))
	assert.Equal(t, 1, ts.backend.Count(http.MethodGet, "/admin/spawns"))
}

func TestModerationRejectedPostsShowUnknownUser(t *testing.T) {
	ts := newSeededServer(t)
	doc := ts.page("/moderation?tab=posts&filter=rejected")

	assert.Equal(t, []string{"rp-rejected"}, rowIDs(doc, "#posts article"))
	assertContainsText(t, doc, "article[data-id='rp-rejected'] .username", "Unknown User")
	assertContainsText(t, doc, "article[data-id='rp-rejected'] .reason", "Blurry photo")
	assertContainsElement(t, doc, "form[action='/moderation/posts/rp-rejected/toggle']")
}

func TestModerationApprovePost(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/moderation/posts/rp-pending/approve", url.Values{"return": {"/moderation?tab=posts&filter=pending"}})

	assertContainsText(t, doc, ".flash-success", "Post approved")
	assertContainsText(t, doc, ".empty", "No posts to review")

	req, ok := ts.backend.LastRequest(http.MethodPost, "/admin/verify-rock/rp-pending")
	require.True(t, ok)
	assert.Equal(t, "approve", req.Body["action"])
}

func TestModerationRejectRequiresReason(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/moderation/posts/rp-pending/reject", url.Values{"reason": {"   "}, "return": {"/moderation"}})

	assertContainsText(t, doc, ".flash-error", "Please provide a reason for rejection")
	assert.Equal(t, 0, ts.backend.Count(http.MethodPost, "/admin/verify-rock/rp-pending"))
	assert.Equal(t, []string{"rp-pending"}, rowIDs(doc, "#posts article"))
}

func TestModerationRejectPost(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/moderation/posts/rp-pending/reject", url.Values{"reason": {"Not a rock"}, "return": {"/moderation?filter=rejected"}})

	assertContainsText(t, doc, ".flash-success", "Post rejected")
	assert.ElementsMatch(t, []string{"rp-pending", "rp-rejected"}, rowIDs(doc, "#posts article"))

	req, ok := ts.backend.LastRequest(http.MethodPost, "/admin/verify-rock/rp-pending")
	require.True(t, ok)
	assert.Equal(t, "reject", req.Body["action"])
	assert.Equal(t, "Not a rock", req.Body["reason"])
}

func TestModerationTogglePost(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/moderation/posts/rp-rejected/toggle", url.Values{"return": {"/moderation?filter=approved"}})

	assertContainsText(t, doc, ".flash-success", "Post decision changed")
	assert.ElementsMatch(t, []string{"rp-approved", "rp-rejected"}, rowIDs(doc, "#posts article"))
}

func TestModerationTogglePendingPostFails(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/moderation/posts/rp-pending/toggle", url.Values{"return": {"/moderation"}})

	assertContainsText(t, doc, ".flash-error", "This post has not been reviewed yet")
	assert.Equal(t, 0, ts.backend.Count(http.MethodPost, "/admin/verify-rock/rp-pending"))
}

func TestModerationReports(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/moderation?tab=reports")
	assert.Equal(t, []string{"rep-1"}, rowIDs(doc, "#reports tbody tr"))
	assertContainsText(t, doc, "#reports tr[data-id='rep-1'] .username", "Mary Anning")
	assertContainsElement(t, doc, "a.tab.active[href='/moderation?tab=reports']")

	doc = ts.submit("/moderation/reports/rep-1/reject", url.Values{"return": {"/moderation?tab=reports&filter=reject"}})
	assertContainsText(t, doc, ".flash-success", "Report rejected")
	assert.Equal(t, []string{"rep-1"}, rowIDs(doc, "#reports tbody tr"))
	assertContainsText(t, doc, "#reports tr[data-id='rep-1'] button", "Change to Approved")

	req, ok := ts.backend.LastRequest(http.MethodPost, "/admin/review-report/rep-1")
	require.True(t, ok)
	assert.Equal(t, "reject", req.Body["action"])
}

func TestModerationToggleReport(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/moderation/reports/rep-2/toggle", url.Values{"return": {"/moderation?tab=reports&filter=reject"}})

	assertContainsText(t, doc, ".flash-success", "Report decision changed")
	assert.Equal(t, []string{"rep-2"}, rowIDs(doc, "#reports tbody tr"))
}

func TestModerationLoadFailure(t *testing.T) {
	ts := newSeededServer(t)
	ts.backend.Fail(http.MethodGet, "/admin/spawns", http.StatusBadGateway, "Spawn service down")

	doc := ts.page("/moderation")

	assertContainsText(t, doc, ".banner-error", "Spawn service down")
	assertNotContainsElement(t, doc, "#posts")
}

// Posts

func TestPostsListAndDelete(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/posts")
	assert.Equal(t, []string{"post-1", "post-2"}, rowIDs(doc, "#posts article"))
	assertContainsText(t, doc, "article[data-id='post-1'] .creator", "Ada Lovelace (player)")
	assertContainsText(t, doc, "article[data-id='post-2'] .creator", "Unknown (N/A)")
	assertContainsElement(t, doc, "form[action='/posts/post-1/delete'][hx-confirm='Are you sure you want to delete this post?']")

	doc = ts.submit("/posts/post-1/delete", url.Values{"return": {"/posts"}})

	assertContainsText(t, doc, ".flash-success", "Post deleted")
	assert.Equal(t, []string{"post-2"}, rowIDs(doc, "#posts article"))
}

func TestPostsDeleteFailure(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()
	ts.backend.Fail(http.MethodDelete, "/admin/delete-post/post-1", http.StatusInternalServerError, "Storage offline")

	doc := ts.submit("/posts/post-1/delete", url.Values{"return": {"/posts"}})

	assertContainsText(t, doc, ".flash-error", "Storage offline")
	assert.Equal(t, []string{"post-1", "post-2"}, rowIDs(doc, "#posts article"))
}

func TestImageURLsAreSanitized(t *testing.T) {
	ts := newWebTestServer(t, func(b *testutil.FakeBackend) {
		seedRockQuest(b)
		b.Posts[0].ImageURL = "javascript:alert(1)"
		b.Posts[1].ImageURL = "https://cdn.rockquest.test/marble.jpg"
		b.ReviewPosts[0].Image = "javascript:alert(2)"
	})

	doc := ts.page("/posts")
	assert.Equal(t, "about:invalid#TemplFailedSanitizationURL", doc.Find("article[data-id='post-1'] img").AttrOr("src", ""))
	assert.Equal(t, "https://cdn.rockquest.test/marble.jpg", doc.Find("article[data-id='post-2'] img").AttrOr("src", ""))

	doc = ts.page("/moderation")
	assert.Equal(t, "about:invalid#TemplFailedSanitizationURL", doc.Find("article[data-id='rp-pending'] img").AttrOr("src", ""))
}

// Announcements

func TestAnnouncementsCreate(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/announcements")
	assertContainsElement(t, doc, "form[action='/announcements'] input[name='title']")
	assertContainsElement(t, doc, "select[name='type'] option[value='maintenance']")

	doc = ts.submit("/announcements", url.Values{
		"title":       {"Server maintenance"},
		"description": {"Downtime on Sunday"},
		"type":        {"maintenance"},
		"publishDate": {"2025-09-01"},
		"return":      {"/announcements"},
	})

	assertContainsText(t, doc, ".flash-success", "Announcement created")
	assert.Equal(t, []string{"ann-1", "1704110400000"}, rowIDs(doc, "#announcements article"))

	req, ok := ts.backend.LastRequest(http.MethodPost, "/admin/announcements")
	require.True(t, ok)
	assert.Equal(t, "1704110400000", req.Body["announcementId"])
	assert.Equal(t, true, req.Body["isVisible"])
	assert.Equal(t, false, req.Body["pinned"])
	assert.Equal(t, "", req.Body["imageUrl"])
}

func TestAnnouncementsCreateValidation(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/announcements", url.Values{"title": {""}, "type": {"gossip"}, "return": {"/announcements"}})

	assertContainsText(t, doc, ".flash-error", "Title is required")
	assertContainsText(t, doc, ".flash-error", "Type must be update, feature, maintenance or event")
	assert.Equal(t, 0, ts.backend.Count(http.MethodPost, "/admin/announcements"))
}

func TestAnnouncementsEditAndSearch(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/announcements?edit=ann-1")
	assertContainsElement(t, doc, "form[action='/announcements/ann-1'] input[name='title'][value='Winter update']")
	assertContainsElement(t, doc, "form[action='/announcements/ann-1'] input[name='publishDate'][value='2025-08-09']")

	doc = ts.submit("/announcements/ann-1", url.Values{
		"title":       {"Spring update"},
		"description": {"New quests"},
		"type":        {"feature"},
		"publishDate": {"2025-08-09"},
		"return":      {"/announcements"},
	})
	assertContainsText(t, doc, ".flash-success", "Announcement updated")
	assertContainsText(t, doc, "article[data-id='ann-1'] h3", "Spring update")

	doc = ts.page("/announcements?search=winter")
	assertContainsText(t, doc, ".empty", "No announcements found")
}

func TestAnnouncementsDelete(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/announcements/ann-1/delete", url.Values{"return": {"/announcements"}})

	assertContainsText(t, doc, ".flash-success", "Announcement deleted")
	assertNotContainsElement(t, doc, "#announcements")
}

// Facts

func TestFactsListSearchAndDelete(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/facts")
	assert.Equal(t, []string{"fact-1", "fact-2"}, rowIDs(doc, "#facts article"))
	assertContainsText(t, doc, "article[data-id='fact-2'] .author", "Unknown")
	assertContainsText(t, doc, "article[data-id='fact-2'] .meta", "(Geologist)")

	doc = ts.page("/facts?search=anning")
	assert.Equal(t, []string{"fact-1"}, rowIDs(doc, "#facts article"))

	doc = ts.submit("/facts/fact-1/delete", url.Values{"return": {"/facts"}})
	assertContainsText(t, doc, ".flash-success", "Fact deleted")
	assert.Equal(t, []string{"fact-2"}, rowIDs(doc, "#facts article"))
}

func TestFactsLoadFailure(t *testing.T) {
	ts := newSeededServer(t)
	ts.backend.Fail(http.MethodGet, "/admin/facts", http.StatusInternalServerError, "Firestore unavailable")

	doc := ts.page("/facts")

	assertContainsText(t, doc, ".banner-error", "Firestore unavailable")
}

// Rocks

func TestRocksFilterAndCreate(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/rocks?type=sedimentary")
	assert.Equal(t, []string{"rock-2"}, rowIDs(doc, "#rocks tbody tr"))

	doc = ts.page("/rocks?search=gran")
	assert.Equal(t, []string{"rock-1"}, rowIDs(doc, "#rocks tbody tr"))

	doc = ts.submit("/rocks", url.Values{
		"name":        {"Gneiss"},
		"type":        {"metamorphic"},
		"description": {"Banded"},
		"return":      {"/rocks"},
	})
	assertContainsText(t, doc, ".flash-success", "Rock added")
	assert.Equal(t, []string{"rock-1", "rock-2", "rock-new-1"}, rowIDs(doc, "#rocks tbody tr"))
}

func TestRocksCreateValidation(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/rocks", url.Values{"name": {"Mystery"}, "type": {"lunar"}, "return": {"/rocks"}})

	assertContainsText(t, doc, ".flash-error", "Rock type must be igneous, sedimentary or metamorphic")
	assert.Equal(t, 0, ts.backend.Count(http.MethodPost, "/admin/rocks"))
}

func TestRocksEditUpdateDelete(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/rocks?edit=rock-1")
	assertContainsElement(t, doc, "form[action='/rocks/rock-1'] input[name='name'][value='Granite']")
	assertContainsElement(t, doc, "form[action='/rocks/rock-1'] input[name='return'][value='/rocks']")
	assertContainsElement(t, doc, "form[action='/rocks/rock-1'] select[name='type'] option[value='igneous'][selected]")

	doc = ts.submit("/rocks/rock-1", url.Values{"name": {"Pink Granite"}, "type": {"igneous"}, "return": {"/rocks"}})
	assertContainsText(t, doc, ".flash-success", "Rock updated")
	assertContainsText(t, doc, "#rocks tr[data-id='rock-1']", "Pink Granite")

	doc = ts.submit("/rocks/rock-2/delete", url.Values{"return": {"/rocks"}})
	assertContainsText(t, doc, ".flash-success", "Rock deleted")
	assert.Equal(t, []string{"rock-1"}, rowIDs(doc, "#rocks tbody tr"))
}

// Quests

func TestQuestsFilterCreateDelete(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/quests?status=draft")
	assert.Equal(t, []string{"quest-2"}, rowIDs(doc, "#quests tbody tr"))

	doc = ts.submit("/quests", url.Values{
		"title":      {"Identify basalt"},
		"type":       {"identification"},
		"difficulty": {"medium"},
		"reward":     {"50 XP"},
		"location":   {"Giant's Causeway"},
		"status":     {""},
		"return":     {"/quests?status=draft"},
	})
	assertContainsText(t, doc, ".flash-success", "Quest created")
	assert.Equal(t, []string{"quest-2", "quest-new-1"}, rowIDs(doc, "#quests tbody tr"))

	req, ok := ts.backend.LastRequest(http.MethodPost, "/admin/quests")
	require.True(t, ok)
	assert.Equal(t, "draft", req.Body["status"])

	doc = ts.submit("/quests/quest-2/delete", url.Values{"return": {"/quests"}})
	assertContainsText(t, doc, ".flash-success", "Quest deleted")
	assert.Equal(t, []string{"quest-1", "quest-new-1"}, rowIDs(doc, "#quests tbody tr"))
}

func TestQuestsUpdateValidation(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/quests/quest-1", url.Values{"title": {"Find a geode"}, "type": {"collection"}, "difficulty": {"impossible"}, "return": {"/quests"}})

	assertContainsText(t, doc, ".flash-error", "Difficulty must be easy, medium or hard")
	assert.Equal(t, 0, ts.backend.Count(http.MethodPut, "/admin/quests/quest-1"))
}

// Distribution

func TestDistributionFilter(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/distribution?status=pendingreview")
	assert.Equal(t, []string{"sp-2"}, rowIDs(doc, "#spawns tbody tr"))
	assertContainsText(t, doc, "#spawns tr[data-id='sp-2']", "Pending Review")

	doc = ts.page("/distribution?search=dartmoor")
	assert.Equal(t, []string{"sp-1"}, rowIDs(doc, "#spawns tbody tr"))
	assertContainsText(t, doc, "#spawns tr[data-id='sp-1']", "50.57, -3.92")
}

func TestDistributionCreate(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/distribution", url.Values{
		"rockType":  {"Chalk"},
		"location":  {"Seven Sisters"},
		"latitude":  {"50.74"},
		"longitude": {"0.16"},
		"status":    {"active"},
		"return":    {"/distribution"},
	})

	assertContainsText(t, doc, ".flash-success", "Distribution point added")
	assert.Equal(t, []string{"sp-1", "sp-2", "spawn-new-1"}, rowIDs(doc, "#spawns tbody tr"))

	req, ok := ts.backend.LastRequest(http.MethodPost, "/admin/spawns")
	require.True(t, ok)
	assert.InDelta(t, 50.74, req.Body["latitude"], 1e-9)
}

func TestDistributionCreateRejectsBadCoordinates(t *testing.T) {
	ts := newSeededServer(t)
	ts.login()

	doc := ts.submit("/distribution", url.Values{
		"rockType":  {"Chalk"},
		"latitude":  {"north"},
		"longitude": {"200"},
		"return":    {"/distribution"},
	})

	assertContainsText(t, doc, ".flash-error", "Latitude must be a number")
	assert.Equal(t, 0, ts.backend.Count(http.MethodPost, "/admin/spawns"))

	doc = ts.submit("/distribution", url.Values{
		"rockType":  {"Chalk"},
		"latitude":  {"10"},
		"longitude": {"200"},
		"return":    {"/distribution"},
	})
	assertContainsText(t, doc, ".flash-error", "Longitude must be between -180 and 180")
	assert.Equal(t, 0, ts.backend.Count(http.MethodPost, "/admin/spawns"))
}

func TestDistributionEditAndDelete(t *testing.T) {
	ts := newSeededServer(t)

	doc := ts.page("/distribution?edit=sp-1")
	assertContainsElement(t, doc, "form[action='/distribution/sp-1'] input[name='latitude'][value='50.57']")

	doc = ts.submit("/distribution/sp-1", url.Values{
		"rockType":  {"Granite"},
		"location":  {"Dartmoor"},
		"latitude":  {"50.6"},
		"longitude": {"-3.9"},
		"status":    {"pending review"},
		"return":    {"/distribution?status=pendingreview"},
	})
	assertContainsText(t, doc, ".flash-success", "Distribution point updated")
	assert.Equal(t, []string{"sp-1", "sp-2"}, rowIDs(doc, "#spawns tbody tr"))

	doc = ts.submit("/distribution/sp-2/delete", url.Values{"return": {"/distribution"}})
	assertContainsText(t, doc, ".flash-success", "Distribution point deleted")
	assert.Equal(t, []string{"sp-1"}, rowIDs(doc, "#spawns tbody tr"))
}
