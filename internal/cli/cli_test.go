package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/rockquest-admin/internal/dependencies/mocks"
	"github.com/mcoot/rockquest-admin/internal/guard"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	backend   *testutil.FakeBackend
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

type result struct {
	stdout string
	stderr string
	err    error
}

func (s *CLISuite) SetupTest() {
	s.T().Setenv("RQADMIN_TOKEN", "")
	s.T().Setenv("RQADMIN_PASSWORD", "")

	s.backend = testutil.NewFakeBackend(s.T())
	s.backend.Users = []model.User{
		{ID: "u1", Name: "Ada Lovelace", Email: "ada@rockquest.test", Role: model.UserRolePlayer, Active: true, JoinDate: "2025-01-02"},
		{ID: "u2", Name: "Mary Anning", Email: "mary@rockquest.test", Role: model.UserRoleGeologist, Active: false, JoinDate: "N/A"},
	}
	s.backend.ReviewPosts = []model.ReviewPost{
		{ID: "rp-1", RockName: "Granite", CreatedBy: "u1"},
		{ID: "rp-2", RockName: "Basalt", CreatedBy: "ghost", Verified: true},
	}
	s.backend.Reports = []model.Report{
		{ID: "rep-1", ReportedBy: "u2", ReportedItemType: "post", ReportedID: "post-1", Reason: "Spam", Status: model.ReportStatusPending},
	}
	s.backend.Spawns = []model.Spawn{
		{ID: "sp-1", RockID: "rp-1", RockType: "Granite", Location: "Dartmoor", Latitude: 50.57, Longitude: -3.92, Status: "active", Confidence: 0.9},
	}
	s.backend.Rocks = []model.Rock{
		{ID: "rock-1", Name: "Granite", Type: model.RockTypeIgneous, Description: "Coarse grained"},
	}
	s.backend.Quests = []model.Quest{
		{ID: "quest-1", Title: "Find a geode", Type: model.QuestTypeCollection, Difficulty: model.QuestDifficultyEasy, Status: model.QuestStatusActive},
	}
	s.backend.Announcements = []model.Announcement{
		{ID: "ann-1", Title: "Winter update", Type: model.AnnouncementUpdate},
	}

	s.tokenFile = filepath.Join(s.T().TempDir(), "rqadmin", "token")
	clk = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}

// run executes rqadmin against the fake backend
func (s *CLISuite) run(stdin string, args ...string) result {
	root := NewRootCmd()
	root.SetArgs(append([]string{"--server", s.backend.URL(), "--token-file", s.tokenFile}, args...))

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))

	err := root.Execute()
	if err != nil {
		NewOutput(root).PrintError(err)
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func (s *CLISuite) login() {
	s.Require().NoError(os.MkdirAll(filepath.Dir(s.tokenFile), 0700))
	s.Require().NoError(os.WriteFile(s.tokenFile, []byte(testutil.AdminToken), 0600))
}

func (s *CLISuite) TestLoginSavesToken() {
	res := s.run("", "login", "--email", testutil.AdminEmail, "--password", testutil.AdminPassword)

	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Logged in as "+testutil.AdminEmail)

	data, err := os.ReadFile(s.tokenFile)
	s.Require().NoError(err)
	s.Equal(testutil.AdminToken, string(data))

	info, err := os.Stat(s.tokenFile)
	s.Require().NoError(err)
	s.Equal(os.FileMode(0600), info.Mode().Perm())
}

func (s *CLISuite) TestLoginReadsPasswordFromStdin() {
	res := s.run(testutil.AdminPassword+"\n", "login", "--email", testutil.AdminEmail)

	s.Require().NoError(res.err)
	s.Contains(res.stderr, "Password: ")
	s.FileExists(s.tokenFile)
}

func (s *CLISuite) TestLoginWrongPassword() {
	res := s.run("", "login", "--email", testutil.AdminEmail, "--password", "marble")

	s.Require().Error(res.err)
	s.Contains(res.stderr, "Error: Invalid credentials")
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestLoginRefusesExpiredToken() {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": clk.Now().Add(-time.Hour).Unix()})
	token, err := expired.SignedString([]byte("backend-key"))
	s.Require().NoError(err)
	s.backend.SetLoginBody(map[string]any{"token": token})

	res := s.run("", "login", "--email", testutil.AdminEmail, "--password", testutil.AdminPassword)

	s.Require().ErrorIs(res.err, model.ErrTokenExpired)
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestLoginWithoutToken() {
	s.backend.SetLoginBody(map[string]any{"user": "admin"})

	res := s.run("", "login", "--email", testutil.AdminEmail, "--password", testutil.AdminPassword)

	s.Require().ErrorIs(res.err, model.ErrTokenNotReturned)
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestLogoutRemovesToken() {
	s.login()

	res := s.run("", "logout")

	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Logged out")
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestCommandsWithoutTokenMakeNoRequests() {
	for _, args := range [][]string{
		{"dashboard"},
		{"users", "list"},
		{"moderation", "posts"},
		{"rocks", "delete", "rock-1", "--yes"},
	} {
		res := s.run("", args...)

		s.Require().ErrorIs(res.err, guard.ErrLoginRequired, "%v", args)
		s.Contains(res.stderr, "not logged in")
	}
	s.Empty(s.backend.Requests())
}

func (s *CLISuite) TestRejectedTokenIsRemoved() {
	s.login()
	s.backend.SetToken("rotated")

	res := s.run("", "users", "list")

	s.Require().ErrorIs(res.err, guard.ErrLoginRequired)
	s.Contains(res.stderr, "the server rejected your token")
	s.NoFileExists(s.tokenFile)
}

func (s *CLISuite) TestTokenFlagOverridesFile() {
	res := s.run("", "--token", testutil.AdminToken, "dashboard")

	s.Require().NoError(res.err)
	req, ok := s.backend.LastRequest(http.MethodGet, "/admin/dashboard")
	s.Require().True(ok)
	s.Equal("Bearer "+testutil.AdminToken, req.Authorization)
}

func (s *CLISuite) TestWhoamiReadsClaims() {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   "admin-1",
		"email": testutil.AdminEmail,
		"exp":   time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC).Unix(),
	}).SignedString([]byte("backend-key"))
	s.Require().NoError(err)

	res := s.run("", "--token", token, "whoami")

	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Email: "+testutil.AdminEmail)
	s.Contains(res.stdout, "Subject: admin-1")
	s.Contains(res.stdout, "Expires: 02/01/2030")
}

func (s *CLISuite) TestWhoamiOpaqueToken() {
	s.login()

	res := s.run("", "whoami")

	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Logged in (opaque token)")
}

func (s *CLISuite) TestDashboardJSON() {
	s.login()
	s.backend.Counts = model.DashboardCounts{TotalUsers: 2, TotalFacts: 7}

	res := s.run("", "-o", "json", "dashboard")

	s.Require().NoError(res.err)
	var cards []struct {
		Title string
		Count int
		Path  string
	}
	s.Require().NoError(json.Unmarshal([]byte(res.stdout), &cards))
	s.Require().Len(cards, 8)
	s.Equal("Total Users", cards[0].Title)
	s.Equal(2, cards[0].Count)
	s.Equal(7, cards[7].Count)
}

func (s *CLISuite) TestUsersListFilters() {
	s.login()

	res := s.run("", "users", "list", "--status", "suspended")

	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Mary Anning")
	s.NotContains(res.stdout, "Ada Lovelace")
	s.Contains(res.stdout, "STATUS")
}

func (s *CLISuite) TestUsersSuspendAsksFirst() {
	s.login()

	res := s.run("n\n", "users", "suspend", "u1")
	s.Require().ErrorIs(res.err, errAborted)
	s.Equal(0, s.backend.Count(http.MethodPut, "/admin/suspend-user/u1"))

	res = s.run("y\n", "users", "suspend", "u1")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "User suspended")
	s.Equal(1, s.backend.Count(http.MethodPut, "/admin/suspend-user/u1"))

	res = s.run("", "users", "unsuspend", "u2")
	s.Require().NoError(res.err)
	s.Equal(1, s.backend.Count(http.MethodPut, "/admin/unsuspend-user/u2"))
}

func (s *CLISuite) TestModerationPosts() {
	s.login()

	res := s.run("", "moderation", "posts")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "rp-1")
	s.Contains(res.stdout, "Ada Lovelace")
	s.Contains(res.stdout, "90%")
	s.NotContains(res.stdout, "rp-2")

	res = s.run("", "moderation", "posts", "--state", "approved", "-o", "json")
	s.Require().NoError(res.err)
	var items []map[string]any
	s.Require().NoError(json.Unmarshal([]byte(res.stdout), &items))
	s.Require().Len(items, 1)
	s.Equal("rp-2", items[0]["id"])
	s.Equal("Unknown User", items[0]["username"])

	res = s.run("", "moderation", "posts", "--state", "lost")
	s.Require().Error(res.err)
}

func (s *CLISuite) TestModerationRejectNeedsReason() {
	s.login()

	res := s.run("", "moderation", "reject", "rp-1", "--yes")

	s.Require().ErrorIs(res.err, model.ErrReasonRequired)
	s.Contains(res.stderr, "--reason")
	s.Equal(0, s.backend.Count(http.MethodPost, "/admin/verify-rock/rp-1"))
}

func (s *CLISuite) TestModerationApproveAndReject() {
	s.login()

	res := s.run("", "moderation", "reject", "rp-1", "--reason", "Blurry", "--yes")
	s.Require().NoError(res.err)
	req, ok := s.backend.LastRequest(http.MethodPost, "/admin/verify-rock/rp-1")
	s.Require().True(ok)
	s.Equal("reject", req.Body["action"])
	s.Equal("Blurry", req.Body["reason"])

	res = s.run("", "moderation", "toggle", "rp-1", "--yes")
	s.Require().NoError(res.err)
	req, ok = s.backend.LastRequest(http.MethodPost, "/admin/verify-rock/rp-1")
	s.Require().True(ok)
	s.Equal("approve", req.Body["action"])
}

func (s *CLISuite) TestModerationReports() {
	s.login()

	res := s.run("", "moderation", "reports")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Mary Anning")
	s.Contains(res.stdout, "post post-1")

	res = s.run("", "moderation", "review", "rep-1", "approve")
	s.Require().NoError(res.err)
	req, ok := s.backend.LastRequest(http.MethodPost, "/admin/review-report/rep-1")
	s.Require().True(ok)
	s.Equal("approve", req.Body["action"])

	res = s.run("", "moderation", "review", "rep-1", "escalate")
	s.Require().Error(res.err)
}

func (s *CLISuite) TestRocksCreateValidation() {
	s.login()

	res := s.run("", "rocks", "create", "--name", "Moonstone", "--type", "lunar")

	s.Require().Error(res.err)
	s.Contains(res.stderr, "Rock type must be igneous, sedimentary or metamorphic")
	s.Equal(0, s.backend.Count(http.MethodPost, "/admin/rocks"))
}

func (s *CLISuite) TestRocksUpdateKeepsUnsetFields() {
	s.login()

	res := s.run("", "rocks", "update", "rock-1", "--name", "Pink Granite")

	s.Require().NoError(res.err)
	req, ok := s.backend.LastRequest(http.MethodPut, "/admin/rocks/rock-1")
	s.Require().True(ok)
	s.Equal("Pink Granite", req.Body["name"])
	s.Equal("igneous", req.Body["type"])
	s.Equal("Coarse grained", req.Body["description"])
}

func (s *CLISuite) TestRocksUpdateUnknown() {
	s.login()

	res := s.run("", "rocks", "update", "rock-9", "--name", "Pumice")

	s.Require().Error(res.err)
	s.Contains(res.stderr, "rock-9 not found")
}

func (s *CLISuite) TestQuestsCreateDefaults() {
	s.login()

	res := s.run("", "quests", "create", "--title", "Map the moor")

	s.Require().NoError(res.err)
	req, ok := s.backend.LastRequest(http.MethodPost, "/admin/quests")
	s.Require().True(ok)
	s.Equal("gps-based", req.Body["type"])
	s.Equal("easy", req.Body["difficulty"])
	s.Equal("draft", req.Body["status"])
}

func (s *CLISuite) TestAnnouncementsCreate() {
	s.login()

	res := s.run("", "announcements", "create", "--title", "Maintenance", "--type", "maintenance")

	s.Require().NoError(res.err)
	req, ok := s.backend.LastRequest(http.MethodPost, "/admin/announcements")
	s.Require().True(ok)
	s.Equal("1704110400000", req.Body["announcementId"])
	s.Equal("2024-01-01T12:00:00Z", req.Body["publishDate"])
	s.Equal(true, req.Body["isVisible"])
}

func (s *CLISuite) TestAnnouncementsCreateBadDate() {
	s.login()

	res := s.run("", "announcements", "create", "--title", "Maintenance", "--publish-date", "next week")

	s.Require().Error(res.err)
	s.Contains(res.stderr, "invalid publish date")
	s.Equal(0, s.backend.Count(http.MethodPost, "/admin/announcements"))
}

func (s *CLISuite) TestSpawnsCreateAndFilter() {
	s.login()

	res := s.run("", "spawns", "create", "--rock-type", "Chalk", "--lat", "50.74", "--lng", "0.16")
	s.Require().NoError(res.err)
	req, ok := s.backend.LastRequest(http.MethodPost, "/admin/spawns")
	s.Require().True(ok)
	s.Equal("pending review", req.Body["status"])

	res = s.run("", "spawns", "list", "--status", "pendingreview")
	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Chalk")
	s.NotContains(res.stdout, "Dartmoor")
}

func (s *CLISuite) TestSpawnsRejectsOutOfRangeLatitude() {
	s.login()

	res := s.run("", "spawns", "create", "--rock-type", "Chalk", "--lat", "91")

	s.Require().Error(res.err)
	s.Contains(res.stderr, "Latitude must be between -90 and 90")
}

func (s *CLISuite) TestDeleteWithYes() {
	s.login()

	res := s.run("", "quests", "delete", "quest-1", "--yes")

	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Quest deleted")
	s.Equal(1, s.backend.Count(http.MethodDelete, "/admin/quests/quest-1"))
}

func (s *CLISuite) TestDeleteSucceedsWhenReloadFails() {
	s.login()
	s.backend.Fail(http.MethodGet, "/admin/quests", http.StatusBadGateway, "")

	res := s.run("", "quests", "delete", "quest-1", "--yes")

	s.Require().NoError(res.err)
	s.Contains(res.stdout, "Quest deleted")
	s.Equal(1, s.backend.Count(http.MethodDelete, "/admin/quests/quest-1"))
}

func (s *CLISuite) TestBackendErrorMessage() {
	s.login()
	s.backend.Fail(http.MethodGet, "/admin/facts", http.StatusInternalServerError, "Firestore unavailable")

	res := s.run("", "-o", "json", "facts", "list")

	s.Require().Error(res.err)
	s.JSONEq(`{"error":{"message":"Firestore unavailable"}}`, strings.TrimSpace(res.stderr))
}

func (s *CLISuite) TestUnknownOutputFormat() {
	res := s.run("", "-o", "yaml", "logout")

	s.Require().Error(res.err)
	s.Contains(res.stderr, "unknown output format")
}
