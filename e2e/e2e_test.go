package e2e_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rockquest-admin/internal/config"
	"github.com/mcoot/rockquest-admin/internal/factory"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/server"
	"github.com/mcoot/rockquest-admin/internal/testutil"
	"github.com/mcoot/rockquest-admin/internal/web"
)

// cliRunner runs a freshly built rqadmin binary
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	projectRoot := findProjectRoot(t)

	binaryPath := filepath.Join(t.TempDir(), "rqadmin")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/rqadmin")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token"),
	}
}

func (r *cliRunner) run(stdin string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	cmd.Env = append(os.Environ(), "RQADMIN_TOKEN=", "RQADMIN_PASSWORD=")
	cmd.Stdin = strings.NewReader(stdin)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

func seededBackend(t *testing.T) *testutil.FakeBackend {
	backend := testutil.NewFakeBackend(t)
	backend.Counts = model.DashboardCounts{TotalUsers: 2}
	backend.Users = []model.User{
		{ID: "u1", Name: "Ada Lovelace", Email: "ada@rockquest.test", Role: model.UserRolePlayer, Active: true},
		{ID: "u2", Name: "Mary Anning", Email: "mary@rockquest.test", Role: model.UserRoleGeologist, Active: true},
	}
	backend.Rocks = []model.Rock{
		{ID: "rock-1", Name: "Granite", Type: model.RockTypeIgneous},
	}
	return backend
}

// startDashboard runs the dashboard on a free port in front of backendURL
func startDashboard(t *testing.T, backendURL string) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Backend: config.BackendConfig{URL: backendURL, Timeout: 5 * time.Second},
		Session: config.SessionConfig{Store: config.SessionStoreMemory, TTL: time.Hour},
	}

	app, err := factory.New(factory.ConfigFrom(cfg, logger))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	router := web.NewRouter(web.RouterConfig{
		Logger:      logger,
		AuthService: app.AuthService,
		Client:      app.Client,
		Clock:       app.Clock,
		StaticDir:   filepath.Join(findProjectRoot(t), "internal/web/static"),
	})
	srv := server.New(router, cfg.Server, logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	go func() {
		if err := srv.Serve(ln); err != nil {
			t.Logf("server error: %v", err)
		}
	}()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})

	dashboardURL := "http://" + ln.Addr().String()
	waitForServer(t, dashboardURL+"/healthz")
	return dashboardURL
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

func browser(t *testing.T) *http.Client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func document(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	return doc
}

func TestCLI_LoginListAndLogout(t *testing.T) {
	backend := seededBackend(t)
	cli := newCLIRunner(t, backend.URL())

	output, err := cli.run("", "users", "list")
	require.Error(t, err)
	assert.Contains(t, output, "not logged in")

	output, err = cli.run(testutil.AdminPassword+"\n", "login", "--email", testutil.AdminEmail)
	require.NoError(t, err, "output: %s", output)
	assert.Contains(t, output, "Logged in as "+testutil.AdminEmail)

	token, err := os.ReadFile(cli.tokenFile)
	require.NoError(t, err)
	assert.Equal(t, testutil.AdminToken, strings.TrimSpace(string(token)))

	output, err = cli.run("", "rocks", "list")
	require.NoError(t, err, "output: %s", output)
	var rocks []model.Rock
	require.NoError(t, json.Unmarshal([]byte(output), &rocks))
	require.Len(t, rocks, 1)
	assert.Equal(t, "Granite", rocks[0].Name)

	output, err = cli.run("", "logout")
	require.NoError(t, err, "output: %s", output)
	_, err = os.Stat(cli.tokenFile)
	assert.True(t, os.IsNotExist(err))
}

func TestCLI_RejectedTokenIsForgotten(t *testing.T) {
	backend := seededBackend(t)
	cli := newCLIRunner(t, backend.URL())
	require.NoError(t, os.WriteFile(cli.tokenFile, []byte("stale-token\n"), 0o600))

	output, err := cli.run("", "dashboard")
	require.Error(t, err)
	assert.Contains(t, output, "rejected your token")

	_, err = os.Stat(cli.tokenFile)
	assert.True(t, os.IsNotExist(err))
}

func TestDashboard_LoginAndSuspendSeenByCLI(t *testing.T) {
	backend := seededBackend(t)
	dashboardURL := startDashboard(t, backend.URL())
	client := browser(t)

	resp, err := client.Get(dashboardURL + "/users")
	require.NoError(t, err)
	doc := document(t, resp)
	assert.Equal(t, "/login", resp.Request.URL.Path, "protected pages send visitors to the login page")
	assert.Equal(t, 1, doc.Find("form input[name=password]").Length())

	resp, err = client.PostForm(dashboardURL+"/login", url.Values{
		"email":    {testutil.AdminEmail},
		"password": {testutil.AdminPassword},
		"next":     {"/users"},
	})
	require.NoError(t, err)
	doc = document(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/users", resp.Request.URL.Path)
	assert.Contains(t, doc.Text(), "Ada Lovelace")

	resp, err = client.PostForm(dashboardURL+"/users/u1/suspension", url.Values{"status": {model.UserStatusActive}})
	require.NoError(t, err)
	doc = document(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, doc.Find(".flash-success").Text(), "User suspended")

	cli := newCLIRunner(t, backend.URL())
	output, err := cli.run(testutil.AdminPassword+"\n", "login", "--email", testutil.AdminEmail)
	require.NoError(t, err, "output: %s", output)

	output, err = cli.run("", "users", "list", "--status", "suspended")
	require.NoError(t, err, "output: %s", output)
	var users []model.User
	require.NoError(t, json.Unmarshal([]byte(output), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].ID)
}

func TestDashboard_StaticAssets(t *testing.T) {
	backend := seededBackend(t)
	dashboardURL := startDashboard(t, backend.URL())

	resp, err := http.Get(dashboardURL + "/static/css/app.css")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body)
}
