package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rockquest-admin/internal/config"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            8080,
		ReadTimeout:     time.Second,
		WriteTimeout:    time.Second,
		IdleTimeout:     time.Second,
		ShutdownTimeout: time.Second,
	}
}

func TestAddrJoinsHostAndPort(t *testing.T) {
	srv := New(http.NotFoundHandler(), testConfig(), slog.New(slog.DiscardHandler))
	assert.Equal(t, "127.0.0.1:8080", srv.Addr())

	cfg := testConfig()
	cfg.Host = "::1"
	srv = New(http.NotFoundHandler(), cfg, slog.New(slog.DiscardHandler))
	assert.Equal(t, "[::1]:8080", srv.Addr())
}

func TestServeAndShutdown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	srv := New(handler, testConfig(), slog.New(slog.DiscardHandler))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))

	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-errCh:
		assert.NoError(t, err, "a graceful shutdown is not an error")
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after Shutdown")
	}
}

func TestStartReportsListenFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testConfig()
	cfg.Port = ln.Addr().(*net.TCPAddr).Port
	srv := New(http.NotFoundHandler(), cfg, slog.New(slog.DiscardHandler))

	err = srv.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}
