package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mcoot/rockquest-admin/internal/config"
	"github.com/mcoot/rockquest-admin/internal/factory"
	"github.com/mcoot/rockquest-admin/internal/server"
	"github.com/mcoot/rockquest-admin/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := newLogger(os.Stdout, cfg.Log)
	slog.SetDefault(logger)

	app, err := factory.New(factory.ConfigFrom(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close session store", slog.String("error", err.Error()))
		}
	}()

	staticDir := cfg.Server.StaticDir
	if staticDir == "" {
		staticDir = findStaticDir()
	}

	router := web.NewRouter(web.RouterConfig{
		Logger:       logger,
		AuthService:  app.AuthService,
		Client:       app.Client,
		Clock:        app.Clock,
		StaticDir:    staticDir,
		SecureCookie: cfg.Session.SecureCookie,
	})

	srv := server.New(router, cfg.Server, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.SweepSessions(ctx, cfg.Session.SweepInterval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("dashboard started",
		slog.String("addr", srv.Addr()),
		slog.String("backend", cfg.Backend.URL),
		slog.String("session_store", cfg.Session.Store))

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("dashboard stopped")
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// findStaticDir looks for the static files directory
func findStaticDir() string {
	candidates := []string{
		"internal/web/static",
		filepath.Join(os.Getenv("PWD"), "internal/web/static"),
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return "internal/web/static"
}
