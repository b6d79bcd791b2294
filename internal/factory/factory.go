package factory

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/config"
	"github.com/mcoot/rockquest-admin/internal/dependencies/clock"
	"github.com/mcoot/rockquest-admin/internal/services/auth"
	"github.com/mcoot/rockquest-admin/internal/storage"
	"github.com/mcoot/rockquest-admin/internal/storage/memory"
	redisstorage "github.com/mcoot/rockquest-admin/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = config.SessionStoreMemory
	StorageTypeRedis  = config.SessionStoreRedis
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Client *backend.Client

	// Services
	AuthService *auth.Service

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Backend points at the RockQuest admin API
	// If zero value, defaults to backend.DefaultConfig()
	Backend backend.Config
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the session store ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// ConfigFrom maps the server configuration onto the factory configuration
func ConfigFrom(cfg *config.Config, logger *slog.Logger) Config {
	out := Config{
		Backend: backend.Config{
			BaseURL: cfg.Backend.URL,
			Timeout: cfg.Backend.Timeout,
		},
		AuthConfig: auth.Config{
			SessionDuration: cfg.Session.TTL,
			Secret:          cfg.Session.Secret,
		},
		Logger:      logger,
		StorageType: cfg.Session.Store,
	}
	if cfg.Session.Store == config.SessionStoreRedis {
		out.RedisConfig = &redisstorage.Config{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			KeyPrefix:    cfg.Redis.KeyPrefix,
		}
	}
	return out
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	clk := clock.New()

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, clk)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	backendCfg := cfg.Backend
	if backendCfg.BaseURL == "" {
		backendCfg.BaseURL = backend.DefaultConfig().BaseURL
	}

	return newWithDependencies(store, clk, backend.NewClient(backendCfg, logger), cfg.AuthConfig, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, client *backend.Client, authCfg auth.Config, logger *slog.Logger) (*App, error) {
	if authCfg.SessionDuration == 0 {
		authCfg.SessionDuration = auth.DefaultConfig().SessionDuration
	}

	authService, err := auth.New(store, clk, client, logger, authCfg)
	if err != nil {
		return nil, err
	}

	return &App{
		Storage:     store,
		Clock:       clk,
		Client:      client,
		AuthService: authService,
		logger:      logger,
	}, nil
}

// SweepSessions removes expired sessions from an in-memory store every
// interval until ctx is done. Redis expires sessions itself, so this returns
// immediately for it.
func (a *App) SweepSessions(ctx context.Context, interval time.Duration) {
	store, ok := a.Storage.(*memory.Storage)
	if !ok || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.DeleteExpired(a.Clock.Now()); n > 0 {
				a.logger.Debug("swept expired sessions", slog.Int("count", n))
			}
		}
	}
}

// Close releases the session store's connections
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
