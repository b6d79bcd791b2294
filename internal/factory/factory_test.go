package factory

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rockquest-admin/internal/config"
	"github.com/mcoot/rockquest-admin/internal/model"
	redisstorage "github.com/mcoot/rockquest-admin/internal/storage/redis"
)

func TestNewDefaultsToMemoryStorage(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	_, isRedis := app.Storage.(*redisstorage.Storage)
	assert.False(t, isRedis)
	assert.Equal(t, "http://localhost:8000", app.Client.BaseURL())
}

func TestNewRejectsUnknownStorage(t *testing.T) {
	_, err := New(Config{StorageType: "sqlite"})
	assert.Error(t, err)
}

func TestNewRequiresRedisConfig(t *testing.T) {
	_, err := New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)
}

func TestNewWithRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mr.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	_, isRedis := app.Storage.(*redisstorage.Storage)
	assert.True(t, isRedis)
}

func TestConfigFrom(t *testing.T) {
	cfg := &config.Config{
		Backend: config.BackendConfig{URL: "https://api.rockquest.test", Timeout: 5 * time.Second},
		Session: config.SessionConfig{Store: config.SessionStoreRedis, TTL: time.Hour, Secret: "0123456789abcdef"},
		Redis:   config.RedisConfig{URL: "redis://cache:6379", PoolSize: 4, MinIdleConns: 1, KeyPrefix: "rq"},
	}

	out := ConfigFrom(cfg, nil)

	assert.Equal(t, "https://api.rockquest.test", out.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, out.Backend.Timeout)
	assert.Equal(t, time.Hour, out.AuthConfig.SessionDuration)
	assert.Equal(t, "0123456789abcdef", out.AuthConfig.Secret)
	assert.Equal(t, StorageTypeRedis, out.StorageType)
	require.NotNil(t, out.RedisConfig)
	assert.Equal(t, "redis://cache:6379", out.RedisConfig.URL)
	assert.Equal(t, "rq", out.RedisConfig.KeyPrefix)

	cfg.Session.Store = config.SessionStoreMemory
	assert.Nil(t, ConfigFrom(cfg, nil).RedisConfig)
}

func TestSweepSessionsRemovesExpired(t *testing.T) {
	app, err := NewTestApp("http://backend.invalid")
	require.NoError(t, err)

	now := app.MockClock.Now()
	require.NoError(t, app.Storage.SaveSession(t.Context(), &model.Session{ID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, app.Storage.SaveSession(t.Context(), &model.Session{ID: "live", ExpiresAt: now.Add(time.Hour)}))

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan struct{})
	go func() {
		app.SweepSessions(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return app.Memory.Len() == 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	_, err = app.Storage.GetSession(t.Context(), "live")
	assert.NoError(t, err)
}
