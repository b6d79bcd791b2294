package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// minSecretLength applies only when a secret is set; an empty secret means
// a random per-process key
const minSecretLength = 16

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535 (got %d)", c.Server.Port)
	}

	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend.url must be an absolute http(s) URL (got %q)", c.Backend.URL)
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend.timeout must be > 0 (got %v)", c.Backend.Timeout)
	}

	if err := c.Session.validate(); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	if c.Session.Store == SessionStoreRedis && c.Redis.URL == "" {
		return fmt.Errorf("redis.url is required when session.store is redis")
	}

	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

func (s *SessionConfig) validate() error {
	switch s.Store {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("store must be memory or redis (got %q)", s.Store)
	}
	if s.TTL <= 0 {
		return fmt.Errorf("ttl must be > 0 (got %v)", s.TTL)
	}
	if s.Secret != "" && len(s.Secret) < minSecretLength {
		return fmt.Errorf("secret must be at least %d characters (got %d)", minSecretLength, len(s.Secret))
	}
	return nil
}

func (l *LogConfig) validate() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch l.Format {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}
