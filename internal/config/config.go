package config

import (
	"log/slog"
	"strings"
	"time"
)

// Session store types
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config is the root configuration of the dashboard server.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Session SessionConfig `yaml:"session"`
	Redis   RedisConfig   `yaml:"redis"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	StaticDir       string        `yaml:"static_dir"       env:"SERVER_STATIC_DIR"`
}

// BackendConfig points the dashboard at the RockQuest admin API.
type BackendConfig struct {
	URL     string        `yaml:"url"     env:"BACKEND_URL"     env-default:"http://localhost:8000"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"30s"`
}

// SessionConfig holds dashboard session settings.
type SessionConfig struct {
	Store         string        `yaml:"store"          env:"SESSION_STORE"          env-default:"memory"`
	TTL           time.Duration `yaml:"ttl"            env:"SESSION_TTL"            env-default:"12h"`
	Secret        string        `yaml:"secret"         env:"SESSION_SECRET"`
	SecureCookie  bool          `yaml:"secure_cookie"  env:"SESSION_SECURE_COOKIE"  env-default:"false"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL" env-default:"5m"`
}

// RedisConfig holds Redis connection settings, used when Session.Store is redis.
type RedisConfig struct {
	URL          string `yaml:"url"            env:"REDIS_URL"            env-default:"redis://localhost:6379"`
	PoolSize     int    `yaml:"pool_size"      env:"REDIS_POOL_SIZE"      env-default:"10"`
	MinIdleConns int    `yaml:"min_idle_conns" env:"REDIS_MIN_IDLE_CONNS" env-default:"2"`
	KeyPrefix    string `yaml:"key_prefix"     env:"REDIS_KEY_PREFIX"     env-default:"rqadmin"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SlogLevel returns the configured level. Unknown levels have already been
// rejected by Validate.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}
