package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenFile string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("RQADMIN_SERVER", "http://localhost:8000"),
		Token:     os.Getenv("RQADMIN_TOKEN"),
		TokenFile: getEnvOrDefault("RQADMIN_TOKEN_FILE", defaultTokenFile()),
		Output:    "text",
		Verbose:   false,
	}
}

// FileTokenStore keeps the backend token in a file between invocations. A token
// given by flag or environment takes precedence over the file.
type FileTokenStore struct {
	path     string
	override string
}

// NewFileTokenStore creates a token store for cfg
func NewFileTokenStore(cfg *Config) *FileTokenStore {
	return &FileTokenStore{path: cfg.TokenFile, override: strings.TrimSpace(cfg.Token)}
}

// Token returns the stored token, or "" if there is none
func (s *FileTokenStore) Token(context.Context) (string, error) {
	if s.override != "" {
		return s.override, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil // No token file is fine
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes token to the token file
func (s *FileTokenStore) Save(token string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0600)
}

// Clear removes the token file and forgets any override
func (s *FileTokenStore) Clear(context.Context) error {
	s.override = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rqadmin/token"
	}
	return filepath.Join(home, ".rqadmin", "token")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
