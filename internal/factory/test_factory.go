package factory

import (
	"time"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/dependencies/mocks"
	"github.com/mcoot/rockquest-admin/internal/services/auth"
	"github.com/mcoot/rockquest-admin/internal/storage/memory"
	"github.com/mcoot/rockquest-admin/internal/testutil"
)

// TestSessionSecret is the session secret used by test apps
const TestSessionSecret = "test-session-secret"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock *mocks.MockClock
	Memory    *memory.Storage
}

// NewTestApp creates an App talking to backendURL, with an in-memory session
// store and a mocked clock
func NewTestApp(backendURL string) (*TestApp, error) {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	client := backend.NewClient(backend.Config{BaseURL: backendURL}, logger)
	app, err := newWithDependencies(store, mockClock, client, auth.Config{
		SessionDuration: 12 * time.Hour,
		Secret:          TestSessionSecret,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:       app,
		MockClock: mockClock,
		Memory:    store,
	}, nil
}
