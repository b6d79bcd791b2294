package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/testutil"
)

func TestCards(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.Counts = model.DashboardCounts{
		TotalUsers:             12,
		TotalPosts:             30,
		TotalReports:           4,
		TotalQuests:            6,
		TotalRocks:             50,
		TotalRockDistributions: 75,
		TotalAnnouncements:     3,
		TotalFacts:             9,
	}
	client := backend.NewClient(backend.Config{BaseURL: fake.URL()}, testutil.NopLogger())
	svc := New(backend.NewAPI(client.WithTokenSource(backend.StaticToken(testutil.AdminToken))))

	cards, err := svc.Cards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 8)

	assert.Equal(t, Card{Title: "Total Users", Count: 12, Path: "/users"}, cards[0])
	assert.Equal(t, 75, cards[5].Count)
	assert.Equal(t, "/facts", cards[7].Path)
}

func TestCardsError(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	fake.Fail("GET", "/admin/dashboard", 500, "down")
	client := backend.NewClient(backend.Config{BaseURL: fake.URL()}, testutil.NopLogger())
	svc := New(backend.NewAPI(client.WithTokenSource(backend.StaticToken(testutil.AdminToken))))

	_, err := svc.Cards(context.Background())
	assert.Error(t, err)
}
