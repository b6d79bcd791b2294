package dashboard

import (
	"context"

	"github.com/mcoot/rockquest-admin/internal/backend"
)

// Card is one total on the dashboard, linking to the screen that manages it
type Card struct {
	Title string
	Count int
	Path  string
}

// Service loads the dashboard totals
type Service struct {
	api *backend.API
}

// New creates a dashboard Service
func New(api *backend.API) *Service {
	return &Service{api: api}
}

// Cards returns the eight dashboard cards in display order
func (s *Service) Cards(ctx context.Context) ([]Card, error) {
	counts, err := s.api.Dashboard(ctx)
	if err != nil {
		return nil, err
	}

	return []Card{
		{Title: "Total Users", Count: counts.TotalUsers, Path: "/users"},
		{Title: "Total Posts", Count: counts.TotalPosts, Path: "/posts"},
		{Title: "Total Reports", Count: counts.TotalReports, Path: "/moderation?tab=reports"},
		{Title: "Total Quests", Count: counts.TotalQuests, Path: "/quests"},
		{Title: "Total Rocks", Count: counts.TotalRocks, Path: "/rocks"},
		{Title: "Rock Distributions", Count: counts.TotalRockDistributions, Path: "/distribution"},
		{Title: "Announcements", Count: counts.TotalAnnouncements, Path: "/announcements"},
		{Title: "Geological Facts", Count: counts.TotalFacts, Path: "/facts"},
	}, nil
}
