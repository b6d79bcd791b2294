package model

// DashboardCounts are the totals shown on the dashboard cards
type DashboardCounts struct {
	TotalUsers             int `json:"totalUsers"`
	TotalPosts             int `json:"totalPosts"`
	TotalReports           int `json:"totalReports"`
	TotalQuests            int `json:"totalQuests"`
	TotalRocks             int `json:"totalRocks"`
	TotalRockDistributions int `json:"totalRockDistributions"`
	TotalAnnouncements     int `json:"totalAnnouncements"`
	TotalFacts             int `json:"totalFacts"`
}
