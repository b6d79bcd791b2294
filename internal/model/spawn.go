package model

import "strings"

// Spawn statuses
const (
	SpawnStatusActive        = "active"
	SpawnStatusPendingReview = "pending review"
)

// Spawn is a geolocated occurrence of a rock type (a distribution point)
type Spawn struct {
	ID          string    `json:"id"`
	RockID      string    `json:"rockId"`
	RockType    string    `json:"rockType,omitempty"`
	Location    string    `json:"location,omitempty"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status,omitempty"`
	Confidence  float64   `json:"confidence"`
	SpawnedAt   Timestamp `json:"spawnedAt"`
}

// StatusKey is the status lowercased with spaces removed ("pendingreview"),
// which is what status filters compare against
func (s Spawn) StatusKey() string {
	return strings.ReplaceAll(strings.ToLower(s.Status), " ", "")
}

// SpawnInput is the writable subset of a Spawn
type SpawnInput struct {
	RockID      string  `json:"rockId,omitempty"`
	RockType    string  `json:"rockType"`
	Location    string  `json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
}

// Validate checks the rock type and coordinate ranges. An empty status means
// pending review.
func (in *SpawnInput) Validate() error {
	if in.Status == "" {
		in.Status = SpawnStatusPendingReview
	}

	v := NewValidationError()
	if in.RockType == "" {
		v.Add("rockType", "Rock type is required")
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		v.Add("latitude", "Latitude must be between -90 and 90")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		v.Add("longitude", "Longitude must be between -180 and 180")
	}
	if in.Status != SpawnStatusActive && in.Status != SpawnStatusPendingReview {
		v.Add("status", "Status must be active or pending review")
	}
	return v.Err()
}
