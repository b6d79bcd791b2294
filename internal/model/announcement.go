package model

import "slices"

// AnnouncementType categorises an announcement
type AnnouncementType string

const (
	AnnouncementUpdate      AnnouncementType = "update"
	AnnouncementFeature     AnnouncementType = "feature"
	AnnouncementMaintenance AnnouncementType = "maintenance"
	AnnouncementEvent       AnnouncementType = "event"
)

// AnnouncementTypes lists the selectable announcement types
var AnnouncementTypes = []AnnouncementType{
	AnnouncementUpdate,
	AnnouncementFeature,
	AnnouncementMaintenance,
	AnnouncementEvent,
}

// Announcement is a message broadcast to all users
type Announcement struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        AnnouncementType `json:"type"`
	PublishDate Timestamp        `json:"publishDate"`
	CreatedBy   string           `json:"createdBy,omitempty"`
	CreatedAt   Timestamp        `json:"createdAt"`
	IsVisible   bool             `json:"isVisible"`
	Pinned      bool             `json:"pinned"`
	ImageURL    string           `json:"imageUrl,omitempty"`
}

// AnnouncementInput is the editable subset of an Announcement
type AnnouncementInput struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        AnnouncementType `json:"type"`
	PublishDate Timestamp        `json:"publishDate"`
}

// Validate checks the title and type
func (in AnnouncementInput) Validate() error {
	v := NewValidationError()
	if in.Title == "" {
		v.Add("title", "Title is required")
	}
	if !slices.Contains(AnnouncementTypes, in.Type) {
		v.Add("type", "Type must be update, feature, maintenance or event")
	}
	return v.Err()
}
