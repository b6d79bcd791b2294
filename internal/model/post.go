package model

// ReviewPost is a rock identification submitted for moderation
type ReviewPost struct {
	ID             string    `json:"id"`
	RockName       string    `json:"rockname"`
	Description    string    `json:"description"`
	Information    string    `json:"information"`
	Image          string    `json:"image"`
	CreatedBy      string    `json:"createdBy"`
	Verified       bool      `json:"verified"`
	VerifiedAt     Timestamp `json:"verifiedAt"`
	RejectedAt     Timestamp `json:"rejectedAt"`
	RejectedReason string    `json:"rejectedReason,omitempty"`
	CreatedAt      Timestamp `json:"createdAt"`
}

// PostState is the moderation state derived from a post's flags
type PostState string

const (
	PostStatePending  PostState = "pending"
	PostStateApproved PostState = "approved"
	PostStateRejected PostState = "rejected"
)

// State derives the moderation state. A verified post is approved regardless of
// any earlier rejection.
func (p ReviewPost) State() PostState {
	switch {
	case p.Verified:
		return PostStateApproved
	case !p.RejectedAt.IsZero():
		return PostStateRejected
	default:
		return PostStatePending
	}
}

// Post is a published community post
type Post struct {
	ID               string    `json:"id"`
	RockName         string    `json:"rockName"`
	ShortDescription string    `json:"shortDescription,omitempty"`
	Information      string    `json:"information"`
	ImageURL         string    `json:"imageUrl"`
	Type             string    `json:"type,omitempty"`
	CreatedBy        string    `json:"createdBy,omitempty"`
	CreatorName      string    `json:"creatorName,omitempty"`
	CreatorRole      string    `json:"creatorRole,omitempty"`
	CreatedAt        Timestamp `json:"createdAt"`
	Verified         bool      `json:"verified"`
	FlaggedReason    string    `json:"flaggedReason,omitempty"`
}

// Creator renders "name (role)" with the dashboard's fallbacks
func (p Post) Creator() string {
	name, role := p.CreatorName, p.CreatorRole
	if name == "" {
		name = "Unknown"
	}
	if role == "" {
		role = "N/A"
	}
	return name + " (" + role + ")"
}
