package model

// ReportStatus is the review state of a report. The backend stores the last
// review action verbatim.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusApproved ReportStatus = "approve"
	ReportStatusRejected ReportStatus = "reject"
)

// Report is a user complaint about a piece of content
type Report struct {
	ID               string       `json:"id"`
	ReportedBy       string       `json:"reportedBy"`
	ReportedItemType string       `json:"reportedItemType"`
	ReportedID       string       `json:"reportedId"`
	Reason           string       `json:"reason"`
	Status           ReportStatus `json:"status"`
	ReviewedBy       string       `json:"reviewedBy,omitempty"`
	ReviewedAt       Timestamp    `json:"reviewedAt"`
	ReportedAt       Timestamp    `json:"reportedAt"`
}

// ReviewAction is what a moderator decides about a post or report
type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

// Opposite returns the other action
func (a ReviewAction) Opposite() ReviewAction {
	if a == ActionApprove {
		return ActionReject
	}
	return ActionApprove
}
