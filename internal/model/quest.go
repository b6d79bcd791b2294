package model

import "slices"

// QuestType is how a quest is completed
type QuestType string

const (
	QuestTypeGPS            QuestType = "gps-based"
	QuestTypeCollection     QuestType = "collection"
	QuestTypeIdentification QuestType = "identification"
)

// QuestTypes lists the selectable quest types
var QuestTypes = []QuestType{QuestTypeGPS, QuestTypeCollection, QuestTypeIdentification}

// QuestDifficulty is the advertised difficulty of a quest
type QuestDifficulty string

const (
	QuestDifficultyEasy   QuestDifficulty = "easy"
	QuestDifficultyMedium QuestDifficulty = "medium"
	QuestDifficultyHard   QuestDifficulty = "hard"
)

// QuestDifficulties lists the selectable difficulties
var QuestDifficulties = []QuestDifficulty{QuestDifficultyEasy, QuestDifficultyMedium, QuestDifficultyHard}

// QuestStatus is the publication state of a quest
type QuestStatus string

const (
	QuestStatusActive    QuestStatus = "active"
	QuestStatusDraft     QuestStatus = "draft"
	QuestStatusCompleted QuestStatus = "completed"
)

// QuestStatuses lists the selectable statuses
var QuestStatuses = []QuestStatus{QuestStatusActive, QuestStatusDraft, QuestStatusCompleted}

// Quest is a geological exploration quest
type Quest struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        QuestType       `json:"type"`
	Difficulty  QuestDifficulty `json:"difficulty"`
	Reward      string          `json:"reward"`
	Location    string          `json:"location"`
	Status      QuestStatus     `json:"status"`
	DateCreated Timestamp       `json:"dateCreated"`
}

// QuestInput is the writable subset of a Quest
type QuestInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        QuestType       `json:"type"`
	Difficulty  QuestDifficulty `json:"difficulty"`
	Reward      string          `json:"reward"`
	Location    string          `json:"location"`
	Status      QuestStatus     `json:"status"`
}

// Validate checks required fields and enums. An empty status means draft.
func (in *QuestInput) Validate() error {
	if in.Status == "" {
		in.Status = QuestStatusDraft
	}

	v := NewValidationError()
	if in.Title == "" {
		v.Add("title", "Quest title is required")
	}
	if !slices.Contains(QuestTypes, in.Type) {
		v.Add("type", "Quest type must be gps-based, collection or identification")
	}
	if !slices.Contains(QuestDifficulties, in.Difficulty) {
		v.Add("difficulty", "Difficulty must be easy, medium or hard")
	}
	if !slices.Contains(QuestStatuses, in.Status) {
		v.Add("status", "Status must be active, draft or completed")
	}
	return v.Err()
}
