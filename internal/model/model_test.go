package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want time.Time
	}{
		{"iso string", `"2025-08-06T10:30:00Z"`, time.Date(2025, 8, 6, 10, 30, 0, 0, time.UTC)},
		{"date only", `"2025-08-06"`, time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC)},
		{"seconds object", `{"seconds": 1704110400, "nanoseconds": 0}`, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"admin sdk object", `{"_seconds": 1704110400, "_nanoseconds": 0}`, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"unix seconds", `1704110400`, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"unix millis", `1704110400000`, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"garbage string", `"next tuesday"`, time.Time{}},
		{"empty object", `{}`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record struct {
				At Timestamp `json:"at"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"at":`+tt.json+`}`), &record))
			assert.True(t, tt.want.Equal(record.At.Time), "got %v", record.At.Time)
		})
	}
}

func TestTimestampRendering(t *testing.T) {
	ts := NewTimestamp(time.Date(2025, 8, 6, 9, 5, 7, 0, time.UTC))
	assert.Equal(t, "6 Aug 2025", ts.Date())
	assert.Equal(t, "06/08/2025, 09:05:07", ts.DateTime())
	assert.Equal(t, "2025-08-06", ts.InputValue())

	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-08-06T09:05:07Z"`, string(data))

	var zero Timestamp
	assert.Equal(t, "N/A", zero.Date())
	assert.Equal(t, "N/A", zero.DateTime())
	assert.Empty(t, zero.InputValue())
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestUserUnmarshalFallbacks(t *testing.T) {
	var users []User
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id":"u1","username":"ada","name":"Ada Lovelace","emailAddress":"ada@x","type":"player","isActive":true,"joinDate":"2025-01-02"},
		{"id":"u2","name":"Mary Anning","type":"geologist","join_date":"2024-05-01"},
		{"id":"u3"}
	]`), &users))
	require.Len(t, users, 3)

	assert.Equal(t, "ada", users[0].Name, "username wins over name")
	assert.Equal(t, UserStatusActive, users[0].Status())
	assert.Equal(t, "2025-01-02", users[0].JoinDate)

	assert.Equal(t, "Mary Anning", users[1].Name)
	assert.Equal(t, "2024-05-01", users[1].JoinDate)
	assert.Equal(t, UserStatusSuspended, users[1].Status())
	assert.Equal(t, "MA", users[1].Initials())

	assert.Equal(t, "N/A", users[2].JoinDate)
	assert.Equal(t, "??", users[2].Initials())
}

func TestReviewPostState(t *testing.T) {
	rejectedAt := NewTimestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, PostStatePending, ReviewPost{}.State())
	assert.Equal(t, PostStateApproved, ReviewPost{Verified: true}.State())
	assert.Equal(t, PostStateRejected, ReviewPost{RejectedAt: rejectedAt}.State())
	assert.Equal(t, PostStateApproved, ReviewPost{Verified: true, RejectedAt: rejectedAt}.State(),
		"a later approval overrides an earlier rejection")
}

func TestPostCreatorFallbacks(t *testing.T) {
	assert.Equal(t, "Unknown (N/A)", Post{}.Creator())
	assert.Equal(t, "Mary (geologist)", Post{CreatorName: "Mary", CreatorRole: "geologist"}.Creator())
}

func TestReviewActionOpposite(t *testing.T) {
	assert.Equal(t, ActionReject, ActionApprove.Opposite())
	assert.Equal(t, ActionApprove, ActionReject.Opposite())
}

func TestSpawnStatusKey(t *testing.T) {
	assert.Equal(t, "pendingreview", Spawn{Status: "Pending Review"}.StatusKey())
	assert.Equal(t, "active", Spawn{Status: "active"}.StatusKey())
}

func TestSpawnInputValidate(t *testing.T) {
	in := SpawnInput{RockType: "Granite", Latitude: 50, Longitude: -3}
	require.NoError(t, in.Validate())
	assert.Equal(t, SpawnStatusPendingReview, in.Status, "empty status defaults to pending review")

	in = SpawnInput{Latitude: 91, Longitude: -181, Status: "gone"}
	err := in.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{
		"Latitude must be between -90 and 90",
		"Longitude must be between -180 and 180",
		"Rock type is required",
		"Status must be active or pending review",
	}, verr.Messages())
}

func TestValidationErrorFirstMessageWins(t *testing.T) {
	v := NewValidationError()
	require.NoError(t, v.Err())

	v.Add("title", "Title is required")
	v.Add("title", "Title is too long")
	require.Error(t, v.Err())
	assert.Equal(t, "invalid input: Title is required", v.Error())
}
