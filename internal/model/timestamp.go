package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// Timestamp is a point in time as emitted by the backend. The backend is not
// consistent: some records carry ISO-8601 strings, others Firestore-style
// {"seconds": n} objects, and a few carry unix milliseconds.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a timestamp string in any of the layouts the backend uses.
// Unparseable input yields the zero Timestamp.
func ParseTimestamp(s string) Timestamp {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}
		}
	}
	return Timestamp{}
}

// UnmarshalJSON accepts strings, {seconds} objects, numbers and null.
// Anything it cannot interpret leaves the zero value rather than failing the
// whole record.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Timestamp{}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*t = ParseTimestamp(s)
	case '{':
		var obj struct {
			Seconds     *int64 `json:"seconds"`
			Nanoseconds int64  `json:"nanoseconds"`
			// Firestore admin SDK serialization
			FSeconds     *int64 `json:"_seconds"`
			FNanoseconds int64  `json:"_nanoseconds"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil
		}
		switch {
		case obj.Seconds != nil:
			*t = Timestamp{Time: time.Unix(*obj.Seconds, obj.Nanoseconds).UTC()}
		case obj.FSeconds != nil:
			*t = Timestamp{Time: time.Unix(*obj.FSeconds, obj.FNanoseconds).UTC()}
		}
	default:
		n, err := strconv.ParseInt(string(data), 10, 64)
		if err != nil {
			return nil
		}
		// Anything past 1e12 is milliseconds (Date.now())
		if n > 1e12 {
			*t = Timestamp{Time: time.UnixMilli(n).UTC()}
		} else {
			*t = Timestamp{Time: time.Unix(n, 0).UTC()}
		}
	}
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero value
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339))
}

// Date renders the date in en-GB short style ("6 Aug 2025"), or "N/A"
func (t Timestamp) Date() string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("2 Jan 2006")
}

// DateTime renders the date and time in en-GB style, or "N/A"
func (t Timestamp) DateTime() string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("02/01/2006, 15:04:05")
}

// InputValue renders the date for an HTML date input
func (t Timestamp) InputValue() string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
