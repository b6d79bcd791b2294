package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx response from the backend
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string // human-readable message from the response body, if any
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsAuthError reports whether err is a 401 or 403 from the backend
func IsAuthError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
}

// IsNotFound reports whether err is a 404 from the backend
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Message returns the backend's message for err, or fallback if err carries none
func Message(err error, fallback string) string {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" && se.Message != http.StatusText(se.StatusCode) {
		return se.Message
	}
	return fallback
}

func newStatusError(method, path string, status int, body []byte) *StatusError {
	msg := errorMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: status,
		Message:    msg,
	}
}

// errorMessage extracts the message from the error body shapes the backend
// uses: {"detail": "..."}, {"message": "..."} or {"error": {"message": "..."}}
func errorMessage(body []byte) string {
	var resp struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}

	var detail string
	if err := json.Unmarshal(resp.Detail, &detail); err == nil && detail != "" {
		return detail
	}
	if resp.Message != "" {
		return resp.Message
	}

	var errStr string
	if err := json.Unmarshal(resp.Error, &errStr); err == nil && errStr != "" {
		return errStr
	}
	var errObj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Error, &errObj); err == nil {
		return errObj.Message
	}
	return ""
}
