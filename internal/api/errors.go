package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ValidationError reports invalid fetch input, raised before any
// network call is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	StatusCode int
	Status     string // HTTP status text
	Detail     string // backend {"error": ...} body when present
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d %s", e.StatusCode, e.Status)
}

// newStatusError builds a StatusError, pulling the backend's
// {"error": ...} detail out of the body when it decodes.
func newStatusError(code int, body []byte) *StatusError {
	e := &StatusError{StatusCode: code, Status: http.StatusText(code)}
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		e.Detail = payload.Error
	}
	return e
}

// FormatError reports a response body that did not match the expected
// shape.
type FormatError struct {
	Reason string
	Err    error // underlying decode error, may be nil
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid response: %s", e.Reason)
}

func (e *FormatError) Unwrap() error { return e.Err }
