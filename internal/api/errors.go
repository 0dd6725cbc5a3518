package api

import (
	"errors"
	"fmt"
	"strings"
)

// Error is returned for every failed backend call. Message is the server's
// "message" field when present, otherwise a per-operation fallback such as
// "Failed to fetch statistics".
type Error struct {
	Op      string
	Status  int // 0 when no response was received
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 && e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnauthorized reports whether err means the stored token is no longer
// accepted. The backend signals this with 401 or with a message mentioning
// authorization, so both are checked.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == 401 {
		return true
	}
	return strings.Contains(strings.ToLower(apiErr.Message), "authorize")
}

// Message extracts the user-facing message from err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
