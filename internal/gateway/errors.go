package gateway

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the gateway reports that an entity is absent.
var ErrNotFound = errors.New("entity not found")

// APIError carries a structured error payload returned by the gateway. The
// server-supplied message is surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gateway returned status %d", e.StatusCode)
}

// ServerMessage extracts the server-supplied message from err, if any.
func ServerMessage(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
