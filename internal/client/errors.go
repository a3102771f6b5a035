package client

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no metrics API base URL has been set.
// Callers treat it as terminal: there is no point retrying on a timer.
var ErrNotConfigured = errors.New("metrics API base URL is not configured")

// StatusError reports a non-2xx response from one endpoint. Any single
// StatusError fails the whole dashboard fetch.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}
