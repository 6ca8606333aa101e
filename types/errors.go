package types

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("location argument is required")
	ErrNoData       = errors.New("no current conditions for location")
)

// HTTPError represents a non-2xx response from the weather API.
// The response body is never read for these.
type HTTPError struct {
	StatusCode int
	Status     string // status line as reported by net/http, e.g. "503 Service Unavailable"
}

func (e *HTTPError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("weather API returned status %d", e.StatusCode)
	}
	return "weather API returned " + e.Status
}
