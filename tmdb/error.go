package tmdb

import (
	"fmt"
	"strings"
)

// FetchError is returned when the movie-metadata API cannot be reached or
// answers with a non-2xx status. StatusCode is zero for transport failures.
type FetchError struct {
	URL        string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return "failed to fetch"
	}
	msg := strings.TrimSpace(e.Message)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("failed to fetch: HTTP %d %s", e.StatusCode, msg)
	}
	return "failed to fetch: " + msg
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
