package fetcher

import (
	"errors"
	"fmt"
)

// ErrUnexpectedStatus is wrapped by attempt errors for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// NetworkError is returned once every attempt to fetch a URL has failed.
type NetworkError struct {
	URL        string
	Attempts   int
	StatusCode int // last status seen, 0 if no response arrived
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s failed after %d attempt(s) (status %d): %v", e.URL, e.Attempts, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %v", e.URL, e.Attempts, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
