package daft

import (
	"errors"
	"fmt"

	"github.com/amineremache/dafty-mcp/pkg/fetcher"
	"github.com/amineremache/dafty-mcp/pkg/listing"
)

// Kind classifies errors surfaced to callers.
type Kind string

const (
	KindNetwork    Kind = "NetworkError"
	KindScraper    Kind = "ScraperError"
	KindValidation Kind = "ValidationError"
	KindAPI        Kind = "ApiError"
	KindAuth       Kind = "AuthError"
)

// Error is a terminal failure of a search or details request.
type Error struct {
	Kind    Kind
	Stage   string // pipeline stage that failed, e.g. "fetch_results_page"
	Message string
	// Criteria is set for search failures so the caller can see what was asked.
	Criteria *listing.Criteria
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Stage != "" {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Stage, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err. Network failures below the client and
// criteria validation failures are recognised as well; anything else is a
// ScraperError.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	var netErr *fetcher.NetworkError
	if errors.As(err, &netErr) {
		return KindNetwork
	}
	var verr *listing.ValidationError
	if errors.As(err, &verr) {
		return KindValidation
	}
	return KindScraper
}

// StageOf returns the failing stage recorded in err, if any.
func StageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return ""
}

func searchError(kind Kind, stage, message string, c listing.Criteria, err error) *Error {
	return &Error{Kind: kind, Stage: stage, Message: message, Criteria: &c, Err: err}
}
