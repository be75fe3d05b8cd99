package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/lyrics-service/pkg/failure"
)

type FetchErrorCause string

const (
	// ErrCauseBadStatus marks a response that arrived with a non-2xx status.
	ErrCauseBadStatus FetchErrorCause = "bad status"
	// ErrCauseTransport marks a network-level failure: timeout, connection
	// refused, DNS.
	ErrCauseTransport FetchErrorCause = "transport failure"
	// ErrCauseUnknown marks any other unexpected failure during the fetch.
	ErrCauseUnknown FetchErrorCause = "unknown fetch failure"
)

type FetchError struct {
	Message string
	Cause   FetchErrorCause
	// StatusCode is set only when Cause is ErrCauseBadStatus.
	StatusCode int
}

func (e *FetchError) Error() string {
	if e.Cause == ErrCauseBadStatus {
		return fmt.Sprintf("fetch error: %s (%d)", e.Cause, e.StatusCode)
	}
	return fmt.Sprintf("fetch error: %s", e.Cause)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Cause == ErrCauseTransport {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}
