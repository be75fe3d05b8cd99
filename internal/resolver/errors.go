package resolver

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/lyrics-service/pkg/failure"
)

type FailureKind string

const (
	// KindInvalidRequest marks a request violating the non-empty invariant.
	KindInvalidRequest FailureKind = "invalid request"
	// KindNormalization marks a request whose raw fields could not be
	// normalized into a lookup path.
	KindNormalization FailureKind = "normalization failed"
	// KindFetch marks a classified failure from the bounded fetcher.
	KindFetch FailureKind = "fetch failed"
	// KindNotFound marks a well-formed fetch that produced no lyrics:
	// absence, not malfunction.
	KindNotFound FailureKind = "lyrics not found"
	// KindStore marks a cache-layer malfunction on the read or write path.
	KindStore FailureKind = "store failed"
)

// ResolveError wraps a classified lower-layer failure with the identifying
// context of the request that triggered it.
type ResolveError struct {
	Kind       FailureKind
	TrackID    string
	ArtistName string
	TrackTitle string
	Err        error
}

func (e *ResolveError) Error() string {
	msg := fmt.Sprintf("%s for track_id: %s, artist_name: %s, track_title: %s",
		e.Kind, e.TrackID, e.ArtistName, e.TrackTitle)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

func (e *ResolveError) Severity() failure.Severity {
	var classified failure.ClassifiedError
	if errors.As(e.Err, &classified) {
		return classified.Severity()
	}
	return failure.SeverityFatal
}

// IsNotFound reports whether err represents absence of lyrics rather than
// a malfunction.
func IsNotFound(err error) bool {
	var resolveErr *ResolveError
	return errors.As(err, &resolveErr) && resolveErr.Kind == KindNotFound
}

// IsInvalidRequest reports whether err represents a request that violated
// the input invariants.
func IsInvalidRequest(err error) bool {
	var resolveErr *ResolveError
	return errors.As(err, &resolveErr) && resolveErr.Kind == KindInvalidRequest
}
