package store

import (
	"errors"
	"fmt"

	"github.com/rohmanhakim/lyrics-service/pkg/failure"
)

type StoreErrorCause string

const (
	// ErrCauseDuplicateKey marks a Put for a key that already exists.
	// A benign race on the write path; the read that produced it may
	// still succeed.
	ErrCauseDuplicateKey StoreErrorCause = "duplicate key"
	// ErrCauseBackend marks a malfunction of the store itself.
	ErrCauseBackend StoreErrorCause = "backend failure"
)

type StoreError struct {
	Message string
	Cause   StoreErrorCause
	Key     string
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s (key %q)", e.Cause, e.Key)
}

func (e *StoreError) Severity() failure.Severity {
	if e.Cause == ErrCauseDuplicateKey {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsDuplicateKey reports whether err classifies as a duplicate-key insert.
func IsDuplicateKey(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr) && storeErr.Cause == ErrCauseDuplicateKey
}
