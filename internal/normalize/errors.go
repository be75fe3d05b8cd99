package normalize

import (
	"fmt"

	"github.com/rohmanhakim/lyrics-service/pkg/failure"
)

type NormalizationErrorCause string

const (
	// ErrCauseInvalidEncoding indicates the raw artist or title is not
	// structurally valid UTF-8. Fatal for the single request that carried
	// it; never retried.
	ErrCauseInvalidEncoding NormalizationErrorCause = "structurally invalid UTF-8"
)

type NormalizationError struct {
	Message string
	Cause   NormalizationErrorCause
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization error: %s", e.Cause)
}

func (e *NormalizationError) Severity() failure.Severity {
	return failure.SeverityFatal
}
