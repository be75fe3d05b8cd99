package fetcher

import "context"

// Fetcher retrieves the raw markup behind a derived lookup path.
// One attempt per call, deterministically classified on failure; retry
// policy, if any, belongs to the caller.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (string, error)
}
