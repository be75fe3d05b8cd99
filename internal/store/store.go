/*
Responsibilities
- Persist resolved lyrics keyed by caller-assigned track id
- Enforce strict key uniqueness: a second Put for an existing key is
  observable as a duplicate, never a silent overwrite
- Stay safe for concurrent use; Put is an atomic insert-if-absent

The core never updates or deletes entries; both are store-administration
concerns outside this service.
*/
package store

import "context"

type Store interface {
	// Get returns the stored value for key, reporting absence via the
	// second return value rather than an error.
	Get(ctx context.Context, key string) (string, bool, error)
	// Put inserts value under key. Inserting an existing key fails with a
	// StoreError carrying ErrCauseDuplicateKey.
	Put(ctx context.Context, key string, value string) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}
