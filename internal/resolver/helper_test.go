package resolver_test

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rohmanhakim/lyrics-service/internal/store"
)

// mockFetcher is a test double for fetcher.Fetcher. It serves canned markup
// per path and counts invocations so tests can assert the cache-hit path
// never touches the transport.
type mockFetcher struct {
	mu        sync.Mutex
	markup    map[string]string
	errs      map[string]error
	fallback  string
	callCount int64
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		markup: make(map[string]string),
		errs:   make(map[string]error),
	}
}

func (m *mockFetcher) Fetch(_ context.Context, path string) (string, error) {
	atomic.AddInt64(&m.callCount, 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.errs[path]; ok {
		return "", err
	}
	if markup, ok := m.markup[path]; ok {
		return markup, nil
	}
	return m.fallback, nil
}

func (m *mockFetcher) calls() int64 {
	return atomic.LoadInt64(&m.callCount)
}

// mockStore decorates the in-memory store with failure injection and a
// Put counter.
type mockStore struct {
	*store.MemoryStore

	getErr   error
	putErr   error
	putCount int64
}

func newMockStore() *mockStore {
	return &mockStore{MemoryStore: store.NewMemoryStore()}
}

func (m *mockStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	return m.MemoryStore.Get(ctx, key)
}

func (m *mockStore) Put(ctx context.Context, key string, value string) error {
	atomic.AddInt64(&m.putCount, 1)
	if m.putErr != nil {
		return m.putErr
	}
	return m.MemoryStore.Put(ctx, key, value)
}

func (m *mockStore) puts() int64 {
	return atomic.LoadInt64(&m.putCount)
}

func lyricsMarkup(lines string) string {
	return `<html><body><div data-lyrics-container="true">` + lines + `</div></body></html>`
}
