package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rohmanhakim/lyrics-service/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetAbsentKey(t *testing.T) {
	s := store.NewMemoryStore()

	_, ok, err := s.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_GetAfterPut(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "track-1", "Lyrics for track 1"))

	value, ok, err := s.Get(ctx, "track-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Lyrics for track 1", value)
}

func TestMemoryStore_DuplicatePutIsObservable(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "track-1", "original"))

	err := s.Put(ctx, "track-1", "overwrite attempt")
	require.Error(t, err)
	assert.True(t, store.IsDuplicateKey(err))

	// the original value must survive
	value, ok, err := s.Get(ctx, "track-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "original", value)
}

func TestMemoryStore_ConcurrentPutSameKey_ExactlyOneWins(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = s.Put(ctx, "contested", fmt.Sprintf("value-%d", n))
		}(i)
	}
	wg.Wait()

	var successes, duplicates int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case store.IsDuplicateKey(err):
			duplicates++
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, writers-1, duplicates)
	assert.Equal(t, 1, s.Len())
}
