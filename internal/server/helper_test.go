package server

import (
	"context"
	"fmt"

	"github.com/rohmanhakim/lyrics-service/internal/resolver"
)

// mockResolver serves canned lyrics keyed by track id and fails
// lookups listed in errs.
type mockResolver struct {
	lyrics map[string]string
	errs   map[string]error
}

func newMockResolver() *mockResolver {
	return &mockResolver{
		lyrics: make(map[string]string),
		errs:   make(map[string]error),
	}
}

func (m *mockResolver) Resolve(_ context.Context, req resolver.LookupRequest) (resolver.LookupResult, error) {
	if err := req.Validate(); err != nil {
		return resolver.LookupResult{}, err
	}
	if err, found := m.errs[req.TrackID]; found {
		return resolver.LookupResult{}, err
	}
	lyrics, found := m.lyrics[req.TrackID]
	if !found {
		return resolver.LookupResult{}, &resolver.ResolveError{
			Kind:       resolver.KindNotFound,
			TrackID:    req.TrackID,
			ArtistName: req.ArtistName,
			TrackTitle: req.TrackTitle,
		}
	}
	return resolver.LookupResult{
		TrackID:    req.TrackID,
		ArtistName: req.ArtistName,
		TrackTitle: req.TrackTitle,
		Lyrics:     lyrics,
	}, nil
}

func (m *mockResolver) ResolveAll(ctx context.Context, reqs []resolver.LookupRequest) []resolver.Outcome {
	outcomes := make([]resolver.Outcome, len(reqs))
	for i, req := range reqs {
		result, err := m.Resolve(ctx, req)
		outcomes[i] = resolver.Outcome{Result: result, Err: err}
	}
	return outcomes
}

// failingStore reports an unhealthy backend on every ping.
type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, fmt.Errorf("unreachable")
}

func (failingStore) Put(context.Context, string, string) error {
	return fmt.Errorf("unreachable")
}

func (failingStore) Ping(context.Context) error {
	return fmt.Errorf("unreachable")
}

func (failingStore) Close() error {
	return nil
}
