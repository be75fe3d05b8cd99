/*
Resolver is the sole orchestration authority of a lyrics lookup.

Per-request state machine:

	CacheCheck -> (hit)  Done
	           -> (miss) Fetching -> Extracting -> Persisting -> Done

with every state able to fail into a classified ResolveError.

Guarantees:
- A cache hit never invokes the fetch path; at most one fetch per miss.
- A duplicate-key conflict on the write-through is reported and logged,
  never fatal to the read that produced it.
- Batch resolution preserves input order in its outcomes and never lets
  one item's failure cancel or block a sibling.

Pipeline stages classify their own failures; only the resolver decides
what a classification means for the request.
*/
package resolver

import (
	"context"
	"sync"

	"github.com/rohmanhakim/lyrics-service/internal/extractor"
	"github.com/rohmanhakim/lyrics-service/internal/fetcher"
	"github.com/rohmanhakim/lyrics-service/internal/normalize"
	"github.com/rohmanhakim/lyrics-service/internal/store"
	"github.com/rohmanhakim/lyrics-service/pkg/hashutil"
	"github.com/rs/zerolog"
)

type Resolver struct {
	pageFetcher fetcher.Fetcher
	lyricsStore store.Store
	extractor   extractor.Extractor
	logger      zerolog.Logger
}

func New(
	pageFetcher fetcher.Fetcher,
	lyricsStore store.Store,
	ex extractor.Extractor,
	logger zerolog.Logger,
) *Resolver {
	return &Resolver{
		pageFetcher: pageFetcher,
		lyricsStore: lyricsStore,
		extractor:   ex,
		logger:      logger.With().Str("component", "Resolver").Logger(),
	}
}

// Resolve runs the cache-aside read path for a single request.
func (r *Resolver) Resolve(ctx context.Context, req LookupRequest) (LookupResult, error) {
	if err := req.Validate(); err != nil {
		return LookupResult{}, err
	}

	cached, ok, err := r.lyricsStore.Get(ctx, req.TrackID)
	if err != nil {
		return LookupResult{}, r.classify(KindStore, req, err)
	}
	if ok {
		r.logger.Debug().Str("track_id", req.TrackID).Msg("cache hit")
		return assembleResult(req, cached), nil
	}

	path, err := normalize.LyricsPath(req.ArtistName, req.TrackTitle)
	if err != nil {
		return LookupResult{}, r.classify(KindNormalization, req, err)
	}

	markup, err := r.pageFetcher.Fetch(ctx, path)
	if err != nil {
		return LookupResult{}, r.classify(KindFetch, req, err)
	}

	blocks := r.extractor.Containers(markup)
	if len(blocks) == 0 {
		return LookupResult{}, r.classify(KindNotFound, req, nil)
	}

	lyrics := r.extractor.CleanText(blocks)
	if lyrics == "" {
		// containers without content are treated the same as absence
		return LookupResult{}, r.classify(KindNotFound, req, nil)
	}

	if err := r.lyricsStore.Put(ctx, req.TrackID, lyrics); err != nil {
		if !store.IsDuplicateKey(err) {
			return LookupResult{}, r.classify(KindStore, req, err)
		}
		// benign race: a sibling resolution persisted the same key first;
		// the content just computed is still valid
		r.logger.Warn().
			Str("track_id", req.TrackID).
			Msg("duplicate key on write-through, returning computed lyrics")
	}

	r.logger.Info().
		Str("track_id", req.TrackID).
		Str("content_fingerprint", hashutil.Fingerprint(lyrics)).
		Msg("lyrics resolved")

	return assembleResult(req, lyrics), nil
}

// ResolveAll fans Resolve out over every request concurrently. Fan-out is
// unbounded here; the shared fetcher's admission limiter is the sole
// throttle. Outcomes land at the index of the request that produced them.
func (r *Resolver) ResolveAll(ctx context.Context, reqs []LookupRequest) []Outcome {
	outcomes := make([]Outcome, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		wg.Add(1)
		go func(i int, req LookupRequest) {
			defer wg.Done()
			result, err := r.Resolve(ctx, req)
			outcomes[i] = Outcome{Result: result, Err: err}
		}(i, req)
	}
	wg.Wait()

	return outcomes
}

func (r *Resolver) classify(kind FailureKind, req LookupRequest, err error) error {
	resolveErr := &ResolveError{
		Kind:       kind,
		TrackID:    req.TrackID,
		ArtistName: req.ArtistName,
		TrackTitle: req.TrackTitle,
		Err:        err,
	}
	r.logger.Error().Err(resolveErr).Str("track_id", req.TrackID).Msg("resolution failed")
	return resolveErr
}

func assembleResult(req LookupRequest, lyrics string) LookupResult {
	return LookupResult{
		TrackID:    req.TrackID,
		ArtistName: req.ArtistName,
		TrackTitle: req.TrackTitle,
		Lyrics:     lyrics,
	}
}
