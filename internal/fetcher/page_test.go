package fetcher_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rohmanhakim/lyrics-service/internal/fetcher"
	"github.com/rohmanhakim/lyrics-service/pkg/limiter"
	"github.com/rohmanhakim/lyrics-service/pkg/urlutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(t *testing.T, serverURL string, slots int) *fetcher.PageFetcher {
	t.Helper()

	base, err := urlutil.ParseBaseURL(serverURL)
	require.NoError(t, err)

	adm := limiter.NewSlotLimiter(slots)
	adm.SetDelayWindow(0, 0)

	return fetcher.NewPageFetcher(base, "lyrics-service-test", adm, 2*time.Second, zerolog.Nop())
}

func TestPageFetcher_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Beyonce-halo-lyrics", r.URL.Path)
		assert.Equal(t, "lyrics-service-test", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body>halo</body></html>"))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL, 2)

	body, err := f.Fetch(context.Background(), "/Beyonce-halo-lyrics")
	require.NoError(t, err)
	assert.Contains(t, body, "halo")
}

func TestPageFetcher_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old-path", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new-path", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new-path", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved lyrics"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := newTestFetcher(t, server.URL, 2)

	body, err := f.Fetch(context.Background(), "/old-path")
	require.NoError(t, err)
	assert.Equal(t, "moved lyrics", body)
}

func TestPageFetcher_NonSuccessStatusIsBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL, 2)

	_, err := f.Fetch(context.Background(), "/missing")
	require.Error(t, err)

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, fetcher.ErrCauseBadStatus, fetchErr.Cause)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
}

func TestPageFetcher_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	f := newTestFetcher(t, server.URL, 2)

	_, err := f.Fetch(context.Background(), "/anything")
	require.Error(t, err)

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, fetcher.ErrCauseTransport, fetchErr.Cause)
}

func TestPageFetcher_BoundsConcurrentRequests(t *testing.T) {
	const slots = 2
	const requests = 10

	var inFlight int64
	var maxObserved int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		current := atomic.AddInt64(&inFlight, 1)
		for {
			observed := atomic.LoadInt64(&maxObserved)
			if current <= observed || atomic.CompareAndSwapInt64(&maxObserved, observed, current) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := newTestFetcher(t, server.URL, slots)

	done := make(chan error, requests)
	for i := 0; i < requests; i++ {
		go func() {
			_, err := f.Fetch(context.Background(), "/song")
			done <- err
		}()
	}
	for i := 0; i < requests; i++ {
		require.NoError(t, <-done)
	}

	assert.LessOrEqual(t, atomic.LoadInt64(&maxObserved), int64(slots))
}

func TestPageFetcher_AbandonedWhileWaitingForAdmission(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()
	defer close(blocked)

	f := newTestFetcher(t, server.URL, 1)

	// occupy the single slot
	go func() {
		_, _ = f.Fetch(context.Background(), "/held")
	}()
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, "/starved")
	require.Error(t, err)

	var fetchErr *fetcher.FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, fetcher.ErrCauseTransport, fetchErr.Cause)
}
