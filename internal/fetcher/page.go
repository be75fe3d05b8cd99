/*
Responsibilities

- Perform HTTP requests against the lyrics source
- Bound in-flight requests through the admission limiter
- Space admitted requests with a randomized delay
- Apply headers and timeouts
- Classify responses

Fetch Semantics

- One attempt per call; no retry at this layer
- Redirects are followed transparently
- The admission slot is held for the randomized delay plus the request

The fetcher never parses content; it only returns the response body.
*/
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rohmanhakim/lyrics-service/pkg/limiter"
	"github.com/rohmanhakim/lyrics-service/pkg/urlutil"
	"github.com/rs/zerolog"
)

type PageFetcher struct {
	admission  limiter.AdmissionLimiter
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
	logger     zerolog.Logger
}

func NewPageFetcher(
	baseURL *url.URL,
	userAgent string,
	admission limiter.AdmissionLimiter,
	requestTimeout time.Duration,
	logger zerolog.Logger,
) *PageFetcher {
	return &PageFetcher{
		admission: admission,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL:   baseURL,
		userAgent: userAgent,
		logger:    logger.With().Str("component", "PageFetcher").Logger(),
	}
}

func (f *PageFetcher) Fetch(ctx context.Context, path string) (string, error) {
	release, err := f.admission.Acquire(ctx)
	if err != nil {
		// the caller gave up while waiting for admission
		return "", &FetchError{
			Message: fmt.Sprintf("abandoned while awaiting admission: %v", err),
			Cause:   ErrCauseTransport,
		}
	}
	defer release()

	fetchURL := urlutil.Endpoint(f.baseURL, path)
	startTime := time.Now()

	body, fetchErr := f.performFetch(ctx, fetchURL)

	event := f.logger.Debug().
		Str("url", fetchURL).
		Dur("duration", time.Since(startTime))
	if fetchErr != nil {
		event.Str("cause", string(fetchErr.Cause)).Msg("fetch failed")
		return "", fetchErr
	}
	event.Int("body_bytes", len(body)).Msg("fetch succeeded")

	return body, nil
}

func (f *PageFetcher) performFetch(ctx context.Context, fetchURL string) (string, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fetchURL, nil)
	if err != nil {
		return "", &FetchError{
			Message: fmt.Sprintf("failed to create request: %v", err),
			Cause:   ErrCauseUnknown,
		}
	}

	for key, value := range requestHeaders(f.userAgent) {
		req.Header.Set(key, value)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		// dial/DNS/timeout and friends
		return "", &FetchError{
			Message: fmt.Sprintf("request failed: %v", err),
			Cause:   ErrCauseTransport,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{
			Message:    fmt.Sprintf("unexpected status: %d", resp.StatusCode),
			Cause:      ErrCauseBadStatus,
			StatusCode: resp.StatusCode,
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Cause:   ErrCauseUnknown,
		}
	}

	return string(body), nil
}

func requestHeaders(userAgent string) map[string]string {
	return map[string]string{
		"User-Agent":      userAgent,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "en-US,en;q=0.5",
		"Connection":      "keep-alive",
	}
}
