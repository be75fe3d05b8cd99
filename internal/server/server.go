/*
Responsibilities
- Expose the resolver over HTTP: single and batched lyrics lookups
- Map classified failures to externally safe responses: absence becomes
  404, everything else a generic failure that leaks no internal detail
- Own the listener lifecycle: bind, serve, drain on shutdown

The server never resolves anything itself; it is a thin boundary over
the resolver.
*/
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/rohmanhakim/lyrics-service/internal/resolver"
	"github.com/rohmanhakim/lyrics-service/internal/store"
	"github.com/rs/zerolog"
)

// LyricsResolver is the slice of the resolver the server depends on.
type LyricsResolver interface {
	Resolve(ctx context.Context, req resolver.LookupRequest) (resolver.LookupResult, error)
	ResolveAll(ctx context.Context, reqs []resolver.LookupRequest) []resolver.Outcome
}

type Server struct {
	logger     zerolog.Logger
	resolver   LyricsResolver
	store      store.Store
	listenAddr string

	mux        *http.ServeMux
	httpServer *http.Server

	mu         sync.RWMutex
	actualAddr string
}

func New(listenAddr string, lyricsResolver LyricsResolver, lyricsStore store.Store, logger zerolog.Logger) *Server {
	s := &Server{
		logger:     logger.With().Str("component", "Server").Logger(),
		resolver:   lyricsResolver,
		store:      lyricsStore,
		listenAddr: listenAddr,
		mux:        http.NewServeMux(),
	}

	s.mux.HandleFunc("POST /lyrics", s.handleLyrics)
	s.mux.HandleFunc("POST /lyrics/batch", s.handleLyricsBatch)
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	s.httpServer = &http.Server{
		Addr:    listenAddr,
		Handler: s.mux,
	}
	return s
}

// Start binds the listener and serves in a background goroutine.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.listenAddr, err)
	}

	s.mu.Lock()
	s.actualAddr = listener.Addr().String()
	s.mu.Unlock()

	s.logger.Info().Str("address", listener.Addr().String()).Msg("http server listening")

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("http server failed")
		}
	}()

	return nil
}

// Addr returns the bound address; useful when listening on :0.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actualAddr
}

// Mux exposes the handler for in-process tests.
func (s *Server) Mux() *http.ServeMux {
	return s.mux
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
