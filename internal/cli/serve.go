package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rohmanhakim/lyrics-service/internal/config"
	"github.com/rohmanhakim/lyrics-service/internal/extractor"
	"github.com/rohmanhakim/lyrics-service/internal/fetcher"
	"github.com/rohmanhakim/lyrics-service/internal/resolver"
	"github.com/rohmanhakim/lyrics-service/internal/server"
	"github.com/rohmanhakim/lyrics-service/internal/store"
	"github.com/rohmanhakim/lyrics-service/pkg/limiter"
	"github.com/rohmanhakim/lyrics-service/pkg/urlutil"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the lyrics retrieval HTTP service.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		return runService(cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runService wires the component graph from cfg and blocks until the
// process receives SIGINT or SIGTERM.
func runService(cfg config.Config) error {
	logger, err := newLogger(cfg.LogLevel())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	lyricsStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize lyrics store: %w", err)
	}
	defer func() {
		if closeErr := lyricsStore.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("failed to close lyrics store")
		}
	}()

	base, err := urlutil.ParseBaseURL(cfg.BaseURL())
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	admission := limiter.NewSlotLimiter(cfg.MaxConcurrentFetches())
	admission.SetDelayWindow(cfg.MinFetchDelay(), cfg.MaxFetchDelay())

	pageFetcher := fetcher.NewPageFetcher(base, cfg.UserAgent(), admission, cfg.RequestTimeout(), logger)

	lyricsExtractor := extractor.New(extractor.Policy{
		ContainerSelector: cfg.ContainerSelector(),
		InlineTags:        cfg.InlineTags(),
		LinkTextTag:       cfg.LinkTextTag(),
	})

	lyricsResolver := resolver.New(pageFetcher, lyricsStore, lyricsExtractor, logger)

	srv := server.New(cfg.ListenAddr(), lyricsResolver, lyricsStore, logger)
	if err := srv.Start(); err != nil {
		return err
	}

	logger.Info().
		Str("base_url", cfg.BaseURL()).
		Str("store_backend", cfg.StoreBackend()).
		Int("max_concurrent_fetches", cfg.MaxConcurrentFetches()).
		Msg("lyrics service started")

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to drain http server: %w", err)
	}
	return nil
}

// buildStore selects the store backend named by the config.
func buildStore(ctx context.Context, cfg config.Config, logger zerolog.Logger) (store.Store, error) {
	switch cfg.StoreBackend() {
	case config.StoreBackendPostgres:
		return store.NewPostgresStore(ctx, cfg.PostgresDSN(), logger)
	case config.StoreBackendRedis:
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.RedisAddr(),
			Password: cfg.RedisPassword(),
			DB:       cfg.RedisDB(),
		}, logger)
	case config.StoreBackendMemory:
		logger.Warn().Msg("using the in-memory store; cached lyrics will not survive a restart")
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend())
	}
}

func newLogger(level string) (zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := zerolog.New(os.Stderr).
		Level(parsed).
		With().
		Timestamp().
		Logger()
	return logger, nil
}
