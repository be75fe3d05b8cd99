package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisConfig holds the connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore is a networked Store backend. SetNX gives the atomic
// insert-if-absent the duplicate-key contract requires.
type RedisStore struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisStore(ctx context.Context, cfg RedisConfig, logger zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	componentLogger := logger.With().Str("component", "RedisStore").Logger()
	componentLogger.Info().Str("redis_address", cfg.Addr).Msg("connected to redis")

	return &RedisStore{
		client: client,
		logger: componentLogger,
	}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StoreError{
			Message: fmt.Sprintf("get failed: %v", err),
			Cause:   ErrCauseBackend,
			Key:     key,
		}
	}
	return value, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value string) error {
	// no expiry: entries live until externally administered
	inserted, err := s.client.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return &StoreError{
			Message: fmt.Sprintf("setnx failed: %v", err),
			Cause:   ErrCauseBackend,
			Key:     key,
		}
	}
	if !inserted {
		return &StoreError{
			Message: "key already present",
			Cause:   ErrCauseDuplicateKey,
			Key:     key,
		}
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return &StoreError{
			Message: fmt.Sprintf("ping failed: %v", err),
			Cause:   ErrCauseBackend,
		}
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.client != nil {
		s.logger.Info().Msg("closing redis connection")
		return s.client.Close()
	}
	return nil
}
