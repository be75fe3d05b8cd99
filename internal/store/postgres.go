package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the Postgres SQLSTATE for a primary-key conflict.
const uniqueViolation = "23505"

// PostgresStore is the durable Store backend. The schema is one table:
// track id to lyrics, with uniqueness enforced by the primary key.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgresStore(ctx context.Context, dsn string, logger zerolog.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}

	s := &PostgresStore{
		pool:   pool,
		logger: logger.With().Str("component", "PostgresStore").Logger(),
	}

	if err := s.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	s.logger.Info().Msg("connected to postgres")
	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS lyrics (
			track_id TEXT PRIMARY KEY,
			lyrics TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure lyrics schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		`SELECT lyrics FROM lyrics WHERE track_id = $1`, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StoreError{
			Message: fmt.Sprintf("select failed: %v", err),
			Cause:   ErrCauseBackend,
			Key:     key,
		}
	}
	return value, true, nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, value string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO lyrics (track_id, lyrics) VALUES ($1, $2)`, key, value)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &StoreError{
			Message: "key already present",
			Cause:   ErrCauseDuplicateKey,
			Key:     key,
		}
	}
	return &StoreError{
		Message: fmt.Sprintf("insert failed: %v", err),
		Cause:   ErrCauseBackend,
		Key:     key,
	}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return &StoreError{
			Message: fmt.Sprintf("ping failed: %v", err),
			Cause:   ErrCauseBackend,
		}
	}
	return nil
}

func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}
