package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/api/schemas"
)

// DBPool is an interface that abstracts the pgxpool.Pool to allow for mocking in tests.
type DBPool interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

const (
	pgCreatePuzzles = `
        CREATE TABLE IF NOT EXISTS puzzles (
            token       TEXT PRIMARY KEY,
            cipher_type TEXT NOT NULL,
            plaintext   TEXT NOT NULL,
            cipher_key  TEXT,
            author      TEXT,
            created_at  TIMESTAMPTZ NOT NULL
        );
    `
	pgInsertPuzzle = `
        INSERT INTO puzzles (token, cipher_type, plaintext, cipher_key, author, created_at)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	pgSelectPuzzle = `
        SELECT token, cipher_type, plaintext, cipher_key, author, created_at
        FROM puzzles
        WHERE token = $1;
    `
)

// PostgresStore provides a PostgreSQL implementation of PuzzleStore.
type PostgresStore struct {
	pool DBPool
	log  *zap.Logger
}

// NewPostgresStore creates a new store instance and verifies the connection.
func NewPostgresStore(ctx context.Context, pool DBPool, logger *zap.Logger) (*PostgresStore, error) {
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{
		pool: pool,
		log:  logger.Named("store"),
	}, nil
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, pgCreatePuzzles); err != nil {
		return fmt.Errorf("failed to create puzzles table: %w", err)
	}
	return nil
}

func (s *PostgresStore) SavePuzzle(ctx context.Context, rec schemas.PuzzleRecord) error {
	_, err := s.pool.Exec(ctx, pgInsertPuzzle,
		rec.Token, string(rec.Type), rec.Plaintext, rec.Key, rec.Author, rec.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert puzzle %s: %w", rec.Token, err)
	}
	s.log.Debug("Puzzle saved", zap.String("token", rec.Token), zap.String("type", string(rec.Type)))
	return nil
}

func (s *PostgresStore) GetPuzzle(ctx context.Context, token string) (schemas.PuzzleRecord, error) {
	var (
		rec     schemas.PuzzleRecord
		typeStr string
	)
	err := s.pool.QueryRow(ctx, pgSelectPuzzle, token).Scan(
		&rec.Token, &typeStr, &rec.Plaintext, &rec.Key, &rec.Author, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return schemas.PuzzleRecord{}, fmt.Errorf("%w: %s", ErrNotFound, token)
	}
	if err != nil {
		return schemas.PuzzleRecord{}, fmt.Errorf("failed to query puzzle %s: %w", token, err)
	}
	rec.Type = schemas.CipherType(typeStr)
	return rec, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
