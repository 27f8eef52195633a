// Package store keeps the answer behind every generated puzzle so it can be revealed by token.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/config"
)

// ErrNotFound is returned by GetPuzzle for an unknown token.
var ErrNotFound = errors.New("puzzle not found")

// PuzzleStore persists puzzle records keyed by token.
type PuzzleStore interface {
	EnsureSchema(ctx context.Context) error
	SavePuzzle(ctx context.Context, rec schemas.PuzzleRecord) error
	GetPuzzle(ctx context.Context, token string) (schemas.PuzzleRecord, error)
	Close() error
}

// Open connects to the backend selected by cfg.Driver and makes sure the schema exists.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (PuzzleStore, error) {
	var (
		s   PuzzleStore
		err error
	)
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, perr := pgxpool.New(ctx, cfg.URL)
		if perr != nil {
			return nil, fmt.Errorf("failed to create postgres pool: %w", perr)
		}
		s, err = NewPostgresStore(ctx, pool, logger)
		if err != nil {
			pool.Close()
		}
	case config.DriverSQLite:
		s, err = OpenSQLite(ctx, cfg.Path, logger)
	case config.DriverNone:
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.EnsureSchema(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	logger.Info("Puzzle store ready", zap.String("driver", cfg.Driver))
	return s, nil
}
