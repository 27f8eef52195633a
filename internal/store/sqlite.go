package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/xkilldash9x/cryptograms/api/schemas"
)

const (
	sqliteCreatePuzzles = `
	CREATE TABLE IF NOT EXISTS puzzles (
		token       TEXT PRIMARY KEY,
		cipher_type TEXT NOT NULL,
		plaintext   TEXT NOT NULL,
		cipher_key  TEXT,
		author      TEXT,
		created_at  TEXT NOT NULL
	);
	`
	sqliteInsertPuzzle = `
	INSERT INTO puzzles (token, cipher_type, plaintext, cipher_key, author, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	sqliteSelectPuzzle = `
	SELECT token, cipher_type, plaintext, cipher_key, author, created_at
	FROM puzzles
	WHERE token = ?
	`
)

// SQLiteStore keeps puzzles in a local SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection serializes writers and keeps ":memory:" databases to a single instance.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	return &SQLiteStore{db: db, log: logger.Named("store")}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteCreatePuzzles); err != nil {
		return fmt.Errorf("failed to create puzzles table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SavePuzzle(ctx context.Context, rec schemas.PuzzleRecord) error {
	_, err := s.db.ExecContext(ctx, sqliteInsertPuzzle,
		rec.Token, string(rec.Type), rec.Plaintext, rec.Key, rec.Author,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert puzzle %s: %w", rec.Token, err)
	}
	s.log.Debug("Puzzle saved", zap.String("token", rec.Token), zap.String("type", string(rec.Type)))
	return nil
}

func (s *SQLiteStore) GetPuzzle(ctx context.Context, token string) (schemas.PuzzleRecord, error) {
	var (
		rec       schemas.PuzzleRecord
		typeStr   string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, sqliteSelectPuzzle, token).Scan(
		&rec.Token, &typeStr, &rec.Plaintext, &rec.Key, &rec.Author, &createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return schemas.PuzzleRecord{}, fmt.Errorf("%w: %s", ErrNotFound, token)
	}
	if err != nil {
		return schemas.PuzzleRecord{}, fmt.Errorf("failed to query puzzle %s: %w", token, err)
	}

	rec.Type = schemas.CipherType(typeStr)
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return schemas.PuzzleRecord{}, fmt.Errorf("puzzle %s has a malformed timestamp: %w", token, err)
	}
	return rec, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
