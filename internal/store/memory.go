package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/xkilldash9x/cryptograms/api/schemas"
)

// MemoryStore keeps puzzles for the life of the process. It backs the "none" driver.
type MemoryStore struct {
	mu      sync.RWMutex
	puzzles map[string]schemas.PuzzleRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{puzzles: make(map[string]schemas.PuzzleRecord)}
}

func (m *MemoryStore) EnsureSchema(context.Context) error { return nil }

func (m *MemoryStore) SavePuzzle(_ context.Context, rec schemas.PuzzleRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.puzzles[rec.Token]; exists {
		return fmt.Errorf("puzzle %s already exists", rec.Token)
	}
	m.puzzles[rec.Token] = rec
	return nil
}

func (m *MemoryStore) GetPuzzle(_ context.Context, token string) (schemas.PuzzleRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.puzzles[token]
	if !ok {
		return schemas.PuzzleRecord{}, fmt.Errorf("%w: %s", ErrNotFound, token)
	}
	return rec, nil
}

func (m *MemoryStore) Close() error { return nil }
