// File: internal/mocks/mocks.go
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/config"
)

// -- Deterministic Randomness --

// StepRand is a predictable stand-in for *rand.Rand. IntN(n) returns Next % n and then
// increments Next, so a fresh StepRand yields 0, 1, 2, ... reduced modulo n. Shuffle runs a
// Fisher-Yates pass driven by IntN. It is safe for concurrent use.
type StepRand struct {
	mu   sync.Mutex
	Next int
}

// IntN implements the cipher.Rand contract.
func (s *StepRand) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.Next % n
	s.Next++
	return v
}

// Shuffle implements the cipher.Rand contract.
func (s *StepRand) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, s.IntN(i+1))
	}
}

// FixedRand always returns the same value from IntN, reduced modulo n. Its Shuffle is a no-op.
type FixedRand int

func (f FixedRand) IntN(n int) int                     { return int(f) % n }
func (f FixedRand) Shuffle(n int, swap func(i, j int)) {}

// -- Config Mock --

// MockConfig mocks the config.Interface.
type MockConfig struct {
	mock.Mock
}

// --- Getters ---

func (m *MockConfig) Logger() config.LoggerConfig {
	args := m.Called()
	return args.Get(0).(config.LoggerConfig)
}

func (m *MockConfig) Database() config.DatabaseConfig {
	args := m.Called()
	return args.Get(0).(config.DatabaseConfig)
}

func (m *MockConfig) Corpus() config.CorpusConfig {
	args := m.Called()
	return args.Get(0).(config.CorpusConfig)
}

func (m *MockConfig) Solver() config.SolverConfig {
	args := m.Called()
	return args.Get(0).(config.SolverConfig)
}

func (m *MockConfig) Server() config.ServerConfig {
	args := m.Called()
	return args.Get(0).(config.ServerConfig)
}

// --- Setters ---

func (m *MockConfig) SetSolverMaxBatches(n int) {
	m.Called(n)
}

func (m *MockConfig) SetSolverTimeout(d time.Duration) {
	m.Called(d)
}

func (m *MockConfig) SetServerListen(addr string) {
	m.Called(addr)
}

// -- Puzzle Store Mock --

// MockPuzzleStore mocks the store.PuzzleStore interface.
type MockPuzzleStore struct {
	mock.Mock
}

func (m *MockPuzzleStore) EnsureSchema(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockPuzzleStore) SavePuzzle(ctx context.Context, rec schemas.PuzzleRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockPuzzleStore) GetPuzzle(ctx context.Context, token string) (schemas.PuzzleRecord, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return schemas.PuzzleRecord{}, args.Error(1)
	}
	return args.Get(0).(schemas.PuzzleRecord), args.Error(1)
}

func (m *MockPuzzleStore) Close() error {
	return m.Called().Error(0)
}
