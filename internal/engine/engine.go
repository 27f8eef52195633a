package engine

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/cipher"
	"github.com/xkilldash9x/cryptograms/internal/cryptarithm"
)

// ErrUnknownCipher is returned for a cipher type with no registered implementation.
var ErrUnknownCipher = errors.New("unknown cipher type")

// -- Interfaces for Dependency Inversion --

// Cipher adapts one cipher to the engine.
type Cipher interface {
	Name() string
	Encrypt(ctx context.Context, plaintext string, key *string, r cipher.Rand) (schemas.CipherResult, error)
}

// Solver finds cryptarithms. *cryptarithm.Solver satisfies it.
type Solver interface {
	Solve(ctx context.Context, r cipher.Rand) (cryptarithm.Solution, cryptarithm.Stats, error)
}

// RandFactory returns a fresh source of randomness for one request.
type RandFactory func() cipher.Rand

// Engine is the cipher dispatch facade. It routes a request to the cipher registered for its
// type and hands each call its own random source. It is safe for concurrent use.
type Engine struct {
	logger   *zap.Logger
	registry map[schemas.CipherType]Cipher
	newRand  RandFactory
}

// Option is a function that configures an Engine.
type Option func(*Engine)

// WithCiphers replaces the default registry. This is primarily used in tests.
func WithCiphers(ciphers map[schemas.CipherType]Cipher) Option {
	return func(e *Engine) {
		e.registry = ciphers
	}
}

// WithRandFactory replaces the per call random source.
func WithRandFactory(f RandFactory) Option {
	return func(e *Engine) {
		if f != nil {
			e.newRand = f
		}
	}
}

// New creates an Engine. words supplies dictionary keys and solver generates cryptarithms; both
// are only required when the default ciphers are registered.
func New(logger *zap.Logger, words cipher.WordPicker, solver Solver, opts ...Option) (*Engine, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:  logger.Named("engine"),
		newRand: NewRand,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		if words == nil {
			return nil, errors.New("engine: word picker cannot be nil")
		}
		if solver == nil {
			return nil, errors.New("engine: cryptarithm solver cannot be nil")
		}
		e.registry = DefaultCiphers(words, solver)
		e.logger.Debug("Default ciphers registered", zap.Int("count", len(e.registry)))
	}
	return e, nil
}

// NewRand returns a PCG generator seeded from the runtime's random source.
func NewRand() cipher.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Supports reports whether t has a registered cipher.
func (e *Engine) Supports(t schemas.CipherType) bool {
	_, ok := e.registry[t]
	return ok
}

// Encrypt runs the cipher selected by req.Type. Only Hill rejects its input, with a
// cipher.Error of kind KeyError; the cryptarithm fails when its search is cut short.
func (e *Engine) Encrypt(ctx context.Context, req schemas.CipherRequest) (schemas.CipherResult, error) {
	c, ok := e.registry[req.Type]
	if !ok {
		return schemas.CipherResult{}, fmt.Errorf("%w: %q", ErrUnknownCipher, req.Type)
	}

	res, err := c.Encrypt(ctx, req.Plaintext, req.Key, e.newRand())
	if err != nil {
		e.logger.Debug("Cipher rejected request", zap.String("cipher", c.Name()), zap.Error(err))
		return schemas.CipherResult{}, fmt.Errorf("%s cipher failed: %w", c.Name(), err)
	}

	e.logger.Debug("Encrypted",
		zap.String("cipher", c.Name()),
		zap.Int("plaintext_len", len(req.Plaintext)),
		zap.Int("ciphertext_len", len(res.Ciphertext)),
	)
	return res, nil
}
