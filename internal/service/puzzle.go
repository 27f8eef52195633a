// File: internal/service/puzzle.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/corpus"
	"github.com/xkilldash9x/cryptograms/internal/engine"
	"github.com/xkilldash9x/cryptograms/internal/store"
)

// Encrypter is the slice of *engine.Engine the service needs.
type Encrypter interface {
	Encrypt(ctx context.Context, req schemas.CipherRequest) (schemas.CipherResult, error)
}

// GenerateRequest asks for a new puzzle. Every field is optional: the type defaults to
// identity, the length to medium, and a quotation of that length is used when no plaintext
// is given.
type GenerateRequest struct {
	Plaintext *string             `json:"plaintext,omitempty"`
	Length    *schemas.Length     `json:"length,omitempty"`
	Type      *schemas.CipherType `json:"type,omitempty"`
	Key       *string             `json:"key,omitempty"`
}

// PuzzleService generates cryptograms and remembers their answers.
type PuzzleService struct {
	engine   Encrypter
	quotes   *corpus.Lazy[*corpus.QuoteBook]
	store    store.PuzzleStore
	logger   *zap.Logger
	newRand  engine.RandFactory
	newToken func() string
	now      func() time.Time
}

// PuzzleOption configures a PuzzleService.
type PuzzleOption func(*PuzzleService)

// WithTokenSource replaces uuid token generation.
func WithTokenSource(f func() string) PuzzleOption {
	return func(s *PuzzleService) { s.newToken = f }
}

// WithClock replaces time.Now.
func WithClock(f func() time.Time) PuzzleOption {
	return func(s *PuzzleService) { s.now = f }
}

// WithQuoteRand replaces the random source used to pick quotations.
func WithQuoteRand(f engine.RandFactory) PuzzleOption {
	return func(s *PuzzleService) { s.newRand = f }
}

// NewPuzzleService wires the service. quotes is only consulted when a request has no plaintext.
func NewPuzzleService(enc Encrypter, quotes *corpus.Lazy[*corpus.QuoteBook], st store.PuzzleStore, logger *zap.Logger, opts ...PuzzleOption) (*PuzzleService, error) {
	if enc == nil {
		return nil, errors.New("puzzle service: encrypter cannot be nil")
	}
	if quotes == nil {
		return nil, errors.New("puzzle service: quote source cannot be nil")
	}
	if st == nil {
		return nil, errors.New("puzzle service: store cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &PuzzleService{
		engine:   enc,
		quotes:   quotes,
		store:    st,
		logger:   logger.Named("puzzles"),
		newRand:  engine.NewRand,
		newToken: uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Generate encrypts a plaintext, or a quotation when none is given, and stores the answer under
// a fresh token. For a cryptarithm the plaintext is ignored and the numeric solution is stored.
func (s *PuzzleService) Generate(ctx context.Context, req GenerateRequest) (*schemas.Cryptogram, error) {
	typ := schemas.CipherIdentity
	if req.Type != nil {
		typ = *req.Type
	}
	length := schemas.LengthMedium
	if req.Length != nil {
		length = *req.Length
	}

	rec := schemas.PuzzleRecord{
		Token:     s.newToken(),
		Type:      typ,
		CreatedAt: s.now(),
	}

	// The cryptarithm ignores the plaintext; its search budget is enforced by the solver.
	if typ != schemas.CipherCryptarithm {
		if req.Plaintext != nil {
			rec.Plaintext = *req.Plaintext
		} else {
			q, err := s.fetchQuote(length)
			if err != nil {
				return nil, err
			}
			rec.Plaintext, rec.Author = q.Text, q.Author
		}
	}

	res, err := s.engine.Encrypt(ctx, schemas.CipherRequest{Plaintext: rec.Plaintext, Type: typ, Key: req.Key})
	if err != nil {
		return nil, err
	}

	if typ == schemas.CipherCryptarithm && res.Key != nil {
		rec.Plaintext = *res.Key
	} else {
		rec.Key = res.Key
	}

	if err := s.store.SavePuzzle(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save puzzle: %w", err)
	}
	s.logger.Info("Puzzle generated", zap.String("token", rec.Token), zap.String("type", string(typ)))

	return &schemas.Cryptogram{
		Ciphertext: res.Ciphertext,
		Type:       typ,
		Length:     length,
		Author:     rec.Author,
		Token:      rec.Token,
	}, nil
}

// Reveal returns the stored answer for token, or an error wrapping store.ErrNotFound.
func (s *PuzzleService) Reveal(ctx context.Context, token string) (schemas.PuzzleRecord, error) {
	rec, err := s.store.GetPuzzle(ctx, token)
	if err != nil {
		return schemas.PuzzleRecord{}, err
	}
	return rec, nil
}

func (s *PuzzleService) fetchQuote(length schemas.Length) (corpus.Quote, error) {
	book, err := s.quotes.Get()
	if err != nil {
		return corpus.Quote{}, fmt.Errorf("failed to load quotations: %w", err)
	}
	return book.Fetch(length, s.newRand())
}
