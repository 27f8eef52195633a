// File: internal/service/initializers.go
package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/internal/config"
	"github.com/xkilldash9x/cryptograms/internal/corpus"
	"github.com/xkilldash9x/cryptograms/internal/cryptarithm"
	"github.com/xkilldash9x/cryptograms/internal/engine"
)

// InitializeWords loads the word corpus. An empty corpus is an error so the process fails at
// startup instead of on the first keyed request.
func InitializeWords(cfg config.CorpusConfig, logger *zap.Logger) (*corpus.WordList, error) {
	words, err := corpus.LoadWordList(cfg.WordsFile, cfg.MinWordLength, cfg.MaxWordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to load word corpus: %w", err)
	}
	source := cfg.WordsFile
	if source == "" {
		source = "embedded"
	}
	logger.Debug("Word corpus loaded.", zap.String("source", source), zap.Int("words", words.Len()))
	return words, nil
}

// InitializeQuotes defers reading the quotation book until a request first needs one.
func InitializeQuotes(cfg config.CorpusConfig, logger *zap.Logger) *corpus.Lazy[*corpus.QuoteBook] {
	return corpus.NewLazy(func() (*corpus.QuoteBook, error) {
		book, err := corpus.LoadQuoteBook(cfg.QuotesFile)
		if err != nil {
			return nil, err
		}
		logger.Debug("Quote book loaded.", zap.Int("quotes", book.Len()))
		return book, nil
	})
}

// InitializeSolver builds the cryptarithm solver from the solver section of the config.
func InitializeSolver(words cryptarithm.WordSource, cfg config.SolverConfig, logger *zap.Logger) (*cryptarithm.Solver, error) {
	solver, err := cryptarithm.New(words,
		cryptarithm.WithBatchSize(cfg.BatchSize),
		cryptarithm.WithMaxBatches(cfg.MaxBatches),
		cryptarithm.WithTimeout(cfg.Timeout),
		cryptarithm.WithWorkers(cfg.Workers),
		cryptarithm.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cryptarithm solver: %w", err)
	}
	return solver, nil
}

// InitializeEngine loads the word corpus and builds the cipher engine around it. It is what the
// encrypt and cryptarithm commands need without touching a database.
func InitializeEngine(cfg config.Interface, logger *zap.Logger) (*engine.Engine, *cryptarithm.Solver, error) {
	words, err := InitializeWords(cfg.Corpus(), logger)
	if err != nil {
		return nil, nil, err
	}
	solver, err := InitializeSolver(words, cfg.Solver(), logger)
	if err != nil {
		return nil, nil, err
	}
	eng, err := engine.New(logger, words, solver)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create cipher engine: %w", err)
	}
	return eng, solver, nil
}
