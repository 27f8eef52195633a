// File: internal/service/components.go
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/cryptograms/internal/config"
	"github.com/xkilldash9x/cryptograms/internal/cryptarithm"
	"github.com/xkilldash9x/cryptograms/internal/engine"
	"github.com/xkilldash9x/cryptograms/internal/store"
)

// Components holds everything a running server or a puzzle command needs.
// This struct centralizes the lifecycle management of those dependencies.
type Components struct {
	Engine  *engine.Engine
	Solver  *cryptarithm.Solver
	Store   store.PuzzleStore
	Puzzles *PuzzleService

	logger *zap.Logger
}

// NewComponents handles the full dependency injection of the puzzle stack. On failure every
// component created so far is shut down again.
func NewComponents(ctx context.Context, cfg config.Interface, logger *zap.Logger) (*Components, error) {
	components := &Components{logger: logger}

	var initializationErr error
	defer func() {
		if initializationErr != nil {
			logger.Warn("Initialization failed, shutting down partially created components.", zap.Error(initializationErr))
			components.Shutdown()
		}
	}()

	// 1. Engine and corpus
	eng, solver, err := InitializeEngine(cfg, logger)
	if err != nil {
		initializationErr = err
		return nil, initializationErr
	}
	components.Engine, components.Solver = eng, solver
	logger.Debug("Cipher engine initialized.")

	// 2. Store
	st, err := store.Open(ctx, cfg.Database(), logger)
	if err != nil {
		initializationErr = fmt.Errorf("failed to initialize puzzle store: %w", err)
		return nil, initializationErr
	}
	components.Store = st
	logger.Debug("Puzzle store initialized.")

	// 3. Puzzle service
	puzzles, err := NewPuzzleService(eng, InitializeQuotes(cfg.Corpus(), logger), st, logger)
	if err != nil {
		initializationErr = err
		return nil, initializationErr
	}
	components.Puzzles = puzzles

	logger.Info("All puzzle components initialized successfully.")
	return components, nil
}

// Shutdown releases the store. It is safe to call on partially built components.
func (c *Components) Shutdown() {
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			c.logger.Warn("Error closing puzzle store.", zap.Error(err))
		} else {
			c.logger.Debug("Puzzle store closed.")
		}
	}
	c.logger.Info("All puzzle components shut down successfully.")
}
