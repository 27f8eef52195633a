package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/cryptograms/api/schemas"
	"github.com/xkilldash9x/cryptograms/internal/config"
	"github.com/xkilldash9x/cryptograms/internal/mocks"
	"github.com/xkilldash9x/cryptograms/internal/store"
)

func TestNewComponents(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite end to end", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.DatabaseCfg.Path = filepath.Join(t.TempDir(), "puzzles.db")

		c, err := NewComponents(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer c.Shutdown()

		rot := schemas.CipherRot13
		plain := "Hello, World!"
		got, err := c.Puzzles.Generate(ctx, GenerateRequest{Plaintext: &plain, Type: &rot})
		require.NoError(t, err)
		assert.Equal(t, "Uryyb, Jbeyq!", got.Ciphertext)
		assert.NotEmpty(t, got.Token)

		rec, err := c.Puzzles.Reveal(ctx, got.Token)
		require.NoError(t, err)
		assert.Equal(t, plain, rec.Plaintext)
		assert.Nil(t, rec.Key)
	})

	t.Run("memory store with the embedded quotations", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.DatabaseCfg.Driver = config.DriverNone

		c, err := NewComponents(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer c.Shutdown()
		assert.IsType(t, &store.MemoryStore{}, c.Store)

		typ := schemas.CipherAristocrat
		got, err := c.Puzzles.Generate(ctx, GenerateRequest{Type: &typ})
		require.NoError(t, err)
		rec, err := c.Puzzles.Reveal(ctx, got.Token)
		require.NoError(t, err)
		assert.Len(t, got.Ciphertext, len(rec.Plaintext))
		lo, hi := schemas.LengthMedium.Bounds()
		assert.GreaterOrEqual(t, len(rec.Plaintext), lo)
		assert.Less(t, len(rec.Plaintext), hi)
		require.NotNil(t, rec.Key)
		assert.Len(t, *rec.Key, 26)
	})

	t.Run("missing word list fails and shuts down", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.DatabaseCfg.Driver = config.DriverNone
		cfg.CorpusCfg.WordsFile = filepath.Join(t.TempDir(), "missing.txt")

		core, logs := observer.New(zapcore.WarnLevel)
		_, err := NewComponents(ctx, cfg, zap.New(core))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load word corpus")
		assert.Equal(t, 1, logs.FilterMessage("Initialization failed, shutting down partially created components.").Len())
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.DatabaseCfg.Driver = "oracle"

		_, err := NewComponents(ctx, cfg, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to initialize puzzle store")
	})
}

func TestInitializeEngine(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		eng, solver, err := InitializeEngine(cfg, zap.NewNop())
		require.NoError(t, err)
		assert.NotNil(t, solver)
		for _, ct := range schemas.CipherTypes {
			assert.True(t, eng.Supports(ct), "missing %s", ct)
		}
	})

	t.Run("reads only the sections it needs", func(t *testing.T) {
		defaults := config.NewDefaultConfig()
		cfg := new(mocks.MockConfig)
		cfg.On("Corpus").Return(defaults.Corpus()).Once()
		cfg.On("Solver").Return(defaults.Solver()).Once()

		_, _, err := InitializeEngine(cfg, zap.NewNop())
		require.NoError(t, err)
		cfg.AssertExpectations(t)
		cfg.AssertNotCalled(t, "Database")
		cfg.AssertNotCalled(t, "Server")
	})

	t.Run("word corpus failure stops before the solver", func(t *testing.T) {
		corpusCfg := config.NewDefaultConfig().Corpus()
		corpusCfg.WordsFile = filepath.Join(t.TempDir(), "missing.txt")
		cfg := new(mocks.MockConfig)
		cfg.On("Corpus").Return(corpusCfg).Once()

		_, _, err := InitializeEngine(cfg, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load word corpus")
		cfg.AssertNotCalled(t, "Solver")
	})
}
