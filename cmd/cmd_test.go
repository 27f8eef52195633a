package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/cryptograms/internal/cipher"
	"github.com/xkilldash9x/cryptograms/internal/cryptarithm"
	"github.com/xkilldash9x/cryptograms/internal/store"
)

// writeConfig writes a config file that keeps puzzles in a temporary SQLite database.
func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "logger:\n  level: error\n" +
		"database:\n  driver: sqlite\n  path: " + filepath.Join(dir, "puzzles.db") + "\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes a fresh command tree and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCmd(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		out, err := run(t, "--version")
		require.NoError(t, err)
		assert.Equal(t, Version+"\n", out)
	})

	t.Run("version command", func(t *testing.T) {
		out, err := run(t, "version", "--config", writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t, "cryptograms 0.1.0 (api 0.1)\n", out)
	})

	t.Run("help lists the commands", func(t *testing.T) {
		out, err := run(t)
		require.NoError(t, err)
		for _, name := range []string{"encrypt", "cryptarithm", "serve", "answer", "version"} {
			assert.Contains(t, out, name)
		}
	})

	t.Run("explicit missing config file", func(t *testing.T) {
		_, err := run(t, "version", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error reading config file")
	})

	t.Run("invalid config", func(t *testing.T) {
		_, err := run(t, "version", "--config", writeConfig(t, "solver:\n  batch_size: 1\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load or validate config")
	})
}

func TestEncryptCmd(t *testing.T) {
	cfgPath := writeConfig(t, "")

	t.Run("rot13", func(t *testing.T) {
		out, err := run(t, "encrypt", "--config", cfgPath, "--type", "rot13", "Hello,", "World!")
		require.NoError(t, err)
		assert.Equal(t, "Ciphertext: Uryyb, Jbeyq!\n", out)
	})

	t.Run("hill with key", func(t *testing.T) {
		out, err := run(t, "encrypt", "--config", cfgPath, "-t", "hill", "-k", "abcd", "abcd")
		require.NoError(t, err)
		assert.Equal(t, "Ciphertext: bddn\nKey: abcd\n", out)
	})

	t.Run("hill key error", func(t *testing.T) {
		_, err := run(t, "encrypt", "--config", cfgPath, "-t", "hill", "-k", "aaa", "abcd")
		require.Error(t, err)
		assert.True(t, cipher.IsKeyError(err))
		assert.Contains(t, err.Error(), "Key length must be a perfect square")
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := run(t, "encrypt", "--config", cfgPath, "-t", "enigma", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "enigma")
	})

	t.Run("quotation when no plaintext", func(t *testing.T) {
		out, err := run(t, "encrypt", "--config", cfgPath, "--length", "short")
		require.NoError(t, err)
		m := regexp.MustCompile(`^Ciphertext: (.*)\n$`).FindStringSubmatch(out)
		require.Len(t, m, 2)
		assert.GreaterOrEqual(t, len(m[1]), 60)
		assert.Less(t, len(m[1]), 90)
	})

	t.Run("save then answer", func(t *testing.T) {
		out, err := run(t, "encrypt", "--config", cfgPath, "--save", "-t", "porta", "-k", "fortification",
			"Defend the east wall of the castle")
		require.NoError(t, err)
		assert.Contains(t, out, "Ciphertext: synnjscvrnrlahutukucvryrlany\n")
		m := regexp.MustCompile(`Token: (\S+)`).FindStringSubmatch(out)
		require.Len(t, m, 2)

		out, err = run(t, "answer", "--config", cfgPath, "--token", m[1])
		require.NoError(t, err)
		assert.Equal(t, "Type: porta\nPlaintext: Defend the east wall of the castle\nKey: fortification\n", out)
	})
}

func TestAnswerCmd(t *testing.T) {
	cfgPath := writeConfig(t, "")

	_, err := run(t, "answer", "--config", cfgPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")

	_, err = run(t, "answer", "--config", cfgPath, "--token", "does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCryptarithmCmd(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(words, []byte("# tiny corpus\nsend\nmore\nmoney\n"), 0o600))
	cfgPath := writeConfig(t, "corpus:\n  words_file: "+words+"\n  max_word_length: 5\n")

	out, err := run(t, "cryptarithm", "--config", cfgPath, "--max-batches", "1")
	require.NoError(t, err)
	assert.Regexp(t, `^Puzzle: (send \+ more|more \+ send) = money\n`, out)
	assert.Regexp(t, `Answer: (9567 \+ 1085|1085 \+ 9567) = 10652\n$`, out)

	out, err = run(t, "cryptarithm", "--config", cfgPath, "--hide-answer")
	require.NoError(t, err)
	assert.NotContains(t, out, "Answer")
}

func TestSolverTimeout(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.txt")
	// No pair of these words has a candidate sum, so the search never ends on its own.
	require.NoError(t, os.WriteFile(words, []byte("aaaa\nbbbb\n"), 0o600))
	cfgPath := writeConfig(t, "corpus:\n  words_file: "+words+"\nsolver:\n  timeout: 200ms\n")

	tests := []struct {
		name string
		args []string
	}{
		{"cryptarithm", []string{"cryptarithm", "--config", cfgPath}},
		{"encrypt", []string{"encrypt", "-t", "cryptarithm", "--config", cfgPath, "x"}},
		{"encrypt with save", []string{"encrypt", "-t", "cryptarithm", "--save", "--config", cfgPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			done := make(chan error, 1)
			go func() {
				_, err := run(t, tt.args...)
				done <- err
			}()

			select {
			case err := <-done:
				require.Error(t, err)
				assert.ErrorIs(t, err, cryptarithm.ErrExhaustedSearch)
				assert.ErrorIs(t, err, context.DeadlineExceeded)
			case <-time.After(10 * time.Second):
				t.Fatal("search ignored solver.timeout")
			}
		})
	}
}
