package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInteractive(t *testing.T) {
	t.Setenv("CRYPTOGRAMS_DATABASE_DRIVER", "none")

	in := strings.NewReader("\nversion\nnosuchcommand\nexit\nversion\n")
	var out, errOut bytes.Buffer

	require.NoError(t, runInteractive(context.Background(), in, &out, &errOut))

	assert.Equal(t, 1, strings.Count(out.String(), "cryptograms 0.1.0 (api 0.1)"), "commands after exit must not run")
	assert.Contains(t, out.String(), "Exiting cryptograms.")
	assert.Contains(t, errOut.String(), "nosuchcommand")
}

func TestRunInteractive_Quoting(t *testing.T) {
	t.Setenv("CRYPTOGRAMS_DATABASE_DRIVER", "none")

	in := strings.NewReader(`encrypt -t porta -k "fort ification" "Defend the east wall of the castle"` + "\n" +
		`encrypt "unterminated` + "\n")
	var out, errOut bytes.Buffer

	require.NoError(t, runInteractive(context.Background(), in, &out, &errOut))

	assert.Contains(t, out.String(), "Ciphertext: synnjscvrnrlahutukucvryrlany\n")
	assert.Contains(t, out.String(), "Key: fortification\n")
	assert.Contains(t, errOut.String(), "could not parse command line")
}

func TestRunInteractive_EOF(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runInteractive(context.Background(), strings.NewReader(""), &out, &out))
	assert.Contains(t, out.String(), "cryptograms > ")
}

func TestHandlePanic(t *testing.T) {
	var (
		written  []byte
		exitCode = -1
	)
	osWriteFile = func(name string, data []byte, perm os.FileMode) error {
		written = data
		return nil
	}
	osExit = func(code int) { exitCode = code }
	t.Cleanup(func() {
		osWriteFile = os.WriteFile
		osExit = os.Exit
	})

	func() {
		defer handlePanic()
		panic("boom")
	}()

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, string(written), "panic: boom")

	t.Run("log write failure still exits", func(t *testing.T) {
		exitCode = -1
		osWriteFile = func(string, []byte, os.FileMode) error { return errors.New("read-only") }
		func() {
			defer handlePanic()
			panic("boom again")
		}()
		assert.Equal(t, 1, exitCode)
	})
}
