// File: cmd/cryptograms/main.go
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/google/shlex"

	"github.com/xkilldash9x/cryptograms/cmd"
	"github.com/xkilldash9x/cryptograms/internal/observability"
)

const panicLogFile = "panic.log"

const banner = `
  +---------------------------------+
  |  cryptograms                    |
  |  type a command, or exit/quit   |
  +---------------------------------+

`

// Define function variables for dependency injection/mocking in tests.
var (
	osWriteFile = os.WriteFile
	// Allows mocking os.Exit in tests.
	osExit = os.Exit
)

// main is the entry point of the application.
func main() {
	defer handlePanic()

	// Set up a context that listens for interrupt signals (SIGINT, SIGTERM) for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// If arguments are passed, execute the command directly and exit.
	if len(os.Args) > 1 {
		if err := cmd.Execute(ctx); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			if errors.Is(err, context.Canceled) {
				osExit(0)
			} else {
				osExit(1)
			}
		}
		return
	}

	if err := runInteractive(ctx, os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "Error reading from stdin:", err)
		osExit(1)
	}
}

// runInteractive reads one command per line until EOF, exit or quit.
func runInteractive(ctx context.Context, in io.Reader, out, errOut io.Writer) error {
	fmt.Fprint(out, banner)
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, "cryptograms > ")
		if !scanner.Scan() {
			break // Exit on EOF (Ctrl+D)
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		executeInteractiveCommand(ctx, line, out, errOut)
	}

	if err := scanner.Err(); err != nil {
		return err
	}
	fmt.Fprintln(out, "Exiting cryptograms.")
	return nil
}

// executeInteractiveCommand parses and runs the command from the interactive shell. The line is
// split with shell quoting rules, so `encrypt -k "two words" hi` keeps the key whole.
func executeInteractiveCommand(ctx context.Context, line string, out, errOut io.Writer) {
	args, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintln(errOut, "Error: could not parse command line:", err)
		return
	}

	// Create a new, clean command instance for each execution.
	rootCmd := cmd.NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	// Execute the command, capturing panics to avoid crashing the interactive session.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(errOut, "Error: Command panicked: %v\n", r)
		}
	}()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// In interactive mode, we print the error but do not exit the shell.
		fmt.Fprintln(errOut, "Error:", err)
	}
}

// handlePanic writes the stack of an unrecovered panic to panicLogFile.
func handlePanic() {
	if r := recover(); r != nil {
		observability.Sync()

		panicMessage := fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
		if err := osWriteFile(panicLogFile, []byte(panicMessage), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "CRITICAL: Failed to write panic log: %v\n", err)
			fmt.Fprintf(os.Stderr, "Panic details:\n%s\n", panicMessage)
			osExit(1)
			return
		}

		fmt.Fprintf(os.Stderr, "Crashed. Details logged to %s\n", panicLogFile)
		osExit(1)
	}
}
