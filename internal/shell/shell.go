// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package shell runs the interactive read-eval loop: it reads lines with
// history and editing support, hands them to the interpreter pipeline, and
// keeps the session alive across per-line failures.
package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/cmdly/internal/config"
	"github.com/jeranaias/cmdly/internal/executor"
	"github.com/jeranaias/cmdly/internal/history"
	"github.com/jeranaias/cmdly/internal/logging"
	"github.com/jeranaias/cmdly/internal/parser"
	"github.com/jeranaias/cmdly/internal/styles"
)

// =============================================================================
// LINE READER
// =============================================================================

// LineReader wraps liner with a persistent history file, giving the loop
// arrow-key navigation and line editing.
type LineReader struct {
	line        *liner.State
	historyFile string
}

// NewLineReader creates a reader with history loaded from the config
// directory.
func NewLineReader() *LineReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &LineReader{
		line:        line,
		historyFile: filepath.Join(configDir, "line_history"),
	}
	r.loadHistory()
	return r
}

func (r *LineReader) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads one line under the given prompt, recording non-empty input
// in the editing history.
func (r *LineReader) ReadInput(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// saveHistory persists the editing history with owner-only permissions.
func (r *LineReader) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (r *LineReader) Close() {
	r.saveHistory()
	r.line.Close()
}

// =============================================================================
// SHELL
// =============================================================================

// Shell is the interactive interpreter session.
type Shell struct {
	cfg   *config.Config
	exec  *executor.Executor
	log   *logging.Logger
	store *history.Store
	out   io.Writer
}

// New creates a shell. store may be nil when persistent history is disabled.
func New(cfg *config.Config, exec *executor.Executor, log *logging.Logger, store *history.Store, out io.Writer) *Shell {
	return &Shell{
		cfg:   cfg,
		exec:  exec,
		log:   log,
		store: store,
		out:   out,
	}
}

// Run drives the read-eval loop until an exit command, Ctrl+C, or EOF. Line
// failures never end the session; they are reported and the loop continues.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, styles.Welcome())

	reader := NewLineReader()
	defer reader.Close()

	prompt := styles.Prompt.Render(s.cfg.RenderPrompt())
	s.log.Info("shell", "session started", nil)

	for {
		input, err := reader.ReadInput(prompt)
		if err != nil {
			// Ctrl+C and EOF both become a clean exit.
			fmt.Fprintln(s.out)
			s.goodbye()
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if isExit(input) {
			s.goodbye()
			return nil
		}

		ok := s.Eval(input)
		s.record(input, ok)
	}
}

// Eval runs one source line through the lexer, parser, and executor,
// reporting any failure on the console. It returns the line's final status.
func (s *Shell) Eval(line string) bool {
	chains, err := parser.Parse(line)
	if err != nil {
		fmt.Fprintln(s.out, styles.Error.Render(err.Error()))
		s.log.Warn("shell", "line rejected", map[string]string{"line": line, "error": err.Error()})
		return false
	}

	ok, err := s.exec.Run(chains)
	if err != nil {
		fmt.Fprintln(s.out, styles.Error.Render(err.Error()))
		return false
	}
	return ok
}

// record persists the line's outcome when the history store is enabled.
func (s *Shell) record(line string, ok bool) {
	if s.store == nil {
		return
	}
	if err := s.store.Record(line, ok); err != nil {
		s.log.Warn("shell", "failed to record history", map[string]string{"error": err.Error()})
	}
}

func (s *Shell) goodbye() {
	fmt.Fprintln(s.out, "Goodbye! 👋")
	s.log.Info("shell", "session ended", nil)
}

// isExit reports whether the line is an exit request. Matching is
// case-insensitive.
func isExit(line string) bool {
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit")
}
