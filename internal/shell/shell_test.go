// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/cmdly/internal/assist"
	"github.com/jeranaias/cmdly/internal/builtin"
	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/config"
	"github.com/jeranaias/cmdly/internal/executor"
	"github.com/jeranaias/cmdly/internal/history"
	"github.com/jeranaias/cmdly/internal/logging"
)

func newTestShell(t *testing.T, store *history.Store) (*Shell, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := config.Default()
	reg := command.NewRegistry()
	builtin.RegisterAll(reg, builtin.Deps{
		Config:  cfg,
		Log:     logging.Nop(),
		History: store,
		Assist:  assist.NewClient(),
		Out:     &out,
	})
	exec := executor.New(reg, cfg.Aliases, cfg.Features, logging.Nop(), &out)
	return New(cfg, exec, logging.Nop(), store, &out), &out
}

func TestIsExit(t *testing.T) {
	for _, line := range []string{"exit", "quit", "EXIT", "Quit", "eXiT"} {
		if !isExit(line) {
			t.Errorf("isExit(%q) = false", line)
		}
	}
	for _, line := range []string{"exits", "q", "", "exit now"} {
		if isExit(line) {
			t.Errorf("isExit(%q) = true", line)
		}
	}
}

func TestEval_Success(t *testing.T) {
	sh, out := newTestShell(t, nil)

	if !sh.Eval("echo hello world") {
		t.Error("Eval = false, want true")
	}
	if !strings.Contains(out.String(), "hello world") {
		t.Errorf("output = %q", out.String())
	}
}

func TestEval_AliasResolution(t *testing.T) {
	sh, out := newTestShell(t, nil)

	if !sh.Eval("say hi") {
		t.Error("Eval = false, want true")
	}
	if !strings.Contains(out.String(), "hi") {
		t.Errorf("output = %q", out.String())
	}
}

func TestEval_LexicalError(t *testing.T) {
	sh, out := newTestShell(t, nil)

	if sh.Eval("echo @here") {
		t.Error("Eval = true for lexical error")
	}
	if !strings.Contains(out.String(), "unexpected character") {
		t.Errorf("output = %q", out.String())
	}
}

func TestEval_SyntaxError(t *testing.T) {
	sh, out := newTestShell(t, nil)

	if sh.Eval("--flag first") {
		t.Error("Eval = true for syntax error")
	}
	if !strings.Contains(out.String(), "expected command") {
		t.Errorf("output = %q", out.String())
	}
}

func TestEval_CommandNotFound(t *testing.T) {
	sh, out := newTestShell(t, nil)

	if sh.Eval("definitely-not-a-command") {
		t.Error("Eval = true for unknown command")
	}
	if !strings.Contains(out.String(), "command not found") {
		t.Errorf("output = %q", out.String())
	}
}

func TestEval_ChainLastStatus(t *testing.T) {
	sh, out := newTestShell(t, nil)

	// Separators never short-circuit; the last chain decides.
	if !sh.Eval("echo one && echo two; echo three") {
		t.Error("Eval = false, want true")
	}
	got := out.String()
	for _, want := range []string{"one", "two", "three"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %q", want, got)
		}
	}
}

func TestRecord(t *testing.T) {
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"), 100)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	sh, _ := newTestShell(t, store)

	sh.record("echo hi", true)
	sh.record("broken", false)

	entries, err := store.Recent(10, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Line != "broken" || entries[0].OK {
		t.Errorf("newest entry = %+v", entries[0])
	}
}

func TestRecord_NilStore(t *testing.T) {
	sh, _ := newTestShell(t, nil)
	sh.record("echo hi", true) // must not panic
}
