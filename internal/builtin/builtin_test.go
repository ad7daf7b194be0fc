// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package builtin

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeranaias/cmdly/internal/assist"
	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/config"
	"github.com/jeranaias/cmdly/internal/history"
	"github.com/jeranaias/cmdly/internal/logging"
	"github.com/jeranaias/cmdly/internal/parser"
)

func testDeps(t *testing.T) (Deps, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return Deps{
		Config: config.Default(),
		Log:    logging.Nop(),
		Assist: assist.NewClient(),
		Out:    &out,
	}, &out
}

func named(pairs ...any) parser.NamedArgs {
	n := parser.NamedArgs{}
	for i := 0; i < len(pairs); i += 2 {
		n[pairs[i].(string)] = pairs[i+1]
	}
	return n
}

// =============================================================================
// REGISTRATION
// =============================================================================

func TestRegisterAll(t *testing.T) {
	deps, _ := testDeps(t)
	reg := command.NewRegistry()
	RegisterAll(reg, deps)

	for _, name := range []string{"echo", "clear", "help", "flip", "history", "chat", "llm"} {
		if reg.Get(name) == nil {
			t.Errorf("command %q not registered", name)
		}
	}
}

// =============================================================================
// ECHO
// =============================================================================

func TestEcho(t *testing.T) {
	deps, out := testDeps(t)
	cmd := &echoCmd{deps: deps}

	code, err := cmd.Execute([]string{"hello", "world"}, named())
	if err != nil || code != 0 {
		t.Fatalf("Execute = %d, %v", code, err)
	}
	if got := out.String(); got != "hello world\n" {
		t.Errorf("output = %q", got)
	}
}

func TestEcho_Verbose(t *testing.T) {
	deps, out := testDeps(t)
	cmd := &echoCmd{deps: deps}

	if _, err := cmd.Execute([]string{"hi"}, named("verbose", true)); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "Echoing:") {
		t.Errorf("output = %q", out.String())
	}
}

// =============================================================================
// FLIP
// =============================================================================

func TestFlip(t *testing.T) {
	deps, out := testDeps(t)
	cmd := &flipCmd{deps: deps}

	if !cmd.Meta().Fun {
		t.Error("flip must be marked fun")
	}
	code, err := cmd.Execute(nil, named())
	if err != nil || code != 0 {
		t.Fatalf("Execute = %d, %v", code, err)
	}
	got := out.String()
	if !strings.Contains(got, "Heads") && !strings.Contains(got, "Tails") {
		t.Errorf("output = %q", got)
	}
}

// =============================================================================
// HELP
// =============================================================================

func TestHelp_List(t *testing.T) {
	deps, out := testDeps(t)
	reg := command.NewRegistry()
	RegisterAll(reg, deps)

	help := reg.Get("help")
	code, err := help.Execute(nil, named())
	if err != nil || code != 0 {
		t.Fatalf("Execute = %d, %v", code, err)
	}

	got := out.String()
	for _, want := range []string{"Available commands:", "echo", "Simulate a coin flip", "[FUN COMMAND]", "help [command]"} {
		if !strings.Contains(got, want) {
			t.Errorf("listing missing %q:\n%s", want, got)
		}
	}
}

func TestHelp_Describe(t *testing.T) {
	deps, out := testDeps(t)
	reg := command.NewRegistry()
	RegisterAll(reg, deps)

	help := reg.Get("help")
	if _, err := help.Execute([]string{"echo"}, named()); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if !strings.Contains(got, "echo - Echoes") || !strings.Contains(got, "Usage: echo") {
		t.Errorf("describe output = %q", got)
	}
}

func TestHelp_Unknown(t *testing.T) {
	deps, out := testDeps(t)
	reg := command.NewRegistry()
	RegisterAll(reg, deps)

	help := reg.Get("help")
	code, err := help.Execute([]string{"bogus"}, named())
	if err != nil || code != 0 {
		t.Fatalf("Execute = %d, %v", code, err)
	}
	if !strings.Contains(out.String(), "Command not found: bogus") {
		t.Errorf("output = %q", out.String())
	}
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory_Disabled(t *testing.T) {
	deps, out := testDeps(t)
	cmd := &historyCmd{deps: deps}

	code, err := cmd.Execute(nil, named())
	if err != nil || code != 0 {
		t.Fatalf("Execute = %d, %v", code, err)
	}
	if !strings.Contains(out.String(), "History is disabled.") {
		t.Errorf("output = %q", out.String())
	}
}

func TestHistory_ListAndFilter(t *testing.T) {
	deps, out := testDeps(t)
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"), 100)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	deps.History = store
	cmd := &historyCmd{deps: deps}

	store.Record("echo one", true)
	store.Record("bad command", false)

	if _, err := cmd.Execute(nil, named()); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "echo one") || !strings.Contains(got, "bad command") {
		t.Errorf("listing = %q", got)
	}

	out.Reset()
	if _, err := cmd.Execute(nil, named("failed", true)); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); strings.Contains(got, "echo one") || !strings.Contains(got, "bad command") {
		t.Errorf("failed filter = %q", got)
	}
}

func TestHistory_BadLimit(t *testing.T) {
	deps, out := testDeps(t)
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"), 100)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	deps.History = store
	cmd := &historyCmd{deps: deps}

	code, err := cmd.Execute(nil, named("limit", "zero"))
	if err != nil {
		t.Fatal(err)
	}
	if code != 1 {
		t.Errorf("code = %d, want 1", code)
	}
	if !strings.Contains(out.String(), "Invalid limit") {
		t.Errorf("output = %q", out.String())
	}
}

// =============================================================================
// CHAT ARGUMENT VALIDATION
// =============================================================================

func TestChat_ArgValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"too few args", []string{"host"}, "Usage:"},
		{"bad mode", []string{"dance", "9999"}, "Invalid mode"},
		{"bad host port", []string{"host", "nope"}, "Invalid port number."},
		{"bad join addr", []string{"join", "noport"}, "Invalid address"},
		{"bad join port", []string{"join", "127.0.0.1:x"}, "Invalid port number."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, out := testDeps(t)
			cmd := &chatCmd{deps: deps}

			code, err := cmd.Execute(tt.args, named())
			if err != nil {
				t.Fatal(err)
			}
			if code != 1 {
				t.Errorf("code = %d, want 1", code)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want substring %q", out.String(), tt.want)
			}
		})
	}
}

// =============================================================================
// LLM
// =============================================================================

func TestLLM_Usage(t *testing.T) {
	deps, out := testDeps(t)
	cmd := &llmCmd{deps: deps}

	code, err := cmd.Execute(nil, named())
	if err != nil || code != 0 {
		t.Fatalf("Execute = %d, %v", code, err)
	}
	if !strings.Contains(out.String(), "llm <your prompt>") {
		t.Errorf("output = %q", out.String())
	}
}

func TestLLM_Info(t *testing.T) {
	deps, out := testDeps(t)
	cmd := &llmCmd{deps: deps}

	code, err := cmd.Execute([]string{"info"}, named())
	if err != nil || code != 0 {
		t.Fatalf("Execute = %d, %v", code, err)
	}
	if !strings.Contains(out.String(), assist.DefaultModel) {
		t.Errorf("output = %q", out.String())
	}
}
