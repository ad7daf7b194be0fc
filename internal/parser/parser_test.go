// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jeranaias/cmdly/internal/lexer"
)

// =============================================================================
// CHAIN PARSING
// =============================================================================

func TestParse_SingleCommand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Invocation
	}{
		{
			name:  "name only",
			input: "clear",
			want:  Invocation{Name: "clear", Named: NamedArgs{}},
		},
		{
			name:  "positionals in order",
			input: "echo one two three",
			want: Invocation{
				Name:  "echo",
				Args:  []string{"one", "two", "three"},
				Named: NamedArgs{},
			},
		},
		{
			name:  "inline flag value and positional",
			input: "cmd --opt=value pos1",
			want: Invocation{
				Name:  "cmd",
				Args:  []string{"pos1"},
				Named: NamedArgs{"opt": "value"},
			},
		},
		{
			name:  "bare flag consumes following word",
			input: "cmd --flag value",
			want: Invocation{
				Name:  "cmd",
				Named: NamedArgs{"flag": "value"},
			},
		},
		{
			name:  "bare flag consumes following string",
			input: `chat host 5555 --name "CJ"`,
			want: Invocation{
				Name:  "chat",
				Args:  []string{"host", "5555"},
				Named: NamedArgs{"name": "CJ"},
			},
		},
		{
			name:  "trailing bare flag is boolean true",
			input: "echo hi --verbose",
			want: Invocation{
				Name:  "echo",
				Args:  []string{"hi"},
				Named: NamedArgs{"verbose": true},
			},
		},
		{
			name:  "bare flag before separator is boolean true",
			input: "echo --verbose",
			want: Invocation{
				Name:  "echo",
				Named: NamedArgs{"verbose": true},
			},
		},
		{
			name:  "bare flag followed by flag is boolean true",
			input: "cmd --a --b=1",
			want: Invocation{
				Name:  "cmd",
				Named: NamedArgs{"a": true, "b": "1"},
			},
		},
		{
			name:  "bare word with = becomes named",
			input: "cmd key=value pos",
			want: Invocation{
				Name:  "cmd",
				Args:  []string{"pos"},
				Named: NamedArgs{"key": "value"},
			},
		},
		{
			name:  "quoted string with = becomes named",
			input: `cmd "key=a b c"`,
			want: Invocation{
				Name:  "cmd",
				Named: NamedArgs{"key": "a b c"},
			},
		},
		{
			name:  "value split once on first =",
			input: "cmd --opt=a=b",
			want: Invocation{
				Name:  "cmd",
				Named: NamedArgs{"opt": "a=b"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chains, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.input, err)
			}
			if len(chains) != 1 {
				t.Fatalf("Parse(%q) yielded %d chains, want 1", tc.input, len(chains))
			}
			if chains[0].Kind != ChainCommand {
				t.Errorf("chain kind = %q, want %q", chains[0].Kind, ChainCommand)
			}
			if !reflect.DeepEqual(chains[0].Cmd, tc.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.input, chains[0].Cmd, tc.want)
			}
		})
	}
}

func TestParse_Separators(t *testing.T) {
	// All separator kinds are interchangeable for sequencing: the chains are
	// collected unconditionally, in order, with the distinction discarded.
	inputs := []string{
		"cmdA && cmdB",
		"cmdA ; cmdB",
		"cmdA || cmdB",
	}

	for _, input := range inputs {
		chains, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", input, err)
		}
		if len(chains) != 2 {
			t.Fatalf("Parse(%q) yielded %d chains, want 2", input, len(chains))
		}
		if chains[0].Cmd.Name != "cmdA" || chains[1].Cmd.Name != "cmdB" {
			t.Errorf("Parse(%q) order = %q, %q", input, chains[0].Cmd.Name, chains[1].Cmd.Name)
		}
	}
}

func TestParse_MixedSeparators(t *testing.T) {
	chains, err := Parse("a 1 && b --x=2 ; c || d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var names []string
	for _, c := range chains {
		names = append(names, c.Cmd.Name)
	}
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("chain names = %v, want %v", names, want)
	}
}

func TestParse_EmptyLine(t *testing.T) {
	chains, err := Parse("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chains) != 0 {
		t.Errorf("Parse(\"\") yielded %d chains, want 0", len(chains))
	}
}

// =============================================================================
// ERROR CASES
// =============================================================================

func TestParse_SyntaxError(t *testing.T) {
	tests := []struct {
		input   string
		wantGot lexer.Kind
	}{
		{"--flag", lexer.Flag},
		{`"quoted"`, lexer.String},
		{"a && --b", lexer.Flag},
		{"; a", lexer.Semicolon},
	}

	for _, tc := range tests {
		_, err := Parse(tc.input)
		if err == nil {
			t.Errorf("Parse(%q) succeeded, want syntax error", tc.input)
			continue
		}
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Errorf("Parse(%q) error type %T, want *SyntaxError", tc.input, err)
			continue
		}
		if synErr.Got != tc.wantGot {
			t.Errorf("Parse(%q) unexpected kind = %v, want %v", tc.input, synErr.Got, tc.wantGot)
		}
	}
}

func TestParse_LexicalErrorPropagates(t *testing.T) {
	_, err := Parse("echo @oops")
	var lexErr *lexer.LexicalError
	if !errors.As(err, &lexErr) {
		t.Fatalf("Parse error = %v (%T), want *lexer.LexicalError", err, err)
	}
}

// =============================================================================
// CANONICAL ROUND TRIP
// =============================================================================

func TestCanonical_RoundTrip(t *testing.T) {
	inputs := []string{
		"echo hello --flag",
		"cmd --opt=value pos1 pos2",
		`echo "Hello, World!" --verbose`,
		"chat host 5555 --name CJ",
		`llm "explain quantum computing in a haiku"`,
		"cmd key=value other --a --b=2",
		`cmd --name "two words" tail`,
	}

	for _, input := range inputs {
		first, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", input, err)
		}
		if len(first) != 1 {
			t.Fatalf("Parse(%q) yielded %d chains, want 1", input, len(first))
		}

		canonical := first[0].Cmd.Canonical()
		second, err := Parse(canonical)
		if err != nil {
			t.Fatalf("Parse(canonical %q) error: %v", canonical, err)
		}
		if len(second) != 1 {
			t.Fatalf("canonical %q yielded %d chains, want 1", canonical, len(second))
		}
		if !reflect.DeepEqual(first[0].Cmd, second[0].Cmd) {
			t.Errorf("round trip mismatch for %q:\n first: %+v\ncanon: %q\nsecond: %+v",
				input, first[0].Cmd, canonical, second[0].Cmd)
		}
	}
}

// =============================================================================
// NAMED ARG ACCESSORS
// =============================================================================

func TestNamedArgs_Accessors(t *testing.T) {
	n := NamedArgs{"name": "CJ", "verbose": true}

	if v, ok := n.Str("name"); !ok || v != "CJ" {
		t.Errorf("Str(name) = (%q, %v)", v, ok)
	}
	if _, ok := n.Str("verbose"); ok {
		t.Error("Str(verbose) reported a string for a boolean flag")
	}
	if !n.Has("verbose") || !n.Has("name") {
		t.Error("Has() = false for set keys")
	}
	if n.Has("missing") {
		t.Error("Has(missing) = true")
	}
}
