// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lexer

// =============================================================================
// TOKEN KINDS
// =============================================================================

// Kind classifies a lexical token.
type Kind int

const (
	// Command is a bare word: a command name or an unquoted argument.
	Command Kind = iota

	// String is a quoted argument with the surrounding quotes stripped.
	String

	// Flag is a `-` or `--` option with the dash markers stripped.
	Flag

	// And is the `&&` separator.
	And

	// Or is the `||` separator.
	Or

	// Semicolon is the `;` separator.
	Semicolon

	// EndOfInput terminates every token stream exactly once.
	EndOfInput

	// Whitespace is consumed during scanning and never surfaced.
	Whitespace

	// Mismatch marks a character no other pattern recognizes.
	Mismatch
)

var kindNames = map[Kind]string{
	Command:    "COMMAND",
	String:     "STRING",
	Flag:       "FLAG",
	And:        "AND",
	Or:         "OR",
	Semicolon:  "SEMICOLON",
	EndOfInput: "EOF",
	Whitespace: "WHITESPACE",
	Mismatch:   "MISMATCH",
}

// String returns the kind's display name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsSeparator reports whether the kind separates command chains.
func (k Kind) IsSeparator() bool {
	return k == And || k == Or || k == Semicolon
}

// =============================================================================
// TOKEN
// =============================================================================

// Token is a minimal lexical unit: a classified kind and its literal text.
// Tokens are immutable values.
type Token struct {
	Kind    Kind
	Literal string
}
