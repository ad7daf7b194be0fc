// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package lexer converts a raw input line into a finite stream of classified
// tokens for the command interpreter.
//
// Scanning tries an ordered list of patterns at each position; the first
// pattern that matches wins, regardless of match length. Whitespace advances
// the scan position but is never yielded, and the stream always terminates
// with exactly one EndOfInput token. A character no pattern recognizes is a
// fatal lexical error for the line.
package lexer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// =============================================================================
// PATTERNS
// =============================================================================

// pattern pairs a token kind with the regexp that recognizes it.
type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

// patterns is tried in fixed priority order at each scan position. The order
// matters: `&&` must win over a bare word, a flag over a dash-prefixed word,
// and the single-character mismatch catch-all comes last.
var patterns = []pattern{
	{Whitespace, regexp.MustCompile(`^\s+`)},
	{And, regexp.MustCompile(`^&&`)},
	{Or, regexp.MustCompile(`^\|\|`)},
	{Semicolon, regexp.MustCompile(`^;`)},
	{Flag, regexp.MustCompile(`^--?\w+(?:=[^\s'";&|]*)?`)},
	{String, regexp.MustCompile(`^"[^"\\]*(?:\\.[^"\\]*)*"`)},
	{String, regexp.MustCompile(`^'[^'\\]*(?:\\.[^'\\]*)*'`)},
	{Command, regexp.MustCompile(`^[A-Za-z0-9_.:=-]+`)},
	{Mismatch, regexp.MustCompile(`^.`)},
}

// =============================================================================
// LEXICAL ERROR
// =============================================================================

// LexicalError reports a character that matched no recognized pattern.
// Tokenization stops immediately; no partial token stream is salvaged.
type LexicalError struct {
	// Char is the offending character.
	Char rune

	// Pos is the zero-based byte offset of the character in the input line.
	Pos int
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("unexpected character %q at position %d", e.Char, e.Pos)
}

// =============================================================================
// LEXER
// =============================================================================

// Lexer produces tokens lazily from a single input line. A Lexer is
// single-use: create a fresh one per line with New. Lexers created over
// different inputs are fully independent.
type Lexer struct {
	input string
	pos   int
	done  bool
}

// New returns a Lexer over the given input line.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

// Next returns the next token. After the last character is consumed it
// returns a single EndOfInput token; further calls keep returning EndOfInput.
// A mismatched character returns a *LexicalError and poisons the stream.
func (l *Lexer) Next() (Token, error) {
	if l.done {
		return Token{Kind: EndOfInput}, nil
	}

	for l.pos < len(l.input) {
		rest := l.input[l.pos:]

		for _, p := range patterns {
			loc := p.re.FindStringIndex(rest)
			if loc == nil {
				continue
			}

			matched := rest[:loc[1]]

			switch p.kind {
			case Whitespace:
				l.pos += loc[1]
				// Resume pattern matching at the new position.
			case Mismatch:
				l.done = true
				ch, _ := utf8.DecodeRuneInString(matched)
				return Token{}, &LexicalError{Char: ch, Pos: l.pos}
			default:
				tok := Token{Kind: p.kind, Literal: literalFor(p.kind, matched)}
				l.pos += loc[1]
				return tok, nil
			}
			break
		}
	}

	l.done = true
	return Token{Kind: EndOfInput}, nil
}

// literalFor normalizes the matched text for the token kind: quotes are
// stripped from strings (embedded escape sequences are preserved literally,
// not unescaped) and dash markers are stripped from flags.
func literalFor(kind Kind, matched string) string {
	switch kind {
	case String:
		return matched[1 : len(matched)-1]
	case Flag:
		return strings.TrimLeft(matched, "-")
	default:
		return matched
	}
}

// Tokenize scans the whole input eagerly and returns every surfaced token,
// including the terminal EndOfInput.
func Tokenize(input string) ([]Token, error) {
	lx := New(input)
	var toks []Token
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == EndOfInput {
			return toks, nil
		}
	}
}
