// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parser turns a token stream into an ordered sequence of command
// chains.
//
// Grammar, in rule-application priority order:
//
//	program   := chain (separator chain)* EOF
//	separator := AND | OR | SEMICOLON
//	chain     := command
//	command   := COMMAND (flag | positional)*
//
// Separators are recognized and consumed but their distinction is discarded:
// every parsed chain executes unconditionally in encounter order. That is
// deliberate, not an oversight.
package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jeranaias/cmdly/internal/lexer"
)

// =============================================================================
// INVOCATION MODEL
// =============================================================================

// NamedArgs maps a named-argument key to its value: a string when the
// argument carried a value, or the boolean true for a bare flag. Keys never
// carry leading dash markers.
type NamedArgs map[string]any

// Str returns the string value for key, if key is set to a string.
func (n NamedArgs) Str(key string) (string, bool) {
	s, ok := n[key].(string)
	return s, ok
}

// Has reports whether key is set at all: bare flags are stored as true, and
// a flag with an explicit value counts as set as well.
func (n NamedArgs) Has(key string) bool {
	_, ok := n[key]
	return ok
}

// Invocation is one parsed command: its name, positional arguments in
// encounter order, and named arguments.
type Invocation struct {
	Name  string
	Args  []string
	Named NamedArgs
}

// ChainCommand is the only chain kind the current grammar produces. Other
// kinds are reserved.
const ChainCommand = "COMMAND"

// Chain is a tagged wrapper around one invocation.
type Chain struct {
	Kind string
	Cmd  Invocation
}

// =============================================================================
// SYNTAX ERROR
// =============================================================================

// SyntaxError reports a grammar violation, naming the unexpected token kind.
type SyntaxError struct {
	Got lexer.Kind
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected command, got %s", e.Got)
}

// =============================================================================
// PARSER
// =============================================================================

// Parser consumes a lexer's token stream until EndOfInput.
type Parser struct {
	lx  *lexer.Lexer
	cur lexer.Token
}

// New creates a parser over the given lexer and primes the first token.
// Lexical errors surface here and from Parse.
func New(lx *lexer.Lexer) (*Parser, error) {
	p := &Parser{lx: lx}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// Parse consumes the whole stream and returns the parsed chains in order.
// An empty line yields no chains and no error.
func (p *Parser) Parse() ([]Chain, error) {
	var chains []Chain
	for p.cur.Kind != lexer.EndOfInput {
		inv, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		chains = append(chains, Chain{Kind: ChainCommand, Cmd: inv})

		// The separator advances parsing but is retained nowhere.
		if p.cur.Kind.IsSeparator() {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	return chains, nil
}

// parseCommand parses one command and its argument tail. The tail ends at a
// separator or EndOfInput.
func (p *Parser) parseCommand() (Invocation, error) {
	if p.cur.Kind != lexer.Command {
		return Invocation{}, &SyntaxError{Got: p.cur.Kind}
	}
	inv := Invocation{
		Name:  p.cur.Literal,
		Named: NamedArgs{},
	}
	if err := p.advance(); err != nil {
		return Invocation{}, err
	}

	for !p.cur.Kind.IsSeparator() && p.cur.Kind != lexer.EndOfInput {
		switch p.cur.Kind {
		case lexer.Flag:
			if err := p.bindFlag(&inv); err != nil {
				return Invocation{}, err
			}
		case lexer.Command, lexer.String:
			// Inline key=value takes precedence over positional
			// classification.
			if key, val, ok := strings.Cut(p.cur.Literal, "="); ok {
				inv.Named[key] = val
			} else {
				inv.Args = append(inv.Args, p.cur.Literal)
			}
			if err := p.advance(); err != nil {
				return Invocation{}, err
			}
		default:
			return inv, nil
		}
	}
	return inv, nil
}

// bindFlag records one flag token as a named argument. A flag carrying an
// inline =value binds immediately; otherwise the following Command or String
// token is consumed as the value, and absent one the flag is boolean true.
func (p *Parser) bindFlag(inv *Invocation) error {
	flag := p.cur.Literal
	if key, val, ok := strings.Cut(flag, "="); ok {
		inv.Named[key] = val
		return p.advance()
	}

	if err := p.advance(); err != nil {
		return err
	}
	if p.cur.Kind == lexer.Command || p.cur.Kind == lexer.String {
		inv.Named[flag] = p.cur.Literal
		return p.advance()
	}
	// Separator, another flag, or EndOfInput: the token is not consumed.
	inv.Named[flag] = true
	return nil
}

// Parse is the package-level convenience: lex and parse one input line.
func Parse(line string) ([]Chain, error) {
	p, err := New(lexer.New(line))
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// =============================================================================
// CANONICAL FORM
// =============================================================================

// wordSafe reports whether s re-tokenizes as a single bare word with no
// inline = reclassification.
func wordSafe(s string) bool {
	if s == "" || strings.Contains(s, "=") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '.', r == ':', r == '-':
		default:
			return false
		}
	}
	return true
}

// inlineSafe reports whether a named value can ride in a --key=value tail.
func inlineSafe(s string) bool {
	return s != "" && !strings.ContainsAny(s, " \t'\";&|")
}

// Canonical re-serializes the invocation so that re-parsing it yields an
// equivalent invocation: name, then string-valued named arguments (sorted),
// then positionals, then bare boolean flags. Boolean flags go last because a
// bare flag would otherwise capture the following token as its value.
func (inv Invocation) Canonical() string {
	parts := []string{inv.Name}

	keys := make([]string, 0, len(inv.Named))
	for k := range inv.Named {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var boolFlags []string
	for _, k := range keys {
		switch v := inv.Named[k].(type) {
		case string:
			if inlineSafe(v) {
				parts = append(parts, "--"+k+"="+v)
			} else {
				parts = append(parts, "--"+k, `"`+v+`"`)
			}
		case bool:
			if v {
				boolFlags = append(boolFlags, "--"+k)
			}
		}
	}

	for _, a := range inv.Args {
		if wordSafe(a) {
			parts = append(parts, a)
		} else {
			parts = append(parts, `"`+a+`"`)
		}
	}

	parts = append(parts, boolFlags...)
	return strings.Join(parts, " ")
}
