// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package command defines the contract every built-in command implements and
// the static registry the executor resolves names against.
//
// The registry is populated once at startup from a compiled-in list; there is
// no reflective discovery and no filesystem scanning.
package command

import (
	"sort"
	"strings"

	"github.com/jeranaias/cmdly/internal/parser"
)

// =============================================================================
// COMMAND CONTRACT
// =============================================================================

// Meta describes a command. The authorship fields are display-only; Fun marks
// a novelty command subject to the fun_commands feature toggle.
type Meta struct {
	Name        string
	Author      string
	DateCreated string
	Description string
	Help        string
	Fun         bool
}

// Command is one externally implemented unit of work, identified by name.
//
// Execute receives the invocation's positional arguments in order and its
// named arguments. A zero exit code with a nil error means success; any other
// exit code is a reported, non-fatal failure, and returning an error is
// equally acceptable.
type Command interface {
	Meta() Meta
	Execute(args []string, named parser.NamedArgs) (int, error)
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry maps case-normalized command names to their implementations.
type Registry struct {
	commands map[string]Command
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command under its case-normalized metadata name. A later
// registration under the same name replaces the earlier one.
func (r *Registry) Register(cmd Command) {
	r.commands[strings.ToLower(cmd.Meta().Name)] = cmd
}

// Get retrieves a command by name, case-insensitively. Returns nil when no
// command is registered under the name.
func (r *Registry) Get(name string) Command {
	return r.commands[strings.ToLower(name)]
}

// All returns every registered command sorted by name.
func (r *Registry) All() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool {
		return cmds[i].Meta().Name < cmds[j].Meta().Name
	})
	return cmds
}
