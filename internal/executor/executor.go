// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package executor resolves parsed command chains against the registry and
// runs them, classifying each outcome as a boolean status.
//
// Failure contract: a missing command always propagates as an error to the
// caller; anything that goes wrong inside a command - a nonzero exit code, a
// returned error, even a panic - is contained here and reported as a false
// status, never as an escaping error.
package executor

import (
	"fmt"
	"io"

	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/config"
	"github.com/jeranaias/cmdly/internal/logging"
	"github.com/jeranaias/cmdly/internal/parser"
	"github.com/jeranaias/cmdly/internal/styles"
)

// =============================================================================
// ERRORS
// =============================================================================

// CommandNotFoundError reports a name that resolved to no registered command.
type CommandNotFoundError struct {
	Name string
}

func (e *CommandNotFoundError) Error() string {
	return "command not found: " + e.Name
}

// =============================================================================
// EXECUTOR
// =============================================================================

// Executor dispatches invocations. The alias table and feature flags are
// supplied at construction and never mutated afterwards.
type Executor struct {
	registry *command.Registry
	aliases  map[string]string
	features config.FeatureConfig
	log      *logging.Logger
	out      io.Writer
}

// New creates an executor writing diagnostics to out.
func New(registry *command.Registry, aliases map[string]string, features config.FeatureConfig, log *logging.Logger, out io.Writer) *Executor {
	return &Executor{
		registry: registry,
		aliases:  aliases,
		features: features,
		log:      log,
		out:      out,
	}
}

// ResolveAlias maps an invocation name to its canonical command name,
// returning the input unchanged when no alias exists. Pure lookup.
func (e *Executor) ResolveAlias(name string) string {
	if canonical, ok := e.aliases[name]; ok {
		return canonical
	}
	return name
}

// Run executes the chains in encounter order. There is no short-circuiting:
// every chain runs regardless of earlier failures, and the returned status
// reflects only the last chain executed. Running no chains at all is vacuous
// success: Run(nil) returns true.
//
// A CommandNotFoundError from any chain propagates immediately.
func (e *Executor) Run(chains []parser.Chain) (bool, error) {
	lastStatus := true
	for _, chain := range chains {
		if chain.Kind != parser.ChainCommand {
			fmt.Fprintf(e.out, "Unsupported chain type: %s\n", chain.Kind)
			e.log.Warn("executor", "unsupported chain type", map[string]string{"kind": chain.Kind})
			continue
		}
		status, err := e.ExecuteCommand(chain.Cmd)
		if err != nil {
			return false, err
		}
		lastStatus = status
	}
	return lastStatus, nil
}

// ExecuteCommand resolves and runs one invocation.
//
// The status is true for exit code 0 and for a feature-gated fun command
// (skipped entirely, counted as a successful no-op). A nonzero exit code or
// an error from the command yields false with exactly one diagnostic. A
// missing command returns a *CommandNotFoundError.
func (e *Executor) ExecuteCommand(inv parser.Invocation) (bool, error) {
	name := e.ResolveAlias(inv.Name)

	// Looked up fresh on every invocation; no caching.
	cmd := e.registry.Get(name)
	if cmd == nil {
		e.log.Error("executor", "command not found", map[string]string{"command": name})
		return false, &CommandNotFoundError{Name: name}
	}

	if cmd.Meta().Fun && !e.features.FunCommands {
		fmt.Fprintln(e.out, styles.Warning.Render(
			"Fun commands are currently disabled. Enable them in ~/.cmdly/config.toml ([features] fun_commands)."))
		e.log.Warn("executor", "fun command blocked by feature flag", map[string]string{"command": name})
		return true, nil
	}

	code, err := e.invoke(cmd, inv)
	if err != nil {
		e.log.Error("executor", "command failed", map[string]string{"command": name, "error": err.Error()})
		fmt.Fprintln(e.out, styles.Error.Render(fmt.Sprintf("Error running command '%s': %v", name, err)))
		return false, nil
	}
	if code != 0 {
		e.log.Error("executor", "command returned nonzero exit code",
			map[string]string{"command": name, "code": fmt.Sprint(code)})
		fmt.Fprintln(e.out, styles.Error.Render(fmt.Sprintf("Command '%s' failed with exit code %d", name, code)))
		return false, nil
	}
	return true, nil
}

// invoke calls the command, converting a panic into an ordinary error so it
// never crosses the executor boundary.
func (e *Executor) invoke(cmd command.Command, inv parser.Invocation) (code int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cmd.Execute(inv.Args, inv.Named)
}
