// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package builtin

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/parser"
	"github.com/jeranaias/cmdly/internal/styles"
)

// helpCmd lists the registered commands, or details one of them.
type helpCmd struct {
	deps     Deps
	registry *command.Registry
}

func (c *helpCmd) Meta() command.Meta {
	return command.Meta{
		Name:        "help",
		Author:      "CJ",
		DateCreated: "2025-06-17",
		Description: "Displays help information for available commands.",
		Help:        "Usage: help [command]",
	}
}

func (c *helpCmd) Execute(args []string, named parser.NamedArgs) (int, error) {
	if len(args) > 0 {
		return c.describe(args[0])
	}
	return c.list()
}

// describe prints one command's description and usage.
func (c *helpCmd) describe(name string) (int, error) {
	cmd := c.registry.Get(name)
	if cmd == nil {
		fmt.Fprintln(c.deps.Out, "Command not found: "+strings.ToLower(name))
		c.deps.Log.Error("help", "command not found", map[string]string{"command": name})
		return 0, nil
	}
	meta := cmd.Meta()
	c.deps.Log.Info("help", "showing command help", map[string]string{"command": meta.Name})
	fmt.Fprintf(c.deps.Out, "%s - %s\n", meta.Name, meta.Description)
	if meta.Help != "" {
		fmt.Fprintln(c.deps.Out, meta.Help)
	}
	return 0, nil
}

// list prints every command with its description, names padded to a column.
func (c *helpCmd) list() (int, error) {
	cmds := c.registry.All()

	width := 0
	for _, cmd := range cmds {
		if w := runewidth.StringWidth(cmd.Meta().Name); w > width {
			width = w
		}
	}

	fmt.Fprintln(c.deps.Out, "Available commands:")
	fmt.Fprintln(c.deps.Out)
	for _, cmd := range cmds {
		meta := cmd.Meta()
		line := fmt.Sprintf("  %s - %s", runewidth.FillRight(meta.Name, width), meta.Description)
		if meta.Fun {
			line += " - " + styles.FunTag.Render("[FUN COMMAND]")
		}
		fmt.Fprintln(c.deps.Out, line)
	}
	fmt.Fprintln(c.deps.Out)
	fmt.Fprintln(c.deps.Out, "Use 'help [command]' for more info.")
	return 0, nil
}
