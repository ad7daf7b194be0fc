// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package builtin

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/parser"
	"github.com/jeranaias/cmdly/internal/styles"
)

// clearCmd clears the console and re-prints the welcome banner.
type clearCmd struct {
	deps Deps
}

func (c *clearCmd) Meta() command.Meta {
	return command.Meta{
		Name:        "clear",
		Author:      "Lunafy",
		DateCreated: "2025-06-17",
		Description: "Clears the console screen.",
		Help:        "Usage: clear",
	}
}

func (c *clearCmd) Execute(args []string, named parser.NamedArgs) (int, error) {
	out := termenv.NewOutput(c.deps.Out)
	out.ClearScreen()
	c.deps.Log.Info("clear", "console cleared", nil)

	fmt.Fprintln(c.deps.Out, styles.Welcome())
	return 0, nil
}
