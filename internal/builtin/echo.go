// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package builtin

import (
	"fmt"
	"strings"

	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/parser"
)

// echoCmd prints its arguments to the console.
type echoCmd struct {
	deps Deps
}

func (c *echoCmd) Meta() command.Meta {
	return command.Meta{
		Name:        "echo",
		Author:      "Lunafy",
		DateCreated: "2025-06-17",
		Description: "Echoes the provided arguments.",
		Help:        "Usage: echo <message> [options]",
	}
}

func (c *echoCmd) Execute(args []string, named parser.NamedArgs) (int, error) {
	c.deps.Log.Info("echo", "executing echo", map[string]string{
		"args": strings.Join(args, " "),
	})
	if named.Has("verbose") {
		fmt.Fprintf(c.deps.Out, "Echoing: %v\n", args)
	} else {
		fmt.Fprintln(c.deps.Out, strings.Join(args, " "))
	}
	return 0, nil
}
