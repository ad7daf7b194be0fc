// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package builtin

import (
	"fmt"
	"math/rand"

	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/parser"
)

// flipCmd simulates a coin flip.
type flipCmd struct {
	deps Deps
}

func (c *flipCmd) Meta() command.Meta {
	return command.Meta{
		Name:        "flip",
		Author:      "Lunafy",
		DateCreated: "2025-06-17",
		Description: "Simulate a coin flip",
		Help:        "Usage: flip",
		Fun:         true,
	}
}

func (c *flipCmd) Execute(args []string, named parser.NamedArgs) (int, error) {
	choice := "Heads"
	if rand.Intn(2) == 1 {
		choice = "Tails"
	}
	fmt.Fprintln(c.deps.Out, "The coin landed on: "+choice)
	c.deps.Log.Info("flip", "coin flip result", map[string]string{"result": choice})
	return 0, nil
}
