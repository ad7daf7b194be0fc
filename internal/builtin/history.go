// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package builtin

import (
	"fmt"
	"strconv"

	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/parser"
	"github.com/jeranaias/cmdly/internal/styles"
)

// historyCmd reports previously executed lines and their outcomes.
type historyCmd struct {
	deps Deps
}

func (c *historyCmd) Meta() command.Meta {
	return command.Meta{
		Name:        "history",
		Author:      "CJ",
		DateCreated: "2025-06-17",
		Description: "Shows previously executed lines and their outcomes.",
		Help:        "Usage: history [--limit=N] [--failed]",
	}
}

func (c *historyCmd) Execute(args []string, named parser.NamedArgs) (int, error) {
	if c.deps.History == nil {
		fmt.Fprintln(c.deps.Out, "History is disabled.")
		return 0, nil
	}

	limit := 20
	if raw, ok := named.Str("limit"); ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			fmt.Fprintln(c.deps.Out, "Invalid limit: "+raw)
			return 1, nil
		}
		limit = n
	}

	entries, err := c.deps.History.Recent(limit, named.Has("failed"))
	if err != nil {
		return 1, err
	}
	if len(entries) == 0 {
		fmt.Fprintln(c.deps.Out, "No history yet.")
		return 0, nil
	}

	for _, e := range entries {
		mark := styles.Success.Render("✓")
		if !e.OK {
			mark = styles.Error.Render("✗")
		}
		fmt.Fprintf(c.deps.Out, "%s %s  %s\n",
			mark, styles.Info.Render(e.RanAt.Local().Format("2006-01-02 15:04:05")), e.Line)
	}
	return 0, nil
}
