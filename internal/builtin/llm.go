// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package builtin

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/parser"
)

// spinnerFrames is the braille spinner cycle shown while a query is in flight.
var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// llmCmd sends one-shot prompts to the assistant endpoint.
type llmCmd struct {
	deps Deps
}

func (c *llmCmd) Meta() command.Meta {
	return command.Meta{
		Name:        "llm",
		Author:      "CJ",
		DateCreated: "2025-06-17",
		Description: "Hack Club AI quick queries",
		Help:        "Usage:\n  llm info\n  llm <your prompt>",
		Fun:         true,
	}
}

func (c *llmCmd) Execute(args []string, named parser.NamedArgs) (int, error) {
	if len(args) == 0 {
		fmt.Fprintln(c.deps.Out, c.Meta().Help)
		c.deps.Log.Warn("llm", "no arguments provided", nil)
		return 0, nil
	}

	if strings.EqualFold(args[0], "info") {
		fmt.Fprintln(c.deps.Out, c.deps.Assist.Model())
		return 0, nil
	}

	prompt := strings.Join(args, " ")
	c.deps.Log.Info("llm", "assistant query", map[string]string{"prompt": prompt})

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(c.deps.Config.AI.TimeoutSecs)*time.Second)
	defer cancel()

	stop := c.startSpinner()
	content, err := c.deps.Assist.Query(ctx, prompt, c.deps.Config.AI.Temperature)
	stop()

	if err != nil {
		fmt.Fprintf(c.deps.Out, "Error during request: %v\n", err)
		c.deps.Log.Error("llm", "query failed", map[string]string{"error": err.Error()})
		return 1, nil
	}

	// Always start the answer on its own line.
	fmt.Fprintln(c.deps.Out, strings.TrimSpace(content))
	fmt.Fprintln(c.deps.Out)
	return 0, nil
}

// startSpinner animates a thinking indicator until the returned stop function
// is called. It stays quiet when output is not a terminal.
func (c *llmCmd) startSpinner() func() {
	f, ok := c.deps.Out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := 0; ; i = (i + 1) % len(spinnerFrames) {
			select {
			case <-done:
				// Clear the spinner line and move to a fresh one.
				fmt.Fprint(f, "\r\033[K\n")
				return
			case <-time.After(100 * time.Millisecond):
				fmt.Fprintf(f, "\r%c thinking… ", spinnerFrames[i])
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
