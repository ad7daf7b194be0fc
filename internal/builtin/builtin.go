// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package builtin implements the compiled-in cmdly commands and registers
// them with the command registry at startup.
package builtin

import (
	"io"

	"github.com/jeranaias/cmdly/internal/assist"
	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/config"
	"github.com/jeranaias/cmdly/internal/history"
	"github.com/jeranaias/cmdly/internal/logging"
)

// Deps carries the shared services commands draw on. History may be nil when
// the history store is disabled.
type Deps struct {
	Config  *config.Config
	Log     *logging.Logger
	History *history.Store
	Assist  *assist.Client
	Out     io.Writer
}

// RegisterAll registers every built-in command.
func RegisterAll(reg *command.Registry, deps Deps) {
	reg.Register(&echoCmd{deps: deps})
	reg.Register(&clearCmd{deps: deps})
	reg.Register(&helpCmd{deps: deps, registry: reg})
	reg.Register(&flipCmd{deps: deps})
	reg.Register(&historyCmd{deps: deps})
	reg.Register(&chatCmd{deps: deps})
	reg.Register(&llmCmd{deps: deps})
}
