// cmdly - an interactive line-oriented command interpreter.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeranaias/cmdly/internal/assist"
	"github.com/jeranaias/cmdly/internal/builtin"
	"github.com/jeranaias/cmdly/internal/command"
	"github.com/jeranaias/cmdly/internal/config"
	"github.com/jeranaias/cmdly/internal/executor"
	"github.com/jeranaias/cmdly/internal/history"
	"github.com/jeranaias/cmdly/internal/logging"
	"github.com/jeranaias/cmdly/internal/shell"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "cmdly:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	cfg, err := config.LoadOrInit()
	if err != nil {
		return err
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	log, err := logging.New(filepath.Join(configDir, "logs"),
		logging.ParseLevel(cfg.Logging.Level), cfg.Logging.KeepDays)
	if err != nil {
		// A broken log directory should not keep the interpreter from
		// starting.
		log = logging.Nop()
	}
	defer log.Close()

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(filepath.Join(configDir, "history.db"), cfg.History.Keep)
		if err != nil {
			log.Warn("main", "history disabled", map[string]string{"error": err.Error()})
			store = nil
		} else {
			defer store.Close()
		}
	}

	registry := command.NewRegistry()
	builtin.RegisterAll(registry, builtin.Deps{
		Config:  cfg,
		Log:     log,
		History: store,
		Assist:  assist.NewClient(),
		Out:     os.Stdout,
	})

	exec := executor.New(registry, cfg.Aliases, cfg.Features, log, os.Stdout)
	return shell.New(cfg, exec, log, store, os.Stdout).Run()
}
