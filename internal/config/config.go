// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for cmdly.
//
// Configuration lives in ~/.cmdly/config.toml; a default file is written on
// first run. The loaded Config is an immutable value object handed to the
// executor and shell at construction time - there is no ambient global.
package config

import (
	"bytes"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/cmdly/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete cmdly configuration.
type Config struct {
	Prompt   PromptConfig      `toml:"prompt"`
	Features FeatureConfig     `toml:"features"`
	Aliases  map[string]string `toml:"aliases"`
	AI       AIConfig          `toml:"ai"`
	Chat     ChatConfig        `toml:"chat"`
	History  HistoryConfig     `toml:"history"`
	Logging  LoggingConfig     `toml:"logging"`
}

// PromptConfig templates the interactive prompt. Format may reference
// {emoji} and {username}.
type PromptConfig struct {
	Format string `toml:"format"`
	Emoji  string `toml:"emoji"`
}

// FeatureConfig holds feature toggles.
type FeatureConfig struct {
	// FunCommands gates commands whose metadata marks them as fun. A gated
	// command is skipped with a warning and reported as success.
	FunCommands bool `toml:"fun_commands"`
}

// AIConfig configures the llm command backend.
type AIConfig struct {
	Temperature float64 `toml:"temperature"`
	TimeoutSecs int     `toml:"timeout_secs"`
}

// ChatConfig bounds the chat command.
type ChatConfig struct {
	// MaxMessageBytes caps a single chat frame.
	MaxMessageBytes int `toml:"max_message_bytes"`
	// MaxNameLen caps a peer's display name.
	MaxNameLen int `toml:"max_name_len"`
}

// HistoryConfig configures the command history store.
type HistoryConfig struct {
	Enabled bool `toml:"enabled"`
	// Keep is the number of history rows retained.
	Keep int `toml:"keep"`
}

// LoggingConfig configures the event log.
type LoggingConfig struct {
	Level string `toml:"level"`
	// KeepDays is how many dated log files are retained.
	KeepDays int `toml:"keep_days"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Prompt: PromptConfig{
			Format: "{emoji} {username} > ",
			Emoji:  "⚡",
		},
		Features: FeatureConfig{
			FunCommands: true,
		},
		Aliases: map[string]string{
			"headsortails": "flip",
			"coin":         "flip",
			"cls":          "clear",
			"h":            "help",
			"say":          "echo",
		},
		AI: AIConfig{
			Temperature: 0.7,
			TimeoutSecs: 60,
		},
		Chat: ChatConfig{
			MaxMessageBytes: 4096,
			MaxNameLen:      32,
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    1000,
		},
		Logging: LoggingConfig{
			Level:    "info",
			KeepDays: 7,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the cmdly configuration directory (~/.cmdly).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cmdly"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0o755)
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a TOML configuration file over the defaults, then validates.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	cfg.Validate()
	return cfg, nil
}

// LoadOrInit loads ~/.cmdly/config.toml, writing the default file first when
// none exists yet.
func LoadOrInit() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(dir, "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeDefault(path); err != nil {
			return nil, err
		}
	}
	return Load(path)
}

// writeDefault serializes the default configuration atomically.
func writeDefault(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(Default()); err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0o644)
}

// Validate clamps out-of-range values to sane bounds in place.
func (c *Config) Validate() {
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		c.AI.Temperature = 0.7
	}
	if c.AI.TimeoutSecs <= 0 {
		c.AI.TimeoutSecs = 60
	}
	if c.Chat.MaxMessageBytes <= 0 {
		c.Chat.MaxMessageBytes = 4096
	}
	if c.Chat.MaxNameLen <= 0 {
		c.Chat.MaxNameLen = 32
	}
	if c.History.Keep <= 0 {
		c.History.Keep = 1000
	}
	if c.Logging.KeepDays <= 0 {
		c.Logging.KeepDays = 7
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		c.Logging.Level = "info"
	}
	if c.Prompt.Format == "" {
		c.Prompt.Format = Default().Prompt.Format
	}
	if c.Aliases == nil {
		c.Aliases = map[string]string{}
	}
}

// =============================================================================
// PROMPT RENDERING
// =============================================================================

// RenderPrompt expands the prompt template's {emoji} and {username}
// placeholders.
func (c *Config) RenderPrompt() string {
	prompt := strings.ReplaceAll(c.Prompt.Format, "{emoji}", c.Prompt.Emoji)
	return strings.ReplaceAll(prompt, "{username}", currentUsername())
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	if name := os.Getenv("USERNAME"); name != "" {
		return name
	}
	return "user"
}
