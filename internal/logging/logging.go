// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the cmdly event log: JSON lines appended to a
// dated file under the config directory, with old files pruned by age.
// Log output never goes to the interactive terminal.
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// LEVELS
// =============================================================================

// Level filters which events are written.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[Level]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l Level) String() string { return levelNames[l] }

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// =============================================================================
// EVENT
// =============================================================================

// Event is a single log entry.
type Event struct {
	Timestamp time.Time         `json:"timestamp"`
	Level     string            `json:"level"`
	Component string            `json:"component"`
	Message   string            `json:"message"`
	SessionID string            `json:"session_id"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger appends events to a dated log file. Safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	f       *os.File
	level   Level
	session string
}

// New opens (creating if needed) dir/YYYY-MM-DD.log and prunes dated files
// older than keepDays. Each Logger carries a fresh session id stamped on
// every event.
func New(dir string, level Level, keepDays int) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	pruneOld(dir, keepDays)

	path := filepath.Join(dir, time.Now().Format("2006-01-02")+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &Logger{
		f:       f,
		level:   level,
		session: uuid.NewString(),
	}, nil
}

// Nop returns a logger that discards everything. Useful in tests.
func Nop() *Logger {
	return &Logger{level: LevelError + 1, session: "nop"}
}

// SessionID returns the id stamped on this logger's events.
func (l *Logger) SessionID() string { return l.session }

// Close flushes and closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// Debug logs a debug event.
func (l *Logger) Debug(component, msg string, fields map[string]string) {
	l.log(LevelDebug, component, msg, fields)
}

// Info logs an informational event.
func (l *Logger) Info(component, msg string, fields map[string]string) {
	l.log(LevelInfo, component, msg, fields)
}

// Warn logs a warning event.
func (l *Logger) Warn(component, msg string, fields map[string]string) {
	l.log(LevelWarn, component, msg, fields)
}

// Error logs an error event.
func (l *Logger) Error(component, msg string, fields map[string]string) {
	l.log(LevelError, component, msg, fields)
}

func (l *Logger) log(level Level, component, msg string, fields map[string]string) {
	if level < l.level {
		return
	}

	event := Event{
		Timestamp: time.Now().UTC(),
		Level:     level.String(),
		Component: component,
		Message:   msg,
		SessionID: l.session,
		Fields:    fields,
	}
	line, err := json.Marshal(event)
	if err != nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return
	}
	l.f.Write(append(line, '\n'))
}

// =============================================================================
// RETENTION
// =============================================================================

// pruneOld removes dated log files older than keepDays. Files whose names do
// not parse as dates are left alone.
func pruneOld(dir string, keepDays int) {
	if keepDays <= 0 {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -keepDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".log") {
			continue
		}
		day, err := time.Parse("2006-01-02", strings.TrimSuffix(name, ".log"))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			os.Remove(filepath.Join(dir, name))
		}
	}
}
