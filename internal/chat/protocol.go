// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the client-server LAN chat behind the chat
// command. Peers exchange newline-delimited JSON frames over plain TCP; the
// first line a client sends is its display name, everything after is
// message text.
package chat

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/cmdly/internal/styles"
)

// SystemSender names frames originated by the server itself.
const SystemSender = "System"

// Frame is one chat message on the wire.
type Frame struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Encode renders the frame as a newline-terminated JSON line.
func (f Frame) Encode() ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// DecodeFrame parses one wire line.
func DecodeFrame(line []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(line, &f); err != nil {
		return Frame{}, fmt.Errorf("malformed chat frame: %w", err)
	}
	return f, nil
}

var (
	timestampStyle = lipgloss.NewStyle().Foreground(styles.Cyan)
	senderStyle    = lipgloss.NewStyle().Foreground(styles.Emerald)
	systemStyle    = lipgloss.NewStyle().Foreground(styles.TextSecondary)
)

// Render formats a frame for terminal display with a local timestamp.
func (f Frame) Render() string {
	ts := timestampStyle.Render("[" + time.Now().Format("15:04:05") + "]")
	if f.Sender == SystemSender {
		return ts + " " + systemStyle.Render(f.Message)
	}
	return fmt.Sprintf("%s %s: %s", ts, senderStyle.Render(f.Sender), f.Message)
}
