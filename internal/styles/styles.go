// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the shared visual styling for cmdly output.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// PALETTE
// =============================================================================

// Cyan - prompt, info, command names
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - errors
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - warnings, disabled features
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// Magenta - fun command tag, chat peers
var Magenta = lipgloss.AdaptiveColor{Light: "#C026D3", Dark: "#E879F9"}

// TextSecondary - de-emphasized text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

// =============================================================================
// SHARED STYLES
// =============================================================================

var (
	// Prompt renders the interactive prompt.
	Prompt = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	// Error renders pipeline and command failures.
	Error = lipgloss.NewStyle().Foreground(Rose)

	// Warning renders non-fatal warnings.
	Warning = lipgloss.NewStyle().Foreground(Amber)

	// Success renders success markers.
	Success = lipgloss.NewStyle().Foreground(Emerald)

	// FunTag renders the [FUN] marker in help output.
	FunTag = lipgloss.NewStyle().Foreground(Magenta)

	// Info renders secondary informational text.
	Info = lipgloss.NewStyle().Foreground(TextSecondary)

	// Banner renders the startup banner.
	Banner = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
)
