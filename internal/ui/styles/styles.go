// Package styles provides shared lipgloss styles for terminal output.
//
// This package centralizes color definitions so sync summaries, lookup
// results and diagnostics render consistently.
package styles

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors used throughout the CLI output
var (
	// Primary is the main accent color (cyan/teal)
	Primary color.Color = lipgloss.Color("62")

	// Accent is the highlight color for matched text (pink)
	Accent color.Color = lipgloss.Color("212")

	// Success is used for committed and pushed outcomes (green)
	Success color.Color = lipgloss.Color("82")

	// Error is used for failed outcomes (red)
	Error color.Color = lipgloss.Color("196")

	// Muted is used for unchanged artifacts and missing entries (gray)
	Muted color.Color = lipgloss.Color("240")

	// Normal is the standard text color (light gray)
	Normal color.Color = lipgloss.Color("252")
)

// Common styles
var (
	// Bold applies bold formatting
	Bold = lipgloss.NewStyle().Bold(true)

	// PrimaryStyle applies the primary color
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)

	// AccentStyle applies the accent color with bold
	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// SuccessStyle applies the success color
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// ErrorStyle applies the error color
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle applies the muted color
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)

	// NormalStyle applies the normal text color
	NormalStyle = lipgloss.NewStyle().Foreground(Normal)
)
