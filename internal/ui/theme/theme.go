package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Success = lipgloss.Color("#22C55E") // Green
	Error   = lipgloss.Color("#F43F5E") // Rose
)

// Typography
var (
	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)
)

// States
var (
	Saved = lipgloss.NewStyle().
		Foreground(Success)

	Skipped = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)
