package tui

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Violet
	colorAccent  = lipgloss.Color("#F59E0B") // Amber
	colorSuccess = lipgloss.Color("#22C55E") // Green
	colorError   = lipgloss.Color("#EF4444") // Red
	colorText    = lipgloss.Color("#F1F5F9") // Near-white
	colorTextDim = lipgloss.Color("#94A3B8") // Slate
	colorBar     = lipgloss.Color("#0EA5E9") // Sky
	colorBarBg   = lipgloss.Color("#334155") // Dark slate
	colorChrome  = lipgloss.Color("#1E293B") // Header/footer background
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	questionStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	selectedStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	unselectedStyle = lipgloss.NewStyle().
			Foreground(colorText)

	correctStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Bold(true)

	incorrectStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	chromeStyle = lipgloss.NewStyle().
			Background(colorChrome).
			Padding(0, 2)
)
