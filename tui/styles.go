package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Title bar
	TitleStyle = lipgloss.NewStyle().
			Reverse(true)
	ClockStyle = lipgloss.NewStyle().
			Reverse(true).
			Bold(true)

	// Cards
	BlackCardStyle   = lipgloss.NewStyle()
	RedCardStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	HighlightStyle   = lipgloss.NewStyle().Reverse(true)
	EmptySlotStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	ColumnLabelStyle = lipgloss.NewStyle().Underline(true)

	// Footer
	MessageStyle = lipgloss.NewStyle().Bold(true)
	PendingStyle = lipgloss.NewStyle().Bold(true)

	// Overlays
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))
	HeadingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))
	HintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
