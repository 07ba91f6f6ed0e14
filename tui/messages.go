package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives sweeping, the clock and message timeouts
type TickMsg struct {
	Time time.Time
}

// TickCmd returns a command that sends a TickMsg after interval
func TickCmd(interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		time.Sleep(interval)
		return TickMsg{Time: time.Now()}
	}
}
