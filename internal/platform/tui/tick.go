// Package tui provides the Bubble Tea front end for geoquiz: the mode
// menu, the quiz screen, the scoreboard, and the SSH server that serves
// them to remote players.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives the round timer.
type TickMsg struct {
	Time time.Time
	gen  int
}

// tickCmd schedules the next timer tick. gen lets a model drop ticks
// scheduled before a restart.
func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, gen: gen}
	})
}
