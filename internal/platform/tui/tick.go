// Package tui runs a registered game inside a Bubble Tea program.
// It owns the frame clock, maps keys to actions and paints the game's
// screen buffer with lipgloss colors.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a command that sends a tick after one frame interval.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(frameInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// frameInterval converts a tick rate to a frame duration.
func frameInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = 60
	}
	return time.Second / time.Duration(tickRate)
}

// elapsed returns the seconds between two ticks. The first tick has no
// predecessor and counts as one nominal frame.
func elapsed(prev, now time.Time, tickRate int) float64 {
	if prev.IsZero() || now.Before(prev) {
		return frameInterval(tickRate).Seconds()
	}
	return now.Sub(prev).Seconds()
}
