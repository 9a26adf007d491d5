// Package tui provides the Bubble Tea integration for idle-snake.
// It drives the watch loop, maps keys to simulation controls and serves
// watchers over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen identifies the
// watcher that scheduled it, so a stale tick cannot start a second loop.
type TickMsg struct {
	At  time.Time
	Gen int
}

// tickCmd schedules the next tick at the given rate.
func tickCmd(tickRate, gen int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
