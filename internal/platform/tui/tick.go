// Package tui runs the 2048 game in a terminal with Bubble Tea, locally or
// over SSH. It maps keys to actions, drives the tick loop and records results.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game step.
type TickMsg time.Time

// tickCmd returns a command that sends a TickMsg at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
