// Package tui provides the Bubble Tea integration for the sandbox.
// It handles the terminal UI loop, mouse and key mapping, and drawing the
// engine onto half-block characters.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick. Gen identifies the sandbox
// loop that scheduled it, so a stale tick from a closed sandbox is dropped
// instead of starting a second loop.
type TickMsg struct {
	At  time.Time
	Gen uint64
}

var tickGen atomic.Uint64

// nextTickGen returns a fresh loop identifier.
func nextTickGen() uint64 {
	return tickGen.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 30
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Gen: gen}
	})
}
