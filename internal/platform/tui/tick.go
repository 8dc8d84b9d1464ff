// Package tui provides the Bubble Tea presentation layer for the game.
// It maps keys to controller commands, listens for controller changes and
// renders the controller's status. It never mutates game state itself.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// voteMarkerLifetime is how long a "+150" marker stays on screen.
const voteMarkerLifetime = 800 * time.Millisecond

// ChangeMsg is sent when the controller reports a change.
type ChangeMsg struct{}

// markerExpiredMsg removes a vote marker.
type markerExpiredMsg struct {
	id int
}

// waitForChange returns a command that blocks until the controller signals
// a change. It yields nil once the channel is closed, which ends the loop.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		if _, ok := <-ch; !ok {
			return nil
		}
		return ChangeMsg{}
	}
}

// expireMarker returns a command that retires marker id after its lifetime.
func expireMarker(id int) tea.Cmd {
	return tea.Tick(voteMarkerLifetime, func(time.Time) tea.Msg {
		return markerExpiredMsg{id: id}
	})
}
