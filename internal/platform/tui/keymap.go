package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nirbachon-chaos/internal/core"
	"github.com/vovakirdan/nirbachon-chaos/internal/game"
)

// AllyBinding ties a key to an ally id.
type AllyBinding struct {
	AllyID  string
	Binding key.Binding
}

// KeyMap defines the key bindings of the game.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Vote    key.Binding
	Promise key.Binding
	Stuff   key.Binding
	Replay  key.Binding
	Quit    key.Binding
	Allies  []AllyBinding
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc", "back"),
		),
		Vote: key.NewBinding(
			key.WithKeys(" ", "v"),
			key.WithHelp("space", "vote"),
		),
		Promise: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "promise"),
		),
		Stuff: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "ballot stuffing"),
		),
		Replay: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Allies: []AllyBinding{
			{"apa", key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apa"))},
			{"akik", key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "akik"))},
			{"reporter", key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reporter"))},
			{"rajib", key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "rajib"))},
		},
	}
}

// AllyKey returns the help key for an ally, or "" if none is bound.
func (k KeyMap) AllyKey(allyID string) string {
	for _, a := range k.Allies {
		if a.AllyID == allyID {
			return a.Binding.Help().Key
		}
	}
	return ""
}

// phaseHelp implements help.KeyMap for a fixed set of bindings.
type phaseHelp []key.Binding

func (h phaseHelp) ShortHelp() []key.Binding  { return h }
func (h phaseHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h} }

// HelpFor returns the bindings relevant to a phase.
func (k KeyMap) HelpFor(phase game.Phase, modalOpen bool) help.KeyMap {
	switch phase {
	case game.PhaseLobby:
		return phaseHelp{k.Confirm, k.Quit}
	case game.PhaseCharacterSelect:
		return phaseHelp{k.Up, k.Down, k.Confirm, k.Back, k.Quit}
	case game.PhasePlaying:
		if modalOpen {
			return phaseHelp{k.Confirm, k.Back}
		}
		return phaseHelp{k.Vote, k.Promise, k.Stuff, k.Quit}
	default:
		return phaseHelp{k.Replay, k.Quit}
	}
}

// KeyMapper translates Bubble Tea key messages to semantic commands.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper for the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// Map translates a key message to a command. For CommandAlly the second
// result is the ally id.
func (km *KeyMapper) Map(msg tea.KeyMsg) (core.Command, string) {
	k := km.keys

	switch {
	case key.Matches(msg, k.Quit):
		return core.CommandQuit, ""
	case key.Matches(msg, k.Up):
		return core.CommandUp, ""
	case key.Matches(msg, k.Down):
		return core.CommandDown, ""
	case key.Matches(msg, k.Confirm):
		return core.CommandConfirm, ""
	case key.Matches(msg, k.Back):
		return core.CommandBack, ""
	case key.Matches(msg, k.Vote):
		return core.CommandVote, ""
	case key.Matches(msg, k.Promise):
		return core.CommandPromise, ""
	case key.Matches(msg, k.Stuff):
		return core.CommandStuff, ""
	case key.Matches(msg, k.Replay):
		return core.CommandReplay, ""
	}

	for _, a := range k.Allies {
		if key.Matches(msg, a.Binding) {
			return core.CommandAlly, a.AllyID
		}
	}

	return core.CommandNone, ""
}
