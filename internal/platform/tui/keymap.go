package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-derby/internal/core"
)

// KeyMap defines the race controls.
type KeyMap struct {
	Play       key.Binding
	Pause      key.Binding
	Stop       key.Binding
	Live       key.Binding
	Debug      key.Binding
	Table      key.Binding
	Restart    key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Play, k.Pause, k.Stop, k.Live, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Play, k.Pause, k.Stop, k.Restart},
		{k.Live, k.Debug, k.Table, k.Screenshot, k.Quit},
	}
}

// DefaultKeyMap returns the default race bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Play: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "play"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Stop: key.NewBinding(
			key.WithKeys("s", "esc"),
			key.WithHelp("s", "stop"),
		),
		Live: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "live"),
		),
		Debug: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "debug"),
		),
		Table: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "standings"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a race action. Screenshot is not an
// action and maps to ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Play):
		return core.ActionPlay
	case key.Matches(msg, k.Pause):
		return core.ActionPause
	case key.Matches(msg, k.Stop):
		return core.ActionStop
	case key.Matches(msg, k.Live):
		return core.ActionLive
	case key.Matches(msg, k.Debug):
		return core.ActionDebug
	case key.Matches(msg, k.Table):
		return core.ActionTable
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	}
	return core.ActionNone
}
