package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/parley/internal/dialogue"
)

// KeyMap holds the player's own bindings. Every other key press is handed to
// the dialogues.
type KeyMap struct {
	Quit    key.Binding
	Restart key.Binding
	Help    key.Binding
	Back    key.Binding
	Copy    key.Binding
}

// DefaultKeyMap returns the player bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		Restart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open script"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy text"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Restart, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Restart, k.Back, k.Copy},
		{k.Help, k.Quit},
	}
}

// DialogueKey maps a terminal key press to the key name used in scripts.
func DialogueKey(msg tea.KeyMsg) dialogue.Key {
	s := msg.String()
	switch s {
	case " ", "space":
		return dialogue.KeySpace
	case "enter":
		return dialogue.KeyEnter
	}
	return dialogue.Key(strings.ToLower(s))
}
