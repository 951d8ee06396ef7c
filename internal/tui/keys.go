package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/krishnakanthb13/typer-tui/internal/session"
)

type typingKeyMap struct {
	Restart    key.Binding
	DeleteWord key.Binding
	Back       key.Binding
}

func (k typingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.DeleteWord, k.Back}
}

func (k typingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var typingKeys = typingKeyMap{
	Restart:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
	DeleteWord: key.NewBinding(key.WithKeys("ctrl+w", "ctrl+h", "alt+backspace"), key.WithHelp("ctrl+w", "delete word")),
	Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
}

type menuKeyMap struct {
	Move   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func (k menuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Select, k.Quit}
}

func (k menuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var menuKeys = menuKeyMap{
	Move:   key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↓↑→", "move")),
	Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
}

type resultsKeyMap struct {
	Move    key.Binding
	Select  key.Binding
	Restart key.Binding
	Menu    key.Binding
}

func (k resultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Select, k.Restart, k.Menu}
}

func (k resultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var resultsKeys = resultsKeyMap{
	Move:    key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←→", "move")),
	Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Restart: key.NewBinding(key.WithKeys("r", "ctrl+r"), key.WithHelp("r", "restart")),
	Menu:    key.NewBinding(key.WithKeys("m", "esc"), key.WithHelp("m", "menu")),
}

var quitKey = key.NewBinding(key.WithKeys("ctrl+c"))

// sessionKeys translates a terminal key event into session key events.
// Pasted or batched runes yield one event per rune.
func sessionKeys(msg tea.KeyMsg) []session.Key {
	switch {
	case key.Matches(msg, typingKeys.Restart):
		return []session.Key{{Kind: session.KeyRestart}}
	case key.Matches(msg, typingKeys.Back):
		return []session.Key{{Kind: session.KeyEscape}}
	case key.Matches(msg, typingKeys.DeleteWord):
		return []session.Key{{Kind: session.KeyDeleteWord}}
	}
	switch msg.Type {
	case tea.KeyBackspace:
		return []session.Key{{Kind: session.KeyBackspace}}
	case tea.KeySpace:
		return []session.Key{{Kind: session.KeySpace}}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]session.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			if r == ' ' {
				keys = append(keys, session.Key{Kind: session.KeySpace})
				continue
			}
			if !isPrintable(r) {
				continue
			}
			keys = append(keys, session.Key{Kind: session.KeyRune, Rune: r})
		}
		return keys
	default:
		return []session.Key{{Kind: session.KeyOther}}
	}
}
