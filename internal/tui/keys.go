package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Next      key.Binding
	Back      key.Binding
	Retry     key.Binding
	NextField key.Binding
	PrevField key.Binding
	Enter     key.Binding
	Toggle    key.Binding
	Remove    key.Binding
	Cycle     key.Binding
	UpDown    key.Binding
	Cancel    key.Binding
	New       key.Binding
	Reload    key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("ctrl+n", "pgdown"), key.WithHelp("ctrl+n", "next")),
		Back:      key.NewBinding(key.WithKeys("ctrl+b", "pgup"), key.WithHelp("ctrl+b", "back")),
		Retry:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "retry")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Remove:    key.NewBinding(key.WithKeys("delete", "backspace"), key.WithHelp("del", "remove")),
		Cycle:     key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "change")),
		UpDown:    key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "trips")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new trip")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// helpLine renders bindings as "key action" pairs.
func helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, focusStyle.Render(h.Key)+" "+dimStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
