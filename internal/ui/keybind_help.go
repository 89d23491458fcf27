package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var cancelBinding = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))

// RenderKeybindHelp renders the bar shown while a leader sequence is pending:
// the typed prefix, then every key that can follow it on route.
func RenderKeybindHelp(h *KeyHandler, route string) string {
	if h == nil || !h.Waiting() {
		return ""
	}
	bindings := h.Keymap.Next(h.pending, route)
	if len(bindings) == 0 {
		return ""
	}

	hm := help.New()
	hm.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHighlight)).Bold(true)
	hm.Styles.ShortDesc = Styles.Muted
	hm.Styles.ShortSeparator = Styles.Muted

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1)
	return box.Render(Styles.Muted.Render(h.Pending()) + " " + hm.ShortHelpView(append(bindings, cancelBinding)))
}
