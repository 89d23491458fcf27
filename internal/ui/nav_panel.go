package ui

import (
	"strings"

	"imagefy/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
)

const navPanelWidth = 24

// NavPanel is the slide-out menu used on narrow terminals. It lists the nav
// items followed by the actions; Enter navigates, Esc closes.
type NavPanel struct {
	Active string
	Cursor int
}

// Ensure NavPanel implements View.
var _ View = (*NavPanel)(nil)

// NewNavPanel opens the panel with the cursor on the active route.
func NewNavPanel(active string) *NavPanel {
	p := &NavPanel{Active: active}
	for i, e := range p.entries() {
		if e.Path == active {
			p.Cursor = i
		}
	}
	return p
}

func (p *NavPanel) entries() []NavItem {
	out := make([]NavItem, 0, len(NavItems)+len(NavActions))
	out = append(out, NavItems...)
	return append(out, NavActions...)
}

// Init implements View.
func (p *NavPanel) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (p *NavPanel) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	entries := p.entries()
	switch keyMsg.String() {
	case "esc":
		return p, func() tea.Msg { return DismissModalMsg{} }
	case "k", "up":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "j", "down":
		if p.Cursor < len(entries)-1 {
			p.Cursor++
		}
	case "enter":
		return p, NavigateCmd(entries[p.Cursor].Path)
	}
	return p, nil
}

// View implements View.
func (p *NavPanel) View() string {
	content := Styles.Brand.Render(Brand) + "\n"
	content += Styles.Muted.Render(strings.Repeat("─", navPanelWidth)) + "\n"
	for i, e := range p.entries() {
		if i == len(NavItems) {
			content += "\n"
		}
		label := textutil.PadRightVisual(e.Label, navPanelWidth)
		switch {
		case i == p.Cursor:
			content += Styles.NavCursor.Render(label)
		case e.Path == p.Active:
			content += Styles.NavActive.Render(label)
		default:
			content += Styles.NavItem.Render(label)
		}
		content += "\n"
	}
	content += "\n" + Styles.Hint.Render("j/k: move  Enter: go  Esc: close")
	return Styles.BoxCompact.Render(content)
}
