package ui

import (
	"strings"

	"imagefy/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Brand is the product mark shown at the left of the nav bar.
const Brand = "✦ Imagefy"

// NavItem is one nav destination.
type NavItem struct {
	Path  string
	Label string
	Key   string // SPC g <Key> jumps here
}

// Action is a command reachable as SPC <Key>. Page actions also answer to the
// bare key while their page has focus.
type Action struct {
	Key   string
	Label string
	Msg   tea.Msg
}

// NavItems are the primary destinations, in display order.
var NavItems = []NavItem{
	{Path: "/", Label: "Home", Key: "h"},
	{Path: "/result", Label: "Results", Key: "r"},
	{Path: "/buy", Label: "Buy Credits", Key: "b"},
}

// NavActions are the secondary destinations rendered as buttons.
var NavActions = []NavItem{
	{Path: "/signup", Label: "Sign up", Key: "s"},
	{Path: "/checkout", Label: "Checkout", Key: "c"},
}

// NavShell renders the header. On wide terminals it is one row with the
// items and actions; on narrow ones it shows the brand and a menu trigger
// that opens a NavPanel.
type NavShell struct {
	Active  string // current route
	Cursor  int    // index into Entries() while focused
	Focused bool
	Width   int
}

// Ensure NavShell implements View.
var _ View = (*NavShell)(nil)

// NewNavShell creates a nav shell with the Home entry active.
func NewNavShell() *NavShell {
	return &NavShell{Active: "/"}
}

// Layout returns the layout for the current width.
func (n *NavShell) Layout() LayoutMode {
	return LayoutFor(n.Width)
}

// Entries returns the keyboard-reachable entries for the current layout.
// On narrow terminals the only entry is the menu trigger.
func (n *NavShell) Entries() []NavItem {
	if n.Layout() == LayoutMobile {
		return []NavItem{{Label: "☰ Menu"}}
	}
	out := make([]NavItem, 0, len(NavItems)+len(NavActions))
	out = append(out, NavItems...)
	return append(out, NavActions...)
}

// IsActive reports whether path is the current route.
func (n *NavShell) IsActive(path string) bool {
	return path == n.Active
}

// SetActive marks path as current and moves the cursor onto it.
func (n *NavShell) SetActive(path string) {
	n.Active = path
	for i, e := range n.Entries() {
		if e.Path == path && e.Label != "" {
			n.Cursor = i
			return
		}
	}
}

// Init implements View.
func (n *NavShell) Init() tea.Cmd {
	return nil
}

// Update implements View. Only key presses matter, and only while focused.
func (n *NavShell) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !n.Focused {
		return n, nil
	}
	entries := n.Entries()
	if n.Cursor >= len(entries) {
		n.Cursor = len(entries) - 1
	}
	switch keyMsg.String() {
	case "h", "left":
		if n.Cursor > 0 {
			n.Cursor--
		}
	case "l", "right":
		if n.Cursor < len(entries)-1 {
			n.Cursor++
		}
	case "enter":
		if n.Layout() == LayoutMobile {
			return n, func() tea.Msg { return ToggleMenuMsg{} }
		}
		return n, NavigateCmd(entries[n.Cursor].Path)
	}
	return n, nil
}

// View implements View.
func (n *NavShell) View() string {
	brand := Styles.Brand.Render(Brand)
	if n.Layout() == LayoutMobile {
		trigger := n.entryStyle(0, "").Render(n.Entries()[0].Label)
		return n.bar(brand, "", trigger)
	}

	var items []string
	for i, item := range NavItems {
		items = append(items, n.entryStyle(i, item.Path).Render(item.Label))
	}
	var actions []string
	for i, action := range NavActions {
		idx := len(NavItems) + i
		style := Styles.ButtonOutline
		if i == len(NavActions)-1 {
			style = Styles.ButtonPrimary
		}
		if n.Focused && n.Cursor == idx {
			style = Styles.NavCursor
		}
		actions = append(actions, style.Render(action.Label))
	}
	return n.bar(brand, strings.Join(items, " "), strings.Join(actions, " "))
}

func (n *NavShell) entryStyle(idx int, path string) lipgloss.Style {
	switch {
	case n.Focused && n.Cursor == idx:
		return Styles.NavCursor
	case path != "" && n.IsActive(path):
		return Styles.NavActive
	default:
		return Styles.NavItem
	}
}

// bar lays out left, center and right segments across the terminal width.
func (n *NavShell) bar(left, center, right string) string {
	width := n.Width
	if width <= 0 {
		width = DesktopMinWidth
	}
	used := lipgloss.Width(left) + lipgloss.Width(center) + lipgloss.Width(right)
	free := width - used
	if free < 2 {
		left = textutil.Truncate(Brand, textutil.VisualWidth(Brand)+free-2)
		left = Styles.Brand.Render(left)
		free = 2
	}
	gapLeft := free / 2
	gapRight := free - gapLeft
	if center == "" {
		gapLeft, gapRight = free, 0
	}
	row := left + strings.Repeat(" ", gapLeft) + center + strings.Repeat(" ", gapRight) + right
	return Styles.Bar.Width(width).Render(row)
}
