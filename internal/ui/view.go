package ui

import tea "github.com/charmbracelet/bubbletea"

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
// Each View represents a page or overlay with its own model, update, and view.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// Unmounter is implemented by pages that own work which must stop when the
// router replaces them.
type Unmounter interface {
	Unmount()
}

// TextCapturer is implemented by pages with a focused text field. While it
// reports true, printable keys (including SPC) go to the page instead of the
// keybind system.
type TextCapturer interface {
	CapturesText() bool
}
