package ui

import (
	"github.com/charmbracelet/glamour"
	tea "github.com/charmbracelet/bubbletea"
)

const homeMarkdown = `# Turn words into images

Describe what you want to see and **Imagefy** renders it in seconds.

1. Sign in with your email (` + "`SPC a l`" + `)
2. Open **Results** (` + "`SPC g r`" + `) and type a prompt
3. Press **Enter** to generate, then ` + "`SPC d`" + ` to download

> Tip: press Tab to move between the menu and the page.
`

const defaultHomeWrap = 76

// HomeView is the landing page, rendered from markdown.
type HomeView struct {
	rendered string
	width    int
}

// Ensure HomeView implements View.
var _ View = (*HomeView)(nil)

// NewHomeView renders the landing page at the default wrap width.
func NewHomeView() *HomeView {
	v := &HomeView{}
	v.render(defaultHomeWrap)
	return v
}

func (v *HomeView) render(wrap int) {
	v.width = wrap
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		v.rendered = homeMarkdown
		return
	}
	out, err := r.Render(homeMarkdown)
	if err != nil {
		v.rendered = homeMarkdown
		return
	}
	v.rendered = out
}

// Init implements View.
func (v *HomeView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (v *HomeView) Update(msg tea.Msg) (View, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		wrap := msg.Width - 4
		if wrap > defaultHomeWrap {
			wrap = defaultHomeWrap
		}
		if wrap < 20 {
			wrap = 20
		}
		if wrap != v.width {
			v.render(wrap)
		}
	}
	return v, nil
}

// View implements View.
func (v *HomeView) View() string {
	return v.rendered
}
