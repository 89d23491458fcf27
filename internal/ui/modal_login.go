package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// LoginModal collects an email and signs the user in.
type LoginModal struct {
	input textinput.Model
	Err   string
}

// Ensure LoginModal implements View.
var _ View = (*LoginModal)(nil)

// NewLoginModal creates a login modal with the email field focused.
func NewLoginModal() *LoginModal {
	ti := textinput.New()
	ti.Placeholder = "you@example.com"
	ti.Width = 40
	ti.CharLimit = 254
	ti.Focus()
	return &LoginModal{input: ti}
}

// SetError shows a sign-in failure under the field.
func (m *LoginModal) SetError(msg string) {
	m.Err = msg
}

// Init implements View.
func (m *LoginModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *LoginModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			email := strings.TrimSpace(m.input.Value())
			if email != "" {
				return m, func() tea.Msg { return SignInMsg{Email: email} }
			}
			return m, nil
		}
		m.Err = ""
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *LoginModal) View() string {
	content := Styles.Title.Render("Sign in to Imagefy") + "\n\n"
	content += m.input.View() + "\n"
	if m.Err != "" {
		content += "\n" + Styles.Details.Render(m.Err) + "\n"
	}
	content += "\n" + Styles.Hint.Render("Enter: sign in  Esc: cancel")
	return Styles.Box.Render(content)
}
