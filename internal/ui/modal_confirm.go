package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// OverlayConfirm is the overlay ID used for confirmations.
const OverlayConfirm = "confirm"

// ConfirmModal is a generic confirmation modal.
// Enter or y confirms; Esc cancels.
type ConfirmModal struct {
	Title       string
	Label       string
	Details     string // Optional warning details
	OnConfirm   func() tea.Msg
	boxStyle    lipgloss.Style
	titleStyle  lipgloss.Style
	detailStyle lipgloss.Style
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a generic confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{
		Title:       title,
		Label:       label,
		OnConfirm:   onConfirm,
		boxStyle:    Styles.BoxDanger,
		titleStyle:  Styles.TitleWarning,
		detailStyle: Styles.Details,
	}
}

// WithDetails adds warning details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewSignOutConfirmModal asks before clearing the session.
func NewSignOutConfirmModal(email string) *ConfirmModal {
	return NewConfirmModal(
		"Sign out?",
		"Signed in as "+email,
		func() tea.Msg { return SignOutMsg{} },
	).WithDetails("You will need to sign in again to generate images")
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter", "y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := m.titleStyle.Render(m.Title) + "\n\n"
	content += Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + m.detailStyle.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  Esc: cancel")
	return m.boxStyle.Render(content)
}
