package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PageView is a static page: a title, some body lines and an optional hint.
type PageView struct {
	Title string
	Body  []string
	Hint  string
}

// Ensure PageView implements View.
var _ View = (*PageView)(nil)

// NewBuyView is the Buy Credits page.
func NewBuyView() *PageView {
	return &PageView{
		Title: "Buy Credits",
		Body: []string{
			"Credits are used for every image you generate.",
			"Starter · Pro · Studio packs are available at checkout.",
		},
		Hint: "SPC g c: go to checkout",
	}
}

// NewSignupView is the Sign up page.
func NewSignupView() *PageView {
	return &PageView{
		Title: "Sign up",
		Body: []string{
			"Create an account to start generating images.",
			"Accounts are created by signing in with your email.",
		},
		Hint: "SPC a l: sign in",
	}
}

// NewCheckoutView is the Checkout page.
func NewCheckoutView() *PageView {
	return &PageView{
		Title: "Checkout",
		Body:  []string{"Your cart is empty."},
		Hint:  "SPC g b: buy credits",
	}
}

// NewNotFoundView is mounted for unknown paths.
func NewNotFoundView(path string) *PageView {
	return &PageView{
		Title: "Not found",
		Body:  []string{"No page at " + path + "."},
		Hint:  "SPC g h: go home",
	}
}

// Init implements View.
func (p *PageView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (p *PageView) Update(msg tea.Msg) (View, tea.Cmd) {
	return p, nil
}

// View implements View.
func (p *PageView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render(p.Title))
	b.WriteString("\n\n")
	for _, line := range p.Body {
		b.WriteString(Styles.Normal.Render(line))
		b.WriteString("\n")
	}
	if p.Hint != "" {
		b.WriteString("\n")
		b.WriteString(Styles.Hint.Render(p.Hint))
	}
	return Styles.Box.Render(b.String())
}
