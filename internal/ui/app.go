package ui

import (
	"context"
	"errors"

	"imagefy/internal/auth"
	"imagefy/internal/download"
	"imagefy/internal/generation"
	"imagefy/internal/submission"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// AuthSession is the session the app drives: the page-facing auth context
// plus sign in/out and a change feed.
type AuthSession interface {
	auth.Context
	SignIn(email string) error
	SignOut() error
	Changes() <-chan struct{}
}

// Options configures the root model.
type Options struct {
	Context   context.Context // parent of every request; defaults to Background
	Generator generation.Generator
	Auth      AuthSession
	Downloads *download.Store
	Logger    *zap.Logger
	Workflow  []submission.Option // passed to each Results page workflow
	StartPath string              // first route; defaults to "/"
}

// AppModel is the root model: nav shell on top, routed page below, toasts
// and overlays above both.
type AppModel struct {
	Router     *Router
	Nav        *NavShell
	Overlays   OverlayStack
	Focus      *FocusManager
	KeyHandler *KeyHandler
	Toasts     *Toasts
	Auth       AuthSession
	Logger     *zap.Logger

	startPath string
	width     int
	height    int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model.
func NewAppModel(opts Options) *AppModel {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.StartPath == "" {
		opts.StartPath = "/"
	}

	a := &AppModel{
		Router:    NewRouter(),
		Nav:       NewNavShell(),
		Focus:     NewFocusManager(),
		Toasts:    NewToasts(),
		Auth:      opts.Auth,
		Logger:    opts.Logger,
		startPath: opts.StartPath,
	}
	a.Focus.OnChange = a.focusChanged

	a.Router.Handle("/", func() View { return NewHomeView() })
	a.Router.Handle("/result", func() View {
		return NewResultView(opts.Context, ResultDeps{
			Generator: opts.Generator,
			Auth:      opts.Auth,
			Notifier:  a.Toasts,
			Downloads: opts.Downloads,
			Navigate:  NavigateCmd,
			Options:   opts.Workflow,
		})
	})
	a.Router.Handle("/buy", func() View { return NewBuyView() })
	a.Router.Handle("/signup", func() View { return NewSignupView() })
	a.Router.Handle("/checkout", func() View { return NewCheckoutView() })

	a.KeyHandler = NewKeyHandler(newKeymap())
	return a
}

// AccountActions live under SPC a.
var AccountActions = []Action{
	{Key: "l", Label: "Sign in", Msg: ShowLoginMsg{}},
	{Key: "o", Label: "Sign out", Msg: ShowSignOutMsg{}},
}

// pageActions are bound under SPC only while their route is mounted.
var pageActions = map[string][]Action{
	"/result": ResultActions,
}

// newKeymap builds the app keymap from the nav destinations and the
// account and page actions.
func newKeymap() *Keymap {
	km := NewKeymap()
	km.Bind("q", "Quit", quitCmd)
	km.Bind("SPC q", "Quit", quitCmd)
	km.Bind("SPC m", "Menu", msgCmd(ToggleMenuMsg{}))

	km.Group("SPC g", "Go to")
	for _, items := range [][]NavItem{NavItems, NavActions} {
		for _, item := range items {
			km.Bind("SPC g "+item.Key, item.Label, NavigateCmd(item.Path))
		}
	}

	km.Group("SPC a", "Account")
	for _, a := range AccountActions {
		km.Bind("SPC a "+a.Key, a.Label, msgCmd(a.Msg))
	}

	for route, actions := range pageActions {
		for _, a := range actions {
			km.Bind("SPC "+a.Key, a.Label, msgCmd(a.Msg), route)
		}
	}
	return km
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	var changes <-chan struct{}
	if a.Auth != nil {
		changes = a.Auth.Changes()
	}
	return tea.Batch(a.navigate(a.startPath), watchAuthCmd(changes))
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.Nav.Width = msg.Width
		a.Nav.SetActive(a.Router.Path)
		if LayoutFor(msg.Width) == LayoutDesktop {
			a.Overlays.Remove(OverlayMenu)
		}
		cmd = a.Router.Update(msg)
	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	case quitMsg:
		a.Router.Unmount()
		return a, tea.Quit
	case NavigateMsg:
		cmd = a.navigate(msg.Path)
	case ToggleMenuMsg:
		cmd = a.toggleMenu()
	case ShowLoginMsg:
		if a.Auth != nil && !a.Auth.State().SignedIn() {
			a.Auth.SetShowLogin(true)
		}
	case SignInMsg:
		a.signIn(msg.Email)
	case ShowSignOutMsg:
		a.showSignOut()
	case SignOutMsg:
		a.signOut()
	case DismissModalMsg:
		a.dismissTop()
	case authEventMsg:
		cmd = tea.Batch(a.Router.Update(AuthChangedMsg{}), watchAuthCmd(a.Auth.Changes()))
	case toastExpiredMsg:
		a.Toasts.Expire(msg.ID)
	default:
		overlayCmd, _ := a.Overlays.UpdateTop(msg)
		cmd = tea.Batch(a.Router.Update(msg), overlayCmd)
	}
	return a, tea.Batch(cmd, a.syncLogin(), a.Toasts.Flush())
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := msg.String()
	if s == "ctrl+c" {
		return quitCmd
	}
	if top, ok := a.Overlays.Peek(); ok {
		if top.IsDismissKey(s) {
			a.dismissTop()
			return nil
		}
		cmd, _ := a.Overlays.UpdateTop(msg)
		return cmd
	}
	if s == "tab" || s == "shift+tab" {
		a.Focus.Next()
		return nil
	}
	if a.Focus.Is(FocusContent) && a.Router.CapturesText() {
		return a.Router.Update(msg)
	}
	a.KeyHandler.Route = a.Router.Path
	if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
		return cmd
	}
	if a.Focus.Is(FocusNav) {
		if s == "esc" {
			a.Focus.SetFocus(FocusContent)
			return nil
		}
		_, cmd := a.Nav.Update(msg)
		return cmd
	}
	return a.Router.Update(msg)
}

// focusChanged keeps the nav and the page in step with the focus manager.
func (a *AppModel) focusChanged(from, to string) {
	a.Nav.Focused = to == FocusNav
	if a.Nav.Focused {
		a.Nav.SetActive(a.Router.Path)
	}
	if f, ok := a.Router.Current.(interface{ SetFocused(bool) }); ok {
		f.SetFocused(to == FocusContent)
	}
}

func (a *AppModel) navigate(path string) tea.Cmd {
	a.Overlays.Remove(OverlayMenu)
	cmd := a.Router.Navigate(path)
	a.Nav.SetActive(a.Router.Path)
	a.Focus.SetFocus(FocusContent)
	a.Logger.Debug("navigate", zap.String("path", path))
	if a.width > 0 {
		sizeCmd := a.Router.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return tea.Batch(cmd, sizeCmd)
	}
	return cmd
}

func (a *AppModel) toggleMenu() tea.Cmd {
	if a.Overlays.Remove(OverlayMenu) {
		return nil
	}
	if a.Nav.Layout() != LayoutMobile {
		return nil
	}
	panel := NewNavPanel(a.Router.Path)
	a.Overlays.Push(Overlay{ID: OverlayMenu, View: panel, Dismiss: "esc"})
	return panel.Init()
}

// syncLogin opens or closes the login modal to match the session's
// show-login flag.
func (a *AppModel) syncLogin() tea.Cmd {
	if a.Auth == nil {
		return nil
	}
	show := a.Auth.State().ShowLogin
	open := a.Overlays.Has(OverlayLogin)
	switch {
	case show && !open:
		modal := NewLoginModal()
		a.Overlays.Push(Overlay{ID: OverlayLogin, View: modal, Dismiss: "esc"})
		return modal.Init()
	case !show && open:
		a.Overlays.Remove(OverlayLogin)
	}
	return nil
}

func (a *AppModel) signIn(email string) {
	if a.Auth == nil {
		return
	}
	if err := a.Auth.SignIn(email); err != nil {
		a.Logger.Warn("sign in failed", zap.Error(err))
		msg := "Could not sign in"
		if errors.Is(err, auth.ErrInvalidEmail) {
			msg = "Enter a valid email address"
		}
		if top, ok := a.Overlays.Peek(); ok {
			if modal, ok := top.View.(*LoginModal); ok {
				modal.SetError(msg)
			}
		}
		return
	}
	a.Toasts.Notify(submission.Notification{Level: submission.LevelSuccess, Text: "Signed in as " + email})
	a.Router.Update(AuthChangedMsg{})
}

func (a *AppModel) showSignOut() {
	if a.Auth == nil || a.Overlays.Has(OverlayConfirm) {
		return
	}
	st := a.Auth.State()
	if !st.SignedIn() {
		return
	}
	a.Overlays.Push(Overlay{ID: OverlayConfirm, View: NewSignOutConfirmModal(st.User.Email), Dismiss: "esc"})
}

func (a *AppModel) signOut() {
	a.Overlays.Remove(OverlayConfirm)
	if a.Auth == nil {
		return
	}
	if err := a.Auth.SignOut(); err != nil {
		a.Logger.Warn("sign out failed", zap.Error(err))
		a.Toasts.Notify(submission.Notification{Level: submission.LevelError, Text: "Could not sign out"})
		return
	}
	a.Toasts.Notify(submission.Notification{Level: submission.LevelInfo, Text: "Signed out"})
	a.Router.Update(AuthChangedMsg{})
}

// dismissTop closes the top overlay. Closing the login modal withdraws the
// show-login request.
func (a *AppModel) dismissTop() {
	top, ok := a.Overlays.Pop()
	if !ok {
		return
	}
	if top.ID == OverlayLogin && a.Auth != nil {
		a.Auth.SetShowLogin(false)
	}
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	parts := []string{a.Nav.View()}
	if top, ok := a.Overlays.Peek(); ok {
		parts = append(parts, top.View.View())
	} else {
		parts = append(parts, a.Router.View())
	}
	if toasts := a.Toasts.View(); toasts != "" {
		width := a.width
		if width <= 0 {
			width = DesktopMinWidth
		}
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Right, toasts))
	}
	if help := RenderKeybindHelp(a.KeyHandler, a.Router.Path); help != "" {
		parts = append(parts, help)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
