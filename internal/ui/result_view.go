package ui

import (
	"context"
	"errors"
	"strings"

	"imagefy/internal/auth"
	"imagefy/internal/download"
	"imagefy/internal/generation"
	"imagefy/internal/submission"
	"imagefy/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	resultInputWidth = 44
	resultURLWidth   = 56
)

// ResultActions are the Results page commands once an image exists. The
// last one renders as the primary button.
var ResultActions = []Action{
	{Key: "n", Label: "Generate Another", Msg: GenerateAnotherMsg{}},
	{Key: "d", Label: "Download", Msg: DownloadMsg{}},
}

// ResultDeps are the collaborators of the Results page.
type ResultDeps struct {
	Generator generation.Generator
	Auth      auth.Context
	Notifier  submission.Notifier
	Downloads *download.Store // nil disables Download
	Navigate  func(path string) tea.Cmd
	Options   []submission.Option
}

// ResultView is the Results page: a prompt form, the generated image and
// its actions. Each mount gets a fresh workflow; unmounting cancels any
// request still in flight.
type ResultView struct {
	workflow *submission.Workflow
	deps     ResultDeps
	ctx      context.Context
	cancel   context.CancelFunc

	input    textinput.Model
	spinner  spinner.Model
	focused  bool
	spinning bool
}

// Ensure ResultView implements View.
var _ View = (*ResultView)(nil)

// NewResultView mounts a Results page. Requests run under a context derived
// from parent.
func NewResultView(parent context.Context, deps ResultDeps) *ResultView {
	if deps.Navigate == nil {
		deps.Navigate = NavigateCmd
	}
	ctx, cancel := context.WithCancel(parent)

	ti := textinput.New()
	ti.Placeholder = "Describe what you want to generate"
	ti.Width = resultInputWidth
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	return &ResultView{
		workflow: submission.New(deps.Generator, deps.Auth, deps.Notifier, deps.Options...),
		deps:     deps,
		ctx:      ctx,
		cancel:   cancel,
		input:    ti,
		spinner:  s,
		focused:  true,
	}
}

// Workflow exposes the page's submission workflow.
func (v *ResultView) Workflow() *submission.Workflow {
	return v.workflow
}

// Init implements View.
func (v *ResultView) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, v.startSpinner())
}

// Unmount implements Unmounter.
func (v *ResultView) Unmount() {
	v.workflow.Unmount()
	v.cancel()
}

// CapturesText implements TextCapturer.
func (v *ResultView) CapturesText() bool {
	return v.focused && v.workflow.Status() == submission.StatusReady && v.input.Focused()
}

// SetFocused is called when keyboard focus moves between the nav and the page.
func (v *ResultView) SetFocused(focused bool) {
	v.focused = focused
	if !focused {
		v.input.Blur()
		return
	}
	if v.workflow.Status() == submission.StatusReady {
		v.input.Focus()
	}
}

// Update implements View.
func (v *ResultView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v, v.handleKey(msg)
	case GenerationFinishedMsg:
		v.workflow.Finish(msg.Task, msg.Result)
		return v, nil
	case GenerateAnotherMsg, DownloadMsg:
		return v, v.runAction(msg)
	case DownloadFinishedMsg:
		v.downloadFinished(msg)
		return v, nil
	case AuthChangedMsg:
		if v.focused && v.workflow.Status() == submission.StatusReady && !v.input.Focused() {
			return v, tea.Batch(v.input.Focus(), v.startSpinner())
		}
		return v, v.startSpinner()
	case spinner.TickMsg:
		if !v.busy() {
			v.spinning = false
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *ResultView) handleKey(msg tea.KeyMsg) tea.Cmd {
	s := msg.String()
	switch v.workflow.Status() {
	case submission.StatusLoading:
		return nil
	case submission.StatusSignedOut:
		switch s {
		case "s", "enter":
			v.workflow.RequestLogin()
		case "u":
			return v.deps.Navigate("/signup")
		}
		return nil
	}

	state := v.workflow.State()
	if v.input.Focused() {
		switch s {
		case "enter":
			return v.submit()
		case "esc":
			v.input.Blur()
			return nil
		}
		if state.Loading {
			return nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		v.workflow.SetPrompt(v.input.Value())
		return cmd
	}

	if s == "i" || s == "enter" {
		if !state.Loading {
			return v.input.Focus()
		}
		return nil
	}
	for _, a := range ResultActions {
		if s == a.Key {
			return v.runAction(a.Msg)
		}
	}
	return nil
}

// runAction performs one of ResultActions.
func (v *ResultView) runAction(msg tea.Msg) tea.Cmd {
	switch msg.(type) {
	case GenerateAnotherMsg:
		return v.generateAnother()
	case DownloadMsg:
		return v.download()
	}
	return nil
}

func (v *ResultView) submit() tea.Cmd {
	v.workflow.SetPrompt(v.input.Value())
	task, err := v.workflow.Start(v.ctx)
	if err != nil {
		return nil
	}
	return tea.Batch(waitForTaskCmd(task), v.startSpinner())
}

func (v *ResultView) generateAnother() tea.Cmd {
	if v.workflow.State().Loading {
		return nil
	}
	v.workflow.GenerateAnother()
	v.input.SetValue("")
	if v.focused {
		return v.input.Focus()
	}
	return nil
}

func (v *ResultView) download() tea.Cmd {
	state := v.workflow.State()
	if !state.HasImage() {
		return nil
	}
	if v.deps.Downloads == nil {
		v.notify(submission.LevelError, "Downloads are not configured")
		return nil
	}
	return downloadCmd(v.ctx, v.deps.Downloads, state.ImageURL)
}

func (v *ResultView) downloadFinished(msg DownloadFinishedMsg) {
	switch {
	case errors.Is(msg.Err, context.Canceled):
	case msg.Err != nil:
		v.notify(submission.LevelError, "Download failed")
	default:
		v.notify(submission.LevelSuccess, "Saved "+msg.Path)
	}
}

func (v *ResultView) notify(level submission.Level, text string) {
	if v.deps.Notifier != nil {
		v.deps.Notifier.Notify(submission.Notification{Level: level, Text: text})
	}
}

func (v *ResultView) busy() bool {
	return v.workflow.State().Loading || v.workflow.Status() == submission.StatusLoading
}

func (v *ResultView) startSpinner() tea.Cmd {
	if v.spinning || !v.busy() {
		return nil
	}
	v.spinning = true
	return v.spinner.Tick
}

// View implements View.
func (v *ResultView) View() string {
	switch v.workflow.Status() {
	case submission.StatusLoading:
		return v.viewLoading()
	case submission.StatusSignedOut:
		return v.viewSignedOut()
	case submission.StatusReady:
		return v.viewReady()
	}
	return ""
}

func (v *ResultView) viewLoading() string {
	return Styles.Box.Render(v.spinner.View() + " " + Styles.Muted.Render("Loading..."))
}

func (v *ResultView) viewSignedOut() string {
	content := Styles.Title.Render("Sign in to Generate Images") + "\n\n"
	content += Styles.Normal.Render("Create an account or sign in to start generating") + "\n"
	content += Styles.Normal.Render("amazing AI images from your text prompts.") + "\n\n"
	content += Styles.ButtonPrimary.Render("s Sign In") + "  " + Styles.ButtonOutline.Render("u Sign Up")
	return Styles.Box.Render(content)
}

func (v *ResultView) viewReady() string {
	state := v.workflow.State()

	var frame string
	switch {
	case state.Loading:
		frame = v.spinner.View() + " Generating image..."
	case state.HasImage():
		frame = Styles.Status.Render("Generated image") + "\n" +
			Styles.Normal.Render(textutil.TruncateMiddle(state.ImageURL, resultURLWidth))
	default:
		frame = Styles.Empty.Render("Your image will appear here")
	}

	button := Styles.ButtonPrimary.Render("Generate")
	if state.Loading {
		button = Styles.ButtonOutline.Render("Generating...")
	}
	form := lipgloss.JoinHorizontal(lipgloss.Center, v.input.View(), "  ", button)

	parts := []string{
		Styles.Title.Render("Generate"),
		Styles.Frame.Render(frame),
		form,
	}
	if state.HasImage() {
		buttons := make([]string, 0, len(ResultActions))
		for i, a := range ResultActions {
			style := Styles.ButtonOutline
			if i == len(ResultActions)-1 {
				style = Styles.ButtonPrimary
			}
			buttons = append(buttons, style.Render(a.Key+" "+a.Label))
		}
		parts = append(parts, strings.Join(buttons, "  "))
	}
	parts = append(parts, Styles.Hint.Render(v.hint(state)))
	return lipgloss.NewStyle().Margin(1, 2).Render(strings.Join(parts, "\n\n"))
}

func (v *ResultView) hint(state submission.State) string {
	if v.input.Focused() {
		return "Enter: generate  Esc: leave input  Tab: menu"
	}
	if state.HasImage() {
		return "i: edit prompt  n: generate another  d: download  Tab: menu"
	}
	return "i: edit prompt  Tab: menu"
}
