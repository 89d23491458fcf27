// Package submission implements the prompt submission workflow of the
// Results page: preconditions, the single in-flight generation request, and
// the page-local state it mutates.
package submission

import "imagefy/internal/auth"

// State is the page-local submission state. It lives as long as the page
// is mounted and is never persisted.
type State struct {
	Prompt   string
	Loading  bool   // true only between an accepted submit and its resolution
	ImageURL string // set only by a successful generation
}

// HasImage reports whether a generated image is being shown.
func (s State) HasImage() bool {
	return s.ImageURL != ""
}

// Status selects which variant of the page is rendered.
type Status int

const (
	// StatusLoading: the session is still being read.
	StatusLoading Status = iota
	// StatusSignedOut: offer sign in / sign up.
	StatusSignedOut
	// StatusReady: show the prompt form.
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "Loading"
	case StatusSignedOut:
		return "SignedOut"
	case StatusReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

// StatusOf derives the page variant from an auth snapshot.
func StatusOf(st auth.State) Status {
	switch {
	case st.Loading:
		return StatusLoading
	case !st.SignedIn():
		return StatusSignedOut
	default:
		return StatusReady
	}
}

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

// Notification is a transient user-visible message.
type Notification struct {
	Level Level
	Text  string
}

// Notifier surfaces notifications (toasts in the UI, stderr in the CLI).
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) { f(n) }
