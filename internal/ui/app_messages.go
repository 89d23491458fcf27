package ui

import (
	"time"

	"imagefy/internal/submission"
)

// NavigateMsg replaces the current page with the one routed at Path.
type NavigateMsg struct {
	Path string
}

// ToggleMenuMsg opens or closes the slide-out nav panel (narrow terminals only).
type ToggleMenuMsg struct{}

// ShowLoginMsg asks the auth session to show the login surface (SPC a l).
type ShowLoginMsg struct{}

// SignInMsg is sent by the login modal when the user submits an email.
type SignInMsg struct {
	Email string
}

// SignOutMsg clears the session (SPC a o).
type SignOutMsg struct{}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// AuthChangedMsg tells the app and the current page that the auth state may
// have changed. Pages re-derive their status from the session on render.
type AuthChangedMsg struct{}

// GenerationFinishedMsg carries a finished request back to the page that
// started it. The workflow drops it if Task is no longer the in-flight one.
type GenerationFinishedMsg struct {
	Task   *submission.Task
	Result submission.Result
}

// GenerateAnotherMsg clears the current image and prompt (SPC n).
type GenerateAnotherMsg struct{}

// DownloadMsg saves the current image to the downloads directory (SPC d).
type DownloadMsg struct{}

// DownloadFinishedMsg reports where the image was saved.
type DownloadFinishedMsg struct {
	Path string
	Err  error
}

// quitMsg unmounts the current page before the program exits.
type quitMsg struct{}

// authEventMsg is delivered by the session watcher; the app re-arms the watch.
type authEventMsg struct{}

// toastExpiredMsg removes a toast once its lifetime is over.
type toastExpiredMsg struct {
	ID int
	At time.Time
}

// ShowSignOutMsg asks for confirmation before signing out (SPC a o).
type ShowSignOutMsg struct{}
