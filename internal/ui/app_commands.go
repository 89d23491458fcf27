package ui

import (
	"context"

	"imagefy/internal/download"
	"imagefy/internal/submission"

	tea "github.com/charmbracelet/bubbletea"
)

// NavigateCmd returns a command that routes to path.
func NavigateCmd(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// waitForTaskCmd blocks on the task's done channel and hands the result back
// to the event loop. The request itself runs on the task's goroutine; this
// command only waits.
func waitForTaskCmd(t *submission.Task) tea.Cmd {
	return func() tea.Msg {
		return GenerationFinishedMsg{Task: t, Result: t.Wait()}
	}
}

// watchAuthCmd waits for the next session change. Returns nil when there is
// nothing to watch.
func watchAuthCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return authEventMsg{}
	}
}

// downloadCmd saves imageURL off the event loop.
func downloadCmd(ctx context.Context, store *download.Store, imageURL string) tea.Cmd {
	return func() tea.Msg {
		path, err := store.Save(ctx, imageURL)
		return DownloadFinishedMsg{Path: path, Err: err}
	}
}

// msgCmd returns a command that yields msg.
func msgCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func quitCmd() tea.Msg {
	return quitMsg{}
}
