package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"imagefy/internal/auth"
	"imagefy/internal/generation"

	tea "github.com/charmbracelet/bubbletea"
)

// fakeSession is an in-memory AuthSession.
type fakeSession struct {
	state     auth.State
	signInErr error
}

func signedIn(email string) *fakeSession {
	return &fakeSession{state: auth.State{User: &auth.User{Email: email}}}
}

func signedOut() *fakeSession {
	return &fakeSession{}
}

func (f *fakeSession) State() auth.State { return f.state }

func (f *fakeSession) SetShowLogin(show bool) { f.state.ShowLogin = show }

func (f *fakeSession) Changes() <-chan struct{} { return nil }

func (f *fakeSession) SignIn(email string) error {
	if f.signInErr != nil {
		return f.signInErr
	}
	f.state.User = &auth.User{Email: email}
	f.state.ShowLogin = false
	return nil
}

func (f *fakeSession) SignOut() error {
	f.state.User = nil
	return nil
}

// fakeGenerator answers with a fixed response. When block is set it waits
// for it (or for cancellation) first.
type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	resp    generation.Response
	err     error
	block   chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, req generation.Request) (generation.Response, error) {
	g.mu.Lock()
	g.prompts = append(g.prompts, req.Prompt)
	g.mu.Unlock()
	if g.block != nil {
		select {
		case <-g.block:
		case <-ctx.Done():
			return generation.Response{}, ctx.Err()
		}
	}
	return g.resp, g.err
}

func (g *fakeGenerator) calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.prompts...)
}

// waitFor runs cmd, expanding batches, until a message of type T shows up.
// Commands that never return (timers, blinks) are left running.
func waitFor[T any](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	out := make(chan tea.Msg, 64)
	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		if c == nil {
			return
		}
		go func() {
			msg := c()
			if batch, ok := msg.(tea.BatchMsg); ok {
				for _, sub := range batch {
					run(sub)
				}
				return
			}
			select {
			case out <- msg:
			default:
			}
		}()
	}
	run(cmd)

	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-out:
			if m, ok := msg.(T); ok {
				return m
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}
