package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrInvalidEmail is returned by SignIn for addresses without a local part
// and a domain.
var ErrInvalidEmail = errors.New("invalid email address")

// Session is a file-backed Context. The session file is YAML:
//
//	email: someone@example.com
//	signed_in_at: 2026-01-02T15:04:05Z
type Session struct {
	mu        sync.RWMutex
	path      string
	user      *User
	loading   bool
	showLogin bool
	changes   chan struct{}
	logger    *zap.Logger
	now       func() time.Time
}

// Ensure Session implements Context.
var _ Context = (*Session)(nil)

// NewSession creates a session for path. It starts in the loading state
// until Load is called.
func NewSession(path string, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		path:    path,
		loading: true,
		changes: make(chan struct{}, 1),
		logger:  logger,
		now:     time.Now,
	}
}

// Path returns the session file location.
func (s *Session) Path() string {
	return s.path
}

// State implements Context.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := State{Loading: s.loading, ShowLogin: s.showLogin}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// SetShowLogin implements Context.
func (s *Session) SetShowLogin(show bool) {
	s.mu.Lock()
	changed := s.showLogin != show
	s.showLogin = show
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

// Changes delivers a value after every state change. Notifications
// coalesce; readers should re-read State.
func (s *Session) Changes() <-chan struct{} {
	return s.changes
}

// Load reads the session file and leaves the loading state. A missing or
// empty file means signed out.
func (s *Session) Load() error {
	user, err := readSessionFile(s.path)
	s.mu.Lock()
	s.loading = false
	if err == nil {
		s.user = user
	}
	s.mu.Unlock()
	s.notify()
	return err
}

// SignIn records email as the signed-in user and closes the login surface.
func (s *Session) SignIn(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	user := &User{Email: email, SignedInAt: s.now().UTC()}
	if err := writeSessionFile(s.path, user); err != nil {
		return err
	}
	s.mu.Lock()
	s.user = user
	s.loading = false
	s.showLogin = false
	s.mu.Unlock()
	s.notify()
	s.logger.Info("signed in", zap.String("email", email))
	return nil
}

// SignOut removes the session file.
func (s *Session) SignOut() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.notify()
	return nil
}

// Watch reloads the session whenever the session file changes on disk, so a
// `imagefy login` in another terminal signs the running UI in. It returns
// once the watcher is running; the watcher stops when ctx is done.
func (s *Session) Watch(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
					continue
				}
				if err := s.Load(); err != nil {
					s.logger.Warn("reloading session", zap.Error(err))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn("session watcher", zap.Error(err))
			}
		}
	}()
	return nil
}

func (s *Session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func readSessionFile(path string) (*User, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var u User
	if err := yaml.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}
	if u.Email == "" {
		return nil, nil
	}
	return &u, nil
}

func writeSessionFile(path string, u *User) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	b, err := yaml.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}
