package ui

import tea "github.com/charmbracelet/bubbletea"

// PageFactory builds a fresh page each time its route is mounted.
type PageFactory func() View

// Router maps paths to pages and owns the mounted one.
type Router struct {
	routes  map[string]PageFactory
	Path    string
	Current View
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]PageFactory)}
}

// Handle registers a page factory for path.
func (r *Router) Handle(path string, f PageFactory) {
	r.routes[path] = f
}

// Has reports whether path is routed.
func (r *Router) Has(path string) bool {
	_, ok := r.routes[path]
	return ok
}

// Navigate unmounts the current page and mounts the one for path. Unknown
// paths mount a not-found page. Navigating to the mounted path is a no-op.
func (r *Router) Navigate(path string) tea.Cmd {
	if r.Current != nil && path == r.Path {
		return nil
	}
	r.Unmount()
	var v View
	if f, ok := r.routes[path]; ok {
		v = f()
	} else {
		v = NewNotFoundView(path)
	}
	r.Path = path
	r.Current = v
	return v.Init()
}

// Unmount releases the current page. It stays rendered until replaced.
func (r *Router) Unmount() {
	if u, ok := r.Current.(Unmounter); ok {
		u.Unmount()
	}
}

// Update passes msg to the mounted page.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.Current == nil {
		return nil
	}
	v, cmd := r.Current.Update(msg)
	r.Current = v
	return cmd
}

// View renders the mounted page.
func (r *Router) View() string {
	if r.Current == nil {
		return ""
	}
	return r.Current.View()
}

// CapturesText reports whether the mounted page wants raw keys.
func (r *Router) CapturesText() bool {
	c, ok := r.Current.(TextCapturer)
	return ok && c.CapturesText()
}
