package ui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// LeaderToken is the space bar as written in key sequences ("SPC g r").
const LeaderToken = "SPC"

// Keymap is a tree of key sequences. A node with a command is a binding; a
// node with children is a submenu listed in the leader help.
type Keymap struct {
	root keyNode
}

type keyNode struct {
	label    string
	cmd      tea.Cmd
	routes   []string // empty: every route
	children map[string]*keyNode
}

// NewKeymap returns an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{}
}

// Bind maps seq to cmd. Given routes, the binding only fires and only shows
// in help while one of them is mounted.
func (m *Keymap) Bind(seq, label string, cmd tea.Cmd, routes ...string) {
	n := m.walk(splitSeq(seq), true)
	n.label = label
	n.cmd = cmd
	n.routes = routes
}

// Group names the submenu at seq.
func (m *Keymap) Group(seq, label string) {
	m.walk(splitSeq(seq), true).label = label
}

// Lookup returns the command bound at seq on route, or nil.
func (m *Keymap) Lookup(seq []string, route string) tea.Cmd {
	n := m.walk(seq, false)
	if n == nil || n.cmd == nil || !n.boundOn(route) {
		return nil
	}
	return n.cmd
}

// Continues reports whether a longer sequence starting with seq fires on route.
func (m *Keymap) Continues(seq []string, route string) bool {
	n := m.walk(seq, false)
	if n == nil {
		return false
	}
	for _, child := range n.children {
		if child.activeOn(route) {
			return true
		}
	}
	return false
}

// Next returns the keys that may follow seq on route, sorted, as help
// bindings. Submenus are described by their group label.
func (m *Keymap) Next(seq []string, route string) []key.Binding {
	n := m.walk(seq, false)
	if n == nil {
		return nil
	}
	keys := make([]string, 0, len(n.children))
	for k, child := range n.children {
		if child.activeOn(route) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := make([]key.Binding, 0, len(keys))
	for _, k := range keys {
		desc := n.children[k].label
		if desc == "" {
			desc = k + "…"
		}
		out = append(out, key.NewBinding(key.WithKeys(k), key.WithHelp(k, desc)))
	}
	return out
}

func (m *Keymap) walk(seq []string, create bool) *keyNode {
	n := &m.root
	for _, part := range seq {
		child, ok := n.children[part]
		if !ok {
			if !create {
				return nil
			}
			if n.children == nil {
				n.children = make(map[string]*keyNode)
			}
			child = &keyNode{}
			n.children[part] = child
		}
		n = child
	}
	return n
}

func (n *keyNode) boundOn(route string) bool {
	return len(n.routes) == 0 || slices.Contains(n.routes, route)
}

// activeOn reports whether n or anything below it fires on route.
func (n *keyNode) activeOn(route string) bool {
	if n.cmd != nil && n.boundOn(route) {
		return true
	}
	for _, child := range n.children {
		if child.activeOn(route) {
			return true
		}
	}
	return false
}

func splitSeq(seq string) []string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToken(p)
	}
	return parts
}

// keyToken converts a tea key string to a sequence token. Bubble Tea
// reports the space bar as " ".
func keyToken(s string) string {
	if s == " " || s == "space" {
		return LeaderToken
	}
	return s
}

// KeyHandler feeds key presses through a Keymap. Single keys are looked up
// directly; SPC starts a pending sequence that ends on a match, a dead end,
// or esc.
type KeyHandler struct {
	Keymap  *Keymap
	Route   string // mounted page; route-scoped bindings elsewhere are ignored
	pending []string
}

// NewKeyHandler creates a handler over km.
func NewKeyHandler(km *Keymap) *KeyHandler {
	return &KeyHandler{Keymap: km}
}

// Waiting reports whether a leader sequence is in progress.
func (h *KeyHandler) Waiting() bool {
	return len(h.pending) > 0
}

// Pending returns the sequence typed so far, e.g. "SPC g".
func (h *KeyHandler) Pending() string {
	return strings.Join(h.pending, " ")
}

// Handle reports whether the key was consumed and the command to run, if any.
// Every key pressed during a leader sequence is consumed.
func (h *KeyHandler) Handle(msg tea.KeyMsg) (consumed bool, cmd tea.Cmd) {
	tok := keyToken(msg.String())
	if !h.Waiting() {
		if tok == LeaderToken {
			h.pending = []string{LeaderToken}
			return true, nil
		}
		if c := h.Keymap.Lookup([]string{tok}, h.Route); c != nil {
			return true, c
		}
		return false, nil
	}

	if tok == "esc" {
		h.pending = nil
		return true, nil
	}
	seq := append(slices.Clone(h.pending), tok)
	if c := h.Keymap.Lookup(seq, h.Route); c != nil {
		h.pending = nil
		return true, c
	}
	if h.Keymap.Continues(seq, h.Route) {
		h.pending = seq
		return true, nil
	}
	h.pending = nil
	return true, nil
}
