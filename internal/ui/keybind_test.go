package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpKeys(km *Keymap, seq []string, route string) map[string]string {
	out := make(map[string]string)
	for _, b := range km.Next(seq, route) {
		out[b.Help().Key] = b.Help().Desc
	}
	return out
}

func TestKeymap_LookupRespectsRoutes(t *testing.T) {
	km := NewKeymap()
	km.Bind("q", "Quit", quitCmd)
	km.Bind("SPC d", "Download", msgCmd(DownloadMsg{}), "/result")

	assert.NotNil(t, km.Lookup([]string{"q"}, "/"))
	assert.Nil(t, km.Lookup([]string{"x"}, "/"))
	assert.Nil(t, km.Lookup([]string{"SPC", "d"}, "/"))
	require.NotNil(t, km.Lookup([]string{"SPC", "d"}, "/result"))
	assert.Equal(t, DownloadMsg{}, km.Lookup([]string{"SPC", "d"}, "/result")())
}

func TestKeymap_ContinuesOnlyThroughActiveBindings(t *testing.T) {
	km := NewKeymap()
	km.Group("SPC p", "Page")
	km.Bind("SPC p x", "Only on /result", quitCmd, "/result")

	assert.True(t, km.Continues([]string{"SPC"}, "/result"))
	assert.True(t, km.Continues([]string{"SPC", "p"}, "/result"))
	assert.False(t, km.Continues([]string{"SPC", "p"}, "/"))
	assert.NotContains(t, helpKeys(km, []string{"SPC"}, "/"), "p", "empty submenu is hidden")
	assert.Equal(t, "Page", helpKeys(km, []string{"SPC"}, "/result")["p"])
}

func TestKeymap_UnlabeledSubmenu(t *testing.T) {
	km := NewKeymap()
	km.Bind("SPC z z", "Deep", quitCmd)
	assert.Equal(t, "z…", helpKeys(km, []string{"SPC"}, "/")["z"])
}

func TestNewKeymap_FollowsNavAndActions(t *testing.T) {
	km := newKeymap()

	for _, item := range append(append([]NavItem{}, NavItems...), NavActions...) {
		cmd := km.Lookup([]string{LeaderToken, "g", item.Key}, "/")
		require.NotNil(t, cmd, "SPC g %s", item.Key)
		assert.Equal(t, NavigateMsg{Path: item.Path}, cmd(), "SPC g %s", item.Key)
	}
	for _, a := range AccountActions {
		cmd := km.Lookup([]string{LeaderToken, "a", a.Key}, "/buy")
		require.NotNil(t, cmd, "SPC a %s", a.Key)
		assert.Equal(t, a.Msg, cmd())
	}
	for _, a := range ResultActions {
		assert.Nil(t, km.Lookup([]string{LeaderToken, a.Key}, "/"), "SPC %s outside /result", a.Key)
		cmd := km.Lookup([]string{LeaderToken, a.Key}, "/result")
		require.NotNil(t, cmd, "SPC %s on /result", a.Key)
		assert.Equal(t, a.Msg, cmd())
	}

	top := helpKeys(km, []string{LeaderToken}, "/")
	assert.Equal(t, "Go to", top["g"])
	assert.Equal(t, "Account", top["a"])
	assert.Equal(t, "Quit", top["q"])
	assert.NotContains(t, top, "d")
	assert.Equal(t, "Download", helpKeys(km, []string{LeaderToken}, "/result")["d"])
	assert.Equal(t, "Buy Credits", helpKeys(km, []string{LeaderToken, "g"}, "/")["b"])
}

func TestKeyHandler_LeaderSequence(t *testing.T) {
	h := NewKeyHandler(newKeymap())

	consumed, cmd := h.Handle(keyMsg(" "))
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	assert.Equal(t, "SPC", h.Pending())

	consumed, cmd = h.Handle(keyMsg("g"))
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	assert.Equal(t, "SPC g", h.Pending())

	consumed, cmd = h.Handle(keyMsg("r"))
	assert.True(t, consumed)
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Path: "/result"}, cmd())
	assert.False(t, h.Waiting())
}

func TestKeyHandler_EscAndDeadEnds(t *testing.T) {
	h := NewKeyHandler(newKeymap())

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("esc"))
	assert.True(t, consumed)
	assert.Nil(t, cmd)
	assert.False(t, h.Waiting())

	// esc outside a sequence belongs to the page.
	consumed, _ = h.Handle(keyMsg("esc"))
	assert.False(t, consumed)

	h.Route = "/"
	h.Handle(keyMsg(" "))
	consumed, cmd = h.Handle(keyMsg("d"))
	assert.True(t, consumed, "keys typed after SPC never reach the page")
	assert.Nil(t, cmd, "SPC d is scoped to /result")
	assert.False(t, h.Waiting())
}

func TestKeyHandler_SingleKeys(t *testing.T) {
	h := NewKeyHandler(newKeymap())

	consumed, cmd := h.Handle(keyMsg("q"))
	assert.True(t, consumed)
	require.NotNil(t, cmd)
	assert.Equal(t, quitMsg{}, cmd())

	consumed, cmd = h.Handle(keyMsg("j"))
	assert.False(t, consumed)
	assert.Nil(t, cmd)
}

func TestRenderKeybindHelp(t *testing.T) {
	h := NewKeyHandler(newKeymap())
	assert.Empty(t, RenderKeybindHelp(h, "/"), "nothing pending")
	assert.Empty(t, RenderKeybindHelp(nil, "/"))

	h.Handle(keyMsg(" "))
	out := RenderKeybindHelp(h, "/result")
	for _, want := range []string{"SPC", "Go to", "Download", "cancel"} {
		assert.Contains(t, out, want)
	}

	h.Handle(keyMsg("g"))
	out = RenderKeybindHelp(h, "/result")
	assert.Contains(t, out, "SPC g")
	assert.Contains(t, out, "Checkout")
}

// keyMsg builds the tea.KeyMsg Bubble Tea would deliver for s.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// typeText sends s to v one key at a time.
func typeText(v View, s string) View {
	for _, r := range s {
		v, _ = v.Update(keyMsg(string(r)))
	}
	return v
}
