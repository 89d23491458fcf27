package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingPage counts lifecycle calls.
type countingPage struct {
	inits    int
	unmounts int
	updates  int
}

func (p *countingPage) Init() tea.Cmd {
	p.inits++
	return nil
}

func (p *countingPage) Update(tea.Msg) (View, tea.Cmd) {
	p.updates++
	return p, nil
}

func (p *countingPage) View() string {
	return "counting"
}

func (p *countingPage) Unmount() {
	p.unmounts++
}

func TestRouter_NavigateReplacesAndUnmounts(t *testing.T) {
	r := NewRouter()
	first, second := &countingPage{}, &countingPage{}
	r.Handle("/a", func() View { return first })
	r.Handle("/b", func() View { return second })

	r.Navigate("/a")
	require.Same(t, first, r.Current)
	assert.Equal(t, 1, first.inits)

	r.Navigate("/b")
	assert.Equal(t, 1, first.unmounts)
	assert.Same(t, second, r.Current)
	assert.Equal(t, "/b", r.Path)

	r.Update(keyMsg("x"))
	assert.Equal(t, 1, second.updates)
	assert.Zero(t, first.updates)
}

func TestRouter_SamePathIsNoop(t *testing.T) {
	r := NewRouter()
	calls := 0
	r.Handle("/a", func() View {
		calls++
		return &countingPage{}
	})

	r.Navigate("/a")
	r.Navigate("/a")
	assert.Equal(t, 1, calls)
}

func TestRouter_UnknownPathRendersNotFound(t *testing.T) {
	r := NewRouter()
	r.Navigate("/missing")
	page, ok := r.Current.(*PageView)
	require.True(t, ok, "got %T", r.Current)
	assert.Equal(t, "Not found", page.Title)
	assert.False(t, r.Has("/missing"))
}

func TestRouter_UnmountKeepsLastFrame(t *testing.T) {
	r := NewRouter()
	page := &countingPage{}
	r.Handle("/a", func() View { return page })
	r.Navigate("/a")

	r.Unmount()
	assert.Equal(t, 1, page.unmounts)
	assert.Equal(t, "counting", r.View())
}

func TestRouter_NothingMounted(t *testing.T) {
	r := NewRouter()
	assert.Nil(t, r.Update(keyMsg("x")))
	assert.Empty(t, r.View())
	assert.False(t, r.CapturesText())
}
