package ui

import (
	"strings"
	"testing"

	"imagefy/internal/submission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toastTexts(t *Toasts) []string {
	var out []string
	for _, item := range t.Items {
		out = append(out, item.Text)
	}
	return out
}

func TestToasts_KeepsNewestThree(t *testing.T) {
	ts := NewToasts()
	for _, text := range []string{"a", "b", "c", "d"} {
		ts.Notify(submission.Notification{Level: submission.LevelError, Text: text})
	}
	assert.Equal(t, []string{"b", "c", "d"}, toastTexts(ts))
}

func TestToasts_FlushSchedulesOnce(t *testing.T) {
	ts := NewToasts()
	assert.Nil(t, ts.Flush(), "nothing pending")
	ts.Notify(submission.Notification{Text: "hello"})
	assert.NotNil(t, ts.Flush())
	assert.Nil(t, ts.Flush(), "already scheduled")
}

func TestToasts_Expire(t *testing.T) {
	ts := NewToasts()
	ts.Notify(submission.Notification{Text: "one"})
	ts.Notify(submission.Notification{Text: "two"})
	require.Equal(t, 2, ts.Len())
	first := ts.Items[0].ID

	ts.Expire(first)
	assert.Equal(t, []string{"two"}, toastTexts(ts))
	ts.Expire(first)
	assert.Equal(t, 1, ts.Len(), "expiring twice is harmless")
}

func TestToasts_View(t *testing.T) {
	ts := NewToasts()
	assert.Empty(t, ts.View())

	long := strings.Repeat("x", 100)
	ts.Notify(submission.Notification{Level: submission.LevelSuccess, Text: "Saved"})
	ts.Notify(submission.Notification{Level: submission.LevelError, Text: long})
	out := ts.View()
	assert.Contains(t, out, "Saved")
	assert.NotContains(t, out, long, "long toasts are truncated")
}
