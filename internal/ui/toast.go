package ui

import (
	"time"

	"imagefy/internal/submission"
	"imagefy/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultToastTTL = 4 * time.Second
	defaultMaxToast = 3
	maxToastWidth   = 48
)

// Toast is one visible notification.
type Toast struct {
	ID int
	submission.Notification
}

// Toasts is the notification stack. It satisfies submission.Notifier so the
// workflow can raise toasts directly from the event loop; Flush then
// schedules their expiry.
type Toasts struct {
	TTL   time.Duration
	Max   int
	Items []Toast // oldest first

	nextID  int
	pending []int
}

var _ submission.Notifier = (*Toasts)(nil)

// NewToasts creates a stack with a 4s lifetime and room for 3 toasts.
func NewToasts() *Toasts {
	return &Toasts{TTL: defaultToastTTL, Max: defaultMaxToast}
}

// Notify implements submission.Notifier. The oldest toast is dropped when the
// stack is full.
func (t *Toasts) Notify(n submission.Notification) {
	t.nextID++
	t.Items = append(t.Items, Toast{ID: t.nextID, Notification: n})
	if len(t.Items) > t.Max {
		t.Items = t.Items[len(t.Items)-t.Max:]
	}
	t.pending = append(t.pending, t.nextID)
}

// Flush returns expiry timers for toasts raised since the last call.
func (t *Toasts) Flush() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(t.pending))
	for _, id := range t.pending {
		id := id
		cmds = append(cmds, tea.Tick(t.TTL, func(at time.Time) tea.Msg {
			return toastExpiredMsg{ID: id, At: at}
		}))
	}
	t.pending = nil
	return tea.Batch(cmds...)
}

// Expire removes the toast with id, if still shown.
func (t *Toasts) Expire(id int) {
	for i, item := range t.Items {
		if item.ID == id {
			t.Items = append(t.Items[:i], t.Items[i+1:]...)
			return
		}
	}
}

// Len returns the number of visible toasts.
func (t *Toasts) Len() int {
	return len(t.Items)
}

// View renders the toasts stacked vertically, newest at the bottom.
func (t *Toasts) View() string {
	if len(t.Items) == 0 {
		return ""
	}
	rows := make([]string, 0, len(t.Items))
	for _, item := range t.Items {
		rows = append(rows, toastStyle(item.Level).Render(textutil.Truncate(item.Text, maxToastWidth)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}

func toastStyle(level submission.Level) lipgloss.Style {
	switch level {
	case submission.LevelError:
		return Styles.ToastError
	case submission.LevelSuccess:
		return Styles.ToastSuccess
	default:
		return Styles.ToastInfo
	}
}
