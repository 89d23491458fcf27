// Package textutil measures and fits text to terminal columns.
package textutil

import (
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks elided text.
const Ellipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate cuts s to at most maxWidth columns, ending in an ellipsis when
// anything was dropped.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	return takeLeft(s, maxWidth-VisualWidth(Ellipsis)) + Ellipsis
}

// TruncateMiddle keeps both ends of s and elides the middle, so URLs and
// paths keep their host and file name.
func TruncateMiddle(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}
	avail := maxWidth - VisualWidth(Ellipsis)
	if avail <= 0 {
		return Ellipsis
	}
	head := avail - avail/2
	return takeLeft(s, head) + Ellipsis + takeRight(s, avail/2)
}

// PadRightVisual pads s with spaces to width columns, truncating when it is
// already wider.
func PadRightVisual(s string, width int) string {
	w := VisualWidth(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + runewidth.FillRight("", width-w)
}

func takeLeft(s string, width int) string {
	if width <= 0 {
		return ""
	}
	out := make([]rune, 0, width)
	used := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if used+rw > width {
			break
		}
		out = append(out, r)
		used += rw
	}
	return string(out)
}

func takeRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	used := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if used+rw > width {
			break
		}
		used += rw
		i--
	}
	return string(runes[i:])
}
