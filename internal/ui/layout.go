package ui

// DesktopMinWidth is the narrowest terminal that gets the full nav row.
const DesktopMinWidth = 80

// LayoutMode selects how the nav shell renders.
type LayoutMode int

const (
	LayoutMobile LayoutMode = iota
	LayoutDesktop
)

func (m LayoutMode) String() string {
	switch m {
	case LayoutMobile:
		return "Mobile"
	case LayoutDesktop:
		return "Desktop"
	default:
		return "Unknown"
	}
}

// LayoutFor returns the layout for a terminal width. Zero means the size is
// not known yet and renders as desktop at DesktopMinWidth.
func LayoutFor(width int) LayoutMode {
	if width <= 0 || width >= DesktopMinWidth {
		return LayoutDesktop
	}
	return LayoutMobile
}
