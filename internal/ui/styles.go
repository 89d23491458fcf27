package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, brand
	ColorHighlight = "205" // Magenta - for the active nav item, borders
	ColorDanger    = "196" // Red - for error toasts
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
	ColorDim       = "243" // Darker gray - for very dim text
	ColorWarning   = "208" // Orange - for info toasts
	ColorSuccess   = "42"  // Green - for success toasts
)

// Styles contains shared style definitions used across pages and modals.
var Styles = struct {
	// Title styles
	Title        lipgloss.Style // Bold accent color - for page titles
	TitleWarning lipgloss.Style // Bold danger color - for warning titles
	Brand        lipgloss.Style // Bold accent - the "✦ Imagefy" mark

	// Box styles
	Box        lipgloss.Style // Standard box with rounded border
	BoxDanger  lipgloss.Style // Error box (danger border)
	BoxCompact lipgloss.Style // Compact box with less padding (menus, toasts)
	Frame      lipgloss.Style // Image frame on the Results page

	// Nav styles
	NavItem       lipgloss.Style // Inactive nav entry
	NavActive     lipgloss.Style // Entry whose path matches the current route
	NavCursor     lipgloss.Style // Entry under the keyboard cursor while nav is focused
	ButtonPrimary lipgloss.Style // Filled action (Checkout, Sign In)
	ButtonOutline lipgloss.Style // Outlined action (Sign up)
	Bar           lipgloss.Style // Header bar with bottom border

	// Text styles
	Selected lipgloss.Style // Highlighted/selected items (bold highlight color)
	Muted    lipgloss.Style // Dimmed text (muted color)
	Normal   lipgloss.Style // Normal text (text color)
	Hint     lipgloss.Style // Help/hint text (muted color)
	Status   lipgloss.Style // Status indicators (accent color)
	Empty    lipgloss.Style // Empty state text (muted, italic)
	Label    lipgloss.Style // Modal label/content (default)
	Details  lipgloss.Style // Warning details (warning color)

	// Toast styles
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Brand: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	BoxCompact: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Frame: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDim)).
		Padding(1, 2),
	NavItem: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)).
		Padding(0, 1),
	NavActive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorAccent)).
		Bold(true).
		Padding(0, 1),
	NavCursor: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Underline(true).
		Bold(true).
		Padding(0, 1),
	ButtonPrimary: lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	ButtonOutline: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1),
	Bar: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color(ColorDim)),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Label: lipgloss.NewStyle(),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	ToastInfo: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorWarning)).
		Padding(0, 1),
	ToastSuccess: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorSuccess)).
		Padding(0, 1),
	ToastError: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Foreground(lipgloss.Color(ColorDanger)).
		Padding(0, 1),
}
