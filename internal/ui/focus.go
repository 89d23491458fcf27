package ui

// Focus targets.
const (
	FocusNav     = "nav"
	FocusContent = "content"
)

// FocusManager tracks and rotates focus across regions.
type FocusManager struct {
	Current  string   // ID of the currently focused region
	Order    []string // Tab order for focus rotation
	OnChange func(from, to string)
}

// NewFocusManager starts with the page focused.
func NewFocusManager() *FocusManager {
	return &FocusManager{
		Current: FocusContent,
		Order:   []string{FocusNav, FocusContent},
	}
}

// Next advances focus to the next region in order.
// Returns the new current focus ID.
func (f *FocusManager) Next() string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.index()
	f.move(f.Order[(idx+1)%len(f.Order)])
	return f.Current
}

// Prev moves focus to the previous region in order.
func (f *FocusManager) Prev() string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.index() - 1
	if idx < 0 {
		idx = len(f.Order) - 1
	}
	f.move(f.Order[idx])
	return f.Current
}

// SetFocus sets focus to the given region ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.move(id)
			return true
		}
	}
	return false
}

// Is reports whether id has focus.
func (f *FocusManager) Is(id string) bool {
	return f.Current == id
}

func (f *FocusManager) index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

func (f *FocusManager) move(to string) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
