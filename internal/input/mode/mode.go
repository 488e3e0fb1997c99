package mode

import (
	"github.com/dshills/driftwm/internal/wm"
)

// Mode is the input interpretation state.
type Mode uint8

const (
	Passthrough Mode = iota
	Move
	Resize
	Menu
	WindowSwitcher
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Passthrough:
		return "passthrough"
	case Move:
		return "move"
	case Resize:
		return "resize"
	case Menu:
		return "menu"
	case WindowSwitcher:
		return "window-switcher"
	default:
		return "unknown"
	}
}

// Interactive reports whether m is an interactive window grab.
func (m Mode) Interactive() bool {
	return m == Move || m == Resize
}

// Grab records the state captured when an interactive move or resize
// starts.
type Grab struct {
	// Window is the grabbed window; it may die during the grab.
	Window wm.Ref
	// Box is the window geometry at grab time.
	Box wm.Box
	// X and Y are the cursor position at grab time.
	X, Y float64
	// Button is the pressed button that ends the grab on release, or 0
	// for keyboard-initiated grabs ended by any button.
	Button uint32
	// Edges are the active resize edges.
	Edges wm.Edges
}
