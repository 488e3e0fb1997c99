package mode

import (
	"errors"
	"fmt"

	"github.com/dshills/driftwm/internal/wm"
)

// Mode errors.
var (
	// ErrNotPassthrough is returned when entering a modal state from
	// anything other than Passthrough.
	ErrNotPassthrough = errors.New("mode: not in passthrough")

	// ErrInvalidMode is returned for an unknown or non-enterable mode.
	ErrInvalidMode = errors.New("mode: invalid mode")
)

// ChangeCallback is called after every mode change.
type ChangeCallback func(from, to Mode)

// Manager tracks the active mode and the grab of interactive modes.
// It is not safe for concurrent use.
type Manager struct {
	current   Mode
	grab      Grab
	callbacks []ChangeCallback
}

// NewManager creates a manager in Passthrough.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	return m.current
}

// Is reports whether mode is active.
func (m *Manager) Is(mode Mode) bool {
	return m.current == mode
}

// Grab returns the grab of an interactive mode.
func (m *Manager) Grab() (Grab, bool) {
	if !m.current.Interactive() {
		return Grab{}, false
	}
	return m.grab, true
}

// OnChange registers a callback invoked after each transition.
func (m *Manager) OnChange(cb ChangeCallback) {
	m.callbacks = append(m.callbacks, cb)
}

// Enter switches from Passthrough to mode. Move and Resize record g.
func (m *Manager) Enter(mode Mode, g Grab) error {
	if mode == Passthrough || mode > WindowSwitcher {
		return fmt.Errorf("%w: %s", ErrInvalidMode, mode)
	}
	if m.current != Passthrough {
		return fmt.Errorf("%w: %s active", ErrNotPassthrough, m.current)
	}
	if mode.Interactive() {
		if g.Window.IsZero() {
			return fmt.Errorf("%w: %s without window", ErrInvalidMode, mode)
		}
		m.grab = g
	} else {
		m.grab = Grab{}
	}
	m.set(mode)
	return nil
}

// Exit returns to Passthrough from mode. Exiting a mode that is not
// active does nothing and reports false.
func (m *Manager) Exit(mode Mode) bool {
	if m.current != mode || mode == Passthrough {
		return false
	}
	m.grab = Grab{}
	m.set(Passthrough)
	return true
}

// Reset returns to Passthrough from any mode.
func (m *Manager) Reset() Mode {
	prev := m.current
	if prev != Passthrough {
		m.grab = Grab{}
		m.set(Passthrough)
	}
	return prev
}

// Regrab re-anchors the active interactive grab at box and cursor
// position (x, y), as when a snapped window is released mid-move.
func (m *Manager) Regrab(box wm.Box, x, y float64) {
	if m.current.Interactive() {
		m.grab.Box = box
		m.grab.X, m.grab.Y = x, y
	}
}

// Involves reports whether the active grab targets ref.
func (m *Manager) Involves(ref wm.Ref) bool {
	return m.current.Interactive() && m.grab.Window == ref
}

func (m *Manager) set(to Mode) {
	from := m.current
	m.current = to
	for _, cb := range m.callbacks {
		cb(from, to)
	}
}
