// Package keybind matches keyboard events against the keybind table and
// tracks which key releases must be hidden from clients.
package keybind

import (
	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/input/key"
)

// Binding maps a key combination to an action list.
type Binding struct {
	Combo key.Combo
	// OnRelease defers the actions to the release of the key, and only if
	// no other key was pressed meanwhile.
	OnRelease bool
	// AllowWhenLocked lets the binding fire while the focused window
	// inhibits shortcuts.
	AllowWhenLocked bool
	Actions         []action.Action
}

// togglesKeybinds reports whether b contains a ToggleKeybinds action.
func (b *Binding) togglesKeybinds() bool {
	for _, a := range b.Actions {
		if a.Kind == action.ToggleKeybinds {
			return true
		}
	}
	return false
}

// Result is the outcome of one key event.
type Result struct {
	// Fire is the binding to run, or nil.
	Fire *Binding
	// Consumed is set when the event must not reach the client.
	Consumed bool
}

// Matcher matches key events. It is not safe for concurrent use.
type Matcher struct {
	bindings []Binding
	disabled bool

	// bound holds keycodes whose press was consumed; their release is
	// swallowed too.
	bound map[uint32]struct{}

	// deferred is the on-release binding armed by a press of keycode.
	deferred        *Binding
	deferredKeycode uint32
	// deferredMod is set when the armed key is a modifier whose press
	// went to the client.
	deferredMod bool
}

// NewMatcher creates a matcher over bindings.
func NewMatcher(bindings []Binding) *Matcher {
	return &Matcher{bindings: bindings, bound: make(map[uint32]struct{})}
}

// SetBindings replaces the binding table. Keys already held keep their
// swallowed releases.
func (m *Matcher) SetBindings(bindings []Binding) {
	m.bindings = bindings
	m.deferred = nil
}

// Bindings returns the binding table.
func (m *Matcher) Bindings() []Binding {
	return m.bindings
}

// Toggle enables or disables keybinds other than those that toggle them
// back, returning the new enabled state.
func (m *Matcher) Toggle() bool {
	m.disabled = !m.disabled
	return !m.disabled
}

// Enabled reports whether keybinds are enabled.
func (m *Matcher) Enabled() bool {
	return !m.disabled
}

// Press matches a key press. inhibited is set while the focused window
// holds a shortcuts inhibitor.
func (m *Matcher) Press(ev key.Event, inhibited bool) Result {
	// Any other press cancels a deferred on-release binding.
	if m.deferred != nil && ev.Keycode != m.deferredKeycode {
		m.deferred = nil
	}
	b := m.match(ev, inhibited)
	if b == nil {
		return Result{}
	}
	if b.OnRelease {
		m.deferred = b
		m.deferredKeycode = ev.Keycode
		m.deferredMod = ev.Sym.IsModifier()
		if m.deferredMod {
			return Result{}
		}
		m.bound[ev.Keycode] = struct{}{}
		return Result{Consumed: true}
	}
	m.bound[ev.Keycode] = struct{}{}
	return Result{Fire: b, Consumed: true}
}

// Release handles a key release: swallowed if its press was bound,
// firing a deferred on-release binding when armed by the same key.
func (m *Matcher) Release(ev key.Event) Result {
	_, bound := m.bound[ev.Keycode]
	delete(m.bound, ev.Keycode)

	if m.deferred != nil && ev.Keycode == m.deferredKeycode {
		b := m.deferred
		m.deferred = nil
		return Result{Fire: b, Consumed: !m.deferredMod}
	}
	return Result{Consumed: bound}
}

// Swallowed reports whether the release of keycode will be hidden.
func (m *Matcher) Swallowed(keycode uint32) bool {
	_, ok := m.bound[keycode]
	return ok
}

// Reset forgets held-key state, as when the keyboard focus is torn down.
func (m *Matcher) Reset() {
	clear(m.bound)
	m.deferred = nil
}

func (m *Matcher) match(ev key.Event, inhibited bool) *Binding {
	for i := range m.bindings {
		b := &m.bindings[i]
		if !b.Combo.Matches(ev.Sym, ev.Mods) {
			continue
		}
		// Modifier keys only trigger on-release bindings.
		if ev.Sym.IsModifier() && !b.OnRelease {
			continue
		}
		if m.disabled && !b.togglesKeybinds() {
			continue
		}
		if inhibited && !b.AllowWhenLocked {
			continue
		}
		return b
	}
	return nil
}
