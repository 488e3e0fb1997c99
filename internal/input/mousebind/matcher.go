package mousebind

import (
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/wm"
)

// Config configures gesture detection.
type Config struct {
	// DoubleClickTime is the double-click window in milliseconds.
	DoubleClickTime uint32
	// DragThreshold is the distance in pixels the pointer must travel
	// with a button held before drag bindings fire.
	DragThreshold float64
}

// DefaultConfig returns the stock gesture settings.
func DefaultConfig() Config {
	return Config{DoubleClickTime: 500}
}

// Result is the outcome of matching one event.
type Result struct {
	// Fire lists bindings whose actions run now, in table order.
	Fire []*Binding
	// Consumed is set when the event must not reach the client.
	Consumed bool
	// DoubleClick is set when a press completed a double-click.
	DoubleClick bool
	// Steps is the repeat count for scroll bindings.
	Steps int
}

// Matcher matches pointer gestures against a binding table and owns the
// transient per-binding pending flags.
type Matcher struct {
	cfg      Config
	bindings []Binding
	pending  []bool
	clicks   *clickTracker
}

// NewMatcher creates a matcher over bindings.
func NewMatcher(bindings []Binding, cfg Config) *Matcher {
	m := &Matcher{cfg: cfg, clicks: newClickTracker(cfg.DoubleClickTime)}
	m.SetBindings(bindings)
	return m
}

// SetBindings replaces the binding table and clears all pending state.
func (m *Matcher) SetBindings(bindings []Binding) {
	m.bindings = bindings
	m.pending = make([]bool, len(bindings))
}

// SetConfig replaces the gesture settings.
func (m *Matcher) SetConfig(cfg Config) {
	m.cfg = cfg
	m.clicks.maxTime = cfg.DoubleClickTime
}

// Config returns the gesture settings.
func (m *Matcher) Config() Config {
	return m.cfg
}

// Bindings returns the binding table.
func (m *Matcher) Bindings() []Binding {
	return m.bindings
}

// Pending reports whether binding i is pending.
func (m *Matcher) Pending(i int) bool {
	return m.pending[i]
}

// AnyPending reports whether any binding on button is pending.
func (m *Matcher) AnyPending(button Button) bool {
	for i := range m.bindings {
		if m.pending[i] && m.bindings[i].Button == button {
			return true
		}
	}
	return false
}

// PendingDrag reports whether a drag binding on button waits for motion.
func (m *Matcher) PendingDrag(button Button) bool {
	for i := range m.bindings {
		b := &m.bindings[i]
		if m.pending[i] && b.Button == button && b.Event == EventDrag {
			return true
		}
	}
	return false
}

// Press matches a button press in ctx at time (ms).
func (m *Matcher) Press(ctx cursor.Context, button Button, mods key.Modifier, time uint32) Result {
	var res Result
	res.DoubleClick = m.clicks.press(button, ctx, time)

	for i := range m.bindings {
		b := &m.bindings[i]
		if !b.matchesButton(ctx.Element, button, mods) {
			continue
		}
		switch b.Event {
		case EventClick, EventDrag:
			if !res.DoubleClick {
				m.pending[i] = true
				res.Consumed = res.Consumed || b.consumes()
			}
			continue
		case EventDoubleClick:
			if !res.DoubleClick {
				continue
			}
		case EventPress:
		default:
			continue
		}
		res.Consumed = res.Consumed || b.consumes()
		res.Fire = append(res.Fire, b)
	}
	return res
}

// Release matches a button release in ctx. Every pending flag on button
// is cleared afterwards, matched or not.
func (m *Matcher) Release(ctx cursor.Context, button Button, mods key.Modifier) Result {
	var res Result
	for i := range m.bindings {
		b := &m.bindings[i]
		if b.matchesButton(ctx.Element, button, mods) {
			switch b.Event {
			case EventRelease:
				res.Consumed = res.Consumed || b.consumes()
				res.Fire = append(res.Fire, b)
			case EventClick:
				if m.pending[i] {
					res.Consumed = res.Consumed || b.consumes()
					res.Fire = append(res.Fire, b)
				}
			case EventDrag:
				if m.pending[i] {
					res.Consumed = res.Consumed || b.consumes()
				}
			}
		}
	}
	m.clearButton(button)
	return res
}

// Drag fires pending drag bindings on button. The caller invokes it once
// motion with the button held exceeds the drag threshold, passing the
// context captured at press time.
func (m *Matcher) Drag(button Button) Result {
	var res Result
	for i := range m.bindings {
		b := &m.bindings[i]
		if b.Event != EventDrag || b.Button != button || !m.pending[i] {
			continue
		}
		m.pending[i] = false
		res.Consumed = res.Consumed || b.consumes()
		res.Fire = append(res.Fire, b)
	}
	return res
}

// PastThreshold reports whether motion from the press point is far enough
// to start a drag.
func (m *Matcher) PastThreshold(dx, dy float64) bool {
	t := m.cfg.DragThreshold
	return dx*dx+dy*dy > t*t
}

// Scroll matches steps scroll steps in dir. Matching bindings consume the
// event even when steps is zero so that partial deltas do not leak to the
// client.
func (m *Matcher) Scroll(ctx cursor.Context, dir Direction, steps int, mods key.Modifier) Result {
	res := Result{Steps: steps}
	if dir == ScrollNone {
		return res
	}
	for i := range m.bindings {
		b := &m.bindings[i]
		if b.Event != EventScroll || b.Direction != dir || !mods.Matches(b.Mods) ||
			!cursor.Contains(b.Context, ctx.Element) {
			continue
		}
		res.Consumed = true
		if steps > 0 {
			res.Fire = append(res.Fire, b)
		}
	}
	return res
}

// Forget drops double-click history referring to a destroyed window.
func (m *Matcher) Forget(ref wm.Ref) {
	m.clicks.forget(ref)
}

// Cancel clears every pending flag, as when a grab is abandoned.
func (m *Matcher) Cancel() {
	clear(m.pending)
}

func (m *Matcher) clearButton(button Button) {
	for i := range m.bindings {
		if m.bindings[i].Button == button {
			m.pending[i] = false
		}
	}
}
