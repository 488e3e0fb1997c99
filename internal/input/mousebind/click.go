package mousebind

import (
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/wm"
)

// clickTracker detects double-clicks: two presses of the same button on
// the same window and element within the configured time.
type clickTracker struct {
	maxTime uint32

	lastButton  Button
	lastWindow  wm.Ref
	lastElement cursor.Element
	lastTime    uint32
	// armed is false until a press starts a sequence.
	armed bool
}

func newClickTracker(maxTime uint32) *clickTracker {
	return &clickTracker{maxTime: maxTime}
}

// press records a press and reports whether it completes a double-click.
// A completed double-click ends the sequence so that a third press starts
// a new one.
func (t *clickTracker) press(b Button, ctx cursor.Context, time uint32) bool {
	elapsed := time - t.lastTime
	t.lastTime = time

	if !t.armed || t.lastButton != b || t.lastWindow != ctx.Window || t.lastElement != ctx.Element {
		t.lastButton = b
		t.lastWindow = ctx.Window
		t.lastElement = ctx.Element
		t.armed = true
		return false
	}
	// Timestamps are monotonic; a wrapped difference is a stale sequence.
	if elapsed < t.maxTime {
		t.reset()
		return true
	}
	return false
}

// forget drops history that refers to ref.
func (t *clickTracker) forget(ref wm.Ref) {
	if t.armed && t.lastWindow == ref {
		t.reset()
	}
}

func (t *clickTracker) reset() {
	t.armed = false
	t.lastButton = BtnNone
	t.lastWindow = wm.Ref{}
	t.lastElement = cursor.ElementNone
}
