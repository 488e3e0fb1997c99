package mousebind

import (
	"math/rand"
	"testing"

	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/wm"
)

var (
	winA = wm.Ref{Slot: 1, Gen: 1}
	winB = wm.Ref{Slot: 2, Gen: 1}
)

func ctxOn(e cursor.Element, w wm.Ref) cursor.Context {
	return cursor.Context{Element: e, Window: w}
}

func testBindings() []Binding {
	return []Binding{
		{Context: cursor.ElementTitle, Button: BtnLeft, Event: EventPress},
		{Context: cursor.ElementTitle, Button: BtnLeft, Event: EventDrag},
		{Context: cursor.ElementTitle, Button: BtnLeft, Event: EventDoubleClick},
		{Context: cursor.ElementButtonClose, Button: BtnLeft, Event: EventClick},
		{Context: cursor.ElementFrame, Button: BtnLeft, Mods: key.ModLogo, Event: EventDrag},
		{Context: cursor.ElementRoot, Button: BtnRight, Event: EventRelease},
		{Context: cursor.ElementClient, Button: BtnMiddle, Event: EventClick},
	}
}

func TestPendingClearedAfterEveryRelease(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	elements := []cursor.Element{cursor.ElementTitle, cursor.ElementButtonClose, cursor.ElementClient, cursor.ElementRoot}
	buttons := []Button{BtnLeft, BtnRight, BtnMiddle}
	mods := []key.Modifier{key.ModNone, key.ModLogo}

	m := NewMatcher(testBindings(), DefaultConfig())
	var now uint32
	for i := 0; i < 2000; i++ {
		b := buttons[rng.Intn(len(buttons))]
		now += uint32(rng.Intn(700))
		pressCtx := ctxOn(elements[rng.Intn(len(elements))], winA)
		m.Press(pressCtx, b, mods[rng.Intn(2)], now)
		if rng.Intn(3) == 0 {
			m.Drag(b)
		}
		releaseCtx := ctxOn(elements[rng.Intn(len(elements))], winA)
		m.Release(releaseCtx, b, mods[rng.Intn(2)])
		if m.AnyPending(b) {
			t.Fatalf("step %d: pending flag stuck on %s", i, b)
		}
	}
}

func TestClickFiresOnReleaseOnlyWhenPressed(t *testing.T) {
	m := NewMatcher(testBindings(), DefaultConfig())
	btn := ctxOn(cursor.ElementButtonClose, winA)

	res := m.Press(btn, BtnLeft, 0, 0)
	if len(res.Fire) != 0 || !m.Pending(3) {
		t.Fatalf("press: fire=%d pending=%v", len(res.Fire), m.Pending(3))
	}
	res = m.Release(btn, BtnLeft, 0)
	if len(res.Fire) != 1 || res.Fire[0].Event != EventClick {
		t.Fatalf("release fired %v", res.Fire)
	}

	// A release without a matching press does not click.
	res = m.Release(btn, BtnLeft, 0)
	if len(res.Fire) != 0 {
		t.Errorf("orphan release fired %v", res.Fire)
	}
}

func TestDoubleClickThirdPressStartsOver(t *testing.T) {
	m := NewMatcher(testBindings(), Config{DoubleClickTime: 400})
	title := ctxOn(cursor.ElementTitle, winA)

	presses := []struct {
		time   uint32
		double bool
	}{
		{1000, false},
		{1100, true},
		{1200, false},
		{1300, true},
		{2000, false},
	}
	for i, p := range presses {
		res := m.Press(title, BtnLeft, 0, p.time)
		m.Release(title, BtnLeft, 0)
		if res.DoubleClick != p.double {
			t.Errorf("press %d at %d: double = %v, want %v", i, p.time, res.DoubleClick, p.double)
		}
		fired := false
		for _, b := range res.Fire {
			if b.Event == EventDoubleClick {
				fired = true
			}
		}
		if fired != p.double {
			t.Errorf("press %d: doubleclick binding fired = %v", i, fired)
		}
	}
}

func TestDoubleClickRequiresSameTarget(t *testing.T) {
	m := NewMatcher(testBindings(), Config{DoubleClickTime: 400})
	tests := []struct {
		name   string
		second cursor.Context
		button Button
	}{
		{"other window", ctxOn(cursor.ElementTitle, winB), BtnLeft},
		{"other element", ctxOn(cursor.ElementClient, winA), BtnLeft},
		{"other button", ctxOn(cursor.ElementTitle, winA), BtnRight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.clicks.reset()
			m.Press(ctxOn(cursor.ElementTitle, winA), BtnLeft, 0, 100)
			if res := m.Press(tt.second, tt.button, 0, 150); res.DoubleClick {
				t.Error("should not be a double-click")
			}
		})
	}
}

func TestDoubleClickSuppressesPending(t *testing.T) {
	m := NewMatcher(testBindings(), Config{DoubleClickTime: 400})
	title := ctxOn(cursor.ElementTitle, winA)
	m.Press(title, BtnLeft, 0, 0)
	m.Release(title, BtnLeft, 0)
	res := m.Press(title, BtnLeft, 0, 100)
	if !res.DoubleClick || m.PendingDrag(BtnLeft) {
		t.Errorf("double=%v pendingDrag=%v", res.DoubleClick, m.PendingDrag(BtnLeft))
	}
}

func TestForgetDropsDestroyedWindow(t *testing.T) {
	m := NewMatcher(testBindings(), Config{DoubleClickTime: 400})
	title := ctxOn(cursor.ElementTitle, winA)
	m.Press(title, BtnLeft, 0, 0)
	m.Forget(winA)
	if res := m.Press(title, BtnLeft, 0, 50); res.DoubleClick {
		t.Error("forgotten window completed a double-click")
	}
}

func TestDragFiresOnceWithPressContext(t *testing.T) {
	m := NewMatcher(testBindings(), Config{DoubleClickTime: 400, DragThreshold: 3})
	title := ctxOn(cursor.ElementTitle, winA)
	m.Press(title, BtnLeft, 0, 0)

	if m.PastThreshold(2, 2) {
		t.Error("2,2 is within a 3px threshold")
	}
	if !m.PastThreshold(3, 1) {
		t.Error("3,1 is past a 3px threshold")
	}
	res := m.Drag(BtnLeft)
	if len(res.Fire) != 1 || res.Fire[0].Context != cursor.ElementTitle {
		t.Fatalf("drag fired %v", res.Fire)
	}
	if res := m.Drag(BtnLeft); len(res.Fire) != 0 {
		t.Error("drag fired twice")
	}
}

func TestFrameContextConsumes(t *testing.T) {
	m := NewMatcher(testBindings(), DefaultConfig())
	client := ctxOn(cursor.ElementClient, winA)

	res := m.Press(client, BtnLeft, key.ModLogo, 0)
	if !res.Consumed {
		t.Error("frame drag binding should consume a client press")
	}
	res = m.Release(client, BtnLeft, key.ModLogo)
	if !res.Consumed {
		t.Error("pending frame drag should consume the release")
	}

	res = m.Press(client, BtnMiddle, 0, 1000)
	if res.Consumed {
		t.Error("client-context click must not consume")
	}
}

func TestScrollAccumulation(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 30, 301} {
		var acc ScrollAccumulator
		total := 0
		for i := 0; i < n; i++ {
			total += acc.Add(40, true)
		}
		if want := 40 * n / 120; total != want {
			t.Errorf("N=%d: steps = %d, want %d", n, total, want)
		}
		if want := float64(40 * n % 120); acc.Remainder() != want {
			t.Errorf("N=%d: remainder = %v, want %v", n, acc.Remainder(), want)
		}
	}
}

func TestScrollContinuousAndReset(t *testing.T) {
	var acc ScrollAccumulator
	if s := acc.Add(25, false); s != 2 {
		t.Errorf("steps = %d, want 2", s)
	}
	if acc.Remainder() != 5 {
		t.Errorf("remainder = %v", acc.Remainder())
	}
	if s := acc.Add(-12, false); s != 0 {
		t.Errorf("steps = %d, want 0 (-7 accumulated)", s)
	}
	if s := acc.Add(0, false); s != 0 || acc.Remainder() != 0 {
		t.Error("zero delta should reset")
	}
	if s := acc.Add(-30, false); s != -3 {
		t.Errorf("steps = %d, want -3", s)
	}
}

func TestScrollSourceChangeDropsRemainder(t *testing.T) {
	tests := []struct {
		name          string
		firstDelta    float64
		firstDiscrete bool
		delta         float64
		discrete      bool
		want          int
	}{
		{"wheel then touchpad", 40, true, 5, false, 0},
		{"touchpad then wheel", 9, false, 100, true, 0},
		{"same source carries", 80, true, 40, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var acc ScrollAccumulator
			if s := acc.Add(tt.firstDelta, tt.firstDiscrete); s != 0 {
				t.Fatalf("first steps = %d, want 0", s)
			}
			if s := acc.Add(tt.delta, tt.discrete); s != tt.want {
				t.Errorf("steps = %d, want %d", s, tt.want)
			}
			if tt.discrete != tt.firstDiscrete && acc.Remainder() != tt.delta {
				t.Errorf("remainder = %v, want only the new delta %v", acc.Remainder(), tt.delta)
			}
		})
	}
}

func TestScrollBindings(t *testing.T) {
	bindings := []Binding{
		{Context: cursor.ElementRoot, Direction: ScrollUp, Event: EventScroll},
		{Context: cursor.ElementTitle, Direction: ScrollDown, Mods: key.ModAlt, Event: EventScroll},
	}
	m := NewMatcher(bindings, DefaultConfig())

	res := m.Scroll(ctxOn(cursor.ElementRoot, wm.Ref{}), Vertical.StepDirection(-2), 2, 0)
	if len(res.Fire) != 1 || res.Steps != 2 || !res.Consumed {
		t.Errorf("root up: %+v", res)
	}
	res = m.Scroll(ctxOn(cursor.ElementTitle, winA), ScrollDown, 0, key.ModAlt)
	if len(res.Fire) != 0 || !res.Consumed {
		t.Errorf("partial step should consume without firing: %+v", res)
	}
	res = m.Scroll(ctxOn(cursor.ElementTitle, winA), ScrollDown, 1, 0)
	if res.Consumed {
		t.Error("missing modifier should not match")
	}
}
