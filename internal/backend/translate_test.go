package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/mousebind"
	"github.com/dshills/driftwm/internal/seat"
)

func newTranslator() *Translator {
	tr := NewTranslator(8, 16)
	base := time.Unix(0, 0)
	tr.start = base
	tr.now = func() time.Time { return base.Add(42 * time.Millisecond) }
	tr.SetSize(100, 50)
	return tr
}

func TestResize(t *testing.T) {
	tr := newTranslator()
	out := tr.Translate(tcell.NewEventResize(120, 40))
	if len(out) != 1 || out[0] != (Resize{Width: 960, Height: 640}) {
		t.Errorf("out = %#v", out)
	}
}

func TestKeyWithModifiers(t *testing.T) {
	tr := newTranslator()
	out := tr.Translate(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModAlt))

	want := []key.Event{
		{Keycode: uint32(key.SymAltL), Sym: key.SymAltL, Pressed: true, Mods: key.ModAlt, Time: 42},
		{Keycode: uint32(key.SymTab), Sym: key.SymTab, Pressed: true, Mods: key.ModAlt, Time: 42},
		{Keycode: uint32(key.SymTab), Sym: key.SymTab, Pressed: false, Mods: key.ModAlt, Time: 42},
		{Keycode: uint32(key.SymAltL), Sym: key.SymAltL, Pressed: false, Mods: key.ModNone, Time: 42},
	}
	if len(out) != len(want) {
		t.Fatalf("out = %#v", out)
	}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("event %d = %#v, want %#v", i, out[i], w)
		}
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		sym  key.Sym
		mods key.Modifier
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), 'a', key.ModNone, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), key.SymSpace, key.ModNone, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), key.SymReturn, key.ModNone, true},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.SymLeftTab, key.ModShift, true},
		{"f3", tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModAlt), key.SymF1 + 2, key.ModAlt, true},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), 'w', key.ModCtrl, true},
		{"meta is logo", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModMeta), 'x', key.ModLogo, true},
		{"unicode", tcell.NewEventKey(tcell.KeyRune, 'λ', tcell.ModNone), key.Sym(0x01000000 + 'λ'), key.ModNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, mods, ok := convertKey(tt.ev)
			if sym != tt.sym || mods != tt.mods || ok != tt.ok {
				t.Errorf("got %v %v %v, want %v %v %v", sym, mods, ok, tt.sym, tt.mods, tt.ok)
			}
		})
	}
}

func TestQuitKey(t *testing.T) {
	tr := newTranslator()
	out := tr.Translate(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	if len(out) != 1 || out[0] != (Quit{}) {
		t.Errorf("out = %#v", out)
	}
}

func TestMouseClickSequence(t *testing.T) {
	tr := newTranslator()

	out := tr.Translate(tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone))
	if len(out) != 2 {
		t.Fatalf("motion out = %#v", out)
	}
	m, ok := out[0].(seat.MotionAbsolute)
	if !ok || m.X != 84.0/800 || m.Y != 88.0/800 {
		t.Errorf("motion = %#v", out[0])
	}
	if _, ok := out[1].(seat.Frame); !ok {
		t.Errorf("last event %T, want Frame", out[1])
	}

	out = tr.Translate(tcell.NewEventMouse(10, 5, tcell.ButtonPrimary, tcell.ModNone))
	if len(out) != 2 || out[0] != (seat.Button{Time: 42, Button: mousebind.BtnLeft, Pressed: true}) {
		t.Errorf("press out = %#v", out)
	}

	out = tr.Translate(tcell.NewEventMouse(11, 5, tcell.ButtonPrimary, tcell.ModNone))
	if len(out) != 2 {
		t.Errorf("drag out = %#v", out)
	}
	if _, ok := out[0].(seat.MotionAbsolute); !ok {
		t.Errorf("drag event %T, want motion", out[0])
	}

	out = tr.Translate(tcell.NewEventMouse(11, 5, tcell.ButtonNone, tcell.ModNone))
	if len(out) != 2 || out[0] != (seat.Button{Time: 42, Button: mousebind.BtnLeft, Pressed: false}) {
		t.Errorf("release out = %#v", out)
	}
}

func TestMouseModifiersAreSynthesized(t *testing.T) {
	tr := newTranslator()
	tr.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	out := tr.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModAlt))
	if len(out) != 3 {
		t.Fatalf("out = %#v", out)
	}
	if k, ok := out[0].(key.Event); !ok || k.Sym != key.SymAltL || !k.Pressed || k.Mods != key.ModAlt {
		t.Errorf("first event = %#v, want Alt press", out[0])
	}
	if b, ok := out[1].(seat.Button); !ok || !b.Pressed {
		t.Errorf("second event = %#v, want button press", out[1])
	}

	out = tr.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))
	if k, ok := out[0].(key.Event); !ok || k.Sym != key.SymAltL || k.Pressed || k.Mods != key.ModNone {
		t.Errorf("first event = %#v, want Alt release", out[0])
	}
}

func TestWheel(t *testing.T) {
	tr := newTranslator()
	tr.Translate(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone))

	out := tr.Translate(tcell.NewEventMouse(1, 1, tcell.WheelUp, tcell.ModNone))
	if len(out) != 2 {
		t.Fatalf("out = %#v", out)
	}
	want := seat.Axis{Time: 42, Orientation: mousebind.Vertical, Delta: -15, Discrete: -120, Source: seat.SourceWheel}
	if out[0] != want {
		t.Errorf("axis = %#v, want %#v", out[0], want)
	}

	out = tr.Translate(tcell.NewEventMouse(1, 1, tcell.WheelRight, tcell.ModNone))
	if a, ok := out[0].(seat.Axis); !ok || a.Orientation != mousebind.Horizontal || a.Discrete != 120 {
		t.Errorf("axis = %#v", out[0])
	}
}
