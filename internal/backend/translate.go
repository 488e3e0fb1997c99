package backend

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/mousebind"
	"github.com/dshills/driftwm/internal/seat"
)

// Wheel deltas for one terminal wheel report.
const (
	wheelDelta    = 15
	wheelDiscrete = 120
)

var modKeys = []struct {
	mod key.Modifier
	sym key.Sym
}{
	{key.ModShift, key.SymShiftL},
	{key.ModCtrl, key.SymControlL},
	{key.ModAlt, key.SymAltL},
	{key.ModLogo, key.SymSuperL},
}

var mouseButtons = []struct {
	mask tcell.ButtonMask
	btn  mousebind.Button
}{
	{tcell.ButtonPrimary, mousebind.BtnLeft},
	{tcell.ButtonSecondary, mousebind.BtnRight},
	{tcell.ButtonMiddle, mousebind.BtnMiddle},
}

const heldButtons = tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle

// Translator converts tcell events into seat device events. Terminals
// report no modifier or button transitions of their own, so the
// translator diffs successive states and synthesizes them.
type Translator struct {
	cellW, cellH int
	cols, rows   int

	quitKey tcell.Key

	start time.Time
	now   func() time.Time

	buttons    tcell.ButtonMask
	mods       key.Modifier
	lastX      int
	lastY      int
	seenMotion bool
}

// NewTranslator creates a translator for cells of the given pixel size.
func NewTranslator(cellW, cellH int) *Translator {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	t := &Translator{cellW: cellW, cellH: cellH, quitKey: tcell.KeyCtrlQ, now: time.Now}
	t.start = t.now()
	return t
}

// SetSize records the terminal size in cells.
func (t *Translator) SetSize(cols, rows int) {
	t.cols, t.rows = cols, rows
}

// LayoutSize returns the layout size in pixels.
func (t *Translator) LayoutSize() (int, int) {
	return t.cols * t.cellW, t.rows * t.cellH
}

func (t *Translator) stamp() uint32 {
	return uint32(t.now().Sub(t.start).Milliseconds())
}

// Translate converts one tcell event. Unknown events yield nothing.
func (t *Translator) Translate(ev tcell.Event) []any {
	switch e := ev.(type) {
	case *tcell.EventResize:
		t.SetSize(e.Size())
		w, h := t.LayoutSize()
		return []any{Resize{Width: w, Height: h}}
	case *tcell.EventKey:
		return t.translateKey(e)
	case *tcell.EventMouse:
		return t.translateMouse(e)
	default:
		return nil
	}
}

func (t *Translator) translateKey(e *tcell.EventKey) []any {
	if e.Key() == t.quitKey {
		return []any{Quit{}}
	}
	sym, mods, ok := convertKey(e)
	if !ok {
		return nil
	}
	ts := t.stamp()
	out := t.syncMods(mods, ts, nil)
	code := uint32(sym)
	out = append(out,
		key.Event{Keycode: code, Sym: sym, Pressed: true, Mods: mods, Time: ts},
		key.Event{Keycode: code, Sym: sym, Pressed: false, Mods: mods, Time: ts},
	)
	return t.syncMods(key.ModNone, ts, out)
}

// syncMods appends modifier key transitions that take the held state to
// target.
func (t *Translator) syncMods(target key.Modifier, ts uint32, out []any) []any {
	for _, mk := range modKeys {
		held := t.mods&mk.mod != 0
		want := target&mk.mod != 0
		if held == want {
			continue
		}
		t.mods ^= mk.mod
		out = append(out, key.Event{
			Keycode: uint32(mk.sym), Sym: mk.sym, Pressed: want, Mods: t.mods, Time: ts,
		})
	}
	return out
}

func (t *Translator) translateMouse(e *tcell.EventMouse) []any {
	ts := t.stamp()
	out := t.syncMods(convertMods(e.Modifiers()), ts, nil)

	x, y := e.Position()
	if !t.seenMotion || x != t.lastX || y != t.lastY {
		t.seenMotion = true
		t.lastX, t.lastY = x, y
		if w, h := t.LayoutSize(); w > 0 && h > 0 {
			px := float64(x*t.cellW + t.cellW/2)
			py := float64(y*t.cellH + t.cellH/2)
			out = append(out, seat.MotionAbsolute{Time: ts, X: px / float64(w), Y: py / float64(h)})
		}
	}

	btns := e.Buttons()
	for _, mb := range mouseButtons {
		was := t.buttons&mb.mask != 0
		is := btns&mb.mask != 0
		if was != is {
			out = append(out, seat.Button{Time: ts, Button: mb.btn, Pressed: is})
		}
	}
	t.buttons = btns & heldButtons

	wheel := func(o mousebind.Orientation, sign int) {
		out = append(out, seat.Axis{
			Time: ts, Orientation: o, Source: seat.SourceWheel,
			Delta: float64(sign * wheelDelta), Discrete: sign * wheelDiscrete,
		})
	}
	if btns&tcell.WheelUp != 0 {
		wheel(mousebind.Vertical, -1)
	}
	if btns&tcell.WheelDown != 0 {
		wheel(mousebind.Vertical, 1)
	}
	if btns&tcell.WheelLeft != 0 {
		wheel(mousebind.Horizontal, -1)
	}
	if btns&tcell.WheelRight != 0 {
		wheel(mousebind.Horizontal, 1)
	}
	return append(out, seat.Frame{Time: ts})
}

func convertMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModLogo
	}
	return mods
}

var specialKeys = map[tcell.Key]key.Sym{
	tcell.KeyEnter:      key.SymReturn,
	tcell.KeyTab:        key.SymTab,
	tcell.KeyBacktab:    key.SymLeftTab,
	tcell.KeyEscape:     key.SymEscape,
	tcell.KeyBackspace:  key.SymBackSpace,
	tcell.KeyBackspace2: key.SymBackSpace,
	tcell.KeyDelete:     key.SymDelete,
	tcell.KeyHome:       key.SymHome,
	tcell.KeyEnd:        key.SymEnd,
	tcell.KeyPgUp:       key.SymPrior,
	tcell.KeyPgDn:       key.SymNext,
	tcell.KeyUp:         key.SymUp,
	tcell.KeyDown:       key.SymDown,
	tcell.KeyLeft:       key.SymLeft,
	tcell.KeyRight:      key.SymRight,
	tcell.KeyPrint:      key.SymPrint,
}

// convertKey maps a tcell key event to a keysym and modifiers.
func convertKey(e *tcell.EventKey) (key.Sym, key.Modifier, bool) {
	mods := convertMods(e.Modifiers())
	k := e.Key()
	if sym, ok := specialKeys[k]; ok {
		if k == tcell.KeyBacktab {
			mods |= key.ModShift
		}
		return sym, mods, true
	}
	switch {
	case k == tcell.KeyRune:
		r := e.Rune()
		if r == ' ' {
			return key.SymSpace, mods, true
		}
		if r < 0x20 {
			return key.SymNone, mods, false
		}
		if r <= 0xff {
			return key.Sym(r), mods, true
		}
		return key.Sym(0x01000000 + r), mods, true
	case k >= tcell.KeyF1 && k <= tcell.KeyF12:
		return key.SymF1 + key.Sym(k-tcell.KeyF1), mods, true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.Sym('a' + rune(k-tcell.KeyCtrlA)), mods | key.ModCtrl, true
	}
	return key.SymNone, mods, false
}
