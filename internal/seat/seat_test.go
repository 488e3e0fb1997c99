package seat

import (
	"testing"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/constraint"
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/dispatcher"
	"github.com/dshills/driftwm/internal/event"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/keybind"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/input/mousebind"
	"github.com/dshills/driftwm/internal/menu"
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/wm"
)

type run struct {
	actions   []action.Action
	activator wm.Ref
	ctx       cursor.Context
	mode      mode.Mode
}

type runRecorder struct {
	seat *Seat
	runs []run
}

func (r *runRecorder) Run(actions []action.Action, activator wm.Ref, cctx cursor.Context) {
	r.runs = append(r.runs, run{actions: actions, activator: activator, ctx: cctx, mode: r.seat.Mode()})
}

type env struct {
	seat   *Seat
	wm     *wm.Manager
	notify *RecordingNotifier
	runner *runRecorder
	scene  *scene.Scene
}

func newEnv(t *testing.T) *env {
	t.Helper()
	m := wm.NewManager(wm.Config{Workspaces: []string{"1", "2"}}, event.NewBus(), nil)
	out := &wm.Output{Name: "HDMI-A-1", Box: wm.Box{Width: 1000, Height: 800}, RefreshMHz: 60000}
	if err := m.AddOutput(out); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}
	sc := scene.FromManager(m, scene.DefaultMetrics())
	n := &RecordingNotifier{}
	s := New(DefaultConfig(), m, sc, menu.NewManager(menu.DefaultConfig(), nil), n, nil)
	t.Cleanup(s.Close)
	r := &runRecorder{seat: s}
	s.SetRunner(r)
	return &env{seat: s, wm: m, notify: n, runner: r, scene: sc}
}

// withDispatcher routes bindings through a real dispatcher.
func (e *env) withDispatcher() *dispatcher.Dispatcher {
	d := dispatcher.New(dispatcher.DefaultConfig(), e.wm, nil)
	d.SetSeat(e.seat)
	e.seat.SetRunner(d)
	return d
}

// window maps a window whose content spans (100,100)-(400,300).
func (e *env) window() *wm.Window {
	return e.wm.Create("foot", "shell", wm.Box{X: 100, Y: 100, Width: 300, Height: 200})
}

func (e *env) click(btn mousebind.Button, time uint32) {
	e.seat.Button(Button{Time: time, Button: btn, Pressed: true})
	e.seat.Button(Button{Time: time + 10, Button: btn})
}

func bind(ctx cursor.Element, btn mousebind.Button, mods key.Modifier, ev mousebind.EventKind, kinds ...action.Kind) mousebind.Binding {
	b := mousebind.Binding{Context: ctx, Button: btn, Mods: mods, Event: ev}
	for _, k := range kinds {
		b.Actions = append(b.Actions, action.New(k))
	}
	return b
}

func TestReleaseClearsPendingFlags(t *testing.T) {
	e := newEnv(t)
	e.window()
	e.seat.SetMousebinds([]mousebind.Binding{
		bind(cursor.ElementFrame, mousebind.BtnLeft, key.ModAlt, mousebind.EventClick, action.Raise),
		bind(cursor.ElementFrame, mousebind.BtnLeft, key.ModAlt, mousebind.EventDrag, action.Move),
	})
	e.seat.mods = key.ModAlt
	e.seat.WarpCursor(250, 200)

	e.seat.Button(Button{Time: 1, Button: mousebind.BtnLeft, Pressed: true})
	if !e.seat.Mousebinds().Pending(0) || !e.seat.Mousebinds().Pending(1) {
		t.Fatal("click and drag bindings should be pending after press")
	}
	e.seat.Button(Button{Time: 2, Button: mousebind.BtnLeft})
	for i := 0; i < 2; i++ {
		if e.seat.Mousebinds().Pending(i) {
			t.Errorf("binding %d still pending after release", i)
		}
	}
	if len(e.runner.runs) != 1 || e.runner.runs[0].actions[0].Kind != action.Raise {
		t.Errorf("runs = %+v, want one click", e.runner.runs)
	}
	if n := e.notify.Count(NotifyPointerButton); n != 0 {
		t.Errorf("frame binding leaked %d button events to the client", n)
	}
}

func TestDoubleClick(t *testing.T) {
	e := newEnv(t)
	e.window()
	e.seat.SetMousebinds([]mousebind.Binding{
		bind(cursor.ElementTitle, mousebind.BtnLeft, key.ModNone, mousebind.EventDoubleClick, action.ToggleMaximize),
	})
	e.seat.WarpCursor(250, 88)
	if ctx := e.seat.CursorContext(); ctx.Element != cursor.ElementTitle {
		t.Fatalf("element = %s, want title", ctx.Element)
	}

	e.click(mousebind.BtnLeft, 1000)
	e.click(mousebind.BtnLeft, 1100)
	if len(e.runner.runs) != 1 {
		t.Fatalf("runs after two clicks = %d, want 1", len(e.runner.runs))
	}
	// A third press starts a new sequence.
	e.click(mousebind.BtnLeft, 1200)
	if len(e.runner.runs) != 1 {
		t.Errorf("runs after third click = %d, want 1", len(e.runner.runs))
	}
	// Too slow.
	e.click(mousebind.BtnLeft, 5000)
	if len(e.runner.runs) != 1 {
		t.Errorf("runs after slow click = %d, want 1", len(e.runner.runs))
	}
}

func TestDiscreteScrollAccumulates(t *testing.T) {
	e := newEnv(t)
	e.seat.SetMousebinds([]mousebind.Binding{{
		Context:   cursor.ElementRoot,
		Direction: mousebind.ScrollUp,
		Event:     mousebind.EventScroll,
		Actions:   []action.Action{action.New(action.GoToDesktop)},
	}})
	e.seat.WarpCursor(900, 700)

	for i := 1; i <= 7; i++ {
		e.seat.Axis(Axis{Time: uint32(i), Orientation: mousebind.Vertical, Delta: -5, Discrete: -40})
		if want := 40 * i / 120; len(e.runner.runs) != want {
			t.Errorf("after %d events: %d steps, want %d", i, len(e.runner.runs), want)
		}
	}
}

func TestScrollWithoutBindingReachesClient(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	e.seat.WarpCursor(250, 200)

	e.seat.Axis(Axis{Time: 1, Orientation: mousebind.Vertical, Delta: 15, Discrete: 120})
	e.seat.Frame(Frame{Time: 1})

	axes := e.notify.Of(NotifyPointerAxis)
	if len(axes) != 1 || axes[0].Surface != w.Surface || axes[0].Discrete != 120 {
		t.Errorf("axis events = %+v", axes)
	}
	if e.notify.Count(NotifyPointerFrame) != 1 {
		t.Error("frame not forwarded")
	}
}

func TestResizeIsRateLimited(t *testing.T) {
	tests := []struct {
		name      string
		gap       uint32
		applied   int
		wantWidth int
	}{
		{"faster than refresh", 5, 1, 310},
		{"slower than refresh", 20, 2, 320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			w := e.window()
			e.seat.WarpCursor(400, 300)
			if err := e.seat.BeginResize(w.Ref(), wm.EdgeRight|wm.EdgeBottom); err != nil {
				t.Fatalf("BeginResize: %v", err)
			}
			changes := 0
			sub := e.wm.Bus().MustSubscribe(wm.TopicGeometry, func(event.Event) { changes++ })
			defer sub.Cancel()

			e.seat.Motion(Motion{Time: 1000, DX: 10})
			e.seat.Motion(Motion{Time: 1000 + tt.gap, DX: 10})
			if changes != tt.applied {
				t.Errorf("applied %d resizes, want %d", changes, tt.applied)
			}
			if w.Geometry.Width != tt.wantWidth {
				t.Errorf("width = %d, want %d", w.Geometry.Width, tt.wantWidth)
			}

			// The final position is applied on release.
			e.seat.Button(Button{Time: 1100, Button: mousebind.BtnLeft})
			if !e.seat.mode.Is(mode.Passthrough) {
				t.Errorf("mode = %s after release", e.seat.Mode())
			}
			if w.Geometry.Width != 320 {
				t.Errorf("final width = %d, want 320", w.Geometry.Width)
			}
		})
	}
}

func TestModesAreExclusive(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	other := e.wm.Create("firefox", "web", wm.Box{X: 500, Y: 100, Width: 300, Height: 200})

	if err := e.seat.BeginMove(w.Ref()); err != nil {
		t.Fatalf("BeginMove: %v", err)
	}
	if err := e.seat.BeginResize(other.Ref(), wm.EdgeLeft); err == nil {
		t.Error("resize started during move")
	}
	if err := e.seat.ShowMenu(menu.RootMenu, 10, 10, wm.Ref{}); err == nil {
		t.Error("menu opened during move")
	}
	e.seat.CycleWindows(false)
	if e.seat.Switcher().Active() {
		t.Error("switcher started during move")
	}
	if e.seat.Mode() != mode.Move {
		t.Errorf("mode = %s, want move", e.seat.Mode())
	}
}

func TestMoveFollowsPointerAndEscapeCancels(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	e.seat.WarpCursor(250, 200)
	if err := e.seat.BeginMove(w.Ref()); err != nil {
		t.Fatal(err)
	}
	if got := e.seat.CursorImage(); got != "grabbing" {
		t.Errorf("cursor = %q, want grabbing", got)
	}
	e.seat.Motion(Motion{Time: 1, DX: 100, DY: 50})
	if w.Geometry.X != 200 || w.Geometry.Y != 150 {
		t.Errorf("geometry = %v, want origin (200,150)", w.Geometry)
	}
	e.seat.Key(key.Event{Keycode: 9, Sym: key.SymEscape, Pressed: true})
	if w.Geometry.X != 100 || w.Geometry.Y != 100 {
		t.Errorf("geometry after cancel = %v", w.Geometry)
	}
	if !e.seat.mode.Is(mode.Passthrough) {
		t.Errorf("mode = %s", e.seat.Mode())
	}
	e.seat.Key(key.Event{Keycode: 9, Sym: key.SymEscape})
	if n := e.notify.Count(NotifyKey); n != 0 {
		t.Errorf("client saw %d key events", n)
	}
}

func TestMoveSnapsAtEdge(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	e.seat.WarpCursor(250, 200)
	if err := e.seat.BeginMove(w.Ref()); err != nil {
		t.Fatal(err)
	}
	e.seat.Motion(Motion{Time: 1, DX: -400})
	if e.seat.SnapPreview() != wm.DirLeft {
		t.Fatalf("preview = %s, want left", e.seat.SnapPreview())
	}
	e.seat.Button(Button{Time: 2, Button: mousebind.BtnLeft})
	if w.Tiled != wm.DirLeft {
		t.Errorf("tiled = %s, want left", w.Tiled)
	}
}

func TestDestroyGrabbedWindow(t *testing.T) {
	e := newEnv(t)
	e.withDispatcher()
	w := e.window()
	e.seat.SetMousebinds([]mousebind.Binding{
		bind(cursor.ElementFrame, mousebind.BtnLeft, key.ModAlt, mousebind.EventDrag, action.Move),
	})
	e.seat.mods = key.ModAlt
	e.seat.WarpCursor(250, 200)

	e.seat.Button(Button{Time: 1, Button: mousebind.BtnLeft, Pressed: true})
	e.seat.Motion(Motion{Time: 2, DX: 5})
	if e.seat.Mode() != mode.Move {
		t.Fatalf("mode = %s, want move", e.seat.Mode())
	}

	e.wm.Destroy(w.Ref())
	if e.seat.Mode() != mode.Passthrough {
		t.Errorf("mode = %s after destroy", e.seat.Mode())
	}
	if e.seat.Pressed().Active() {
		t.Error("pressed state survives its window")
	}

	e.seat.Motion(Motion{Time: 3, DX: 5})
	e.seat.Button(Button{Time: 4, Button: mousebind.BtnLeft})
	if e.seat.Mousebinds().AnyPending(mousebind.BtnLeft) {
		t.Error("pending flags survive release")
	}
	if n := e.notify.Count(NotifyPointerButton); n != 0 {
		t.Errorf("%d button events sent", n)
	}
}

func TestDestroyPressedWindowStopsImplicitGrab(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	e.seat.WarpCursor(250, 200)
	e.seat.Button(Button{Time: 1, Button: mousebind.BtnLeft, Pressed: true})
	if _, held := e.seat.ButtonHeld(mousebind.BtnLeft); !held {
		t.Fatal("press should reach the client")
	}
	e.wm.Destroy(w.Ref())
	if _, held := e.seat.ButtonHeld(mousebind.BtnLeft); held {
		t.Error("release still routed to destroyed surface")
	}
	if e.seat.PointerFocus() != 0 {
		t.Error("pointer focus on destroyed surface")
	}
	e.seat.Button(Button{Time: 2, Button: mousebind.BtnLeft})
	if n := e.notify.Count(NotifyPointerButton); n != 1 {
		t.Errorf("button events = %d, want only the press", n)
	}
}

func TestRemovedSurfaceReleasesGrab(t *testing.T) {
	tests := []struct {
		name   string
		add    func(*scene.Scene)
		remove func(*scene.Scene)
	}{
		{
			name: "layer surface",
			add: func(sc *scene.Scene) {
				sc.AddLayerSurface(&scene.LayerSurface{Surface: 90, Layer: scene.LayerTop, Box: wm.Box{Width: 1000, Height: 30}})
			},
			remove: func(sc *scene.Scene) { sc.RemoveLayerSurface(90) },
		},
		{
			name: "unmanaged",
			add: func(sc *scene.Scene) {
				sc.AddUnmanaged(&scene.Unmanaged{Surface: 90, Box: wm.Box{Width: 1000, Height: 30}})
			},
			remove: func(sc *scene.Scene) { sc.RemoveUnmanaged(90) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.window()
			tt.add(e.scene)
			e.seat.WarpCursor(500, 10)
			if e.seat.PointerFocus() != 90 {
				t.Fatalf("pointer focus = %d, want 90", e.seat.PointerFocus())
			}
			c := e.seat.CreateConstraint(90, constraint.Confine, nil)
			e.seat.Button(Button{Time: 1, Button: mousebind.BtnLeft, Pressed: true})
			if sf, held := e.seat.ButtonHeld(mousebind.BtnLeft); !held || sf != 90 {
				t.Fatalf("press not delivered to the surface: %d %v", sf, held)
			}

			tt.remove(e.scene)
			if e.seat.Pressed().Active() {
				t.Error("pressed state survives its surface")
			}
			if e.seat.PointerFocus() == 90 {
				t.Error("pointer focus on removed surface")
			}
			if _, held := e.seat.ButtonHeld(mousebind.BtnLeft); held {
				t.Error("release still routed to removed surface")
			}
			if _, ok := e.seat.Constraints().Get(c.ID); ok {
				t.Error("constraint of removed surface kept")
			}

			e.seat.Motion(Motion{Time: 2, DX: 5})
			e.seat.Button(Button{Time: 3, Button: mousebind.BtnLeft})
			for _, n := range e.notify.Of(NotifyPointerButton) {
				if !n.Pressed {
					t.Errorf("release sent to surface %d", n.Surface)
				}
			}
		})
	}
}

func TestFocusUpdateDoesNotReenter(t *testing.T) {
	m := wm.NewManager(wm.DefaultConfig(), nil, nil)
	if err := m.AddOutput(&wm.Output{Name: "DP-1", Box: wm.Box{Width: 1000, Height: 800}}); err != nil {
		t.Fatal(err)
	}
	w := m.Create("foot", "shell", wm.Box{X: 100, Y: 100, Width: 300, Height: 200})
	enters := 0
	n := NotifierFunc(func(n Notification) {
		if n.Kind == NotifyPointerEnter {
			enters++
			// Moving the window publishes a geometry change that asks
			// the seat to update focus again.
			m.Move(w.Ref(), 110, 110)
		}
	})
	s := New(DefaultConfig(), m, scene.FromManager(m, scene.DefaultMetrics()), menu.NewManager(menu.DefaultConfig(), nil), n, nil)
	defer s.Close()

	s.WarpCursor(250, 200)
	if enters != 1 {
		t.Errorf("enters = %d, want 1", enters)
	}
	if s.updatingFocus {
		t.Error("focus latch left set")
	}
}

func TestFocusFollowsMouse(t *testing.T) {
	e := newEnv(t)
	cfg := DefaultConfig()
	cfg.FocusFollowsMouse = true
	e.seat.SetConfig(cfg)
	w := e.window()
	e.seat.WarpCursor(900, 700)

	e.seat.Motion(Motion{Time: 1, DX: -650, DY: -500})
	if f := e.wm.Focused(); f == nil || f.Ref() != w.Ref() {
		t.Fatal("window under pointer not focused")
	}
	if e.seat.KeyboardFocus() != w.Surface {
		t.Error("keyboard focus did not follow")
	}
	if e.notify.Count(NotifyKeyboardEnter) != 1 {
		t.Error("keyboard enter not sent")
	}
}

func TestMenuItemRunsAfterMenuCloses(t *testing.T) {
	e := newEnv(t)
	if err := e.seat.ShowMenu(menu.RootMenu, 100, 100, wm.Ref{}); err != nil {
		t.Fatal(err)
	}
	if e.seat.Mode() != mode.Menu {
		t.Fatalf("mode = %s, want menu", e.seat.Mode())
	}
	e.seat.WarpCursor(110, 105)
	e.click(mousebind.BtnLeft, 1)

	if len(e.runner.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(e.runner.runs))
	}
	r := e.runner.runs[0]
	if r.actions[0].Kind != action.Execute {
		t.Errorf("ran %s, want Execute", r.actions[0].Kind)
	}
	if r.mode != mode.Passthrough {
		t.Errorf("ran in mode %s, want passthrough", r.mode)
	}
	if e.seat.Menus().IsOpen() {
		t.Error("menu still open")
	}
}

func TestMenuClickOutsideCloses(t *testing.T) {
	e := newEnv(t)
	if err := e.seat.ShowMenu(menu.RootMenu, 100, 100, wm.Ref{}); err != nil {
		t.Fatal(err)
	}
	e.seat.WarpCursor(900, 700)
	e.click(mousebind.BtnLeft, 1)
	if e.seat.Mode() != mode.Passthrough || e.seat.Menus().IsOpen() {
		t.Error("menu not closed by outside click")
	}
	if len(e.runner.runs) != 0 {
		t.Errorf("runs = %d, want 0", len(e.runner.runs))
	}
}

func TestSwitcherCommitsOnModifierRelease(t *testing.T) {
	e := newEnv(t)
	e.withDispatcher()
	a := e.window()
	b := e.wm.Create("firefox", "web", wm.Box{X: 500, Y: 100, Width: 300, Height: 200})
	e.wm.Focus(a.Ref())
	e.seat.SetKeybinds([]keybind.Binding{{
		Combo:   key.MustParse("A-Tab"),
		Actions: []action.Action{action.New(action.NextWindow)},
	}})

	const altCode, tabCode = 64, 23
	e.seat.Key(key.Event{Keycode: altCode, Sym: key.SymAltL, Pressed: true, Mods: key.ModAlt})
	e.seat.Key(key.Event{Keycode: tabCode, Sym: key.SymTab, Pressed: true, Mods: key.ModAlt})
	if e.seat.Mode() != mode.WindowSwitcher {
		t.Fatalf("mode = %s, want window-switcher", e.seat.Mode())
	}
	if got := e.seat.Switcher().Selected(); got != b.Ref() {
		t.Errorf("selected %s, want %s", got, b.Ref())
	}
	e.seat.Key(key.Event{Keycode: tabCode, Sym: key.SymTab, Mods: key.ModAlt})
	e.seat.Key(key.Event{Keycode: altCode, Sym: key.SymAltL})

	if e.seat.Mode() != mode.Passthrough {
		t.Errorf("mode = %s after modifier release", e.seat.Mode())
	}
	if f := e.wm.Focused(); f == nil || f.Ref() != b.Ref() {
		t.Error("selection not committed")
	}
	for _, n := range e.notify.Of(NotifyKey) {
		if n.Keycode == tabCode {
			t.Error("Tab reached the client")
		}
	}
}

func TestSwitcherClosesWhenSelectionDestroyed(t *testing.T) {
	e := newEnv(t)
	a := e.window()
	b := e.wm.Create("firefox", "web", wm.Box{X: 500, Y: 100, Width: 300, Height: 200})
	e.wm.Focus(a.Ref())
	e.seat.mods = key.ModAlt
	e.seat.CycleWindows(false)
	if e.seat.Switcher().Selected() != b.Ref() {
		t.Fatal("unexpected selection")
	}
	e.wm.Destroy(b.Ref())
	if e.seat.Mode() != mode.Passthrough || e.seat.Switcher().Active() {
		t.Error("switcher survived its selection")
	}
}

func TestCycleWithoutModifiersCommits(t *testing.T) {
	e := newEnv(t)
	a := e.window()
	b := e.wm.Create("firefox", "web", wm.Box{X: 500, Y: 100, Width: 300, Height: 200})
	e.wm.Focus(a.Ref())
	e.seat.CycleWindows(false)
	if e.seat.Mode() != mode.Passthrough {
		t.Errorf("mode = %s", e.seat.Mode())
	}
	if f := e.wm.Focused(); f == nil || f.Ref() != b.Ref() {
		t.Error("cycle did not focus the next window")
	}
}

func TestKeybindHidesPressAndRelease(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	e.wm.Focus(w.Ref())
	e.seat.SetKeybinds([]keybind.Binding{{
		Combo:   key.MustParse("W-Return"),
		Actions: []action.Action{action.New(action.Execute, action.StringArg("command", "foot"))},
	}})

	const ret, a = 36, 38
	e.seat.Key(key.Event{Keycode: ret, Sym: key.SymReturn, Pressed: true, Mods: key.ModLogo})
	e.seat.Key(key.Event{Keycode: ret, Sym: key.SymReturn, Mods: key.ModLogo})
	if len(e.runner.runs) != 1 {
		t.Errorf("runs = %d, want 1", len(e.runner.runs))
	}
	if n := e.notify.Count(NotifyKey); n != 0 {
		t.Errorf("bound key leaked %d events", n)
	}

	e.seat.Key(key.Event{Keycode: a, Sym: key.Sym('a'), Pressed: true})
	e.seat.Key(key.Event{Keycode: a, Sym: key.Sym('a')})
	keys := e.notify.Of(NotifyKey)
	if len(keys) != 2 || keys[0].Surface != w.Surface {
		t.Errorf("key events = %+v", keys)
	}
}

func TestInhibitorBlocksKeybinds(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	w.InhibitsKeybinds = true
	e.wm.Focus(w.Ref())
	e.seat.SetKeybinds([]keybind.Binding{{
		Combo:   key.MustParse("W-Return"),
		Actions: []action.Action{action.New(action.Execute)},
	}})
	e.seat.Key(key.Event{Keycode: 36, Sym: key.SymReturn, Pressed: true, Mods: key.ModLogo})
	if len(e.runner.runs) != 0 {
		t.Error("binding fired through an inhibitor")
	}
	if e.notify.Count(NotifyKey) != 1 {
		t.Error("key not delivered to the inhibiting client")
	}
}

func TestConfinedPointer(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	e.wm.Focus(w.Ref())
	e.seat.WarpCursor(250, 200)
	c := e.seat.CreateConstraint(w.Surface, constraint.Confine, nil)
	if e.seat.Constraints().Active() != c {
		t.Fatal("constraint on focused surface not active")
	}
	if e.notify.Count(NotifyConstraintActivated) != 1 {
		t.Error("activation not notified")
	}

	e.seat.Motion(Motion{Time: 1, DX: 500, DY: 500})
	x, y := e.seat.CursorPosition()
	box, _ := e.seat.SurfaceBox(w.Surface)
	if !box.Contains(x, y) {
		t.Errorf("pointer (%v,%v) escaped %v", x, y, box)
	}
}

func TestLockedPointerStays(t *testing.T) {
	e := newEnv(t)
	w := e.window()
	e.wm.Focus(w.Ref())
	e.seat.WarpCursor(250, 200)
	e.seat.CreateConstraint(w.Surface, constraint.Lock, nil)
	e.seat.Motion(Motion{Time: 1, DX: 40, DY: 40})
	if x, y := e.seat.CursorPosition(); x != 250 || y != 200 {
		t.Errorf("locked pointer moved to (%v,%v)", x, y)
	}
}

func TestClientCursorRequiresPointerFocus(t *testing.T) {
	e := newEnv(t)
	a := e.window()
	b := e.wm.Create("firefox", "web", wm.Box{X: 500, Y: 100, Width: 300, Height: 200})
	e.seat.WarpCursor(250, 200)

	if e.seat.SetClientCursor(b.Surface, "text") {
		t.Error("unfocused client set the cursor")
	}
	if !e.seat.SetClientCursor(a.Surface, "text") || e.seat.CursorImage() != "text" {
		t.Error("focused client could not set the cursor")
	}
	e.seat.HideCursor()
	if e.seat.CursorImage() != "" || e.seat.PointerFocus() != 0 {
		t.Error("hidden cursor still visible or focused")
	}
	e.seat.Motion(Motion{Time: 1, DX: 1})
	if e.seat.PointerFocus() != a.Surface {
		t.Error("motion did not restore pointer focus")
	}
}

func TestPressedSurfaceKeepsMotion(t *testing.T) {
	e := newEnv(t)
	a := e.window()
	e.seat.WarpCursor(250, 200)
	e.seat.Button(Button{Time: 1, Button: mousebind.BtnLeft, Pressed: true})
	e.notify.Reset()

	e.seat.Motion(Motion{Time: 2, DX: 600})
	if e.seat.PointerFocus() != a.Surface {
		t.Error("pointer focus left the pressed surface")
	}
	if e.notify.Count(NotifyPointerMotion) != 1 {
		t.Error("motion not sent to the pressed surface")
	}
	e.seat.Button(Button{Time: 3, Button: mousebind.BtnLeft})
	if e.seat.PointerFocus() != 0 {
		t.Error("focus not updated after release")
	}
}

func TestResetEndsModalOperations(t *testing.T) {
	tests := []struct {
		name  string
		begin func(e *env, w *wm.Window) error
	}{
		{"move", func(e *env, w *wm.Window) error { return e.seat.BeginMove(w.Ref()) }},
		{"resize", func(e *env, w *wm.Window) error { return e.seat.BeginResize(w.Ref(), wm.EdgeRight) }},
		{"menu", func(e *env, w *wm.Window) error { return e.seat.ShowMenu(menu.RootMenu, 10, 10, wm.Ref{}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			w := e.window()
			e.seat.WarpCursor(250, 200)
			if err := tt.begin(e, w); err != nil {
				t.Fatal(err)
			}
			if e.seat.Mode() == mode.Passthrough {
				t.Fatal("operation did not start")
			}
			e.seat.Motion(Motion{Time: 1, DX: 40, DY: 40})
			e.seat.Reset()
			if e.seat.Mode() != mode.Passthrough {
				t.Errorf("mode = %s after reset", e.seat.Mode())
			}
			if w.Geometry != (wm.Box{X: 100, Y: 100, Width: 300, Height: 200}) {
				t.Errorf("geometry = %v, want the grab start", w.Geometry)
			}
			if e.seat.Menus().IsOpen() {
				t.Error("menu still open")
			}
		})
	}
}
