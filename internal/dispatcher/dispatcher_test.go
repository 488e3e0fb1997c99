package dispatcher_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/dispatcher"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/event"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/wm"
)

type call struct {
	kind   action.Kind
	target wm.Ref
}

type recorder struct {
	calls []call
}

func (r *recorder) handle(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	r.calls = append(r.calls, call{kind: a.Kind, target: ctx.Ref()})
	return handler.Success()
}

func (r *recorder) count(kind action.Kind) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind {
			n++
		}
	}
	return n
}

type fakeSeat struct {
	mode   mode.Mode
	cursor cursor.Context
	cycles int
}

func (s *fakeSeat) Mode() mode.Mode                         { return s.mode }
func (s *fakeSeat) CursorPosition() (float64, float64)      { return 0, 0 }
func (s *fakeSeat) CursorContext() cursor.Context           { return s.cursor }
func (s *fakeSeat) BeginMove(wm.Ref) error                  { return nil }
func (s *fakeSeat) BeginResize(wm.Ref, wm.Edges) error      { return nil }
func (s *fakeSeat) ShowMenu(string, int, int, wm.Ref) error { return nil }
func (s *fakeSeat) CycleWindows(bool)                       { s.cycles++ }
func (s *fakeSeat) WarpCursor(float64, float64)             {}
func (s *fakeSeat) HideCursor()                             {}
func (s *fakeSeat) ToggleKeybinds() bool                    { return true }

type fakeSpawner struct {
	pid      int
	err      error
	commands []string
}

func (s *fakeSpawner) Spawn(_ string, command string) (int, error) {
	s.commands = append(s.commands, command)
	return s.pid, s.err
}

type fakeLifecycle struct{ exits int }

func (l *fakeLifecycle) Exit()        { l.exits++ }
func (l *fakeLifecycle) Reconfigure() {}

func setup(t *testing.T) (*dispatcher.Dispatcher, *wm.Manager, *recorder) {
	t.Helper()
	m := wm.NewManager(wm.Config{Workspaces: []string{"1", "2"}}, event.NewBus(), nil)
	if err := m.AddOutput(&wm.Output{Name: "HDMI-A-1", Box: wm.Box{Width: 1000, Height: 800}}); err != nil {
		t.Fatalf("AddOutput: %v", err)
	}
	d := dispatcher.New(dispatcher.DefaultConfig(), m, nil)
	rec := &recorder{}
	d.RegisterHandlerFunc(action.Raise, rec.handle)
	d.RegisterHandlerFunc(action.Lower, rec.handle)
	d.RegisterHandlerFunc(action.Iconify, rec.handle)
	return d, m, rec
}

func box() wm.Box {
	return wm.Box{X: 10, Y: 10, Width: 200, Height: 100}
}

func ifAction(queries []action.Query, then, els []action.Action) action.Action {
	return action.New(action.If,
		action.QueriesArg(action.KeyQuery, queries...),
		action.ActionsArg(action.KeyThen, then...),
		action.ActionsArg(action.KeyElse, els...),
	)
}

func TestIfNegativeMatchRunsElseOnce(t *testing.T) {
	d, m, rec := setup(t)
	w := m.Create("foot", "shell", box())

	a := ifAction(
		[]action.Query{{Identifier: "firefox"}, {Title: "*mail*"}},
		[]action.Action{action.New(action.Raise)},
		[]action.Action{action.New(action.Lower)},
	)
	d.Run([]action.Action{a}, w.Ref(), cursor.Context{})

	if got := rec.count(action.Raise); got != 0 {
		t.Errorf("then ran %d times, want 0", got)
	}
	if got := rec.count(action.Lower); got != 1 {
		t.Errorf("else ran %d times, want 1", got)
	}
}

func TestIfPositiveMatchRunsThen(t *testing.T) {
	d, m, rec := setup(t)
	w := m.Create("foot", "shell", box())

	a := ifAction(
		[]action.Query{{Identifier: "firefox"}, {Identifier: "FOO*"}},
		[]action.Action{action.New(action.Raise)},
		[]action.Action{action.New(action.Lower)},
	)
	d.Run([]action.Action{a}, w.Ref(), cursor.Context{})

	if len(rec.calls) != 1 || rec.calls[0].kind != action.Raise || rec.calls[0].target != w.Ref() {
		t.Errorf("calls = %+v, want one Raise on %s", rec.calls, w.Ref())
	}
}

func TestIfWithoutTargetDoesNothing(t *testing.T) {
	d, _, rec := setup(t)

	a := ifAction(nil, []action.Action{action.New(action.Raise)}, []action.Action{action.New(action.Lower)})
	res := d.Dispatch(a, wm.Ref{}, cursor.Context{})

	if res.Status != handler.StatusNoOp {
		t.Errorf("status = %v, want noop", res.Status)
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %+v, want none", rec.calls)
	}
}

func TestForEachNoMatchRunsNoneWithOriginalTarget(t *testing.T) {
	d, m, rec := setup(t)
	// The activator lives on another workspace so no window is focusable.
	w := m.Create("foot", "shell", box())
	ws, err := m.ResolveWorkspace("2", false)
	if err != nil {
		t.Fatalf("ResolveWorkspace: %v", err)
	}
	m.SendToWorkspace(w.Ref(), ws)

	a := action.New(action.ForEach,
		action.QueriesArg(action.KeyQuery, action.Query{Identifier: "firefox"}),
		action.ActionsArg(action.KeyThen, action.New(action.Raise)),
		action.ActionsArg(action.KeyElse, action.New(action.Lower)),
		action.ActionsArg(action.KeyNone, action.New(action.Iconify)),
	)
	d.Run([]action.Action{a}, w.Ref(), cursor.Context{})

	if len(rec.calls) != 1 {
		t.Fatalf("calls = %+v, want exactly one", rec.calls)
	}
	if c := rec.calls[0]; c.kind != action.Iconify || c.target != w.Ref() {
		t.Errorf("call = %+v, want Iconify on %s", c, w.Ref())
	}
}

func TestForEachRunsBranchPerWindow(t *testing.T) {
	d, m, rec := setup(t)
	a1 := m.Create("foot", "one", box())
	a2 := m.Create("foot", "two", box())
	b := m.Create("firefox", "web", box())

	a := action.New(action.ForEach,
		action.QueriesArg(action.KeyQuery, action.Query{Identifier: "foot"}),
		action.ActionsArg(action.KeyThen, action.New(action.Raise)),
		action.ActionsArg(action.KeyElse, action.New(action.Lower)),
		action.ActionsArg(action.KeyNone, action.New(action.Iconify)),
	)
	d.Run([]action.Action{a}, wm.Ref{}, cursor.Context{})

	raised := map[wm.Ref]bool{}
	for _, c := range rec.calls {
		switch c.kind {
		case action.Raise:
			raised[c.target] = true
		case action.Lower:
			if c.target != b.Ref() {
				t.Errorf("else ran on %s, want %s", c.target, b.Ref())
			}
		case action.Iconify:
			t.Error("none ran despite matches")
		}
	}
	if len(raised) != 2 || !raised[a1.Ref()] || !raised[a2.Ref()] {
		t.Errorf("then targets = %v", raised)
	}
	if rec.count(action.Lower) != 1 {
		t.Errorf("else ran %d times, want 1", rec.count(action.Lower))
	}
}

func TestCloseMidListLeavesNoTarget(t *testing.T) {
	d, m, rec := setup(t)
	w := m.Create("foot", "shell", box())
	other := m.Create("foot", "other", box())
	m.Focus(other.Ref())

	res := d.Dispatch(action.New(action.Close), w.Ref(), cursor.Context{})
	if !res.IsOK() {
		t.Fatalf("Close result = %+v", res)
	}
	d.Run([]action.Action{action.New(action.Raise)}, w.Ref(), cursor.Context{})

	if len(rec.calls) != 0 {
		t.Errorf("Raise ran on %+v after its window closed", rec.calls)
	}
	if m.Lookup(other.Ref()) == nil {
		t.Error("unrelated window was destroyed")
	}
}

func TestCloseThenRaiseInOneList(t *testing.T) {
	d, m, rec := setup(t)
	w := m.Create("foot", "shell", box())
	other := m.Create("foot", "other", box())
	m.Focus(other.Ref())

	d.Run([]action.Action{action.New(action.Close), action.New(action.Raise)}, w.Ref(), cursor.Context{})

	if m.Lookup(w.Ref()) != nil {
		t.Error("window survived Close")
	}
	if len(rec.calls) != 0 {
		t.Errorf("Raise fell back to %+v", rec.calls)
	}
}

func TestKeyboardActionTargetsFocused(t *testing.T) {
	d, m, rec := setup(t)
	w := m.Create("foot", "shell", box())
	m.Focus(w.Ref())

	d.Run([]action.Action{action.New(action.Raise)}, wm.Ref{}, cursor.Context{})

	if len(rec.calls) != 1 || rec.calls[0].target != w.Ref() {
		t.Errorf("calls = %+v, want Raise on focused %s", rec.calls, w.Ref())
	}
}

func TestCursorKindsTargetWindowUnderCursor(t *testing.T) {
	d, m, rec := setup(t)
	under := m.Create("foot", "under", box())
	focused := m.Create("foot", "focused", box())
	m.Focus(focused.Ref())

	d.SetSeat(&fakeSeat{cursor: cursor.Context{Window: under.Ref()}})
	d.RegisterHandlerFunc(action.Focus, rec.handle)
	d.Run([]action.Action{action.New(action.Focus), action.New(action.Raise)}, wm.Ref{}, cursor.Context{})

	want := []call{{action.Focus, under.Ref()}, {action.Raise, focused.Ref()}}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %+v, want %+v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Errorf("call %d = %+v, want %+v", i, rec.calls[i], want[i])
		}
	}
}

func TestPromptResolution(t *testing.T) {
	tests := []struct {
		name string
		code int
		want action.Kind
	}{
		{"yes runs then", 0, action.Raise},
		{"no runs else", 1, action.Lower},
		{"cancel runs nothing", 2, action.Invalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, m, rec := setup(t)
			sp := &fakeSpawner{pid: 42}
			d.SetSpawner(sp)
			w := m.Create("foot", "shell", box())

			a := action.New(action.If,
				action.StringArg(action.KeyPrompt, "Really quit?"),
				action.ActionsArg(action.KeyThen, action.New(action.Raise)),
				action.ActionsArg(action.KeyElse, action.New(action.Lower)),
			)
			res := d.Dispatch(a, w.Ref(), cursor.Context{})
			if res.Status != handler.StatusPending {
				t.Fatalf("status = %v, want async", res.Status)
			}
			if len(rec.calls) != 0 {
				t.Fatalf("branch ran before prompt exit: %+v", rec.calls)
			}
			if d.PendingPrompts() != 1 {
				t.Fatalf("pending = %d, want 1", d.PendingPrompts())
			}
			if len(sp.commands) != 1 || !strings.Contains(sp.commands[0], "'Really quit?'") {
				t.Errorf("commands = %q", sp.commands)
			}

			if d.ProcessExited(7, 0) {
				t.Error("unrelated pid resolved a prompt")
			}
			if !d.ProcessExited(42, tt.code) {
				t.Fatal("prompt pid not recognised")
			}
			if d.PendingPrompts() != 0 {
				t.Errorf("pending = %d after exit", d.PendingPrompts())
			}

			if tt.want == action.Invalid {
				if len(rec.calls) != 0 {
					t.Errorf("calls = %+v, want none", rec.calls)
				}
				return
			}
			if len(rec.calls) != 1 || rec.calls[0].kind != tt.want || rec.calls[0].target != w.Ref() {
				t.Errorf("calls = %+v, want %s on %s", rec.calls, tt.want, w.Ref())
			}
		})
	}
}

func TestPromptBranchRunsWithNilTargetAfterDestroy(t *testing.T) {
	d, m, _ := setup(t)
	d.SetSpawner(&fakeSpawner{pid: 9})
	w := m.Create("foot", "shell", box())
	m.Focus(w.Ref())

	var targets []*wm.Window
	ran := 0
	d.RegisterHandlerFunc(action.None, func(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
		ran++
		targets = append(targets, ctx.Window)
		return handler.Success()
	})

	a := action.New(action.If,
		action.StringArg(action.KeyPrompt, "Close?"),
		action.ActionsArg(action.KeyThen, action.New(action.None)),
	)
	d.Dispatch(a, w.Ref(), cursor.Context{})
	m.Destroy(w.Ref())
	d.ProcessExited(9, 0)

	if ran != 1 || targets[0] != nil {
		t.Errorf("ran = %d targets = %v, want one run with nil target", ran, targets)
	}
}

func TestPromptSpawnFailure(t *testing.T) {
	d, m, rec := setup(t)
	d.SetSpawner(&fakeSpawner{err: errors.New("no such file")})
	w := m.Create("foot", "shell", box())

	a := action.New(action.If,
		action.StringArg(action.KeyPrompt, "Sure?"),
		action.ActionsArg(action.KeyThen, action.New(action.Raise)),
	)
	res := d.Dispatch(a, w.Ref(), cursor.Context{})

	if !res.IsError() {
		t.Errorf("status = %v, want error", res.Status)
	}
	if d.PendingPrompts() != 0 || len(rec.calls) != 0 {
		t.Errorf("pending = %d calls = %+v", d.PendingPrompts(), rec.calls)
	}
}

func TestSwitcherRejectsOtherActions(t *testing.T) {
	d, m, rec := setup(t)
	w := m.Create("foot", "shell", box())
	seat := &fakeSeat{mode: mode.WindowSwitcher}
	d.SetSeat(seat)

	res := d.Dispatch(action.New(action.Raise), w.Ref(), cursor.Context{})
	if res.Status != handler.StatusCancelled {
		t.Errorf("Raise status = %v, want cancelled", res.Status)
	}
	if len(rec.calls) != 0 {
		t.Errorf("calls = %+v", rec.calls)
	}

	d.Dispatch(action.New(action.NextWindow), wm.Ref{}, cursor.Context{})
	d.Dispatch(action.New(action.PreviousWindow), wm.Ref{}, cursor.Context{})
	if seat.cycles != 2 {
		t.Errorf("cycles = %d, want 2", seat.cycles)
	}
}

func TestStopEndsList(t *testing.T) {
	d, m, rec := setup(t)
	lc := &fakeLifecycle{}
	d.SetLifecycle(lc)
	w := m.Create("foot", "shell", box())

	d.Run([]action.Action{action.New(action.Exit), action.New(action.Raise)}, w.Ref(), cursor.Context{})

	if lc.exits != 1 {
		t.Errorf("exits = %d, want 1", lc.exits)
	}
	if len(rec.calls) != 0 {
		t.Errorf("actions after Exit ran: %+v", rec.calls)
	}
}

func TestPanicIsRecovered(t *testing.T) {
	cfg := dispatcher.DefaultConfig().WithMetrics()
	m := wm.NewManager(wm.DefaultConfig(), event.NewBus(), nil)
	d := dispatcher.New(cfg, m, nil)
	d.RegisterHandlerFunc(action.None, func(action.Action, *execctx.ExecutionContext) handler.Result {
		panic("boom")
	})

	res := d.Dispatch(action.New(action.None), wm.Ref{}, cursor.Context{})

	if !errors.Is(res.Error, dispatcher.ErrPanic) {
		t.Errorf("error = %v, want ErrPanic", res.Error)
	}
	snap := d.Metrics().Snapshot()
	if snap.Panics != 1 || snap.Errors != 1 || snap.Dispatches != 1 {
		t.Errorf("metrics = %+v, want one panicking dispatch", snap)
	}
}

func TestMissingHandler(t *testing.T) {
	d, _, _ := setup(t)
	d.Registry().Unregister(action.None)

	res := d.Dispatch(action.New(action.None), wm.Ref{}, cursor.Context{})

	if !errors.Is(res.Error, dispatcher.ErrNoHandler) {
		t.Errorf("error = %v, want ErrNoHandler", res.Error)
	}
}

func TestPreHookCancels(t *testing.T) {
	d, m, rec := setup(t)
	w := m.Create("foot", "shell", box())
	d.RegisterPreHook(dispatcher.PreDispatchFunc(func(a *action.Action, _ *execctx.ExecutionContext) bool {
		return a.Kind != action.Raise
	}))

	var seen []handler.ResultStatus
	d.RegisterPostHook(dispatcher.PostDispatchFunc(func(_ *action.Action, _ *execctx.ExecutionContext, r *handler.Result) {
		seen = append(seen, r.Status)
	}))

	d.Run([]action.Action{action.New(action.Raise), action.New(action.Lower)}, w.Ref(), cursor.Context{})

	if rec.count(action.Raise) != 0 || rec.count(action.Lower) != 1 {
		t.Errorf("calls = %+v", rec.calls)
	}
	if len(seen) != 1 || seen[0] != handler.StatusOK {
		t.Errorf("post hook saw %v, want one ok", seen)
	}
}

func TestNestingDepthIsBounded(t *testing.T) {
	m := wm.NewManager(wm.DefaultConfig(), event.NewBus(), nil)
	cfg := dispatcher.DefaultConfig()
	cfg.MaxDepth = 3
	d := dispatcher.New(cfg, m, nil)
	w := m.Create("foot", "shell", box())

	ran := 0
	d.RegisterHandlerFunc(action.None, func(action.Action, *execctx.ExecutionContext) handler.Result {
		ran++
		return handler.Success()
	})

	match := []action.Query{{Identifier: "foot"}}
	leaf := action.New(action.None)
	nested := ifAction(match, []action.Action{ifAction(match, []action.Action{ifAction(match, []action.Action{leaf}, nil)}, nil)}, nil)
	d.Run([]action.Action{nested}, w.Ref(), cursor.Context{})

	if ran != 0 {
		t.Errorf("leaf beyond depth ran %d times", ran)
	}

	shallow := ifAction(match, []action.Action{ifAction(match, []action.Action{leaf}, nil)}, nil)
	d.Run([]action.Action{shallow}, w.Ref(), cursor.Context{})
	if ran != 1 {
		t.Errorf("leaf within depth ran %d times, want 1", ran)
	}
}

func TestPromptCommand(t *testing.T) {
	got := dispatcher.PromptCommand("ask --message %m --yes %y --no %n", "It's late")
	want := `ask --message 'It'\''s late' --yes 'Yes' --no 'No'`
	if got != want {
		t.Errorf("PromptCommand = %q, want %q", got, want)
	}
}
