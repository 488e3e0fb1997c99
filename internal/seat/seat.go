package seat

import (
	"errors"
	"fmt"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/constraint"
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/event"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/keybind"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/input/mousebind"
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/menu"
	"github.com/dshills/driftwm/internal/resistance"
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/switcher"
	"github.com/dshills/driftwm/internal/wm"
)

// Seat errors.
var (
	// ErrNoWindow indicates an operation on a window that does not exist.
	ErrNoWindow = errors.New("seat: no such window")
)

// Config holds seat behavior settings.
type Config struct {
	Mouse      mousebind.Config
	Resistance resistance.Config

	// FocusFollowsMouse focuses windows as the pointer enters them.
	FocusFollowsMouse bool
	// RaiseOnFocus raises windows focused by the pointer.
	RaiseOnFocus bool

	// ScrollFactor scales continuous scroll deltas sent to clients.
	ScrollFactor  float64
	NaturalScroll bool

	// ResizeCeilingHz bounds interactive resize updates on outputs with
	// an unknown refresh rate.
	ResizeCeilingHz int
}

// DefaultConfig returns the stock seat settings.
func DefaultConfig() Config {
	return Config{
		Mouse:           mousebind.DefaultConfig(),
		Resistance:      resistance.DefaultConfig(),
		ScrollFactor:    1,
		ResizeCeilingHz: DefaultResizeCeilingHz,
	}
}

// Runner executes bound action lists. The dispatcher implements it.
type Runner interface {
	Run(actions []action.Action, activator wm.Ref, cctx cursor.Context)
}

// Seat owns the pointer, keyboard and every piece of transient input
// state for one seat.
type Seat struct {
	cfg Config
	log *logging.Logger

	wm          *wm.Manager
	scene       *scene.Scene
	menus       *menu.Manager
	switcher    *switcher.Switcher
	constraints *constraint.Manager
	mode        *mode.Manager
	mouse       *mousebind.Matcher
	keys        *keybind.Matcher
	runner      Runner
	notify      Notifier

	// Pointer position in layout coordinates.
	x, y float64

	pressed PressedState
	// clientButtons maps buttons whose press reached a client to that
	// client's surface, so the release follows.
	clientButtons map[mousebind.Button]wm.SurfaceID
	// grabbedButtons were pressed while a modal operation held the
	// pointer; their releases are swallowed.
	grabbedButtons map[mousebind.Button]bool

	scroll [2]mousebind.ScrollAccumulator

	mods key.Modifier
	// swallowedKeys were pressed while a modal operation held the
	// keyboard; their releases never reach clients.
	swallowedKeys map[uint32]bool

	pointerFocus  wm.SurfaceID
	keyboardFocus wm.SurfaceID

	cursorName   string
	clientCursor string
	hidden       bool

	// updatingFocus latches the focus update path against re-entry from
	// window changes it causes itself.
	updatingFocus bool
	// destroying is set while a window-destroyed notification is being
	// handled; the window is still resolvable then.
	destroying bool

	resizeLimit   rateLimiter
	resizePending bool
	snap          wm.Direction

	subs []event.Subscription
}

// New creates a seat over the window manager m and scene sc. A nil
// notifier drops client notifications.
func New(cfg Config, m *wm.Manager, sc *scene.Scene, menus *menu.Manager, notify Notifier, log *logging.Logger) *Seat {
	log = logging.OrNull(log).WithComponent("seat")
	if notify == nil {
		notify = nopNotifier{}
	}
	s := &Seat{
		cfg:            cfg,
		log:            log,
		wm:             m,
		scene:          sc,
		menus:          menus,
		switcher:       switcher.New(m, log),
		mode:           mode.NewManager(),
		mouse:          mousebind.NewMatcher(nil, cfg.Mouse),
		keys:           keybind.NewMatcher(nil),
		notify:         notify,
		clientButtons:  make(map[mousebind.Button]wm.SurfaceID),
		grabbedButtons: make(map[mousebind.Button]bool),
		swallowedKeys:  make(map[uint32]bool),
		cursorName:     "default",
	}
	s.constraints = constraint.NewManager(s, log)
	sc.SetMenuLayer(menus)
	s.mode.OnChange(s.modeChanged)

	bus := m.Bus()
	s.subs = append(s.subs,
		bus.MustSubscribe(wm.TopicDestroyed, s.windowDestroyed),
		bus.MustSubscribe(scene.TopicSurfaceRemoved, s.surfaceRemoved),
		bus.MustSubscribe(wm.TopicRemoved, func(event.Event) { s.UpdateFocus() }),
		bus.MustSubscribe(wm.TopicFocused, s.keyboardFocusChanged),
		bus.MustSubscribe(wm.TopicGeometry, func(event.Event) { s.UpdateFocus() }),
		bus.MustSubscribe(wm.TopicWorkspace, func(event.Event) { s.UpdateFocus() }),
	)

	if lb := m.LayoutBox(); !lb.Empty() {
		s.x, s.y = lb.Center()
	}
	return s
}

// Close unsubscribes the seat from window lifecycle events.
func (s *Seat) Close() {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}

// SetRunner sets the executor of bound actions.
func (s *Seat) SetRunner(r Runner) {
	s.runner = r
}

// SetConfig replaces the seat settings.
func (s *Seat) SetConfig(cfg Config) {
	s.cfg = cfg
	s.mouse.SetConfig(cfg.Mouse)
}

// Config returns the seat settings.
func (s *Seat) Config() Config {
	return s.cfg
}

// SetKeybinds replaces the keybind table.
func (s *Seat) SetKeybinds(b []keybind.Binding) {
	s.keys.SetBindings(b)
}

// SetMousebinds replaces the mousebind table, clearing pending gestures.
func (s *Seat) SetMousebinds(b []mousebind.Binding) {
	s.mouse.SetBindings(b)
}

// Reset ends whatever modal operation is active. A move or resize is
// cancelled, menus close and the switcher is abandoned.
func (s *Seat) Reset() {
	switch s.mode.Current() {
	case mode.Move, mode.Resize:
		s.cancelInteractive()
	case mode.Menu:
		s.closeMenu()
	case mode.WindowSwitcher:
		s.switcher.Cancel()
		s.mode.Exit(mode.WindowSwitcher)
	}
}

// Mousebinds returns the mousebind matcher.
func (s *Seat) Mousebinds() *mousebind.Matcher {
	return s.mouse
}

// Keybinds returns the keybind matcher.
func (s *Seat) Keybinds() *keybind.Matcher {
	return s.keys
}

// Switcher returns the window switcher.
func (s *Seat) Switcher() *switcher.Switcher {
	return s.switcher
}

// Menus returns the menu manager.
func (s *Seat) Menus() *menu.Manager {
	return s.menus
}

// Constraints returns the pointer constraint manager.
func (s *Seat) Constraints() *constraint.Manager {
	return s.constraints
}

// Pressed returns the pressed state.
func (s *Seat) Pressed() PressedState {
	return s.pressed
}

// PointerFocus returns the surface with pointer focus.
func (s *Seat) PointerFocus() wm.SurfaceID {
	return s.pointerFocus
}

// KeyboardFocus returns the surface with keyboard focus.
func (s *Seat) KeyboardFocus() wm.SurfaceID {
	return s.keyboardFocus
}

// Modifiers returns the current keyboard modifier state.
func (s *Seat) Modifiers() key.Modifier {
	return s.mods
}

// SnapPreview returns the edge an ongoing move would snap to on release.
func (s *Seat) SnapPreview() wm.Direction {
	return s.snap
}

// Grab returns the grab of the active move or resize.
func (s *Seat) Grab() (mode.Grab, bool) {
	return s.mode.Grab()
}

// CursorImage returns the cursor image name, empty while hidden.
func (s *Seat) CursorImage() string {
	if s.hidden {
		return ""
	}
	return s.cursorName
}

// Mode implements execctx.Seat.
func (s *Seat) Mode() mode.Mode {
	return s.mode.Current()
}

// CursorPosition implements execctx.Seat.
func (s *Seat) CursorPosition() (float64, float64) {
	return s.x, s.y
}

// CursorContext implements execctx.Seat.
func (s *Seat) CursorContext() cursor.Context {
	return s.resolve()
}

// WarpCursor implements execctx.Seat.
func (s *Seat) WarpCursor(x, y float64) {
	s.x, s.y = s.clamp(x, y)
	s.UpdateFocus()
}

// HideCursor implements execctx.Seat. The cursor reappears on the next
// pointer event.
func (s *Seat) HideCursor() {
	if s.hidden {
		return
	}
	s.hidden = true
	s.setPointerFocus(cursor.Context{})
}

// ToggleKeybinds implements execctx.Seat.
func (s *Seat) ToggleKeybinds() bool {
	return s.keys.Toggle()
}

// ShowMenu implements execctx.Seat. An open menu is replaced.
func (s *Seat) ShowMenu(id string, x, y int, ref wm.Ref) error {
	if s.mode.Is(mode.Menu) {
		s.closeMenu()
	}
	if !s.mode.Is(mode.Passthrough) {
		return fmt.Errorf("%w: %s active", mode.ErrNotPassthrough, s.mode.Current())
	}
	bounds := s.wm.LayoutBox()
	if o := s.wm.OutputAt(float64(x), float64(y)); o != nil {
		bounds = o.Usable
	}
	if err := s.menus.Open(id, x, y, ref, bounds); err != nil {
		return err
	}
	if err := s.mode.Enter(mode.Menu, mode.Grab{}); err != nil {
		s.menus.Close()
		return err
	}
	return nil
}

// CycleWindows implements execctx.Seat. Without held modifiers the
// selection is committed at once.
func (s *Seat) CycleWindows(backward bool) {
	if s.mode.Is(mode.WindowSwitcher) {
		s.switcher.Step(backward)
		return
	}
	if !s.mode.Is(mode.Passthrough) {
		return
	}
	if !s.switcher.Start(backward) {
		return
	}
	if err := s.mode.Enter(mode.WindowSwitcher, mode.Grab{}); err != nil {
		s.log.Error("internal bug: cannot start window switcher: %v", err)
		s.switcher.Cancel()
		return
	}
	if s.mods.Effective().IsEmpty() {
		s.commitSwitcher()
	}
}

// CreateConstraint registers a client pointer constraint on surface. It
// becomes active at once if the surface has keyboard focus.
func (s *Seat) CreateConstraint(surface wm.SurfaceID, kind constraint.Kind, region []wm.Box) *constraint.Constraint {
	c := s.constraints.Create(surface, kind, region)
	if surface != 0 && surface == s.keyboardFocus {
		s.constraints.ActivateFor(surface)
	}
	return c
}

// DestroyConstraint removes a client pointer constraint.
func (s *Seat) DestroyConstraint(id constraint.ID) {
	s.constraints.Destroy(id)
}

// SetClientCursor applies a cursor image requested by the client owning
// surface. Requests are honored only in Passthrough and only from the
// client with pointer focus.
func (s *Seat) SetClientCursor(surface wm.SurfaceID, name string) bool {
	if !s.mode.Is(mode.Passthrough) || surface == 0 || surface != s.pointerFocus {
		return false
	}
	s.clientCursor = name
	s.cursorName = name
	return true
}

// SurfaceBox implements constraint.Host.
func (s *Seat) SurfaceBox(surface wm.SurfaceID) (wm.Box, bool) {
	for _, w := range s.wm.Windows() {
		if w.Surface == surface {
			return s.scene.Metrics().SurfaceBox(w), true
		}
	}
	for _, ls := range s.scene.LayerSurfaces() {
		if ls.Surface == surface {
			return ls.Box, true
		}
	}
	return wm.Box{}, false
}

// Warp implements constraint.Host.
func (s *Seat) Warp(x, y float64) {
	s.x, s.y = s.clamp(x, y)
}

// Activated implements constraint.Host.
func (s *Seat) Activated(c *constraint.Constraint) {
	s.notify.Notify(Notification{Kind: NotifyConstraintActivated, Surface: c.Surface, Constraint: c.ID})
}

// Deactivated implements constraint.Host.
func (s *Seat) Deactivated(c *constraint.Constraint) {
	s.notify.Notify(Notification{Kind: NotifyConstraintDeactivated, Surface: c.Surface, Constraint: c.ID})
}

func (s *Seat) resolve() cursor.Context {
	return cursor.Resolve(s.scene, s.x, s.y)
}

func (s *Seat) clamp(x, y float64) (float64, float64) {
	lb := s.wm.LayoutBox()
	if lb.Empty() {
		return x, y
	}
	return lb.ClampPoint(x, y)
}

func (s *Seat) run(actions []action.Action, activator wm.Ref, ctx cursor.Context) {
	if s.runner == nil || len(actions) == 0 {
		return
	}
	s.runner.Run(actions, activator, ctx)
}

// modeChanged keeps pointer focus and cursor image in step with the mode.
func (s *Seat) modeChanged(from, to mode.Mode) {
	s.log.Debug("mode %s -> %s", from, to)
	switch to {
	case mode.Passthrough:
		s.cursorName = "default"
		if !s.destroying {
			s.UpdateFocus()
		}
	case mode.Move:
		s.setPointerFocus(cursor.Context{})
		s.cursorName = "grabbing"
	case mode.Resize:
		s.setPointerFocus(cursor.Context{})
		g, _ := s.mode.Grab()
		s.cursorName = g.Edges.CursorName()
	default:
		s.setPointerFocus(cursor.Context{})
		s.cursorName = "default"
	}
}

// keyboardFocusChanged moves keyboard focus and the active pointer
// constraint with the focused window.
func (s *Seat) keyboardFocusChanged(ev event.Event) {
	fe, ok := ev.Payload.(wm.FocusEvent)
	if !ok {
		return
	}
	var surface wm.SurfaceID
	if w := s.wm.Lookup(fe.Current); w != nil {
		surface = w.Surface
	}
	if surface == s.keyboardFocus {
		return
	}
	if s.keyboardFocus != 0 {
		s.notify.Notify(Notification{Kind: NotifyKeyboardLeave, Surface: s.keyboardFocus})
	}
	s.keyboardFocus = surface
	if surface != 0 {
		s.notify.Notify(Notification{Kind: NotifyKeyboardEnter, Surface: surface})
		s.notify.Notify(Notification{Kind: NotifyModifiers, Surface: surface, Mods: s.mods})
	}
	s.constraints.ActivateFor(surface)
}

// windowDestroyed drops every reference the seat holds to a dying
// window. It runs while the window is still resolvable; focus is
// re-resolved on TopicRemoved once it is gone.
func (s *Seat) windowDestroyed(ev event.Event) {
	we, ok := ev.Payload.(wm.WindowEvent)
	if !ok || we.Window == nil {
		return
	}
	ref, surface := we.Ref, we.Window.Surface
	s.destroying = true
	defer func() { s.destroying = false }()

	s.mouse.Forget(ref)
	if s.pressed.Context.Window == ref {
		s.pressed = PressedState{}
		s.mouse.Cancel()
	}

	switch {
	case s.mode.Involves(ref):
		s.log.Debug("%s destroyed during %s, abandoning", ref, s.mode.Current())
		s.snap = wm.DirNone
		s.resizePending = false
		s.mode.Reset()
	case s.mode.Is(mode.Menu) && s.menus.Target() == ref:
		s.menus.Forget(ref)
		s.mode.Exit(mode.Menu)
	case s.mode.Is(mode.WindowSwitcher):
		selected := s.switcher.Selected() == ref
		s.switcher.Forget(ref)
		if selected || len(s.switcher.Windows()) == 0 {
			s.log.Debug("%s destroyed while selected, closing switcher", ref)
			s.switcher.Cancel()
			s.mode.Exit(mode.WindowSwitcher)
		}
	}

	s.dropSurface(surface)
}

// surfaceRemoved forgets a layer, popup or unmanaged surface that left
// the scene and refocuses whatever is now under the cursor.
func (s *Seat) surfaceRemoved(ev event.Event) {
	se, ok := ev.Payload.(scene.SurfaceEvent)
	if !ok || se.Surface == 0 {
		return
	}
	if s.pressed.Context.Surface == se.Surface {
		s.pressed = PressedState{}
		s.mouse.Cancel()
	}
	s.dropSurface(se.Surface)
	s.UpdateFocus()
}

// dropSurface clears the focus, implicit grabs and constraints held for
// a dead surface. No leave events are sent to it.
func (s *Seat) dropSurface(surface wm.SurfaceID) {
	for b, sf := range s.clientButtons {
		if sf == surface {
			delete(s.clientButtons, b)
		}
	}
	s.constraints.DestroySurface(surface)
	if s.pointerFocus == surface {
		s.pointerFocus = 0
		s.clientCursor = ""
	}
	if s.keyboardFocus == surface {
		s.keyboardFocus = 0
	}
}
