package wm

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dshills/driftwm/internal/event"
	"github.com/dshills/driftwm/internal/logging"
)

// Lifecycle topics published on the event bus.
const (
	TopicCreated   event.Topic = "window.created"
	TopicDestroyed event.Topic = "window.destroyed"
	TopicRemoved   event.Topic = "window.removed"
	TopicFocused   event.Topic = "window.focused"
	TopicGeometry  event.Topic = "window.geometry"
	TopicState     event.Topic = "window.state"
	TopicWorkspace event.Topic = "workspace.changed"
	TopicOutput    event.Topic = "output.changed"
)

// Manager errors.
var (
	// ErrNoWorkspace indicates a workspace target that does not resolve.
	ErrNoWorkspace = errors.New("wm: no such workspace")

	// ErrDuplicateOutput indicates an output name already in use.
	ErrDuplicateOutput = errors.New("wm: duplicate output")
)

// WindowEvent is the payload of window lifecycle topics.
type WindowEvent struct {
	Ref    Ref
	Window *Window
}

// FocusEvent is the payload of TopicFocused.
type FocusEvent struct {
	Previous Ref
	Current  Ref
}

// WorkspaceEvent is the payload of TopicWorkspace.
type WorkspaceEvent struct {
	Previous *Workspace
	Current  *Workspace
}

// Region is a named snap region in percent of an output's usable area.
type Region struct {
	Name                string
	X, Y, Width, Height int
}

// Config configures a Manager.
type Config struct {
	// Workspaces lists workspace names in order. At least one is created.
	Workspaces []string
	// Regions lists the snap regions.
	Regions []Region
	// Gap is the spacing kept around snapped and maximized windows.
	Gap int
}

// DefaultConfig returns a single-workspace configuration.
func DefaultConfig() Config {
	return Config{Workspaces: []string{"1"}}
}

// Manager owns windows, outputs and workspaces and implements every
// window-state mutation. It is not safe for concurrent use.
type Manager struct {
	reg *Registry
	bus *event.Bus
	log *logging.Logger

	outputs    []*Output
	workspaces []*Workspace
	current    *Workspace
	last       *Workspace
	regions    []Region
	gap        int

	// stack is ordered bottom to top.
	stack   []Ref
	focused Ref

	nextSurface SurfaceID
	onClose     func(*Window)
}

// NewManager creates a manager publishing on bus.
func NewManager(cfg Config, bus *event.Bus, log *logging.Logger) *Manager {
	if bus == nil {
		bus = event.NewBus()
	}
	m := &Manager{
		reg:     NewRegistry(),
		bus:     bus,
		log:     logging.OrNull(log).WithComponent("wm"),
		regions: append([]Region(nil), cfg.Regions...),
		gap:     cfg.Gap,
	}
	names := cfg.Workspaces
	if len(names) == 0 {
		names = []string{"1"}
	}
	for i, name := range names {
		m.workspaces = append(m.workspaces, &Workspace{Name: name, Index: i})
	}
	m.current = m.workspaces[0]
	m.last = m.current
	return m
}

// Bus returns the event bus the manager publishes on.
func (m *Manager) Bus() *event.Bus {
	return m.bus
}

// Registry returns the window arena.
func (m *Manager) Registry() *Registry {
	return m.reg
}

// Lookup resolves ref to a live window or nil.
func (m *Manager) Lookup(ref Ref) *Window {
	return m.reg.Lookup(ref)
}

// AllocSurface returns a fresh surface id.
func (m *Manager) AllocSurface() SurfaceID {
	m.nextSurface++
	return m.nextSurface
}

// SetCloseHandler replaces the handler for polite close requests. The
// default destroys the window immediately.
func (m *Manager) SetCloseHandler(fn func(*Window)) {
	m.onClose = fn
}

// SetRegions replaces the snap regions.
func (m *Manager) SetRegions(regions []Region) {
	m.regions = append(m.regions[:0], regions...)
}

// SetGap changes the spacing kept around snapped and maximized windows.
func (m *Manager) SetGap(gap int) {
	m.gap = gap
}

// Outputs

// AddOutput adds an output. Its usable area defaults to its box.
func (m *Manager) AddOutput(o *Output) error {
	if m.OutputByName(o.Name) != nil {
		return fmt.Errorf("%w: %s", ErrDuplicateOutput, o.Name)
	}
	if o.Usable.Empty() {
		o.Usable = o.Box
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if o.Magnify == 0 {
		o.Magnify = 1
	}
	m.outputs = append(m.outputs, o)
	m.bus.Publish(TopicOutput, o)
	return nil
}

// RemoveOutput removes an output and evacuates its windows to the first
// remaining output.
func (m *Manager) RemoveOutput(name string) bool {
	for i, o := range m.outputs {
		if o.Name != name {
			continue
		}
		m.outputs = append(m.outputs[:i], m.outputs[i+1:]...)
		for _, ref := range m.stack {
			w := m.reg.Lookup(ref)
			if w != nil && w.Output == o {
				w.Output = nil
				m.FitToOutput(ref)
			}
		}
		m.bus.Publish(TopicOutput, o)
		return true
	}
	return false
}

// ConfigureOutput changes an output's box. A usable area that covered the
// whole old box follows the new one.
func (m *Manager) ConfigureOutput(name string, box Box) bool {
	o := m.OutputByName(name)
	if o == nil {
		return false
	}
	if o.Usable == o.Box {
		o.Usable = box
	} else {
		o.Usable = o.Usable.Intersect(box)
	}
	o.Box = box
	m.log.Debug("output %s now %v", name, box)
	m.bus.Publish(TopicOutput, o)
	return true
}

// Outputs returns the outputs in layout order.
func (m *Manager) Outputs() []*Output {
	return append([]*Output(nil), m.outputs...)
}

// OutputByName returns the named output or nil.
func (m *Manager) OutputByName(name string) *Output {
	for _, o := range m.outputs {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// OutputAt returns the output containing the point, or nil.
func (m *Manager) OutputAt(x, y float64) *Output {
	for _, o := range m.outputs {
		if o.Box.Contains(x, y) {
			return o
		}
	}
	return nil
}

// OutputFor returns the output showing most of w, falling back to its
// assigned output and then to the first output.
func (m *Manager) OutputFor(w *Window) *Output {
	if w == nil {
		return nil
	}
	var best *Output
	bestArea := 0
	for _, o := range m.outputs {
		in := o.Box.Intersect(w.Geometry)
		if a := in.Width * in.Height; a > bestArea {
			best, bestArea = o, a
		}
	}
	if best != nil {
		return best
	}
	if w.Output != nil && m.OutputByName(w.Output.Name) == w.Output {
		return w.Output
	}
	if len(m.outputs) > 0 {
		return m.outputs[0]
	}
	return nil
}

// OutputInDirection returns the nearest output adjacent to from in the
// given direction, or nil.
func (m *Manager) OutputInDirection(from *Output, dir Direction) *Output {
	if from == nil {
		return nil
	}
	cx, cy := from.Box.Center()
	var best *Output
	bestDist := 0.0
	for _, o := range m.outputs {
		if o == from {
			continue
		}
		ox, oy := o.Box.Center()
		var d float64
		switch dir {
		case DirLeft:
			d = cx - ox
		case DirRight:
			d = ox - cx
		case DirUp:
			d = cy - oy
		case DirDown:
			d = oy - cy
		default:
			return nil
		}
		if d <= 0 {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

// LayoutBox returns the bounding box of all outputs.
func (m *Manager) LayoutBox() Box {
	if len(m.outputs) == 0 {
		return Box{}
	}
	b := m.outputs[0].Box
	x1, y1, x2, y2 := b.X, b.Y, b.Right(), b.Bottom()
	for _, o := range m.outputs[1:] {
		x1, y1 = min(x1, o.Box.X), min(y1, o.Box.Y)
		x2, y2 = max(x2, o.Box.Right()), max(y2, o.Box.Bottom())
	}
	return Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Windows

// Create maps a new window on the current workspace, on top of the stack.
func (m *Manager) Create(appID, title string, geometry Box) *Window {
	w := &Window{
		AppID:     appID,
		Title:     title,
		Surface:   m.AllocSurface(),
		Geometry:  geometry,
		Natural:   geometry,
		Workspace: m.current,
	}
	ref := m.reg.insert(w)
	w.Output = m.OutputFor(w)
	m.stack = append(m.stack, ref)
	m.log.Debug("created %s app_id=%q", ref, appID)
	m.bus.Publish(TopicCreated, WindowEvent{Ref: ref, Window: w})
	return w
}

// Destroy unmaps and destroys a window. TopicDestroyed is published while
// the window is still resolvable; the slot is recycled afterwards and
// TopicRemoved follows once focus has moved on.
func (m *Manager) Destroy(ref Ref) bool {
	w := m.reg.Lookup(ref)
	if w == nil {
		return false
	}
	m.bus.Publish(TopicDestroyed, WindowEvent{Ref: ref, Window: w})

	m.removeFromStack(ref)
	wasFocused := m.focused == ref
	m.reg.remove(ref)
	m.log.Debug("destroyed %s", ref)

	if wasFocused {
		m.focused = Ref{}
		m.focusTopmost(ref)
	}
	m.bus.Publish(TopicRemoved, WindowEvent{Ref: ref})
	return true
}

// Close politely asks the window to close.
func (m *Manager) Close(ref Ref) {
	w := m.reg.Lookup(ref)
	if w == nil {
		return
	}
	if m.onClose != nil {
		m.onClose(w)
		return
	}
	m.Destroy(ref)
}

// Kill forcibly destroys the window's client.
func (m *Manager) Kill(ref Ref) {
	m.Destroy(ref)
}

// Windows returns every live window, bottom to top.
func (m *Manager) Windows() []*Window {
	out := make([]*Window, 0, len(m.stack))
	for _, ref := range m.stack {
		if w := m.reg.Lookup(ref); w != nil {
			out = append(out, w)
		}
	}
	return out
}

// visible reports whether w is shown on the current workspace.
func (m *Manager) visible(w *Window) bool {
	return w.Mapped() && (w.Omnipresent || w.Workspace == m.current)
}

// layer orders windows into always-on-bottom, normal and always-on-top.
func layer(w *Window) int {
	switch {
	case w.AlwaysOnTop:
		return 2
	case w.AlwaysOnBottom:
		return 0
	default:
		return 1
	}
}

// Stack returns the visible windows of the current workspace, topmost
// first, honoring always-on-top and always-on-bottom layers.
func (m *Manager) Stack() []*Window {
	var out []*Window
	for l := 2; l >= 0; l-- {
		for i := len(m.stack) - 1; i >= 0; i-- {
			w := m.reg.Lookup(m.stack[i])
			if w != nil && layer(w) == l && m.visible(w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// Focusable returns windows that can take focus on the current workspace,
// including minimized ones, topmost first.
func (m *Manager) Focusable() []*Window {
	var out []*Window
	for l := 2; l >= 0; l-- {
		for i := len(m.stack) - 1; i >= 0; i-- {
			w := m.reg.Lookup(m.stack[i])
			if w == nil || layer(w) != l || w.NoFocus {
				continue
			}
			if w.Omnipresent || w.Workspace == m.current {
				out = append(out, w)
			}
		}
	}
	return out
}

// Focused returns the focused window or nil.
func (m *Manager) Focused() *Window {
	return m.reg.Lookup(m.focused)
}

// Focus gives keyboard focus to the window, unminimizing it and switching
// to its workspace when needed.
func (m *Manager) Focus(ref Ref) {
	w := m.reg.Lookup(ref)
	if w == nil || w.NoFocus {
		return
	}
	if w.Minimized {
		w.Minimized = false
		m.publishState(w)
	}
	if !w.Omnipresent && w.Workspace != m.current {
		m.switchWorkspace(w.Workspace, false)
	}
	m.setFocus(ref)
}

// Unfocus clears keyboard focus.
func (m *Manager) Unfocus() {
	m.setFocus(Ref{})
}

func (m *Manager) setFocus(ref Ref) {
	if m.focused == ref {
		return
	}
	prev := m.focused
	m.focused = ref
	m.bus.Publish(TopicFocused, FocusEvent{Previous: prev, Current: ref})
}

// focusTopmost focuses the topmost visible focusable window other than
// skip, or clears focus.
func (m *Manager) focusTopmost(skip Ref) {
	for _, w := range m.Stack() {
		if w.ref != skip && !w.NoFocus {
			m.setFocus(w.ref)
			return
		}
	}
	m.setFocus(Ref{})
}

// Raise moves the window to the top of its layer.
func (m *Manager) Raise(ref Ref) {
	if m.reg.Lookup(ref) == nil {
		return
	}
	m.removeFromStack(ref)
	m.stack = append(m.stack, ref)
}

// Lower moves the window to the bottom of its layer.
func (m *Manager) Lower(ref Ref) {
	if m.reg.Lookup(ref) == nil {
		return
	}
	m.removeFromStack(ref)
	m.stack = append([]Ref{ref}, m.stack...)
}

func (m *Manager) removeFromStack(ref Ref) {
	for i, r := range m.stack {
		if r == ref {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			return
		}
	}
}

// Geometry

func (m *Manager) setGeometry(w *Window, b Box) {
	b.Width = max(b.Width, w.MinWidth, 1)
	b.Height = max(b.Height, w.MinHeight, 1)
	if b == w.Geometry {
		return
	}
	w.Geometry = b
	if w.Floating() {
		w.Natural = b
	}
	if o := m.OutputFor(w); o != nil {
		w.Output = o
	}
	m.bus.Publish(TopicGeometry, WindowEvent{Ref: w.ref, Window: w})
}

func (m *Manager) publishState(w *Window) {
	m.bus.Publish(TopicState, WindowEvent{Ref: w.ref, Window: w})
}

// Move positions the window's content box.
func (m *Manager) Move(ref Ref, x, y int) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Fullscreen {
		return
	}
	b := w.Geometry
	b.X, b.Y = x, y
	m.setGeometry(w, b)
}

// Resize sets the window size, honoring its minimum size.
func (m *Manager) Resize(ref Ref, width, height int) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Fullscreen {
		return
	}
	b := w.Geometry
	b.Width, b.Height = width, height
	m.setGeometry(w, b)
}

// MoveResize sets position and size together.
func (m *Manager) MoveResize(ref Ref, b Box) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Fullscreen {
		return
	}
	m.setGeometry(w, b)
}

// SetNatural replaces the floating geometry restored on unsnap.
func (m *Manager) SetNatural(ref Ref, b Box) {
	if w := m.reg.Lookup(ref); w != nil {
		w.Natural = b
	}
}

// usable returns the usable area of w's output shrunk by the gap.
func (m *Manager) usable(w *Window) (Box, bool) {
	o := m.OutputFor(w)
	if o == nil {
		return Box{}, false
	}
	return o.Usable.Inset(m.gap, m.gap, m.gap, m.gap), true
}

// Maximize maximizes along axis. Maximizing to the current state is a no-op.
func (m *Manager) Maximize(ref Ref, axis Axis) {
	w := m.reg.Lookup(ref)
	if w == nil || axis == AxisNone || w.Fullscreen {
		return
	}
	if w.Maximized == axis && w.Tiled == DirNone && w.Region == "" {
		return
	}
	area, ok := m.usable(w)
	if !ok {
		return
	}
	if w.Floating() {
		w.Natural = w.Geometry
	}
	b := w.Natural
	if axis&AxisHorizontal != 0 {
		b.X, b.Width = area.X, area.Width
	}
	if axis&AxisVertical != 0 {
		b.Y, b.Height = area.Y, area.Height
	}
	w.Maximized = axis
	w.Tiled = DirNone
	w.Region = ""
	m.setGeometry(w, b)
	m.publishState(w)
}

// Unmaximize restores the natural geometry of a maximized window.
func (m *Manager) Unmaximize(ref Ref) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Maximized == AxisNone {
		return
	}
	w.Maximized = AxisNone
	if w.Tiled == DirNone && w.Region == "" {
		m.setGeometry(w, w.Natural)
	}
	m.publishState(w)
}

// ToggleMaximize maximizes along axis, or unmaximizes if already so.
func (m *Manager) ToggleMaximize(ref Ref, axis Axis) {
	w := m.reg.Lookup(ref)
	if w == nil {
		return
	}
	if w.Maximized == axis {
		m.Unmaximize(ref)
		return
	}
	m.Maximize(ref, axis)
}

// SetFullscreen enters or leaves fullscreen on the window's output.
func (m *Manager) SetFullscreen(ref Ref, on bool) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Fullscreen == on {
		return
	}
	o := m.OutputFor(w)
	if on {
		if o == nil {
			return
		}
		if w.Floating() {
			w.Natural = w.Geometry
		}
		w.Fullscreen = true
		w.Geometry = o.Box
		m.bus.Publish(TopicGeometry, WindowEvent{Ref: ref, Window: w})
	} else {
		w.Fullscreen = false
		m.restoreLayout(w)
	}
	m.publishState(w)
}

// restoreLayout recomputes geometry from the window's snap state.
func (m *Manager) restoreLayout(w *Window) {
	w.Geometry = w.Natural
	switch {
	case w.Maximized != AxisNone:
		axis := w.Maximized
		w.Maximized = AxisNone
		m.Maximize(w.ref, axis)
	case w.Tiled != DirNone:
		dir := w.Tiled
		w.Tiled = DirNone
		m.SnapToEdge(w.ref, dir)
	case w.Region != "":
		name := w.Region
		w.Region = ""
		if m.SnapToRegion(w.ref, name) {
			return
		}
		fallthrough
	default:
		m.bus.Publish(TopicGeometry, WindowEvent{Ref: w.ref, Window: w})
	}
}

// Minimize hides or restores the window. Hiding the focused window moves
// focus to the next one.
func (m *Manager) Minimize(ref Ref, on bool) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Minimized == on {
		return
	}
	w.Minimized = on
	m.publishState(w)
	if on && m.focused == ref {
		m.focusTopmost(ref)
	}
}

// SnapToEdge tiles the window to half of its output's usable area. The
// center direction maximizes. Snapping to the current edge is a no-op.
func (m *Manager) SnapToEdge(ref Ref, dir Direction) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Fullscreen {
		return
	}
	if dir == DirCenter {
		m.Maximize(ref, AxisBoth)
		return
	}
	if dir == DirNone || w.Tiled == dir {
		return
	}
	area, ok := m.usable(w)
	if !ok {
		return
	}
	if w.Floating() {
		w.Natural = w.Geometry
	}
	b := halfBox(area, dir)
	w.Maximized = AxisNone
	w.Region = ""
	w.Tiled = dir
	m.setGeometry(w, b)
	m.publishState(w)
}

// SnapBox returns the box a window snapped toward dir would get. The
// center direction covers the whole usable area.
func (m *Manager) SnapBox(ref Ref, dir Direction) (Box, bool) {
	w := m.reg.Lookup(ref)
	if w == nil || dir == DirNone {
		return Box{}, false
	}
	area, ok := m.usable(w)
	if !ok {
		return Box{}, false
	}
	return halfBox(area, dir), true
}

func halfBox(area Box, dir Direction) Box {
	b := area
	switch dir {
	case DirLeft:
		b.Width = area.Width / 2
	case DirRight:
		b.Width = area.Width / 2
		b.X = area.Right() - b.Width
	case DirUp:
		b.Height = area.Height / 2
	case DirDown:
		b.Height = area.Height / 2
		b.Y = area.Bottom() - b.Height
	}
	return b
}

// Regions returns the configured snap regions.
func (m *Manager) Regions() []Region {
	return append([]Region(nil), m.regions...)
}

// RegionBox returns the box of a named region on output o.
func (m *Manager) RegionBox(o *Output, name string) (Box, bool) {
	if o == nil {
		return Box{}, false
	}
	for _, r := range m.regions {
		if r.Name != name {
			continue
		}
		u := o.Usable
		return Box{
			X:      u.X + u.Width*r.X/100,
			Y:      u.Y + u.Height*r.Y/100,
			Width:  u.Width * r.Width / 100,
			Height: u.Height * r.Height / 100,
		}.Inset(m.gap, m.gap, m.gap, m.gap), true
	}
	return Box{}, false
}

// SnapToRegion snaps the window into a named region. It reports false,
// changing nothing, when the region does not exist.
func (m *Manager) SnapToRegion(ref Ref, name string) bool {
	w := m.reg.Lookup(ref)
	if w == nil || w.Fullscreen {
		return false
	}
	b, ok := m.RegionBox(m.OutputFor(w), name)
	if !ok {
		return false
	}
	if w.Region == name {
		return true
	}
	if w.Floating() {
		w.Natural = w.Geometry
	}
	w.Maximized = AxisNone
	w.Tiled = DirNone
	w.Region = name
	m.setGeometry(w, b)
	m.publishState(w)
	return true
}

// Unsnap returns a maximized, tiled or region-snapped window to its
// natural geometry.
func (m *Manager) Unsnap(ref Ref) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Fullscreen || w.Floating() {
		return
	}
	w.Maximized = AxisNone
	w.Tiled = DirNone
	w.Region = ""
	m.setGeometry(w, w.Natural)
	m.publishState(w)
}

// Shade rolls the window up to its titlebar, or unrolls it.
func (m *Manager) Shade(ref Ref, on bool) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Shaded == on {
		return
	}
	if on && !w.HasTitlebar() {
		return
	}
	w.Shaded = on
	m.publishState(w)
}

// SetDecorations changes the server-side decoration mode.
func (m *Manager) SetDecorations(ref Ref, d Decorations) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Decorations == d {
		return
	}
	w.Decorations = d
	if d != DecorFull {
		w.Shaded = false
	}
	m.publishState(w)
}

// SetAlwaysOnTop toggles the always-on-top layer.
func (m *Manager) SetAlwaysOnTop(ref Ref, on bool) {
	w := m.reg.Lookup(ref)
	if w == nil || w.AlwaysOnTop == on {
		return
	}
	w.AlwaysOnTop = on
	if on {
		w.AlwaysOnBottom = false
	}
	m.publishState(w)
}

// SetAlwaysOnBottom toggles the always-on-bottom layer.
func (m *Manager) SetAlwaysOnBottom(ref Ref, on bool) {
	w := m.reg.Lookup(ref)
	if w == nil || w.AlwaysOnBottom == on {
		return
	}
	w.AlwaysOnBottom = on
	if on {
		w.AlwaysOnTop = false
	}
	m.publishState(w)
}

// SetOmnipresent shows the window on every workspace.
func (m *Manager) SetOmnipresent(ref Ref, on bool) {
	w := m.reg.Lookup(ref)
	if w == nil || w.Omnipresent == on {
		return
	}
	w.Omnipresent = on
	m.publishState(w)
}

// Workspaces

// Workspaces returns all workspaces in order.
func (m *Manager) Workspaces() []*Workspace {
	return append([]*Workspace(nil), m.workspaces...)
}

// Current returns the active workspace.
func (m *Manager) Current() *Workspace {
	return m.current
}

// ResolveWorkspace resolves a target: a name, a 1-based number, "left",
// "right" or "last". Left and right wrap when wrap is set.
func (m *Manager) ResolveWorkspace(to string, wrap bool) (*Workspace, error) {
	n := len(m.workspaces)
	idx := m.current.Index
	switch to {
	case "last":
		return m.last, nil
	case "left":
		if idx == 0 {
			if !wrap {
				return nil, fmt.Errorf("%w: %s", ErrNoWorkspace, to)
			}
			return m.workspaces[n-1], nil
		}
		return m.workspaces[idx-1], nil
	case "right":
		if idx == n-1 {
			if !wrap {
				return nil, fmt.Errorf("%w: %s", ErrNoWorkspace, to)
			}
			return m.workspaces[0], nil
		}
		return m.workspaces[idx+1], nil
	}
	for _, ws := range m.workspaces {
		if ws.Name == to {
			return ws, nil
		}
	}
	if i, err := strconv.Atoi(to); err == nil && i >= 1 && i <= n {
		return m.workspaces[i-1], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoWorkspace, to)
}

// GoToWorkspace switches to ws and focuses its topmost window.
func (m *Manager) GoToWorkspace(ws *Workspace) {
	m.switchWorkspace(ws, true)
}

func (m *Manager) switchWorkspace(ws *Workspace, refocus bool) {
	if ws == nil || ws == m.current {
		return
	}
	prev := m.current
	m.last = prev
	m.current = ws
	m.log.Debug("workspace %s -> %s", prev.Name, ws.Name)
	m.bus.Publish(TopicWorkspace, WorkspaceEvent{Previous: prev, Current: ws})
	if refocus {
		if f := m.Focused(); f == nil || !m.visible(f) {
			m.focusTopmost(Ref{})
		}
	}
}

// SendToWorkspace moves the window to ws.
func (m *Manager) SendToWorkspace(ref Ref, ws *Workspace) {
	w := m.reg.Lookup(ref)
	if w == nil || ws == nil || w.Workspace == ws {
		return
	}
	w.Workspace = ws
	m.publishState(w)
	if m.focused == ref && !m.visible(w) {
		m.focusTopmost(ref)
	}
}

// Output placement

// MoveToOutput moves the window onto o, keeping its relative position,
// and reapplies any snap state there.
func (m *Manager) MoveToOutput(ref Ref, o *Output) {
	w := m.reg.Lookup(ref)
	if w == nil || o == nil {
		return
	}
	from := m.OutputFor(w)
	if from == o {
		return
	}
	nat := w.Natural
	if from != nil {
		nat.X = o.Usable.X + (nat.X - from.Usable.X)
		nat.Y = o.Usable.Y + (nat.Y - from.Usable.Y)
	} else {
		nat.X, nat.Y = o.Usable.X, o.Usable.Y
	}
	w.Natural = nat
	w.Output = o
	if w.Floating() {
		m.setGeometry(w, nat)
		m.FitToOutput(ref)
		return
	}
	// Snapped windows recompute their box on the new output.
	if w.Fullscreen {
		w.Geometry = o.Box
		m.bus.Publish(TopicGeometry, WindowEvent{Ref: ref, Window: w})
		return
	}
	m.restoreLayout(w)
}

// FitToOutput shrinks and moves the window so it lies inside the usable
// area of its output.
func (m *Manager) FitToOutput(ref Ref) {
	w := m.reg.Lookup(ref)
	if w == nil || !w.Floating() {
		return
	}
	area, ok := m.usable(w)
	if !ok {
		return
	}
	b := w.Geometry
	b.Width = min(b.Width, area.Width)
	b.Height = min(b.Height, area.Height)
	b.X = min(max(b.X, area.X), area.Right()-b.Width)
	b.Y = min(max(b.Y, area.Y), area.Bottom()-b.Height)
	m.setGeometry(w, b)
}

// MoveToEdge moves a floating window flush with the usable edge of its
// output in dir.
func (m *Manager) MoveToEdge(ref Ref, dir Direction) {
	w := m.reg.Lookup(ref)
	if w == nil {
		return
	}
	area, ok := m.usable(w)
	if !ok {
		return
	}
	if !w.Floating() {
		m.Unsnap(ref)
	}
	b := w.Geometry
	switch dir {
	case DirLeft:
		b.X = area.X
	case DirRight:
		b.X = area.Right() - b.Width
	case DirUp:
		b.Y = area.Y
	case DirDown:
		b.Y = area.Bottom() - b.Height
	default:
		return
	}
	m.setGeometry(w, b)
}

// GrowToEdge extends the window's edge facing dir to the usable edge.
func (m *Manager) GrowToEdge(ref Ref, dir Direction) {
	w := m.reg.Lookup(ref)
	if w == nil || !w.Floating() {
		return
	}
	area, ok := m.usable(w)
	if !ok {
		return
	}
	b := w.Geometry
	switch dir {
	case DirLeft:
		if b.X > area.X {
			b.Width += b.X - area.X
			b.X = area.X
		}
	case DirRight:
		if b.Right() < area.Right() {
			b.Width = area.Right() - b.X
		}
	case DirUp:
		if b.Y > area.Y {
			b.Height += b.Y - area.Y
			b.Y = area.Y
		}
	case DirDown:
		if b.Bottom() < area.Bottom() {
			b.Height = area.Bottom() - b.Y
		}
	default:
		return
	}
	m.setGeometry(w, b)
}

// ShrinkToEdge halves the window toward dir: the edge opposite dir moves
// inward, never below the minimum size.
func (m *Manager) ShrinkToEdge(ref Ref, dir Direction) {
	w := m.reg.Lookup(ref)
	if w == nil || !w.Floating() {
		return
	}
	b := w.Geometry
	switch dir {
	case DirLeft:
		b.Width = max(b.Width/2, w.MinWidth, 1)
	case DirRight:
		nw := max(b.Width/2, w.MinWidth, 1)
		b.X += b.Width - nw
		b.Width = nw
	case DirUp:
		b.Height = max(b.Height/2, w.MinHeight, 1)
	case DirDown:
		nh := max(b.Height/2, w.MinHeight, 1)
		b.Y += b.Height - nh
		b.Height = nh
	default:
		return
	}
	m.setGeometry(w, b)
}

// AutoPlace moves a floating window to the first position on its output
// where it overlaps no other visible window, scanning in steps of step
// pixels. When no free spot exists the window is centered.
func (m *Manager) AutoPlace(ref Ref) {
	const step = 16
	w := m.reg.Lookup(ref)
	if w == nil || !w.Floating() {
		return
	}
	area, ok := m.usable(w)
	if !ok {
		return
	}
	var others []Box
	for _, o := range m.Stack() {
		if o != w {
			others = append(others, o.Geometry)
		}
	}
	b := w.Geometry
	for y := area.Y; y+b.Height <= area.Bottom(); y += step {
		for x := area.X; x+b.Width <= area.Right(); x += step {
			cand := Box{X: x, Y: y, Width: b.Width, Height: b.Height}
			free := true
			for _, o := range others {
				if cand.Overlaps(o) {
					free = false
					break
				}
			}
			if free {
				m.setGeometry(w, cand)
				return
			}
		}
	}
	b.X = area.X + (area.Width-b.Width)/2
	b.Y = area.Y + (area.Height-b.Height)/2
	m.setGeometry(w, b)
}
