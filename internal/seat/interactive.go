package seat

import (
	"fmt"

	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/resistance"
	"github.com/dshills/driftwm/internal/wm"
)

// BeginMove implements execctx.Seat. Fullscreen windows do not move.
func (s *Seat) BeginMove(ref wm.Ref) error {
	w := s.wm.Lookup(ref)
	if w == nil {
		return fmt.Errorf("%w: %s", ErrNoWindow, ref)
	}
	if w.Fullscreen {
		return nil
	}
	g := mode.Grab{
		Window: ref,
		Box:    w.Geometry,
		X:      s.x,
		Y:      s.y,
		Button: uint32(s.pressed.Button),
	}
	if err := s.mode.Enter(mode.Move, g); err != nil {
		return err
	}
	s.snap = wm.DirNone
	return nil
}

// BeginResize implements execctx.Seat. A snapped or maximized window is
// released in place first. Without edges the corner nearest the cursor
// is used.
func (s *Seat) BeginResize(ref wm.Ref, edges wm.Edges) error {
	w := s.wm.Lookup(ref)
	if w == nil {
		return fmt.Errorf("%w: %s", ErrNoWindow, ref)
	}
	if w.Fullscreen {
		return nil
	}
	if !s.mode.Is(mode.Passthrough) {
		return fmt.Errorf("%w: %s active", mode.ErrNotPassthrough, s.mode.Current())
	}
	if edges == wm.EdgeNone {
		edges = s.nearestCorner(w.Geometry)
	}
	if !w.Floating() {
		s.wm.SetNatural(ref, w.Geometry)
		s.wm.Unsnap(ref)
	}
	g := mode.Grab{
		Window: ref,
		Box:    w.Geometry,
		X:      s.x,
		Y:      s.y,
		Button: uint32(s.pressed.Button),
		Edges:  edges,
	}
	s.resizeLimit.reset()
	s.resizePending = false
	return s.mode.Enter(mode.Resize, g)
}

func (s *Seat) nearestCorner(b wm.Box) wm.Edges {
	cx, cy := b.Center()
	edges := wm.EdgeRight
	if s.x < cx {
		edges = wm.EdgeLeft
	}
	if s.y < cy {
		return edges | wm.EdgeTop
	}
	return edges | wm.EdgeBottom
}

func (s *Seat) processMove() {
	g, _ := s.mode.Grab()
	w := s.wm.Lookup(g.Window)
	if w == nil {
		return
	}
	dx, dy := s.x-g.X, s.y-g.Y

	if !w.Floating() {
		adx, ady, unsnap := resistance.Unsnap(resistance.StateOf(w), dx, dy, s.cfg.Resistance)
		if unsnap {
			s.unsnapUnderCursor(w, g)
			return
		}
		// Windows maximized along one axis slide along the other.
		if adx != 0 || ady != 0 {
			s.wm.Move(g.Window, g.Box.X+int(adx), g.Box.Y+int(ady))
		}
		return
	}

	next := g.Box
	next.X += int(dx)
	next.Y += int(dy)
	f := s.frameAt(w, next)
	rf := resistance.Move(s.frameAt(w, w.Geometry), f, s.obstacles(w), s.cfg.Resistance)
	s.wm.Move(g.Window, next.X+rf.X-f.X, next.Y+rf.Y-f.Y)

	s.snap = wm.DirNone
	if o := s.wm.OutputAt(s.x, s.y); o != nil {
		s.snap = resistance.SnapTarget(s.x, s.y, o.Box, s.cfg.Resistance)
	}
}

// unsnapUnderCursor restores the floating geometry of w, keeping the
// cursor at the same relative position over it, and restarts the grab.
func (s *Seat) unsnapUnderCursor(w *wm.Window, g mode.Grab) {
	nat := w.Natural
	if nat.Empty() {
		nat = w.Geometry
	}
	rx, ry := 0.5, 0.0
	if g.Box.Width > 0 {
		rx = (g.X - float64(g.Box.X)) / float64(g.Box.Width)
	}
	if g.Box.Height > 0 {
		ry = (g.Y - float64(g.Box.Y)) / float64(g.Box.Height)
	}
	nat.X = int(s.x - rx*float64(nat.Width))
	nat.Y = int(s.y - ry*float64(nat.Height))

	ref := w.Ref()
	s.wm.SetNatural(ref, nat)
	s.wm.Unsnap(ref)
	if w = s.wm.Lookup(ref); w == nil {
		return
	}
	s.mode.Regrab(w.Geometry, s.x, s.y)
}

func (s *Seat) processResize(time uint32) {
	g, _ := s.mode.Grab()
	w := s.wm.Lookup(g.Window)
	if w == nil {
		return
	}
	refresh := 0
	if o := s.wm.OutputFor(w); o != nil {
		refresh = o.RefreshMHz
	}
	if !s.resizeLimit.allow(time, refresh, s.cfg.ResizeCeilingHz) {
		s.resizePending = true
		return
	}
	s.resizePending = false
	s.applyResize(w, g)
}

func (s *Seat) applyResize(w *wm.Window, g mode.Grab) {
	dx, dy := int(s.x-g.X), int(s.y-g.Y)
	next := g.Box
	switch {
	case g.Edges.Has(wm.EdgeLeft):
		next.X += dx
		next.Width -= dx
	case g.Edges.Has(wm.EdgeRight):
		next.Width += dx
	}
	switch {
	case g.Edges.Has(wm.EdgeTop):
		next.Y += dy
		next.Height -= dy
	case g.Edges.Has(wm.EdgeBottom):
		next.Height += dy
	}

	f := s.frameAt(w, next)
	rf := resistance.Resize(s.frameAt(w, w.Geometry), f, g.Edges, s.obstacles(w), s.cfg.Resistance)
	next.X += rf.X - f.X
	next.Y += rf.Y - f.Y
	next.Width += rf.Width - f.Width
	next.Height += rf.Height - f.Height

	minW, minH := max(w.MinWidth, 1), max(w.MinHeight, 1)
	if next.Width < minW {
		if g.Edges.Has(wm.EdgeLeft) {
			next.X = g.Box.Right() - minW
		}
		next.Width = minW
	}
	if next.Height < minH {
		if g.Edges.Has(wm.EdgeTop) {
			next.Y = g.Box.Bottom() - minH
		}
		next.Height = minH
	}
	s.wm.MoveResize(g.Window, next)
}

// finishInteractive ends a move or resize, applying a previewed snap or
// the last rate-limited resize step.
func (s *Seat) finishInteractive() {
	g, _ := s.mode.Grab()
	current := s.mode.Current()
	switch current {
	case mode.Move:
		if s.snap != wm.DirNone {
			s.wm.SnapToEdge(g.Window, s.snap)
		}
	case mode.Resize:
		if s.resizePending {
			if w := s.wm.Lookup(g.Window); w != nil {
				s.applyResize(w, g)
			}
		}
	}
	s.endInteractive(current)
}

// cancelInteractive ends a move or resize, putting the window back where
// the grab started.
func (s *Seat) cancelInteractive() {
	g, _ := s.mode.Grab()
	current := s.mode.Current()
	if s.wm.Lookup(g.Window) != nil {
		s.wm.MoveResize(g.Window, g.Box)
	}
	s.endInteractive(current)
}

func (s *Seat) endInteractive(m mode.Mode) {
	s.snap = wm.DirNone
	s.resizePending = false
	s.resizeLimit.reset()
	s.mode.Exit(m)
}

// frameAt returns the frame w would have with content box g.
func (s *Seat) frameAt(w *wm.Window, g wm.Box) wm.Box {
	f := s.scene.Metrics().Frame(w)
	return wm.Box{
		X:      g.X + f.X - w.Geometry.X,
		Y:      g.Y + f.Y - w.Geometry.Y,
		Width:  g.Width + f.Width - w.Geometry.Width,
		Height: g.Height + f.Height - w.Geometry.Height,
	}
}

// obstacles returns the edges w resists: usable output areas and the
// frames of the other visible windows.
func (s *Seat) obstacles(w *wm.Window) resistance.Obstacles {
	var obs resistance.Obstacles
	for _, o := range s.wm.Outputs() {
		obs.Outputs = append(obs.Outputs, o.Usable)
	}
	m := s.scene.Metrics()
	for _, other := range s.wm.Stack() {
		if other.Ref() != w.Ref() {
			obs.Windows = append(obs.Windows, m.Frame(other))
		}
	}
	return obs
}
