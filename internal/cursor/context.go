// Package cursor resolves what lies under the pointer.
package cursor

import (
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/wm"
)

// Scene is the hit-testing collaborator used by Resolve.
type Scene interface {
	NodeAt(x, y float64) (scene.Node, bool)
	Window(n scene.Node) *wm.Window
	Metrics() scene.Metrics
}

// Context describes what is under the cursor at one instant. It is
// recomputed per event and holds only weak references.
type Context struct {
	Element Element
	Window  wm.Ref
	Surface wm.SurfaceID
	Node    scene.Node
	// SX and SY are surface-local coordinates, valid when Surface is set.
	SX, SY float64
}

// HasSurface reports whether the context targets a client surface.
func (c Context) HasSurface() bool {
	return c.Surface != 0
}

// Resolve hit-tests the scene at (x, y) and classifies the result.
// Within a window frame the priority is buttons, then title, then resize
// edges and corners, then client content.
func Resolve(s Scene, x, y float64) Context {
	n, ok := s.NodeAt(x, y)
	if !ok {
		return Context{Element: ElementRoot, Node: n}
	}
	ctx := Context{Node: n}
	switch n.Kind {
	case scene.KindMenuItem:
		ctx.Element = ElementMenu
	case scene.KindLayerSurface, scene.KindLayerSubsurface, scene.KindUnmanaged:
		ctx.Element = ElementLayerSurface
		if n.Kind == scene.KindLayerSubsurface {
			ctx.Element = ElementLayerSubsurface
		} else if n.Kind == scene.KindUnmanaged {
			ctx.Element = ElementUnmanaged
		}
		ctx.Surface = n.Surface
		ctx.SX, ctx.SY = x-float64(n.Box.X), y-float64(n.Box.Y)
	case scene.KindWindow:
		w := s.Window(n)
		if w == nil {
			return Context{Element: ElementRoot}
		}
		ctx.Window = w.Ref()
		ctx.Element = classify(s.Metrics(), w, x, y)
		if ctx.Element == ElementClient {
			ctx.Surface = w.Surface
			ctx.SX = x - float64(w.Geometry.X-w.CSDOffsetX)
			ctx.SY = y - float64(w.Geometry.Y-w.CSDOffsetY)
		}
	default:
		ctx.Element = ElementRoot
	}
	return ctx
}

func classify(m scene.Metrics, w *wm.Window, x, y float64) Element {
	if b := m.ButtonAt(w, x, y); b != scene.ButtonNone {
		return buttonElement(b)
	}
	if m.Titlebar(w).Contains(x, y) {
		return ElementTitle
	}
	if m.Content(w).Contains(x, y) {
		return ElementClient
	}
	// Outside the frame only the invisible client-side border remains.
	frame := m.Frame(w)
	if !frame.Contains(x, y) || !w.HasBorder() {
		return ElementClient
	}
	return edgeElement(frame, m.BorderWidth, max(m.CornerRange, m.BorderWidth), x, y)
}

func edgeElement(frame wm.Box, border, corner int, x, y float64) Element {
	fx, fy := float64(frame.X), float64(frame.Y)
	fr, fb := float64(frame.Right()), float64(frame.Bottom())
	b, c := float64(border), float64(corner)

	top := y < fy+b
	bottom := y >= fb-b
	left := x < fx+b
	right := x >= fr-b
	if top || bottom {
		left = left || x < fx+c
		right = right || x >= fr-c
	}
	if left || right {
		top = top || y < fy+c
		bottom = bottom || y >= fb-c
	}
	switch {
	case top && left:
		return ElementCornerTopLeft
	case top && right:
		return ElementCornerTopRight
	case bottom && right:
		return ElementCornerBottomRight
	case bottom && left:
		return ElementCornerBottomLeft
	case top:
		return ElementTop
	case right:
		return ElementRight
	case bottom:
		return ElementBottom
	case left:
		return ElementLeft
	}
	return ElementClient
}

// ResizeEdges returns the edges to resize for a grab started at (x, y).
// Edge and corner elements map directly; anywhere else the quadrant of
// the window under the point decides.
func ResizeEdges(ctx Context, w *wm.Window, x, y float64) wm.Edges {
	if e := ctx.Element.Edges(); e != wm.EdgeNone {
		return e
	}
	if w == nil {
		return wm.EdgeNone
	}
	cx, cy := w.Geometry.Center()
	var edges wm.Edges
	if x < cx {
		edges |= wm.EdgeLeft
	} else {
		edges |= wm.EdgeRight
	}
	if y < cy {
		edges |= wm.EdgeTop
	} else {
		edges |= wm.EdgeBottom
	}
	return edges
}
