// Package scene provides hit-testing over the compositor's layered scene.
//
// The scene is ordered top to bottom: open menus, overlay layer surfaces,
// top layer surfaces, unmanaged surfaces, windows in stacking order, bottom
// and background layer surfaces, and finally the root.
package scene

import (
	"github.com/dshills/driftwm/internal/event"
	"github.com/dshills/driftwm/internal/wm"
)

// TopicSurfaceRemoved is published on the window manager's bus, before
// the remove call returns, for every layer surface, popup or unmanaged
// surface taken out of the scene. The payload is a SurfaceEvent.
const TopicSurfaceRemoved event.Topic = "surface.removed"

// SurfaceEvent is the payload of TopicSurfaceRemoved.
type SurfaceEvent struct {
	Surface wm.SurfaceID
	Kind    Kind
}

// Kind is the descriptor type of a scene node.
type Kind uint8

const (
	// KindRoot is the empty desktop.
	KindRoot Kind = iota
	// KindWindow is a managed window: its surface or its decoration.
	KindWindow
	// KindMenuItem is an item of an open menu.
	KindMenuItem
	// KindLayerSurface is a shell layer surface such as a panel.
	KindLayerSurface
	// KindLayerSubsurface is a popup or subsurface of a layer surface.
	KindLayerSubsurface
	// KindUnmanaged is an unmanaged override-redirect surface.
	KindUnmanaged
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindWindow:
		return "window"
	case KindMenuItem:
		return "menu-item"
	case KindLayerSurface:
		return "layer-surface"
	case KindLayerSubsurface:
		return "layer-subsurface"
	case KindUnmanaged:
		return "unmanaged"
	default:
		return "root"
	}
}

// MenuItemRef identifies an item of an open menu.
type MenuItemRef struct {
	Menu  string
	Index int
}

// Node is the result of a hit test.
type Node struct {
	Kind    Kind
	Window  wm.Ref
	Surface wm.SurfaceID
	Item    MenuItemRef
	// Box is the node's bounding box in layout coordinates.
	Box wm.Box
}

// Graph answers node-at-point queries.
type Graph interface {
	NodeAt(x, y float64) (Node, bool)
}

// MenuLayer is implemented by whatever draws open menus.
type MenuLayer interface {
	MenuItemAt(x, y float64) (MenuItemRef, wm.Box, bool)
}

// Layer is a shell layer.
type Layer uint8

const (
	LayerBackground Layer = iota
	LayerBottom
	LayerTop
	LayerOverlay
)

// LayerSurface is a shell layer surface with optional popups.
type LayerSurface struct {
	Surface   wm.SurfaceID
	Namespace string
	Layer     Layer
	Box       wm.Box
	// Popups are child surfaces hit-tested above the parent.
	Popups []Popup
	// KeyboardInteractive surfaces take keyboard focus on click.
	KeyboardInteractive bool
}

// Popup is a child surface of a layer surface.
type Popup struct {
	Surface wm.SurfaceID
	Box     wm.Box
}

// Unmanaged is an override-redirect surface outside window management.
type Unmanaged struct {
	Surface wm.SurfaceID
	Box     wm.Box
}

// Scene is a Graph over the window manager plus registered layer and
// unmanaged surfaces.
type Scene struct {
	wm      *wm.Manager
	metrics Metrics
	menus   MenuLayer

	layers    []*LayerSurface
	unmanaged []*Unmanaged
}

// FromManager creates a scene over m using the given decoration metrics.
func FromManager(m *wm.Manager, metrics Metrics) *Scene {
	return &Scene{wm: m, metrics: metrics}
}

// Metrics returns the decoration metrics.
func (s *Scene) Metrics() Metrics {
	return s.metrics
}

// SetMetrics replaces the decoration metrics.
func (s *Scene) SetMetrics(m Metrics) {
	s.metrics = m
}

// SetMenuLayer installs the menu layer.
func (s *Scene) SetMenuLayer(ml MenuLayer) {
	s.menus = ml
}

// AddLayerSurface registers a layer surface. Later surfaces in the same
// layer are on top.
func (s *Scene) AddLayerSurface(ls *LayerSurface) {
	s.layers = append(s.layers, ls)
}

// RemoveLayerSurface unregisters the layer surface owning id together
// with its popups.
func (s *Scene) RemoveLayerSurface(id wm.SurfaceID) {
	for i, ls := range s.layers {
		if ls.Surface == id {
			s.layers = append(s.layers[:i], s.layers[i+1:]...)
			for _, p := range ls.Popups {
				s.removed(p.Surface, KindLayerSubsurface)
			}
			s.removed(id, KindLayerSurface)
			return
		}
	}
}

// LayerSurfaces returns the registered layer surfaces.
func (s *Scene) LayerSurfaces() []*LayerSurface {
	return s.layers
}

// AddUnmanaged registers an unmanaged surface.
func (s *Scene) AddUnmanaged(u *Unmanaged) {
	s.unmanaged = append(s.unmanaged, u)
}

// RemoveUnmanaged unregisters an unmanaged surface.
func (s *Scene) RemoveUnmanaged(id wm.SurfaceID) {
	for i, u := range s.unmanaged {
		if u.Surface == id {
			s.unmanaged = append(s.unmanaged[:i], s.unmanaged[i+1:]...)
			s.removed(id, KindUnmanaged)
			return
		}
	}
}

func (s *Scene) removed(id wm.SurfaceID, kind Kind) {
	s.wm.Bus().Publish(TopicSurfaceRemoved, SurfaceEvent{Surface: id, Kind: kind})
}

// NodeAt returns the topmost node under the point. It reports false and
// a root node when only the desktop is there.
func (s *Scene) NodeAt(x, y float64) (Node, bool) {
	if s.menus != nil {
		if item, box, ok := s.menus.MenuItemAt(x, y); ok {
			return Node{Kind: KindMenuItem, Item: item, Box: box}, true
		}
	}
	if n, ok := s.layerAt(x, y, LayerOverlay, LayerTop); ok {
		return n, true
	}
	for i := len(s.unmanaged) - 1; i >= 0; i-- {
		u := s.unmanaged[i]
		if u.Box.Contains(x, y) {
			return Node{Kind: KindUnmanaged, Surface: u.Surface, Box: u.Box}, true
		}
	}
	for _, w := range s.wm.Stack() {
		frame := s.metrics.Frame(w)
		surf := s.metrics.SurfaceBox(w)
		if frame.Contains(x, y) || surf.Contains(x, y) {
			return Node{Kind: KindWindow, Window: w.Ref(), Surface: w.Surface, Box: frame}, true
		}
	}
	if n, ok := s.layerAt(x, y, LayerBottom, LayerBackground); ok {
		return n, true
	}
	return Node{Kind: KindRoot}, false
}

// layerAt hit-tests the given layers in order, popups before parents.
func (s *Scene) layerAt(x, y float64, layers ...Layer) (Node, bool) {
	for _, l := range layers {
		for i := len(s.layers) - 1; i >= 0; i-- {
			ls := s.layers[i]
			if ls.Layer != l {
				continue
			}
			for j := len(ls.Popups) - 1; j >= 0; j-- {
				p := ls.Popups[j]
				if p.Box.Contains(x, y) {
					return Node{Kind: KindLayerSubsurface, Surface: p.Surface, Box: p.Box}, true
				}
			}
			if ls.Box.Contains(x, y) {
				return Node{Kind: KindLayerSurface, Surface: ls.Surface, Box: ls.Box}, true
			}
		}
	}
	return Node{}, false
}

// Window returns the live window for a node, or nil.
func (s *Scene) Window(n Node) *wm.Window {
	if n.Kind != KindWindow {
		return nil
	}
	return s.wm.Lookup(n.Window)
}
