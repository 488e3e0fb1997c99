package app

import (
	"fmt"
	"strings"

	"github.com/dshills/driftwm/internal/backend"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/wm"
)

var buttonGlyphs = map[scene.Button]string{
	scene.ButtonWindowMenu:  "=",
	scene.ButtonIconify:     "_",
	scene.ButtonMaximize:    "+",
	scene.ButtonShade:       "^",
	scene.ButtonOmnipresent: "*",
	scene.ButtonClose:       "x",
}

// frame builds the backend scene for the current state, back to front.
func (app *Application) frame() backend.Scene {
	var out backend.Scene

	out.Shapes = app.layerShapes(out.Shapes, scene.LayerBackground, scene.LayerBottom)

	focused := app.wm.Focused()
	stack := app.wm.Stack()
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		active := focused != nil && focused.Ref() == w.Ref()
		out.Shapes = app.windowShapes(out.Shapes, w, active)
	}

	out.Shapes = app.layerShapes(out.Shapes, scene.LayerTop, scene.LayerOverlay)

	if dir := app.seat.SnapPreview(); dir != wm.DirNone {
		if g, ok := app.seat.Grab(); ok {
			if box, ok := app.wm.SnapBox(g.Window, dir); ok {
				out.Shapes = append(out.Shapes, backend.Shape{Kind: backend.ShapePreview, Box: box})
			}
		}
	}

	for _, l := range app.menus.Levels() {
		out.Shapes = append(out.Shapes, backend.Shape{Kind: backend.ShapeMenu, Box: l.Box, Label: l.Menu.Label})
		for i, it := range l.Menu.Items {
			label := it.Label
			if it.Separator {
				label = strings.Repeat("-", 40)
			} else if it.Submenu != "" {
				label += " >"
			}
			out.Shapes = append(out.Shapes, backend.Shape{
				Kind:   backend.ShapeMenuItem,
				Box:    l.ItemBox(i),
				Label:  label,
				Active: i == l.Selected,
			})
		}
	}

	if sw := app.seat.Switcher(); sw.Active() {
		out.Shapes = app.switcherShapes(out.Shapes, sw.Windows(), sw.Selected())
	}

	if img := app.seat.CursorImage(); img != "" {
		out.CursorX, out.CursorY = app.seat.CursorPosition()
		out.CursorVisible = true
	}
	out.Status = app.status()
	return out
}

func (app *Application) windowShapes(shapes []backend.Shape, w *wm.Window, active bool) []backend.Shape {
	m := app.scene.Metrics()
	if w.HasBorder() {
		shapes = append(shapes, backend.Shape{Kind: backend.ShapeBorder, Box: m.Frame(w), Active: active})
	}
	if w.HasTitlebar() {
		shapes = append(shapes, backend.Shape{Kind: backend.ShapeTitlebar, Box: m.Titlebar(w), Label: " " + w.Title, Active: active})
		for _, b := range append(append([]scene.Button(nil), m.ButtonsLeft...), m.ButtonsRight...) {
			if box, ok := m.ButtonBox(w, b); ok {
				shapes = append(shapes, backend.Shape{Kind: backend.ShapeButton, Box: box, Label: buttonGlyphs[b], Active: active})
			}
		}
	}
	if !w.Shaded {
		shapes = append(shapes, backend.Shape{Kind: backend.ShapeSurface, Box: m.Content(w), Label: w.AppID, Active: active})
	}
	return shapes
}

func (app *Application) layerShapes(shapes []backend.Shape, layers ...scene.Layer) []backend.Shape {
	for _, layer := range layers {
		for _, ls := range app.scene.LayerSurfaces() {
			if ls.Layer == layer {
				shapes = append(shapes, backend.Shape{Kind: backend.ShapeLayer, Box: ls.Box, Label: ls.Namespace})
			}
		}
	}
	return shapes
}

// switcherShapes lists the cycled windows in a box centered on the
// layout, one row per window.
func (app *Application) switcherShapes(shapes []backend.Shape, refs []wm.Ref, selected wm.Ref) []backend.Shape {
	if len(refs) == 0 {
		return shapes
	}
	row := app.cfg.Menu.ItemHeight
	width := app.cfg.Menu.Width * 2
	lb := app.wm.LayoutBox()
	box := wm.Box{Width: width, Height: row * len(refs)}
	box.X = lb.X + (lb.Width-box.Width)/2
	box.Y = lb.Y + (lb.Height-box.Height)/2

	shapes = append(shapes, backend.Shape{Kind: backend.ShapeSwitcher, Box: box})
	for i, ref := range refs {
		w := app.wm.Lookup(ref)
		if w == nil {
			continue
		}
		shapes = append(shapes, backend.Shape{
			Kind:   backend.ShapeSwitcher,
			Box:    wm.Box{X: box.X, Y: box.Y + i*row, Width: box.Width, Height: row},
			Label:  fmt.Sprintf(" %s  %s", w.AppID, w.Title),
			Active: ref == selected,
		})
	}
	return shapes
}

// status renders the bottom line: workspace, mode, focused window and the
// last event sent to a client.
func (app *Application) status() string {
	parts := []string{"[" + app.wm.Current().Name + "]"}
	if m := app.seat.Mode(); m != mode.Passthrough {
		parts = append(parts, strings.ToUpper(m.String()))
	}
	if w := app.wm.Focused(); w != nil {
		parts = append(parts, w.Title)
	}
	if n := app.notified.String(); n != "" {
		parts = append(parts, "<"+n+">")
	}
	if app.opts.ShowMetrics {
		s := app.metrics.Snapshot()
		parts = append(parts, fmt.Sprintf("frame %s event %s", s.AvgFrame, s.AvgEvent))
		if dm := app.dispatcher.Metrics(); dm != nil {
			ds := dm.Snapshot()
			parts = append(parts, fmt.Sprintf("actions %d (%d failed)", ds.Dispatches, ds.Errors))
		}
	}
	parts = append(parts, "Ctrl-Q quits")
	return strings.Join(parts, "  ")
}
