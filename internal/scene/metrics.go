package scene

import (
	"fmt"
	"strings"

	"github.com/dshills/driftwm/internal/wm"
)

// Button is a titlebar button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonWindowMenu
	ButtonIconify
	ButtonMaximize
	ButtonShade
	ButtonOmnipresent
	ButtonClose
)

var buttonNames = map[string]Button{
	"menu":    ButtonWindowMenu,
	"icon":    ButtonWindowMenu,
	"iconify": ButtonIconify,
	"max":     ButtonMaximize,
	"shade":   ButtonShade,
	"desk":    ButtonOmnipresent,
	"close":   ButtonClose,
}

// String returns the layout name of the button.
func (b Button) String() string {
	switch b {
	case ButtonWindowMenu:
		return "menu"
	case ButtonIconify:
		return "iconify"
	case ButtonMaximize:
		return "max"
	case ButtonShade:
		return "shade"
	case ButtonOmnipresent:
		return "desk"
	case ButtonClose:
		return "close"
	default:
		return "none"
	}
}

// ParseButtonLayout parses a layout like "menu:iconify,max,close" into the
// left and right button lists.
func ParseButtonLayout(s string) (left, right []Button, err error) {
	l, r, found := strings.Cut(s, ":")
	if !found {
		r, l = l, ""
	}
	parse := func(part string) ([]Button, error) {
		var out []Button
		for _, name := range strings.Split(part, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			b, ok := buttonNames[name]
			if !ok {
				return nil, fmt.Errorf("scene: unknown titlebar button %q", name)
			}
			out = append(out, b)
		}
		return out, nil
	}
	if left, err = parse(l); err != nil {
		return nil, nil, err
	}
	if right, err = parse(r); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// Metrics describes server-side decoration geometry.
type Metrics struct {
	BorderWidth    int
	TitlebarHeight int
	ButtonWidth    int
	// CornerRange is how far along an edge the corner region extends.
	CornerRange  int
	ButtonsLeft  []Button
	ButtonsRight []Button
}

// DefaultMetrics returns the stock decoration metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		BorderWidth:    4,
		TitlebarHeight: 24,
		ButtonWidth:    24,
		CornerRange:    8,
		ButtonsLeft:    []Button{ButtonWindowMenu},
		ButtonsRight:   []Button{ButtonIconify, ButtonMaximize, ButtonClose},
	}
}

// titlebar returns the titlebar height drawn for w.
func (m Metrics) titlebar(w *wm.Window) int {
	if !w.HasTitlebar() {
		return 0
	}
	return m.TitlebarHeight
}

// border returns the border width drawn for w.
func (m Metrics) border(w *wm.Window) int {
	if !w.HasBorder() {
		return 0
	}
	return m.BorderWidth
}

// Content returns the visible content box of w; empty when shaded.
func (m Metrics) Content(w *wm.Window) wm.Box {
	if w.Shaded {
		return wm.Box{X: w.Geometry.X, Y: w.Geometry.Y, Width: w.Geometry.Width}
	}
	return w.Geometry
}

// SurfaceBox returns the client surface box, including the invisible
// client-side border around the content.
func (m Metrics) SurfaceBox(w *wm.Window) wm.Box {
	c := m.Content(w)
	if c.Empty() {
		return c
	}
	return c.Inset(-w.CSDOffsetY, -w.CSDOffsetX, -w.CSDOffsetY, -w.CSDOffsetX)
}

// Frame returns the outer box of w including border and titlebar.
func (m Metrics) Frame(w *wm.Window) wm.Box {
	if w.Fullscreen {
		return w.Geometry
	}
	b, t := m.border(w), m.titlebar(w)
	g := w.Geometry
	h := g.Height
	if w.Shaded {
		h = 0
	}
	return wm.Box{
		X:      g.X - b,
		Y:      g.Y - t - b,
		Width:  g.Width + 2*b,
		Height: h + t + 2*b,
	}
}

// Titlebar returns the titlebar box of w, empty when it has none.
func (m Metrics) Titlebar(w *wm.Window) wm.Box {
	t := m.titlebar(w)
	if t == 0 {
		return wm.Box{}
	}
	g := w.Geometry
	return wm.Box{X: g.X, Y: g.Y - t, Width: g.Width, Height: t}
}

// ButtonBox returns the box of button b on w's titlebar.
func (m Metrics) ButtonBox(w *wm.Window, b Button) (wm.Box, bool) {
	tb := m.Titlebar(w)
	if tb.Empty() {
		return wm.Box{}, false
	}
	for i, lb := range m.ButtonsLeft {
		if lb == b {
			return wm.Box{X: tb.X + i*m.ButtonWidth, Y: tb.Y, Width: m.ButtonWidth, Height: tb.Height}, true
		}
	}
	n := len(m.ButtonsRight)
	for i, rb := range m.ButtonsRight {
		if rb == b {
			return wm.Box{X: tb.Right() - (n-i)*m.ButtonWidth, Y: tb.Y, Width: m.ButtonWidth, Height: tb.Height}, true
		}
	}
	return wm.Box{}, false
}

// ButtonAt returns the titlebar button of w under the point.
func (m Metrics) ButtonAt(w *wm.Window, x, y float64) Button {
	for _, list := range [][]Button{m.ButtonsLeft, m.ButtonsRight} {
		for _, b := range list {
			if box, ok := m.ButtonBox(w, b); ok && box.Contains(x, y) {
				return b
			}
		}
	}
	return ButtonNone
}
