// Package resistance adjusts interactive move and resize geometry: edge
// resistance against outputs and windows, un-snap thresholds for tiled
// and maximized windows, and snap-to-edge targets.
//
// Every function here is pure; the only state is the configuration.
package resistance

import (
	"math"

	"github.com/dshills/driftwm/internal/wm"
)

// Config holds the resistance constants in pixels.
type Config struct {
	// ScreenEdgeStrength resists crossing output usable edges. Negative
	// values attract instead.
	ScreenEdgeStrength int
	// WindowEdgeStrength resists crossing other windows' edges.
	WindowEdgeStrength int
	// UnsnapThreshold is the drag distance that releases a fully
	// maximized, tiled or region-snapped window.
	UnsnapThreshold int
	// UnmaximizeThreshold is the drag distance along the maximized axis
	// that releases a window maximized along one axis.
	UnmaximizeThreshold int
	// SnapEdgeRange is how close to an output edge the cursor must be
	// for a snap preview.
	SnapEdgeRange int
	// SnapTopMaximize maximizes instead of tiling for the top edge.
	SnapTopMaximize bool
}

// DefaultConfig returns the stock constants.
func DefaultConfig() Config {
	return Config{
		ScreenEdgeStrength:  20,
		WindowEdgeStrength:  20,
		UnsnapThreshold:     20,
		UnmaximizeThreshold: 150,
		SnapEdgeRange:       1,
		SnapTopMaximize:     true,
	}
}

// SnapState is the part of a window's state that constrains dragging.
type SnapState struct {
	Maximized wm.Axis
	// Snapped is set for edge-tiled and region-snapped windows.
	Snapped bool
}

// StateOf returns the snap state of w.
func StateOf(w *wm.Window) SnapState {
	return SnapState{Maximized: w.Maximized, Snapped: w.Tiled != wm.DirNone || w.Region != ""}
}

// Unsnap filters a drag displacement (dx, dy), measured from where the
// grab started, for a window in state st. Until the relevant threshold is
// reached the displacement along constrained axes is suppressed and
// unsnap is false. Once it is reached unsnap is true and the caller
// should restore floating geometry under the cursor.
func Unsnap(st SnapState, dx, dy float64, cfg Config) (adjDx, adjDy float64, unsnap bool) {
	switch {
	case st.Maximized == wm.AxisHorizontal && !st.Snapped:
		if math.Abs(dx) >= float64(cfg.UnmaximizeThreshold) {
			return dx, dy, true
		}
		return 0, dy, false
	case st.Maximized == wm.AxisVertical && !st.Snapped:
		if math.Abs(dy) >= float64(cfg.UnmaximizeThreshold) {
			return dx, dy, true
		}
		return dx, 0, false
	case st.Maximized != wm.AxisNone || st.Snapped:
		if math.Hypot(dx, dy) >= float64(cfg.UnsnapThreshold) {
			return dx, dy, true
		}
		return 0, 0, false
	}
	return dx, dy, true
}

// Obstacles are the edges a moving window resists.
type Obstacles struct {
	// Outputs are usable output areas.
	Outputs []wm.Box
	// Windows are the frames of other visible windows.
	Windows []wm.Box
}

// span is a one-dimensional interval [lo, hi).
type span struct{ lo, hi int }

func overlaps(a, b span) bool { return a.lo < b.hi && b.lo < a.hi }

// resistLow adjusts a low (left/top) edge moving from cur to next against
// a boundary at edge approached from above.
func resistLow(cur, next, edge, strength int) int {
	if strength == 0 {
		return next
	}
	if strength > 0 {
		if cur >= edge && next < edge && next > edge-strength {
			return edge
		}
		return next
	}
	// Attraction: snap when coming within range from inside.
	if next >= edge && next < edge-strength && next < cur {
		return edge
	}
	return next
}

// resistHigh is resistLow for right/bottom edges.
func resistHigh(cur, next, edge, strength int) int {
	return -resistLow(-cur, -next, -edge, strength)
}

// Move applies edge resistance to a window frame moving from cur to
// next. Size never changes.
func Move(cur, next wm.Box, obs Obstacles, cfg Config) wm.Box {
	out := next
	out.X += resistAxis(span{cur.X, cur.Right()}, span{next.X, next.Right()},
		span{next.Y, next.Bottom()}, obs, cfg, true, true, true)
	out.Y += resistAxis(span{cur.Y, cur.Bottom()}, span{next.Y, next.Bottom()},
		span{next.X, next.Right()}, obs, cfg, false, true, true)
	return out
}

// resistAxis returns the correction to apply along one axis. cross is
// the window's extent on the other axis; doLow and doHigh select which of
// the window's edges are moving.
func resistAxis(cur, next, cross span, obs Obstacles, cfg Config, horizontal, doLow, doHigh bool) int {
	best := 0
	consider := func(adj int) {
		if adj != 0 && (best == 0 || abs(adj) < abs(best)) {
			best = adj
		}
	}
	check := func(lowEdge, highEdge, strength int) {
		if doLow {
			consider(resistLow(cur.lo, next.lo, lowEdge, strength) - next.lo)
		}
		if doHigh {
			consider(resistHigh(cur.hi, next.hi, highEdge, strength) - next.hi)
		}
	}
	for _, o := range obs.Outputs {
		if horizontal {
			check(o.X, o.Right(), cfg.ScreenEdgeStrength)
		} else {
			check(o.Y, o.Bottom(), cfg.ScreenEdgeStrength)
		}
	}
	for _, w := range obs.Windows {
		// Our low edge meets their high edge and vice versa.
		if horizontal && overlaps(cross, span{w.Y, w.Bottom()}) {
			check(w.Right(), w.X, cfg.WindowEdgeStrength)
		} else if !horizontal && overlaps(cross, span{w.X, w.Right()}) {
			check(w.Bottom(), w.Y, cfg.WindowEdgeStrength)
		}
	}
	return best
}

// Resize applies edge resistance to the moving edges of a frame being
// resized from cur to next. The opposite edges stay put.
func Resize(cur, next wm.Box, edges wm.Edges, obs Obstacles, cfg Config) wm.Box {
	out := next
	hc, hn := span{cur.X, cur.Right()}, span{next.X, next.Right()}
	vc, vn := span{cur.Y, cur.Bottom()}, span{next.Y, next.Bottom()}
	if edges&wm.EdgeLeft != 0 {
		left := next.X + resistAxis(hc, hn, vn, obs, cfg, true, true, false)
		out.Width += out.X - left
		out.X = left
	}
	if edges&wm.EdgeRight != 0 {
		right := next.Right() + resistAxis(hc, hn, vn, obs, cfg, true, false, true)
		out.Width = right - out.X
	}
	if edges&wm.EdgeTop != 0 {
		top := next.Y + resistAxis(vc, vn, hn, obs, cfg, false, true, false)
		out.Height += out.Y - top
		out.Y = top
	}
	if edges&wm.EdgeBottom != 0 {
		bottom := next.Bottom() + resistAxis(vc, vn, hn, obs, cfg, false, false, true)
		out.Height = bottom - out.Y
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// SnapTarget returns the edge an interactive move would snap to with the
// cursor at (x, y) on an output with layout box out. It returns DirNone
// when the cursor is not within range of an edge. The top edge yields
// DirCenter when SnapTopMaximize is set.
func SnapTarget(x, y float64, out wm.Box, cfg Config) wm.Direction {
	if out.Empty() || cfg.SnapEdgeRange <= 0 {
		return wm.DirNone
	}
	r := float64(cfg.SnapEdgeRange)
	switch {
	case y < float64(out.Y)+r:
		if cfg.SnapTopMaximize {
			return wm.DirCenter
		}
		return wm.DirUp
	case y >= float64(out.Bottom())-r:
		return wm.DirDown
	case x < float64(out.X)+r:
		return wm.DirLeft
	case x >= float64(out.Right())-r:
		return wm.DirRight
	}
	return wm.DirNone
}
