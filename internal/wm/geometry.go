package wm

import "fmt"

// Box is an integer rectangle in layout coordinates.
type Box struct {
	X, Y          int
	Width, Height int
}

// String returns "WxH+X+Y".
func (b Box) String() string {
	return fmt.Sprintf("%dx%d%+d%+d", b.Width, b.Height, b.X, b.Y)
}

// Empty reports whether the box has no area.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Right returns the exclusive right edge.
func (b Box) Right() int { return b.X + b.Width }

// Bottom returns the exclusive bottom edge.
func (b Box) Bottom() int { return b.Y + b.Height }

// Center returns the center point.
func (b Box) Center() (float64, float64) {
	return float64(b.X) + float64(b.Width)/2, float64(b.Y) + float64(b.Height)/2
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(x, y float64) bool {
	return !b.Empty() &&
		x >= float64(b.X) && x < float64(b.Right()) &&
		y >= float64(b.Y) && y < float64(b.Bottom())
}

// Intersect returns the overlap of two boxes (empty if none).
func (b Box) Intersect(o Box) Box {
	x1, y1 := max(b.X, o.X), max(b.Y, o.Y)
	x2, y2 := min(b.Right(), o.Right()), min(b.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Box{}
	}
	return Box{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// Overlaps reports whether the boxes share any area.
func (b Box) Overlaps(o Box) bool {
	return !b.Intersect(o).Empty()
}

// Inset shrinks the box by the given amounts on each side.
func (b Box) Inset(top, right, bottom, left int) Box {
	return Box{
		X:      b.X + left,
		Y:      b.Y + top,
		Width:  b.Width - left - right,
		Height: b.Height - top - bottom,
	}
}

// ClampPoint returns the closest point inside the box.
func (b Box) ClampPoint(x, y float64) (float64, float64) {
	if b.Empty() {
		return x, y
	}
	maxX := float64(b.Right()) - 1
	maxY := float64(b.Bottom()) - 1
	return min(max(x, float64(b.X)), maxX), min(max(y, float64(b.Y)), maxY)
}

// Edges is a bitmask of window edges.
type Edges uint8

const (
	// EdgeNone is the empty edge set.
	EdgeNone Edges = 0
	// EdgeTop is the top edge.
	EdgeTop Edges = 1 << iota
	// EdgeBottom is the bottom edge.
	EdgeBottom
	// EdgeLeft is the left edge.
	EdgeLeft
	// EdgeRight is the right edge.
	EdgeRight
)

// Has reports whether e includes all edges in o.
func (e Edges) Has(o Edges) bool {
	return o != 0 && e&o == o
}

// String returns a compact representation like "top|left".
func (e Edges) String() string {
	if e == EdgeNone {
		return "none"
	}
	s := ""
	add := func(name string) {
		if s != "" {
			s += "|"
		}
		s += name
	}
	if e&EdgeTop != 0 {
		add("top")
	}
	if e&EdgeBottom != 0 {
		add("bottom")
	}
	if e&EdgeLeft != 0 {
		add("left")
	}
	if e&EdgeRight != 0 {
		add("right")
	}
	return s
}

// CursorName returns the cursor image name for a resize edge set.
func (e Edges) CursorName() string {
	switch e {
	case EdgeTop:
		return "n-resize"
	case EdgeBottom:
		return "s-resize"
	case EdgeLeft:
		return "w-resize"
	case EdgeRight:
		return "e-resize"
	case EdgeTop | EdgeLeft:
		return "nw-resize"
	case EdgeTop | EdgeRight:
		return "ne-resize"
	case EdgeBottom | EdgeLeft:
		return "sw-resize"
	case EdgeBottom | EdgeRight:
		return "se-resize"
	default:
		return "default"
	}
}

// Direction is a compass direction used by snapping and output selection.
type Direction uint8

const (
	// DirNone indicates no direction.
	DirNone Direction = iota
	// DirLeft is toward smaller x.
	DirLeft
	// DirRight is toward larger x.
	DirRight
	// DirUp is toward smaller y.
	DirUp
	// DirDown is toward larger y.
	DirDown
	// DirCenter is used by snapping to mean "fill the usable area".
	DirCenter
)

// String returns the configuration name of the direction.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirCenter:
		return "center"
	default:
		return "none"
	}
}

// ParseDirection parses a direction name. "top"/"bottom" are accepted
// as aliases of up/down.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	case "up", "top":
		return DirUp, true
	case "down", "bottom":
		return DirDown, true
	case "center":
		return DirCenter, true
	default:
		return DirNone, false
	}
}

// Edge returns the window edge facing the direction.
func (d Direction) Edge() Edges {
	switch d {
	case DirLeft:
		return EdgeLeft
	case DirRight:
		return EdgeRight
	case DirUp:
		return EdgeTop
	case DirDown:
		return EdgeBottom
	default:
		return EdgeNone
	}
}
