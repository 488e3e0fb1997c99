// Package backend runs driftwm inside a terminal.
//
// A Terminal turns tcell keyboard and mouse input into seat device events
// and paints the window layout as boxes of character cells. Each cell
// stands for CellWidth by CellHeight layout pixels.
package backend

import "github.com/dshills/driftwm/internal/wm"

// Default cell size in layout pixels.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

// Resize reports a new layout size in pixels.
type Resize struct {
	Width, Height int
}

// Quit is sent when the quit key is pressed.
type Quit struct{}

// ShapeKind selects how a shape is painted.
type ShapeKind int

const (
	// ShapeSurface is client content.
	ShapeSurface ShapeKind = iota
	// ShapeBorder is window decoration outside the titlebar.
	ShapeBorder
	ShapeTitlebar
	ShapeButton
	ShapeLayer
	ShapeMenu
	ShapeMenuItem
	ShapeSwitcher
	// ShapePreview is an outline, used for snap previews.
	ShapePreview
)

// Shape is one box to paint.
type Shape struct {
	Kind  ShapeKind
	Box   wm.Box
	Label string
	// Active highlights the focused window or the selected item.
	Active bool
}

// Scene is a full frame, painted back to front.
type Scene struct {
	Shapes []Shape

	CursorX, CursorY float64
	CursorVisible    bool

	// Status is shown on the last row.
	Status string
}
