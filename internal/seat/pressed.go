package seat

import (
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/mousebind"
)

// PressedState records what received the most recent button press. It is
// kept until the release of that button so motion and release keep going
// to the original target after the pointer leaves it.
type PressedState struct {
	// Context is the cursor context at press time.
	Context cursor.Context
	Button  mousebind.Button
	// X and Y are the layout cursor position at press time.
	X, Y float64
}

// Active reports whether a press is being tracked.
func (p PressedState) Active() bool {
	return p.Button != mousebind.BtnNone
}

// Delta returns the cursor displacement from the press point.
func (p PressedState) Delta(x, y float64) (float64, float64) {
	return x - p.X, y - p.Y
}
