// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/wm"
)

// Seat is the input side of the compositor as seen by handlers.
type Seat interface {
	// Mode returns the current input mode.
	Mode() mode.Mode
	// CursorPosition returns the pointer position in layout coordinates.
	CursorPosition() (x, y float64)
	// CursorContext resolves what is under the pointer now.
	CursorContext() cursor.Context

	// BeginMove starts an interactive move of the window.
	BeginMove(ref wm.Ref) error
	// BeginResize starts an interactive resize on edges.
	BeginResize(ref wm.Ref, edges wm.Edges) error
	// ShowMenu opens a menu at (x, y) for the window, which may be zero.
	ShowMenu(id string, x, y int, ref wm.Ref) error
	// CycleWindows starts or steps the window switcher.
	CycleWindows(backward bool)
	// WarpCursor moves the pointer without notifying clients.
	WarpCursor(x, y float64)
	// HideCursor hides the pointer until it next moves.
	HideCursor()
	// ToggleKeybinds flips keybind handling and returns the new state.
	ToggleKeybinds() bool
}

// Lifecycle controls the compositor process.
type Lifecycle interface {
	Exit()
	Reconfigure()
}

// Spawner runs shell commands and returns the child pid.
type Spawner interface {
	Spawn(name, command string) (int, error)
}

// ExecutionContext carries everything a handler may act on. It is built
// fresh for every action in a list.
type ExecutionContext struct {
	// Window is the resolved target, nil when the action has none.
	Window *wm.Window
	// Cursor is the context under the pointer when the binding fired.
	Cursor cursor.Context

	WM        *wm.Manager
	Seat      Seat
	Lifecycle Lifecycle
	Spawner   Spawner
	Log       *logging.Logger

	// PromptCommand is the command template used by confirmation prompts.
	PromptCommand string

	// Data holds handler-specific context data.
	Data map[string]any
}

// New creates an empty execution context.
func New() *ExecutionContext {
	return &ExecutionContext{Log: logging.Null, Data: make(map[string]any)}
}

// Ref returns the target window ref, or the zero ref.
func (ctx *ExecutionContext) Ref() wm.Ref {
	if ctx.Window == nil {
		return wm.Ref{}
	}
	return ctx.Window.Ref()
}

// Mode returns the current input mode, Passthrough without a seat.
func (ctx *ExecutionContext) Mode() mode.Mode {
	if ctx.Seat == nil {
		return mode.Passthrough
	}
	return ctx.Seat.Mode()
}

// CursorPosition returns the pointer position, or the origin without a seat.
func (ctx *ExecutionContext) CursorPosition() (float64, float64) {
	if ctx.Seat == nil {
		return 0, 0
	}
	return ctx.Seat.CursorPosition()
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value any) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]any)
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (any, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context has what window handlers need.
func (ctx *ExecutionContext) Validate() error {
	if ctx.WM == nil {
		return ErrMissingWM
	}
	return nil
}

// RequireSeat returns the seat or ErrMissingSeat.
func (ctx *ExecutionContext) RequireSeat() (Seat, error) {
	if ctx.Seat == nil {
		return nil, ErrMissingSeat
	}
	return ctx.Seat, nil
}
