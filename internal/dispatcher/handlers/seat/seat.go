// Package seat provides handlers for actions that start interactive
// pointer operations or act on the pointer and keyboard themselves.
package seat

import (
	"strconv"
	"strings"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/wm"
)

// Handler implements seat actions.
type Handler struct {
	fns map[action.Kind]handler.HandlerFunc
}

// NewHandler creates a seat handler.
func NewHandler() *Handler {
	return &Handler{fns: map[action.Kind]handler.HandlerFunc{
		action.Move:           handler.RequireWindow(move),
		action.Resize:         handler.RequireWindow(resize),
		action.ShowMenu:       showMenu,
		action.NextWindow:     cycle(false),
		action.PreviousWindow: cycle(true),
		action.WarpCursor:     warpCursor,
		action.HideCursor:     hideCursor,
		action.ToggleKeybinds: toggleKeybinds,
	}}
}

// Kinds implements handler.KindHandler.
func (h *Handler) Kinds() []action.Kind {
	kinds := make([]action.Kind, 0, len(h.fns))
	for k := range h.fns {
		kinds = append(kinds, k)
	}
	return kinds
}

// Handle implements handler.Handler.
func (h *Handler) Handle(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Seat == nil {
		return handler.Error(execctx.ErrMissingSeat)
	}
	fn, ok := h.fns[a.Kind]
	if !ok {
		return handler.Errorf("seat: unhandled action %s", a.Kind)
	}
	return fn(a, ctx)
}

func move(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Seat.BeginMove(ctx.Ref()); err != nil {
		ctx.Log.Debug("move: %v", err)
		return handler.NoOpWithMessage(err.Error())
	}
	return handler.Success()
}

// resize uses the edges of the decoration element the binding fired on,
// or the quadrant of the window holding the pointer.
func resize(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	x, y := ctx.CursorPosition()
	edges := cursor.ResizeEdges(ctx.Cursor, ctx.Window, x, y)
	if err := ctx.Seat.BeginResize(ctx.Ref(), edges); err != nil {
		ctx.Log.Debug("resize: %v", err)
		return handler.NoOpWithMessage(err.Error())
	}
	return handler.Success()
}

func showMenu(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	cx, cy := ctx.CursorPosition()
	x, y := int(cx), int(cy)
	if ctx.Window != nil && ctx.Cursor.Element == cursor.ElementButtonWindowMenu {
		x, y = ctx.Window.Geometry.X, ctx.Window.Geometry.Y
	}
	if !a.Args.GetBool("atcursor", true) && ctx.Window != nil {
		x, y = ctx.Window.Geometry.X, ctx.Window.Geometry.Y
	}
	x = a.Args.GetInt("x.position", a.Args.GetInt("x", x))
	y = a.Args.GetInt("y.position", a.Args.GetInt("y", y))
	if err := ctx.Seat.ShowMenu(a.Args.GetString("menu", ""), x, y, ctx.Ref()); err != nil {
		ctx.Log.Warn("show menu: %v", err)
		return handler.Error(err)
	}
	return handler.Success()
}

func cycle(backward bool) handler.HandlerFunc {
	return func(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
		ctx.Seat.CycleWindows(backward)
		return handler.Success()
	}
}

// warpCursor moves the pointer within the target window or its output.
// Coordinates are "center" or pixel offsets; negative offsets count from
// the far edge.
func warpCursor(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	var area wm.Box
	to := strings.ToLower(a.Args.GetString("to", "output"))
	switch {
	case to == "window" && ctx.Window != nil:
		area = ctx.Window.Geometry
	case ctx.WM != nil:
		var o *wm.Output
		if ctx.Window != nil {
			o = ctx.WM.OutputFor(ctx.Window)
		}
		if o == nil {
			o = ctx.WM.OutputAt(ctx.CursorPosition())
		}
		if o == nil {
			return handler.NoOpWithMessage("no output")
		}
		area = o.Box
	default:
		return handler.NoOp()
	}
	x := offset(a.Args.GetString("x", "center"), area.X, area.Width)
	y := offset(a.Args.GetString("y", "center"), area.Y, area.Height)
	ctx.Seat.WarpCursor(x, y)
	return handler.Success()
}

func offset(spec string, origin, size int) float64 {
	n, err := strconv.Atoi(strings.TrimSpace(spec))
	switch {
	case err != nil:
		return float64(origin) + float64(size)/2
	case n < 0:
		return float64(origin + size + n)
	default:
		return float64(origin + n)
	}
}

func hideCursor(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.Seat.HideCursor()
	return handler.Success()
}

func toggleKeybinds(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	enabled := ctx.Seat.ToggleKeybinds()
	ctx.Log.Info("keybinds enabled: %v", enabled)
	return handler.Success()
}
