package window

import (
	"strings"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/wm"
)

// Handler implements window-state actions.
type Handler struct {
	fns map[action.Kind]handler.HandlerFunc
}

// NewHandler creates a window handler.
func NewHandler() *Handler {
	h := &Handler{}
	rw := handler.RequireWindow
	h.fns = map[action.Kind]handler.HandlerFunc{
		action.Close:                rw(closeWindow),
		action.Kill:                 rw(kill),
		action.Focus:                rw(focus),
		action.Unfocus:              unfocus,
		action.Raise:                rw(raise),
		action.Lower:                rw(lower),
		action.Iconify:              rw(iconify),
		action.Maximize:             rw(maximize),
		action.UnMaximize:           rw(unmaximize),
		action.ToggleMaximize:       rw(toggleMaximize),
		action.ToggleFullscreen:     rw(toggleFullscreen),
		action.SnapToEdge:           rw(snapToEdge),
		action.ToggleSnapToEdge:     rw(toggleSnapToEdge),
		action.MoveToEdge:           rw(moveToEdge),
		action.GrowToEdge:           rw(growToEdge),
		action.ShrinkToEdge:         rw(shrinkToEdge),
		action.SnapToRegion:         rw(snapToRegion),
		action.ToggleSnapToRegion:   rw(toggleSnapToRegion),
		action.UnSnap:               rw(unsnap),
		action.SetDecorations:       rw(setDecorations),
		action.ToggleDecorations:    rw(toggleDecorations),
		action.ToggleAlwaysOnTop:    rw(toggleAlwaysOnTop),
		action.ToggleAlwaysOnBottom: rw(toggleAlwaysOnBottom),
		action.ToggleOmnipresent:    rw(toggleOmnipresent),
		action.Shade:                rw(shade(func(bool) bool { return true })),
		action.Unshade:              rw(shade(func(bool) bool { return false })),
		action.ToggleShade:          rw(shade(func(on bool) bool { return !on })),
		action.MoveTo:               rw(moveTo),
		action.ResizeTo:             rw(resizeTo),
		action.MoveRelative:         rw(moveRelative),
		action.ResizeRelative:       rw(resizeRelative),
		action.MoveToCursor:         rw(moveToCursor),
		action.FitToOutput:          rw(fitToOutput),
		action.AutoPlace:            rw(autoPlace),
		action.ToggleTearing:        rw(toggleTearing),
	}
	return h
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
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}
	fn, ok := h.fns[a.Kind]
	if !ok {
		return handler.Errorf("window: unhandled action %s", a.Kind)
	}
	return fn(a, ctx)
}

func done() handler.Result {
	return handler.Success()
}

func closeWindow(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.Close(ctx.Ref())
	return done()
}

func kill(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.Kill(ctx.Ref())
	return done()
}

func focus(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.Focus(ctx.Ref())
	return done()
}

func unfocus(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Window == nil {
		ctx.WM.Unfocus()
		return done()
	}
	if ctx.WM.Focused() == ctx.Window {
		ctx.WM.Unfocus()
		return done()
	}
	return handler.NoOpWithMessage("target not focused")
}

func raise(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.Raise(ctx.Ref())
	return done()
}

func lower(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.Lower(ctx.Ref())
	return done()
}

func iconify(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.Minimize(ctx.Ref(), true)
	return done()
}

func maximize(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.Maximize(ctx.Ref(), a.Axis())
	return done()
}

func unmaximize(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	w := ctx.Window
	remaining := w.Maximized &^ a.Axis()
	if remaining == w.Maximized {
		return handler.NoOp()
	}
	ctx.WM.Unmaximize(ctx.Ref())
	if remaining != wm.AxisNone {
		ctx.WM.Maximize(ctx.Ref(), remaining)
	}
	return done()
}

func toggleMaximize(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.ToggleMaximize(ctx.Ref(), a.Axis())
	return done()
}

func toggleFullscreen(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.SetFullscreen(ctx.Ref(), !ctx.Window.Fullscreen)
	return done()
}

func snapToEdge(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.SnapToEdge(ctx.Ref(), a.Direction())
	return done()
}

func toggleSnapToEdge(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	dir := a.Direction()
	w := ctx.Window
	if w.Tiled == dir || (dir == wm.DirCenter && w.Maximized == wm.AxisBoth) {
		ctx.WM.Unsnap(ctx.Ref())
		return done()
	}
	ctx.WM.SnapToEdge(ctx.Ref(), dir)
	return done()
}

func moveToEdge(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.MoveToEdge(ctx.Ref(), a.Direction())
	return done()
}

func growToEdge(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.GrowToEdge(ctx.Ref(), a.Direction())
	return done()
}

func shrinkToEdge(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.ShrinkToEdge(ctx.Ref(), a.Direction())
	return done()
}

func snapToRegion(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	name := a.Args.GetString("region", "")
	if !ctx.WM.SnapToRegion(ctx.Ref(), name) {
		ctx.Log.Debug("region %q not available", name)
		return handler.NoOpWithMessage("no such region")
	}
	return done()
}

func toggleSnapToRegion(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Window.Region == a.Args.GetString("region", "") {
		ctx.WM.Unsnap(ctx.Ref())
		return done()
	}
	return snapToRegion(a, ctx)
}

func unsnap(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.Unsnap(ctx.Ref())
	return done()
}

func setDecorations(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	d, ok := wm.ParseDecorations(strings.ToLower(a.Args.GetString("decorations", "")))
	if !ok {
		return handler.NoOpWithMessage("bad decorations")
	}
	ctx.WM.SetDecorations(ctx.Ref(), d)
	return done()
}

func toggleDecorations(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	next := wm.DecorFull
	switch ctx.Window.Decorations {
	case wm.DecorFull:
		next = wm.DecorBorder
	case wm.DecorBorder:
		next = wm.DecorNone
	}
	ctx.WM.SetDecorations(ctx.Ref(), next)
	return done()
}

func toggleAlwaysOnTop(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.SetAlwaysOnTop(ctx.Ref(), !ctx.Window.AlwaysOnTop)
	return done()
}

func toggleAlwaysOnBottom(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.SetAlwaysOnBottom(ctx.Ref(), !ctx.Window.AlwaysOnBottom)
	return done()
}

func toggleOmnipresent(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.SetOmnipresent(ctx.Ref(), !ctx.Window.Omnipresent)
	return done()
}

func shade(next func(bool) bool) handler.WindowFunc {
	return func(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
		ctx.WM.Shade(ctx.Ref(), next(ctx.Window.Shaded))
		return done()
	}
}

func toggleTearing(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.Window.Tearing = !ctx.Window.Tearing
	ctx.Log.Debug("tearing %v for %s", ctx.Window.Tearing, ctx.Ref())
	return handler.Success()
}

func fitToOutput(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.FitToOutput(ctx.Ref())
	return done()
}

func autoPlace(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.WM.AutoPlace(ctx.Ref())
	return done()
}
