package window

import (
	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/wm"
)

// floating unsnaps the target so explicit geometry applies to its
// floating box.
func floating(ctx *execctx.ExecutionContext) bool {
	w := ctx.Window
	if w.Fullscreen {
		return false
	}
	if !w.Floating() {
		ctx.WM.Unsnap(ctx.Ref())
	}
	return true
}

// moveTo positions the window relative to the usable area of its output
// (or the one named by the output argument).
func moveTo(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !floating(ctx) {
		return handler.NoOp()
	}
	w := ctx.Window
	o := ctx.WM.OutputFor(w)
	if name := a.Args.GetString("output", ""); name != "" {
		o = ctx.WM.OutputByName(name)
	}
	if o == nil {
		return handler.NoOpWithMessage("no output")
	}
	x := o.Usable.X + a.Args.GetInt("x", w.Geometry.X-o.Usable.X)
	y := o.Usable.Y + a.Args.GetInt("y", w.Geometry.Y-o.Usable.Y)
	ctx.WM.Move(ctx.Ref(), x, y)
	return done()
}

func resizeTo(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !floating(ctx) {
		return handler.NoOp()
	}
	g := ctx.Window.Geometry
	ctx.WM.Resize(ctx.Ref(), a.Args.GetInt("width", g.Width), a.Args.GetInt("height", g.Height))
	return done()
}

func moveRelative(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !floating(ctx) {
		return handler.NoOp()
	}
	g := ctx.Window.Geometry
	ctx.WM.Move(ctx.Ref(), g.X+a.Args.GetInt("x", 0), g.Y+a.Args.GetInt("y", 0))
	return done()
}

// resizeRelative grows each named edge outward by its value; negative
// values shrink. When the minimum size stops a shrink, the edges that
// were not named stay where they are.
func resizeRelative(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !floating(ctx) {
		return handler.NoOp()
	}
	w := ctx.Window
	g := w.Geometry
	var b wm.Box
	b.X, b.Width = span(g.X, g.Right(), a.Args.GetInt("left", 0), a.Args.GetInt("right", 0), max(w.MinWidth, 1))
	b.Y, b.Height = span(g.Y, g.Bottom(), a.Args.GetInt("top", 0), a.Args.GetInt("bottom", 0), max(w.MinHeight, 1))
	ctx.WM.MoveResize(ctx.Ref(), b)
	return done()
}

// span moves lo back by grow0 and hi out by grow1 and returns the new
// start and length. A span shorter than minimum is lengthened from the
// far edge if that edge moved, else from the near one.
func span(lo, hi, grow0, grow1, minimum int) (int, int) {
	lo, hi = lo-grow0, hi+grow1
	switch {
	case hi-lo >= minimum:
		return lo, hi - lo
	case grow1 != 0:
		return lo, minimum
	default:
		return hi - minimum, minimum
	}
}

// moveToCursor centers the window on the pointer, kept inside the output.
func moveToCursor(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !floating(ctx) {
		return handler.NoOp()
	}
	cx, cy := ctx.CursorPosition()
	g := ctx.Window.Geometry
	ctx.WM.MoveResize(ctx.Ref(), wm.Box{
		X: int(cx) - g.Width/2, Y: int(cy) - g.Height/2,
		Width: g.Width, Height: g.Height,
	})
	ctx.WM.FitToOutput(ctx.Ref())
	return done()
}
