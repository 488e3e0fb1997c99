// Package desktop provides handlers for workspace and output actions.
package desktop

import (
	"fmt"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/wm"
)

// Magnifier limits.
const (
	ZoomStep = 0.2
	ZoomMax  = 8.0
)

// Handler implements workspace and output actions.
type Handler struct {
	fns      map[action.Kind]handler.HandlerFunc
	virtuals int
}

// NewHandler creates a desktop handler.
func NewHandler() *Handler {
	h := &Handler{}
	h.fns = map[action.Kind]handler.HandlerFunc{
		action.GoToDesktop:         goToDesktop,
		action.SendToDesktop:       handler.RequireWindow(sendToDesktop),
		action.FocusOutput:         focusOutput,
		action.MoveToOutput:        handler.RequireWindow(moveToOutput),
		action.VirtualOutputAdd:    h.virtualOutputAdd,
		action.VirtualOutputRemove: virtualOutputRemove,
		action.ZoomIn:              zoom(ZoomStep),
		action.ZoomOut:             zoom(-ZoomStep),
		action.ToggleMagnify:       toggleMagnify,
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
		return handler.Errorf("desktop: unhandled action %s", a.Kind)
	}
	return fn(a, ctx)
}

func goToDesktop(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ws, err := ctx.WM.ResolveWorkspace(a.Args.GetString("to", ""), a.Args.GetBool("wrap", true))
	if err != nil {
		ctx.Log.Debug("%v", err)
		return handler.NoOpWithMessage(err.Error())
	}
	ctx.WM.GoToWorkspace(ws)
	return handler.Success()
}

func sendToDesktop(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	ws, err := ctx.WM.ResolveWorkspace(a.Args.GetString("to", ""), a.Args.GetBool("wrap", true))
	if err != nil {
		ctx.Log.Debug("%v", err)
		return handler.NoOpWithMessage(err.Error())
	}
	ref := ctx.Ref()
	ctx.WM.SendToWorkspace(ref, ws)
	if a.Args.GetBool("follow", true) {
		ctx.WM.GoToWorkspace(ws)
		ctx.WM.Focus(ref)
	}
	return handler.Success()
}

// currentOutput is the output of the target window, else the one under
// the pointer, else the first.
func currentOutput(ctx *execctx.ExecutionContext) *wm.Output {
	if ctx.Window != nil {
		if o := ctx.WM.OutputFor(ctx.Window); o != nil {
			return o
		}
	}
	if o := ctx.WM.OutputAt(ctx.CursorPosition()); o != nil {
		return o
	}
	if outs := ctx.WM.Outputs(); len(outs) > 0 {
		return outs[0]
	}
	return nil
}

// targetOutput resolves the output or direction argument.
func targetOutput(a action.Action, ctx *execctx.ExecutionContext) *wm.Output {
	if name := a.Args.GetString("output", ""); name != "" {
		return ctx.WM.OutputByName(name)
	}
	from := currentOutput(ctx)
	o := ctx.WM.OutputInDirection(from, a.Direction())
	if o == nil && a.Args.GetBool("wrap", false) {
		o = farthest(ctx.WM, from, a.Direction())
	}
	return o
}

// farthest returns the output farthest from "from" against dir.
func farthest(m *wm.Manager, from *wm.Output, dir wm.Direction) *wm.Output {
	opposite := map[wm.Direction]wm.Direction{
		wm.DirLeft: wm.DirRight, wm.DirRight: wm.DirLeft,
		wm.DirUp: wm.DirDown, wm.DirDown: wm.DirUp,
	}[dir]
	cur := from
	for {
		next := m.OutputInDirection(cur, opposite)
		if next == nil || next == from {
			break
		}
		cur = next
	}
	if cur == from {
		return nil
	}
	return cur
}

func focusOutput(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	o := targetOutput(a, ctx)
	if o == nil {
		return handler.NoOpWithMessage("no output")
	}
	for _, w := range ctx.WM.Stack() {
		if ctx.WM.OutputFor(w) == o {
			ctx.WM.Focus(w.Ref())
			break
		}
	}
	if ctx.Seat != nil {
		cx, cy := o.Box.Center()
		ctx.Seat.WarpCursor(cx, cy)
	}
	return handler.Success()
}

func moveToOutput(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	o := targetOutput(a, ctx)
	if o == nil {
		return handler.NoOpWithMessage("no output")
	}
	ctx.WM.MoveToOutput(ctx.Ref(), o)
	return handler.Success()
}

// virtualOutputAdd places a headless output to the right of the layout.
func (h *Handler) virtualOutputAdd(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	name := a.Args.GetString("output_name", "")
	if name == "" {
		h.virtuals++
		name = fmt.Sprintf("VIRTUAL-%d", h.virtuals)
	}
	layout := ctx.WM.LayoutBox()
	o := &wm.Output{
		Name:    name,
		Box:     wm.Box{X: layout.Right(), Y: layout.Y, Width: 1920, Height: 1080},
		Virtual: true,
	}
	if err := ctx.WM.AddOutput(o); err != nil {
		ctx.Log.Debug("%v", err)
		return handler.NoOpWithMessage(err.Error())
	}
	return handler.Success()
}

// virtualOutputRemove removes the named virtual output, or all of them.
func virtualOutputRemove(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	name := a.Args.GetString("output_name", "")
	removed := 0
	for _, o := range ctx.WM.Outputs() {
		if !o.Virtual || (name != "" && o.Name != name) {
			continue
		}
		if ctx.WM.RemoveOutput(o.Name) {
			removed++
		}
	}
	if removed == 0 {
		return handler.NoOp()
	}
	return handler.Success()
}

func zoom(step float64) handler.HandlerFunc {
	return func(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
		o := ctx.WM.OutputAt(ctx.CursorPosition())
		if o == nil {
			o = currentOutput(ctx)
		}
		if o == nil {
			return handler.NoOp()
		}
		if step > 0 && !o.Magnified {
			o.Magnified = true
			o.Magnify = max(o.Magnify, 1)
		}
		o.Magnify = min(max(o.Magnify+step, 1), ZoomMax)
		if o.Magnify == 1 {
			o.Magnified = false
		}
		return handler.Success()
	}
}

func toggleMagnify(_ action.Action, ctx *execctx.ExecutionContext) handler.Result {
	o := ctx.WM.OutputAt(ctx.CursorPosition())
	if o == nil {
		o = currentOutput(ctx)
	}
	if o == nil {
		return handler.NoOp()
	}
	o.Magnified = !o.Magnified
	if o.Magnified && o.Magnify <= 1 {
		o.Magnify = 1 + ZoomStep
	}
	return handler.Success()
}
