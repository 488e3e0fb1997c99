// Package handler provides the handler interface and result types for
// action dispatch.
package handler

import (
	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
)

// Handler executes one action against an execution context.
type Handler interface {
	Handle(a action.Action, ctx *execctx.ExecutionContext) Result
}

// KindHandler handles a fixed set of action kinds.
type KindHandler interface {
	Handler
	// Kinds returns the action kinds this handler implements.
	Kinds() []action.Kind
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(a action.Action, ctx *execctx.ExecutionContext) Result

// Handle implements Handler.
func (f HandlerFunc) Handle(a action.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(a, ctx)
}

// WindowFunc is a handler body that needs a live target window.
type WindowFunc func(a action.Action, ctx *execctx.ExecutionContext) Result

// RequireWindow wraps fn so a missing target window yields a no-op.
func RequireWindow(fn WindowFunc) HandlerFunc {
	return func(a action.Action, ctx *execctx.ExecutionContext) Result {
		if ctx.Window == nil {
			return NoOpWithMessage("no target window")
		}
		return fn(a, ctx)
	}
}
