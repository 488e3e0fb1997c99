package dispatcher

import (
	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/logging"
)

// PreDispatchHook is called before an action is dispatched.
// Returning false cancels the dispatch.
type PreDispatchHook interface {
	PreDispatch(a *action.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook is called after an action is dispatched.
type PostDispatchHook interface {
	PostDispatch(a *action.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// PreDispatchFunc is a function adapter for PreDispatchHook.
type PreDispatchFunc func(a *action.Action, ctx *execctx.ExecutionContext) bool

// PreDispatch implements PreDispatchHook.
func (f PreDispatchFunc) PreDispatch(a *action.Action, ctx *execctx.ExecutionContext) bool {
	return f(a, ctx)
}

// PostDispatchFunc is a function adapter for PostDispatchHook.
type PostDispatchFunc func(a *action.Action, ctx *execctx.ExecutionContext, result *handler.Result)

// PostDispatch implements PostDispatchHook.
func (f PostDispatchFunc) PostDispatch(a *action.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	f(a, ctx, result)
}

// SwitcherGate rejects everything but NextWindow and PreviousWindow while
// the window switcher is active.
type SwitcherGate struct {
	Log *logging.Logger
}

// PreDispatch implements PreDispatchHook.
func (g SwitcherGate) PreDispatch(a *action.Action, ctx *execctx.ExecutionContext) bool {
	if ctx.Mode() != mode.WindowSwitcher {
		return true
	}
	if a.Kind == action.NextWindow || a.Kind == action.PreviousWindow {
		return true
	}
	logging.OrNull(g.Log).Error("internal bug: %s rejected while the window switcher is active", a.Kind)
	return false
}

// LoggingHook logs every dispatch result at debug level.
type LoggingHook struct {
	Log *logging.Logger
}

// PostDispatch implements PostDispatchHook.
func (h LoggingHook) PostDispatch(a *action.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	log := logging.OrNull(h.Log).WithFields(map[string]any{
		"action": a.Kind.String(),
		"target": ctx.Ref().String(),
		"status": result.Status.String(),
	})
	if result.Error != nil {
		log = log.WithError(result.Error)
	}
	log.Debug("dispatched %s", a)
}
