package dispatcher

import (
	"fmt"
	"time"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/dispatcher/handlers/desktop"
	"github.com/dshills/driftwm/internal/dispatcher/handlers/seat"
	"github.com/dshills/driftwm/internal/dispatcher/handlers/system"
	"github.com/dshills/driftwm/internal/dispatcher/handlers/window"
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/wm"
)

// Dispatcher executes action lists against target windows. It runs on the
// event loop goroutine and is not safe for concurrent use.
type Dispatcher struct {
	registry *Registry
	config   Config
	metrics  *Metrics

	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook

	wm        *wm.Manager
	seat      execctx.Seat
	lifecycle execctx.Lifecycle
	spawner   execctx.Spawner

	prompts map[int]*Prompt

	log   *logging.Logger
	depth int
}

// New creates a dispatcher acting on m with the default handlers
// registered.
func New(cfg Config, m *wm.Manager, log *logging.Logger) *Dispatcher {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultConfig().MaxDepth
	}
	if cfg.PromptCommand == "" {
		cfg.PromptCommand = DefaultPromptCommand
	}
	d := &Dispatcher{
		registry: NewRegistry(),
		config:   cfg,
		wm:       m,
		prompts:  make(map[int]*Prompt),
		log:      logging.OrNull(log).WithComponent("dispatcher"),
	}
	if cfg.EnableMetrics {
		d.metrics = NewMetrics()
	}

	d.registry.RegisterKinds(system.NewHandler())
	d.registry.RegisterKinds(window.NewHandler())
	d.registry.RegisterKinds(desktop.NewHandler())
	d.registry.RegisterKinds(seat.NewHandler())

	d.preHooks = append(d.preHooks, SwitcherGate{Log: d.log})
	return d
}

// SetSeat sets the seat handlers act through.
func (d *Dispatcher) SetSeat(s execctx.Seat) {
	d.seat = s
}

// SetLifecycle sets the compositor lifecycle controller.
func (d *Dispatcher) SetLifecycle(l execctx.Lifecycle) {
	d.lifecycle = l
}

// SetSpawner sets the process spawner used by Execute and prompts.
func (d *Dispatcher) SetSpawner(s execctx.Spawner) {
	d.spawner = s
}

// SetPromptCommand changes the confirmation prompt template. An empty
// template restores the default.
func (d *Dispatcher) SetPromptCommand(cmd string) {
	if cmd == "" {
		cmd = DefaultPromptCommand
	}
	d.config.PromptCommand = cmd
}

// target says how an action resolves its window.
type target struct {
	ref wm.Ref
	// fixed targets never fall back to the focused window; a destroyed
	// fixed target resolves to nil.
	fixed bool
}

// Run executes actions in order. A non-zero activator is the window the
// binding fired on and is re-resolved before every action, so an action
// that destroys it leaves the rest of the list without a target.
func (d *Dispatcher) Run(actions []action.Action, activator wm.Ref, cctx cursor.Context) {
	d.runList(actions, target{ref: activator, fixed: !activator.IsZero()}, cctx)
}

// Dispatch executes a single action and returns its result.
func (d *Dispatcher) Dispatch(a action.Action, ref wm.Ref, cctx cursor.Context) handler.Result {
	return d.dispatch(a, target{ref: ref, fixed: !ref.IsZero()}, cctx)
}

// runList executes actions until one asks to stop. It reports whether
// the list was stopped.
func (d *Dispatcher) runList(actions []action.Action, t target, cctx cursor.Context) bool {
	for _, a := range actions {
		if d.dispatch(a, t, cctx).Stop {
			return true
		}
	}
	return false
}

func (d *Dispatcher) dispatch(a action.Action, t target, cctx cursor.Context) handler.Result {
	if d.depth >= d.config.MaxDepth {
		d.log.Error("internal bug: %s nested deeper than %d", a.Kind, d.config.MaxDepth)
		return handler.NoOp().WithMessage(ErrTooDeep.Error())
	}
	d.depth++
	defer func() { d.depth-- }()

	start := time.Now()
	ctx := d.buildContext(a.Kind, t, cctx)

	if !d.runPreHooks(&a, ctx) {
		return handler.Cancelled().WithMessage(ErrActionCancelled.Error())
	}

	var result handler.Result
	switch a.Kind {
	case action.If:
		result = d.runIf(a, ctx)
	case action.ForEach:
		result = d.runForEach(a, ctx)
	default:
		h := d.registry.Get(a.Kind)
		if h == nil {
			d.log.Error("internal bug: no handler for %s", a.Kind)
			return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, a.Kind))
		}
		if a.Kind.NeedsWindow() && ctx.Window == nil {
			result = handler.NoOpWithMessage("no target window")
			break
		}
		if d.config.RecoverFromPanic {
			result = d.executeWithRecovery(h, a, ctx)
		} else {
			result = h.Handle(a, ctx)
		}
	}

	d.runPostHooks(&a, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(a.Kind, time.Since(start), result.Status)
	}
	return result
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, a action.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			if d.metrics != nil {
				d.metrics.RecordPanic(a.Kind)
			}
			d.log.Error("handler for %s panicked: %v", a.Kind, r)
			result = handler.Error(fmt.Errorf("%w: %v", ErrPanic, r))
		}
	}()
	return h.Handle(a, ctx)
}

// buildContext resolves the target window for kind and fills in the
// collaborators.
func (d *Dispatcher) buildContext(kind action.Kind, t target, cctx cursor.Context) *execctx.ExecutionContext {
	ctx := execctx.New()
	ctx.WM = d.wm
	ctx.Seat = d.seat
	ctx.Lifecycle = d.lifecycle
	ctx.Spawner = d.spawner
	ctx.Log = d.log
	ctx.PromptCommand = d.config.PromptCommand
	ctx.Cursor = cctx

	switch {
	case t.fixed:
		ctx.Window = d.wm.Lookup(t.ref)
	case kind.TargetsCursor() && d.seat != nil:
		ctx.Cursor = d.seat.CursorContext()
		ctx.Window = d.wm.Lookup(ctx.Cursor.Window)
	default:
		ctx.Window = d.wm.Focused()
	}
	return ctx
}

// RegisterHandler registers a handler for kind, replacing the default.
func (d *Dispatcher) RegisterHandler(kind action.Kind, h handler.Handler) {
	d.registry.Register(kind, h)
}

// RegisterHandlerFunc registers a handler function for kind.
func (d *Dispatcher) RegisterHandlerFunc(kind action.Kind, fn func(action.Action, *execctx.ExecutionContext) handler.Result) {
	d.registry.RegisterFunc(kind, fn)
}

// RegisterPreHook registers a pre-dispatch hook.
func (d *Dispatcher) RegisterPreHook(hook PreDispatchHook) {
	d.preHooks = append(d.preHooks, hook)
}

// RegisterPostHook registers a post-dispatch hook.
func (d *Dispatcher) RegisterPostHook(hook PostDispatchHook) {
	d.postHooks = append(d.postHooks, hook)
}

func (d *Dispatcher) runPreHooks(a *action.Action, ctx *execctx.ExecutionContext) bool {
	for _, hook := range d.preHooks {
		if !hook.PreDispatch(a, ctx) {
			return false
		}
	}
	return true
}

func (d *Dispatcher) runPostHooks(a *action.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	for _, hook := range d.postHooks {
		hook.PostDispatch(a, ctx, result)
	}
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector, nil unless enabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
