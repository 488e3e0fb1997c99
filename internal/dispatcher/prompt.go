package dispatcher

import (
	"strings"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
	"github.com/dshills/driftwm/internal/wm"
)

// Prompt exit codes.
const (
	PromptYes = 0
	PromptNo  = 1
)

// Prompt is an If action waiting for its confirmation process to exit.
type Prompt struct {
	PID int
	// Window is the target captured when the prompt started. It may be
	// dead by the time the prompt resolves.
	Window wm.Ref
	Action action.Action
	Cursor cursor.Context
}

// runIf evaluates a conditional. Query conditions branch immediately;
// a prompt defers the branch until the prompt process exits.
func (d *Dispatcher) runIf(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if a.Args.Has(action.KeyPrompt) {
		return d.startPrompt(a, ctx)
	}
	if ctx.Window == nil {
		return handler.NoOpWithMessage("no target window")
	}
	return d.branch(a, ctx.Window, ctx.Cursor)
}

// branch runs then when w matches the action's queries, else otherwise.
func (d *Dispatcher) branch(a action.Action, w *wm.Window, cctx cursor.Context) handler.Result {
	key := action.KeyElse
	if action.MatchAny(a.Args.GetQueries(action.KeyQuery), w, d.wm) {
		key = action.KeyThen
	}
	return d.runBranch(a, key, refOf(w), cctx)
}

func (d *Dispatcher) runBranch(a action.Action, key string, ref wm.Ref, cctx cursor.Context) handler.Result {
	if d.runList(a.Args.GetActions(key), target{ref: ref, fixed: true}, cctx) {
		return handler.Success().WithStop()
	}
	return handler.Success()
}

// runForEach runs then for every focusable window matching the queries
// and else for every other one. none runs once with the original target
// when nothing matched.
func (d *Dispatcher) runForEach(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	queries := a.Args.GetQueries(action.KeyQuery)
	windows := d.wm.Focusable()
	refs := make([]wm.Ref, len(windows))
	for i, w := range windows {
		refs[i] = w.Ref()
	}

	matched := 0
	for _, ref := range refs {
		w := d.wm.Lookup(ref)
		if w == nil {
			continue
		}
		key := action.KeyElse
		if action.MatchAny(queries, w, d.wm) {
			key = action.KeyThen
			matched++
		}
		if d.runBranch(a, key, ref, ctx.Cursor).Stop {
			return handler.Success().WithStop()
		}
	}
	if matched == 0 {
		return d.runBranch(a, action.KeyNone, ctx.Ref(), ctx.Cursor)
	}
	return handler.Success()
}

// startPrompt spawns the confirmation process for a. A spawn failure is
// logged and the conditional never resolves.
func (d *Dispatcher) startPrompt(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Spawner == nil {
		d.log.Error("cannot show prompt: %v", ErrNoSpawner)
		return handler.Error(ErrNoSpawner)
	}
	cmd := PromptCommand(ctx.PromptCommand, a.Args.GetString(action.KeyPrompt, ""))
	pid, err := ctx.Spawner.Spawn("prompt", cmd)
	if err != nil {
		d.log.WithError(err).Error("failed to start prompt %q", cmd)
		return handler.Error(err)
	}
	d.prompts[pid] = &Prompt{
		PID:    pid,
		Window: ctx.Ref(),
		Action: a,
		Cursor: ctx.Cursor,
	}
	d.log.Debug("prompt pid=%d pending for %s", pid, ctx.Ref())
	return handler.Pending("prompt pending")
}

// ProcessExited resolves the prompt owned by pid, if any. Exit code 0
// runs then, 1 runs else and anything else cancels. The branch targets
// the window captured at prompt start, or nothing if it has gone. It
// reports whether pid belonged to a prompt.
func (d *Dispatcher) ProcessExited(pid, code int) bool {
	p, ok := d.prompts[pid]
	if !ok {
		return false
	}
	delete(d.prompts, pid)

	switch code {
	case PromptYes:
		d.runBranch(p.Action, action.KeyThen, p.Window, p.Cursor)
	case PromptNo:
		d.runBranch(p.Action, action.KeyElse, p.Window, p.Cursor)
	default:
		d.log.Debug("prompt pid=%d cancelled with code %d", pid, code)
	}
	return true
}

// PendingPrompts returns the number of unresolved prompts.
func (d *Dispatcher) PendingPrompts() int {
	return len(d.prompts)
}

// PromptCommand fills the %m, %y and %n placeholders of template with
// the shell-quoted message and button labels.
func PromptCommand(template, message string) string {
	r := strings.NewReplacer(
		"%m", shellQuote(message),
		"%y", shellQuote("Yes"),
		"%n", shellQuote("No"),
	)
	return r.Replace(template)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func refOf(w *wm.Window) wm.Ref {
	if w == nil {
		return wm.Ref{}
	}
	return w.Ref()
}
