// Package system provides handlers for actions that do not touch windows:
// running commands, exiting, reloading configuration and debugging.
package system

import (
	"os"
	"strings"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/dispatcher/execctx"
	"github.com/dshills/driftwm/internal/dispatcher/handler"
)

// Handler implements system actions.
type Handler struct{}

// NewHandler creates a system handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Kinds implements handler.KindHandler.
func (h *Handler) Kinds() []action.Kind {
	return []action.Kind{action.None, action.Debug, action.Execute, action.Exit, action.Reconfigure}
}

// Handle implements handler.Handler.
func (h *Handler) Handle(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch a.Kind {
	case action.None:
		return handler.NoOp()
	case action.Debug:
		return debug(ctx)
	case action.Execute:
		return execute(a, ctx)
	case action.Exit:
		if ctx.Lifecycle == nil {
			return handler.Error(execctx.ErrMissingLifecycle)
		}
		ctx.Lifecycle.Exit()
		return handler.Success().WithStop()
	case action.Reconfigure:
		if ctx.Lifecycle == nil {
			return handler.Error(execctx.ErrMissingLifecycle)
		}
		ctx.Lifecycle.Reconfigure()
		return handler.Success()
	default:
		return handler.Errorf("system: unhandled action %s", a.Kind)
	}
}

// ExpandCommand expands a leading ~ and environment variables.
func ExpandCommand(cmd string) string {
	cmd = strings.TrimSpace(cmd)
	if strings.HasPrefix(cmd, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			cmd = home + cmd[1:]
		}
	}
	return os.ExpandEnv(cmd)
}

func execute(a action.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Spawner == nil {
		return handler.Error(execctx.ErrMissingSpawner)
	}
	cmd := ExpandCommand(a.Args.GetString("command", ""))
	pid, err := ctx.Spawner.Spawn("execute", cmd)
	if err != nil {
		ctx.Log.WithError(err).Error("execute %q failed", cmd)
		return handler.Error(err)
	}
	ctx.Log.Debug("execute %q pid=%d", cmd, pid)
	return handler.Success()
}

func debug(ctx *execctx.ExecutionContext) handler.Result {
	log := ctx.Log.WithField("mode", ctx.Mode().String())
	if ctx.WM == nil {
		log.Info("debug: no window manager")
		return handler.Success()
	}
	focused := ctx.WM.Focused()
	log.Info("debug: workspace=%s windows=%d outputs=%d",
		ctx.WM.Current().Name, len(ctx.WM.Windows()), len(ctx.WM.Outputs()))
	for _, w := range ctx.WM.Stack() {
		log.WithFields(map[string]any{
			"ref":     w.Ref().String(),
			"app_id":  w.AppID,
			"focused": w == focused,
		}).Info("debug: %q at %s", w.Title, w.Geometry)
	}
	return handler.Success()
}
