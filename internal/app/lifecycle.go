package app

import (
	"slices"

	"github.com/dshills/driftwm/internal/config"
)

// Exit implements execctx.Lifecycle. The event loop stops after the
// current event.
func (app *Application) Exit() {
	app.quitOnce.Do(func() { close(app.quit) })
}

// Reconfigure implements execctx.Lifecycle. The reload runs once the
// current event has been handled, so the bindings being executed are not
// replaced underneath the dispatcher.
func (app *Application) Reconfigure() {
	select {
	case app.reload <- struct{}{}:
	default:
	}
}

// Reload rereads the configuration file and applies it. A file that
// cannot be read or parsed leaves the running configuration in place.
// It must be called from the event loop goroutine or before Run.
func (app *Application) Reload() error {
	cfg, warnings, err := config.LoadFS(app.opts.FS, app.path, app.opts.Env)
	if err != nil {
		app.metrics.RecordReload(false)
		app.log.WithError(err).Error("reload failed, keeping the current configuration")
		return NewComponentError("config", "reload", err)
	}
	app.logWarnings(warnings)
	app.apply(cfg)
	app.metrics.RecordReload(true)
	app.log.Info("reloaded %s with %d warnings", app.configName(), len(warnings))
	return nil
}

// apply swaps in cfg. Modal operations end first so no grab, menu or
// switcher outlives the bindings that started it.
func (app *Application) apply(cfg *config.Config) {
	app.seat.Reset()

	if !slices.Equal(cfg.WM.Workspaces, app.cfg.WM.Workspaces) {
		app.log.Warn("workspace changes take effect on restart")
		cfg.WM.Workspaces = app.cfg.WM.Workspaces
	}
	app.cfg = cfg
	app.applyLogLevel()

	app.wm.SetRegions(cfg.WM.Regions)
	app.wm.SetGap(cfg.WM.Gap)
	app.scene.SetMetrics(cfg.Metrics)
	app.menus.Reconfigure(cfg.Menu, cfg.Menus)

	app.seat.SetConfig(cfg.Seat)
	app.seat.SetKeybinds(cfg.Keybinds)
	app.seat.SetMousebinds(cfg.Mousebinds)
	app.dispatcher.SetPromptCommand(cfg.PromptCommand)
	app.seat.UpdateFocus()
}

// shutdown stops children and releases the backend.
func (app *Application) shutdown() {
	app.sup.Shutdown(shutdownTimeout)
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			app.log.WithError(err).Warn("closing config watcher")
		}
	}
	app.clients.Close()
	app.seat.Close()
	if app.backendUp {
		app.backend.Shutdown()
	}
	app.running.Store(false)
	app.log.Debug("shut down after %s", app.metrics.Snapshot().Uptime)
}
