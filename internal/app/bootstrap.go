package app

import (
	"fmt"

	"github.com/dshills/driftwm/internal/config"
	"github.com/dshills/driftwm/internal/config/watcher"
	"github.com/dshills/driftwm/internal/dispatcher"
	"github.com/dshills/driftwm/internal/event"
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/menu"
	"github.com/dshills/driftwm/internal/process"
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/seat"
	"github.com/dshills/driftwm/internal/wm"
)

// OutputName names the single output the terminal stands for.
const OutputName = "TERM-1"

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config - a broken file is fatal at startup, rejected entries are not
	cfg, warnings, err := config.LoadFS(app.opts.FS, app.path, app.opts.Env)
	if err != nil {
		return &InitError{Component: "config", Err: err}
	}
	app.cfg = cfg
	app.applyLogLevel()
	app.logWarnings(warnings)

	// 2. Window manager with one output, resized once the backend is up
	app.wm = wm.NewManager(cfg.WM, event.NewBus(), app.log)
	if err := app.wm.AddOutput(&wm.Output{Name: OutputName, Box: wm.Box{Width: 1024, Height: 768}}); err != nil {
		return &InitError{Component: "output", Err: err}
	}
	app.scene = scene.FromManager(app.wm, cfg.Metrics)

	// 3. Menus
	app.menus = menu.NewManager(cfg.Menu, app.log)
	app.menus.Reconfigure(cfg.Menu, cfg.Menus)

	// 4. Clients
	app.sup = process.NewSupervisor(process.WithLogger(app.log))
	app.clients = newClients(app.sup, app.wm, app.log.WithComponent("clients"))

	// 5. Seat
	app.notified = &lastNotification{log: app.log.WithComponent("notify")}
	app.seat = seat.New(cfg.Seat, app.wm, app.scene, app.menus, app.notified, app.log)
	app.seat.SetKeybinds(cfg.Keybinds)
	app.seat.SetMousebinds(cfg.Mousebinds)

	// 6. Dispatcher
	dcfg := dispatcher.DefaultConfig().
		WithPanicRecovery(true).
		WithPromptCommand(cfg.PromptCommand)
	if app.opts.ShowMetrics {
		dcfg = dcfg.WithMetrics()
	}
	app.dispatcher = dispatcher.New(dcfg, app.wm, app.log)
	app.dispatcher.SetSeat(app.seat)
	app.dispatcher.SetLifecycle(app)
	app.dispatcher.SetSpawner(app.clients)
	app.seat.SetRunner(app.dispatcher)

	// 7. Placeholder windows
	for i := 0; i < app.opts.Windows; i++ {
		app.clients.Map("placeholder", fmt.Sprintf("window %d", i+1))
	}

	// 8. Config watcher - optional, failures only disable reloads
	if app.opts.Watch {
		w, err := watcher.New(app.path, watcher.WithLogger(app.log))
		if err != nil {
			app.log.WithError(err).Warn("not watching %s", app.path)
		} else {
			app.watcher = w
		}
	}
	return nil
}

func (app *Application) applyLogLevel() {
	if app.opts.LogLevel != "" {
		app.log.SetLevel(logging.ParseLevel(app.opts.LogLevel))
		return
	}
	app.log.SetLevel(app.cfg.LogLevel)
}

func (app *Application) logWarnings(warnings []error) {
	for _, w := range warnings {
		app.log.Warn("config: %v", w)
	}
}
