package app

import (
	"context"
	"time"

	"github.com/dshills/driftwm/internal/backend"
	"github.com/dshills/driftwm/internal/config/watcher"
	"github.com/dshills/driftwm/internal/process"
	"github.com/dshills/driftwm/internal/wm"
)

// eventLoop is the only goroutine that touches the components. Device
// events, child exits, reload requests and file changes are handled in
// arrival order; a changed layout is redrawn on the next frame tick.
func (app *Application) eventLoop(ctx context.Context) error {
	ticker := time.NewTicker(app.opts.FrameInterval)
	defer ticker.Stop()

	events := app.backend.Events()
	var changes <-chan watcher.Event
	var watchErrs <-chan error
	if app.watcher != nil {
		changes = app.watcher.Events()
		watchErrs = app.watcher.Errors()
	}

	dirty := true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-app.quit:
			return ErrQuit

		case ev, ok := <-events:
			if !ok {
				return ErrBackendClosed
			}
			if err := app.handleBackendEvent(ev); err != nil {
				return err
			}
			dirty = true

		case ex := <-app.sup.Exits():
			app.processExited(ex)
			dirty = true

		case <-app.reload:
			_ = app.Reload()
			dirty = true

		case ch := <-changes:
			app.log.Info("config %s: %s", ch.Op, ch.Path)
			_ = app.Reload()
			dirty = true

		case err := <-watchErrs:
			app.log.WithError(err).Warn("config watcher")

		case <-ticker.C:
			if dirty {
				app.draw()
				dirty = false
			}
		}
	}
}

// handleBackendEvent routes one backend event.
func (app *Application) handleBackendEvent(ev any) error {
	switch e := ev.(type) {
	case backend.Quit:
		return ErrQuit
	case backend.Resize:
		app.resize(e.Width, e.Height)
	default:
		t := StartTimer()
		if !app.seat.HandleEvent(ev) {
			app.metrics.RecordUnhandled()
			app.log.Debug("unhandled event %T", ev)
		}
		app.metrics.RecordEvent(t.Elapsed())
	}
	return nil
}

// processExited resolves a pending prompt and unmaps the client window
// of an exited child.
func (app *Application) processExited(ex process.Exit) {
	if app.dispatcher.ProcessExited(ex.PID, ex.Code) {
		app.log.Debug("prompt pid=%d answered %d", ex.PID, ex.Code)
	}
	app.clients.Exited(ex.PID)
}

// resize fits the output to a new layout size and keeps the cursor on it.
func (app *Application) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	app.wm.ConfigureOutput(OutputName, wm.Box{Width: width, Height: height})
	app.seat.WarpCursor(app.seat.CursorPosition())
}

func (app *Application) draw() {
	t := StartTimer()
	app.backend.Draw(app.frame())
	app.metrics.RecordFrame(t.Elapsed())
}
