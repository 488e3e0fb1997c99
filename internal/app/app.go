// Package app wires the driftwm components together and runs the event
// loop. Every component is owned by the loop goroutine; other goroutines
// talk to it only through channels.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/driftwm/internal/backend"
	"github.com/dshills/driftwm/internal/config"
	"github.com/dshills/driftwm/internal/config/loader"
	"github.com/dshills/driftwm/internal/config/watcher"
	"github.com/dshills/driftwm/internal/dispatcher"
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/menu"
	"github.com/dshills/driftwm/internal/process"
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/seat"
	"github.com/dshills/driftwm/internal/wm"
)

// DefaultFrameInterval is how often a changed layout is redrawn.
const DefaultFrameInterval = 16 * time.Millisecond

// shutdownTimeout bounds how long children get to exit on shutdown.
const shutdownTimeout = 2 * time.Second

// Backend delivers device events and draws frames. backend.Terminal
// implements it.
type Backend interface {
	Init() error
	// Size returns the layout size in pixels.
	Size() (int, int)
	// Events delivers seat device events, backend.Resize and
	// backend.Quit. It is closed when the backend stops.
	Events() <-chan any
	Start(ctx context.Context)
	Draw(sc backend.Scene)
	Shutdown()
}

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file. Empty means
	// config.DefaultPath().
	ConfigPath string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// Logger receives all log output. Nil means logging.Default().
	Logger *logging.Logger

	// Windows is the number of placeholder windows mapped at startup.
	Windows int

	// Watch reloads the configuration when the file changes.
	Watch bool

	// ShowMetrics adds loop timings to the status line.
	ShowMetrics bool

	// FrameInterval overrides DefaultFrameInterval.
	FrameInterval time.Duration

	// FS and Env replace the file system and environment the
	// configuration is read from.
	FS  loader.FileSystem
	Env loader.Loader
}

// Application is the central coordinator for all driftwm components.
type Application struct {
	opts Options
	log  *logging.Logger
	path string

	cfg *config.Config

	wm         *wm.Manager
	scene      *scene.Scene
	menus      *menu.Manager
	seat       *seat.Seat
	dispatcher *dispatcher.Dispatcher
	sup        *process.Supervisor
	clients    *clients
	notified   *lastNotification
	watcher    *watcher.Watcher
	backend    Backend
	backendUp  bool
	metrics    *Metrics

	reload   chan struct{}
	quit     chan struct{}
	quitOnce sync.Once

	started atomic.Bool
	running atomic.Bool
	done    chan struct{}
}

// New creates an application and initializes every component except the
// backend. Configuration warnings are logged; only an unreadable or
// malformed configuration file fails.
func New(opts Options) (*Application, error) {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.FS == nil {
		opts.FS = loader.DefaultFS()
	}
	if opts.Env == nil {
		opts.Env = loader.NewEnvLoader(loader.EnvPrefix)
	}
	app := &Application{
		opts:    opts,
		log:     opts.Logger,
		path:    opts.ConfigPath,
		metrics: NewMetrics(),
		reload:  make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if app.log == nil {
		app.log = logging.Default()
	}
	if app.path == "" {
		app.path = config.DefaultPath()
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// SetBackend sets the backend Run drives.
func (app *Application) SetBackend(b Backend) {
	app.backend = b
}

// Run initializes the backend and runs the event loop until Exit is
// called or ctx ends. The quit key and a closed backend also stop it. All
// components are shut down before it returns.
func (app *Application) Run(ctx context.Context) error {
	if app.backend == nil {
		return ErrNoBackend
	}
	// An application runs once.
	if !app.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	app.running.Store(true)
	defer close(app.done)

	if err := app.backend.Init(); err != nil {
		app.shutdown()
		return &InitError{Component: "backend", Err: err}
	}
	app.backendUp = true
	app.resize(app.backend.Size())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.backend.Start(ctx)
	app.log.Info("running with config %s", app.configName())

	err := app.eventLoop(ctx)
	app.shutdown()
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Done is closed when Run has returned.
func (app *Application) Done() <-chan struct{} {
	return app.done
}

// IsRunning reports whether the event loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// Metrics returns the loop metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// WM returns the window manager.
func (app *Application) WM() *wm.Manager {
	return app.wm
}

// Seat returns the seat.
func (app *Application) Seat() *seat.Seat {
	return app.seat
}

func (app *Application) configName() string {
	if app.cfg.Path == "" {
		return "defaults"
	}
	return app.cfg.Path
}
