// Package main is the entry point for driftwm, a stacking window manager
// that runs its input routing inside a terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/app"
	"github.com/dshills/driftwm/internal/backend"
	"github.com/dshills/driftwm/internal/config"
	"github.com/dshills/driftwm/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	configPath  string
	logLevel    string
	logFile     string
	windows     int
	watch       bool
	showMetrics bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "driftwm",
		Short: "Stacking window manager input core, running in a terminal",
		Long: `driftwm routes keyboard and mouse input the way a stacking Wayland
compositor does: keybinds, mousebinds, interactive move and resize,
menus and the window switcher. The terminal stands in for the output;
commands started by Execute get placeholder windows.

Examples:
  driftwm                     Run with ~/.config/driftwm/rc.toml
  driftwm -c rc.yaml -n 3     Run with a YAML config and three windows
  driftwm check               Validate the configuration`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCompositor,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default $XDG_CONFIG_HOME/driftwm/rc.toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error (default from config)")
	root.Flags().StringVar(&logFile, "log-file", filepath.Join(os.TempDir(), "driftwm.log"), "Log destination while the terminal is in use")
	root.Flags().IntVarP(&windows, "windows", "n", 2, "Placeholder windows mapped at startup")
	root.Flags().BoolVar(&watch, "watch", true, "Reload the configuration when the file changes")
	root.Flags().BoolVar(&showMetrics, "metrics", false, "Show loop timings in the status line")

	root.AddCommand(newCheckCmd(), newActionsCmd())
	return root
}

func validLogLevel(s string) error {
	switch s {
	case "", "debug", "info", "warn", "warning", "error":
		return nil
	}
	return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", s)
}

func runCompositor(cmd *cobra.Command, _ []string) error {
	if err := validLogLevel(logLevel); err != nil {
		return err
	}

	out := io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		out = f
	}
	cfg := logging.DefaultConfig()
	cfg.Output = out
	log := logging.New(cfg)
	logging.SetDefault(log)

	application, err := app.New(app.Options{
		ConfigPath:  configPath,
		LogLevel:    logLevel,
		Logger:      log,
		Windows:     windows,
		Watch:       watch,
		ShowMetrics: showMetrics,
	})
	if err != nil {
		return err
	}

	term, err := backend.NewTerminal(backend.WithLogger(log))
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	application.SetBackend(term)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return application.Run(ctx)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and list rejected entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath
			if path == "" {
				path = config.DefaultPath()
			}
			cfg, warnings, err := config.Load(path)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if cfg.Path == "" {
				fmt.Fprintf(w, "%s not found, using defaults\n", path)
			} else {
				fmt.Fprintf(w, "%s\n", cfg.Path)
			}
			fmt.Fprintf(w, "  %d keybinds, %d mousebinds, %d menus, %d regions\n",
				len(cfg.Keybinds), len(cfg.Mousebinds), len(cfg.Menus), len(cfg.WM.Regions))
			if err := app.ErrorList(warnings).Err(); err != nil {
				return err
			}
			fmt.Fprintln(w, "  ok")
			return nil
		},
	}
}

func newActionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List the action names bindings and menus accept",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			names := make([]string, 0, len(action.Kinds()))
			for _, k := range action.Kinds() {
				names = append(names, k.String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
		},
	}
}
