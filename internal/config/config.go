package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/dshills/driftwm/internal/config/loader"
	"github.com/dshills/driftwm/internal/dispatcher"
	"github.com/dshills/driftwm/internal/input/keybind"
	"github.com/dshills/driftwm/internal/input/mousebind"
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/menu"
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/seat"
	"github.com/dshills/driftwm/internal/wm"
)

// Config is a fully built configuration.
type Config struct {
	// Path is the file the configuration was read from; empty when only
	// defaults applied.
	Path string

	LogLevel      logging.Level
	PromptCommand string

	Seat    seat.Config
	Metrics scene.Metrics
	Menu    menu.Config
	WM      wm.Config

	Keybinds   []keybind.Binding
	Mousebinds []mousebind.Binding
	// Menus are registered over the built-in menus of the same id.
	Menus []*menu.Menu
}

var sections = []string{"core", "input", "resistance", "theme", "keybind", "mousebind", "menu", "region"}

// Default returns the built-in configuration.
func Default() *Config {
	c, errs := Build(nil)
	if len(errs) > 0 {
		panic(fmt.Sprintf("config: built-in defaults: %v", errors.Join(errs...)))
	}
	return c
}

// DefaultPath returns $XDG_CONFIG_HOME/driftwm/rc.toml, or rc.yaml when
// only that exists.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	dir = filepath.Join(dir, "driftwm")
	path := filepath.Join(dir, "rc.toml")
	if _, err := os.Stat(path); err != nil {
		for _, alt := range []string{"rc.yaml", "rc.yml"} {
			if _, err := os.Stat(filepath.Join(dir, alt)); err == nil {
				return filepath.Join(dir, alt)
			}
		}
	}
	return path
}

// Load reads path, overlays DRIFTWM_ environment variables and builds
// the configuration. A missing file yields the defaults. The warnings
// list settings and bindings that were rejected.
func Load(path string) (*Config, []error, error) {
	return LoadFS(loader.DefaultFS(), path, loader.NewEnvLoader(loader.EnvPrefix))
}

// LoadFS is Load with explicit file system and environment sources. env
// may be nil.
func LoadFS(fsys loader.FileSystem, path string, env loader.Loader) (*Config, []error, error) {
	raw, err := loader.ForPath(fsys, path).Load()
	if err != nil {
		return nil, nil, err
	}
	source := path
	if raw == nil {
		source = ""
	}
	if env != nil {
		overlay, err := env.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("config: environment: %w", err)
		}
		raw = loader.DeepMerge(raw, overlay)
	}
	c, warnings := Build(raw)
	c.Path = source
	return c, warnings, nil
}

// Build turns a decoded document into a Config. Rejected settings keep
// their defaults and rejected bindings are dropped; both are returned as
// warnings.
func Build(raw map[string]any) (*Config, []error) {
	b := &builder{raw: raw}
	c := &Config{
		LogLevel:      logging.LevelInfo,
		PromptCommand: dispatcher.DefaultPromptCommand,
		Seat:          seat.DefaultConfig(),
		Metrics:       scene.DefaultMetrics(),
		Menu:          menu.DefaultConfig(),
		WM:            wm.DefaultConfig(),
	}

	for _, k := range sortedKeys(raw) {
		if !slices.Contains(sections, k) {
			b.errs = append(b.errs, &ValidationError{Path: k, Message: "unknown section", Code: ErrCodeUnknownSetting})
		}
	}

	b.core(c)
	b.input(c)
	b.resistance(c)
	b.theme(c)
	c.WM.Regions = b.regions(raw["region"])

	defaults := builtinBindings()
	c.Keybinds = defaults.keybinds
	if v, ok := raw["keybind"]; ok {
		c.Keybinds = b.keybinds(v)
	}
	c.Mousebinds = defaults.mousebinds
	if v, ok := raw["mousebind"]; ok {
		c.Mousebinds = b.mousebinds(v)
	}
	c.Menus = b.menus(raw["menu"])

	return c, b.errs
}

type builder struct {
	raw  map[string]any
	errs []error
}

func (b *builder) table(name string) *table {
	t := &table{name: name, used: make(map[string]bool), errs: &b.errs}
	switch v := b.raw[name].(type) {
	case nil:
	case map[string]any:
		t.m = v
	default:
		b.errs = append(b.errs, &ValidationError{
			Path: name, Message: "expected table, got " + typeName(v), Value: v, Code: ErrCodeTypeMismatch,
		})
	}
	return t
}

func (b *builder) core(c *Config) {
	t := b.table("core")
	level := ""
	t.getString("log_level", &level)
	if level != "" {
		switch strings.ToLower(level) {
		case "debug", "info", "warn", "warning", "error":
			c.LogLevel = logging.ParseLevel(level)
		default:
			t.reject("log_level", level, ErrCodeInvalidEnum, "must be one of debug, info, warn, error")
		}
	}
	t.getString("prompt_command", &c.PromptCommand)
	t.getStrings("workspaces", &c.WM.Workspaces)
	t.getInt("gap", &c.WM.Gap, 0)
	t.unknown()
}

func (b *builder) input(c *Config) {
	t := b.table("input")
	s := &c.Seat
	dct := int(s.Mouse.DoubleClickTime)
	t.getInt("double_click_time", &dct, 0)
	s.Mouse.DoubleClickTime = uint32(dct)
	t.getFloat("drag_threshold", &s.Mouse.DragThreshold, 0, true)
	t.getFloat("scroll_factor", &s.ScrollFactor, 0, false)
	t.getBool("natural_scroll", &s.NaturalScroll)
	t.getBool("focus_follows_mouse", &s.FocusFollowsMouse)
	t.getBool("raise_on_focus", &s.RaiseOnFocus)
	t.getInt("resize_ceiling_hz", &s.ResizeCeilingHz, 1)
	t.unknown()
}

func (b *builder) resistance(c *Config) {
	t := b.table("resistance")
	r := &c.Seat.Resistance
	t.getSignedInt("screen_edge_strength", &r.ScreenEdgeStrength)
	t.getSignedInt("window_edge_strength", &r.WindowEdgeStrength)
	t.getInt("unsnap_threshold", &r.UnsnapThreshold, 0)
	t.getInt("unmaximize_threshold", &r.UnmaximizeThreshold, 0)
	t.getInt("snap_edge_range", &r.SnapEdgeRange, 0)
	t.getBool("snap_top_maximize", &r.SnapTopMaximize)
	t.unknown()
}

func (b *builder) theme(c *Config) {
	t := b.table("theme")
	m := &c.Metrics
	t.getInt("border_width", &m.BorderWidth, 0)
	t.getInt("titlebar_height", &m.TitlebarHeight, 0)
	t.getInt("button_width", &m.ButtonWidth, 1)
	t.getInt("corner_range", &m.CornerRange, 0)
	layout := ""
	t.getString("button_layout", &layout)
	if layout != "" {
		left, right, err := scene.ParseButtonLayout(layout)
		if err != nil {
			t.reject("button_layout", layout, ErrCodeInvalidEnum, err.Error())
		} else {
			m.ButtonsLeft, m.ButtonsRight = left, right
		}
	}
	t.getInt("menu_item_height", &c.Menu.ItemHeight, 1)
	t.getInt("menu_width", &c.Menu.Width, 1)
	t.unknown()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
