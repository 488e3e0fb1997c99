// Package menu implements compositor menus: the root menu, the window
// operations menu and menus defined in configuration.
//
// Menus open as a stack: the first entry is the menu that was shown and
// each further entry is a submenu opened from the selected item of the
// one below it. Item actions are never run here; the caller receives them
// after the menu has closed.
package menu

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/wm"
)

// Built-in menu ids.
const (
	RootMenu   = "root-menu"
	ClientMenu = "client-menu"
	SendToMenu = "client-send-to-menu"
)

var (
	// ErrUnknownMenu is returned when opening an undefined menu.
	ErrUnknownMenu = errors.New("menu: unknown menu")
	// ErrInvalidMenu is returned when registering a menu without an id.
	ErrInvalidMenu = errors.New("menu: invalid menu")
)

// Item is a menu entry.
type Item struct {
	Label string
	// Submenu is the id of a menu opened when the item is selected.
	Submenu   string
	Actions   []action.Action
	Separator bool
}

// Selectable reports whether the item can be hovered or activated.
func (it Item) Selectable() bool {
	return !it.Separator
}

// Menu is a named list of items.
type Menu struct {
	ID    string
	Label string
	Items []Item
}

// Config controls menu layout.
type Config struct {
	ItemHeight int
	Width      int
}

// DefaultConfig returns the default layout.
func DefaultConfig() Config {
	return Config{ItemHeight: 20, Width: 180}
}

// Selection is what an activated item asks the caller to run.
type Selection struct {
	Actions []action.Action
	// Target is the window the menu was opened for; zero for the root menu.
	Target wm.Ref
}

// Outcome is the result of feeding input to an open menu.
type Outcome int

const (
	// Stay means the menu remains open.
	Stay Outcome = iota
	// Closed means the menu closed without a selection.
	Closed
	// Run means the menu closed and the selection should be executed.
	Run
)

type level struct {
	menu     *Menu
	box      wm.Box
	selected int
}

// Manager owns menu definitions and the open menu stack.
type Manager struct {
	cfg    Config
	menus  map[string]*Menu
	open   []*level
	target wm.Ref
	bounds wm.Box
	log    *logging.Logger
}

// NewManager creates a manager with the built-in menus registered.
func NewManager(cfg Config, log *logging.Logger) *Manager {
	m := &Manager{
		cfg:   cfg,
		menus: make(map[string]*Menu),
		log:   logging.OrNull(log).WithComponent("menu"),
	}
	for _, def := range Builtin() {
		m.menus[def.ID] = def
	}
	return m
}

// Register adds or replaces a menu definition.
func (m *Manager) Register(def *Menu) error {
	if def == nil || def.ID == "" {
		return ErrInvalidMenu
	}
	m.menus[def.ID] = def
	return nil
}

// Reconfigure closes any open menu and replaces the definitions with the
// built-in menus overlaid by defs.
func (m *Manager) Reconfigure(cfg Config, defs []*Menu) {
	m.Close()
	m.cfg = cfg
	m.menus = make(map[string]*Menu)
	for _, def := range Builtin() {
		m.menus[def.ID] = def
	}
	for _, def := range defs {
		if err := m.Register(def); err != nil {
			m.log.Warn("skipping menu: %v", err)
		}
	}
}

// Get returns a menu definition.
func (m *Manager) Get(id string) *Menu {
	return m.menus[id]
}

// Has reports whether id is defined.
func (m *Manager) Has(id string) bool {
	_, ok := m.menus[id]
	return ok
}

// IDs returns the defined menu ids in sorted order.
func (m *Manager) IDs() []string {
	ids := make([]string, 0, len(m.menus))
	for id := range m.menus {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsOpen reports whether a menu is showing.
func (m *Manager) IsOpen() bool {
	return len(m.open) > 0
}

// Target returns the window the open menu acts on.
func (m *Manager) Target() wm.Ref {
	return m.target
}

// Open shows menu id with its top-left corner at (x, y), kept inside
// bounds. Any open menu is closed first.
func (m *Manager) Open(id string, x, y int, target wm.Ref, bounds wm.Box) error {
	def, ok := m.menus[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownMenu, id)
	}
	m.Close()
	m.target = target
	m.bounds = bounds
	m.push(def, x, y)
	m.log.Debug("opened %s at %d,%d", id, x, y)
	return nil
}

// Close closes every open menu.
func (m *Manager) Close() {
	m.open = m.open[:0]
	m.target = wm.Ref{}
}

// Forget closes the menu if it was opened for ref.
func (m *Manager) Forget(ref wm.Ref) {
	if m.IsOpen() && !ref.IsZero() && m.target == ref {
		m.log.Debug("target %s destroyed, closing menu", ref)
		m.Close()
	}
}

func (m *Manager) push(def *Menu, x, y int) {
	box := wm.Box{X: x, Y: y, Width: m.cfg.Width, Height: m.cfg.ItemHeight * len(def.Items)}
	if !m.bounds.Empty() {
		if box.Right() > m.bounds.Right() {
			box.X = max(m.bounds.X, m.bounds.Right()-box.Width)
		}
		if box.Bottom() > m.bounds.Bottom() {
			box.Y = max(m.bounds.Y, m.bounds.Bottom()-box.Height)
		}
	}
	m.open = append(m.open, &level{menu: def, box: box, selected: -1})
}

func (l *level) itemBox(i, h int) wm.Box {
	return wm.Box{X: l.box.X, Y: l.box.Y + i*h, Width: l.box.Width, Height: h}
}

// Levels returns the open menus, outermost first, for drawing.
func (m *Manager) Levels() []Level {
	out := make([]Level, len(m.open))
	for i, l := range m.open {
		out[i] = Level{Menu: l.menu, Box: l.box, Selected: l.selected}
	}
	return out
}

// Level describes one open menu.
type Level struct {
	Menu     *Menu
	Box      wm.Box
	Selected int
}

// ItemBox returns the layout box of item i.
func (l Level) ItemBox(i int) wm.Box {
	h := 0
	if len(l.Menu.Items) > 0 {
		h = l.Box.Height / len(l.Menu.Items)
	}
	return wm.Box{X: l.Box.X, Y: l.Box.Y + i*h, Width: l.Box.Width, Height: h}
}

// MenuItemAt hit-tests the open menus, innermost first.
func (m *Manager) MenuItemAt(x, y float64) (scene.MenuItemRef, wm.Box, bool) {
	for i := len(m.open) - 1; i >= 0; i-- {
		l := m.open[i]
		if !l.box.Contains(x, y) {
			continue
		}
		idx := (int(y) - l.box.Y) / m.cfg.ItemHeight
		if idx < 0 || idx >= len(l.menu.Items) {
			return scene.MenuItemRef{}, wm.Box{}, false
		}
		return scene.MenuItemRef{Menu: l.menu.ID, Index: idx}, l.itemBox(idx, m.cfg.ItemHeight), true
	}
	return scene.MenuItemRef{}, wm.Box{}, false
}

func (m *Manager) depthOf(menuID string) int {
	for i, l := range m.open {
		if l.menu.ID == menuID {
			return i
		}
	}
	return -1
}

// Hover selects the item under the pointer. Submenus deeper than the
// hovered menu close; a submenu item opens its submenu.
func (m *Manager) Hover(ref scene.MenuItemRef) {
	depth := m.depthOf(ref.Menu)
	if depth < 0 {
		return
	}
	l := m.open[depth]
	if ref.Index < 0 || ref.Index >= len(l.menu.Items) {
		return
	}
	if l.selected == ref.Index && len(m.open) > depth+1 {
		return
	}
	m.open = m.open[:depth+1]
	item := l.menu.Items[ref.Index]
	if !item.Selectable() {
		l.selected = -1
		return
	}
	l.selected = ref.Index
	m.openSubmenu(l, ref.Index)
}

func (m *Manager) openSubmenu(l *level, idx int) {
	item := l.menu.Items[idx]
	if item.Submenu == "" {
		return
	}
	sub, ok := m.menus[item.Submenu]
	if !ok {
		m.log.Warn("menu %s item %q names unknown submenu %s", l.menu.ID, item.Label, item.Submenu)
		return
	}
	if m.depthOf(sub.ID) >= 0 {
		m.log.Warn("menu %s: submenu loop through %s", l.menu.ID, sub.ID)
		return
	}
	ib := l.itemBox(idx, m.cfg.ItemHeight)
	m.push(sub, l.box.Right(), ib.Y)
}

// Activate runs the item under a click. Submenu items only open their
// submenu; clicking elsewhere in the menu is ignored.
func (m *Manager) Activate(ref scene.MenuItemRef) (Outcome, Selection) {
	depth := m.depthOf(ref.Menu)
	if depth < 0 {
		return Stay, Selection{}
	}
	l := m.open[depth]
	if ref.Index < 0 || ref.Index >= len(l.menu.Items) {
		return Stay, Selection{}
	}
	item := l.menu.Items[ref.Index]
	if !item.Selectable() {
		return Stay, Selection{}
	}
	if item.Submenu != "" {
		m.open = m.open[:depth+1]
		l.selected = ref.Index
		m.openSubmenu(l, ref.Index)
		return Stay, Selection{}
	}
	sel := Selection{Actions: item.Actions, Target: m.target}
	m.Close()
	return Run, sel
}

// ClickOutside closes the menus.
func (m *Manager) ClickOutside() Outcome {
	m.Close()
	return Closed
}

// Key drives the innermost menu from the keyboard.
func (m *Manager) Key(sym key.Sym) (Outcome, Selection) {
	if !m.IsOpen() {
		return Closed, Selection{}
	}
	l := m.open[len(m.open)-1]
	switch sym {
	case key.SymEscape:
		m.Close()
		return Closed, Selection{}
	case key.SymDown, key.SymTab:
		l.step(1)
	case key.SymUp, key.SymLeftTab:
		l.step(-1)
	case key.SymLeft:
		if len(m.open) > 1 {
			m.open = m.open[:len(m.open)-1]
		}
	case key.SymRight:
		if l.selected >= 0 {
			m.openSubmenu(l, l.selected)
			if len(m.open) > 1 && m.open[len(m.open)-1] != l {
				m.open[len(m.open)-1].step(1)
			}
		}
	case key.SymReturn:
		if l.selected < 0 {
			return Stay, Selection{}
		}
		return m.Activate(scene.MenuItemRef{Menu: l.menu.ID, Index: l.selected})
	}
	return Stay, Selection{}
}

func (l *level) step(delta int) {
	n := len(l.menu.Items)
	if n == 0 {
		return
	}
	i := l.selected
	for k := 0; k < n; k++ {
		if i < 0 && delta < 0 {
			i = n - 1
		} else {
			i = ((i+delta)%n + n) % n
		}
		if l.menu.Items[i].Selectable() {
			l.selected = i
			return
		}
	}
}
