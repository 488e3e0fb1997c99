// Package constraint manages client pointer confinement and locking.
//
// At most one constraint is active per seat: the one belonging to the
// surface with pointer focus. When a lock is deactivated or destroyed
// the pointer is warped to the last cursor hint the client sent, before
// the constraint is cleared.
package constraint

import (
	"errors"
	"fmt"

	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/wm"
)

// ErrNotFound is returned for an unknown constraint id.
var ErrNotFound = errors.New("constraint: not found")

// Kind is the constraint type.
type Kind uint8

const (
	// Confine keeps the pointer inside a region.
	Confine Kind = iota
	// Lock freezes the pointer; only relative motion reaches the client.
	Lock
)

// String returns the kind name.
func (k Kind) String() string {
	if k == Lock {
		return "lock"
	}
	return "confine"
}

// ID identifies a constraint.
type ID uint64

// Constraint is a client pointer constraint.
type Constraint struct {
	ID      ID
	Surface wm.SurfaceID
	Kind    Kind
	// Region is in surface-local coordinates; empty means the whole
	// surface.
	Region []wm.Box

	hintX, hintY float64
	hasHint      bool
}

// Hint returns the cursor position hint in surface-local coordinates.
func (c *Constraint) Hint() (x, y float64, ok bool) {
	return c.hintX, c.hintY, c.hasHint
}

// Host is the seat side of the constraint manager.
type Host interface {
	// SurfaceBox returns the layout box of a surface.
	SurfaceBox(s wm.SurfaceID) (wm.Box, bool)
	// Warp moves the pointer without generating motion for clients.
	Warp(x, y float64)
	// Activated and Deactivated notify the owning client.
	Activated(c *Constraint)
	Deactivated(c *Constraint)
}

// Manager tracks constraints for one seat.
type Manager struct {
	host   Host
	log    *logging.Logger
	all    map[ID]*Constraint
	active *Constraint
	nextID ID
}

// NewManager creates a manager.
func NewManager(host Host, log *logging.Logger) *Manager {
	return &Manager{
		host: host,
		log:  logging.OrNull(log).WithComponent("constraint"),
		all:  make(map[ID]*Constraint),
	}
}

// Create registers a constraint requested by the client of surface. It
// does not activate it.
func (m *Manager) Create(surface wm.SurfaceID, kind Kind, region []wm.Box) *Constraint {
	m.nextID++
	c := &Constraint{ID: m.nextID, Surface: surface, Kind: kind, Region: region}
	m.all[c.ID] = c
	m.log.Debug("created %s %d for surface %d", kind, c.ID, surface)
	return c
}

// Get returns a constraint by id.
func (m *Manager) Get(id ID) (*Constraint, bool) {
	c, ok := m.all[id]
	return c, ok
}

// SetHint records the client's cursor position hint.
func (m *Manager) SetHint(id ID, x, y float64) error {
	c, ok := m.all[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	c.hintX, c.hintY, c.hasHint = x, y, true
	return nil
}

// SetRegion replaces the confinement region.
func (m *Manager) SetRegion(id ID, region []wm.Box) error {
	c, ok := m.all[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	c.Region = region
	return nil
}

// Destroy removes a constraint. An active constraint is deactivated
// first, warping to its hint when it was a lock.
func (m *Manager) Destroy(id ID) {
	c, ok := m.all[id]
	if !ok {
		return
	}
	if m.active == c {
		m.deactivate()
	}
	delete(m.all, id)
	m.log.Debug("destroyed %s %d", c.Kind, id)
}

// DestroySurface removes every constraint of a surface.
func (m *Manager) DestroySurface(surface wm.SurfaceID) {
	for id, c := range m.all {
		if c.Surface == surface {
			m.Destroy(id)
		}
	}
}

// ActivateFor activates the constraint of the surface that gained pointer
// focus, deactivating any other. A zero surface only deactivates.
func (m *Manager) ActivateFor(surface wm.SurfaceID) {
	var next *Constraint
	if surface != 0 {
		for _, c := range m.all {
			if c.Surface == surface && (next == nil || c.ID < next.ID) {
				next = c
			}
		}
	}
	if next == m.active {
		return
	}
	if m.active != nil {
		m.deactivate()
	}
	if next != nil {
		m.active = next
		m.log.Debug("activated %s %d", next.Kind, next.ID)
		m.host.Activated(next)
	}
}

// Active returns the active constraint or nil.
func (m *Manager) Active() *Constraint {
	return m.active
}

// Locked reports whether the active constraint is a lock.
func (m *Manager) Locked() bool {
	return m.active != nil && m.active.Kind == Lock
}

func (m *Manager) deactivate() {
	c := m.active
	if c.Kind == Lock && c.hasHint {
		if box, ok := m.host.SurfaceBox(c.Surface); ok {
			m.host.Warp(float64(box.X)+c.hintX, float64(box.Y)+c.hintY)
		}
	}
	m.active = nil
	m.log.Debug("deactivated %s %d", c.Kind, c.ID)
	m.host.Deactivated(c)
}

// Clip constrains pointer motion from (x0, y0) to (x1, y1) in layout
// coordinates. A lock suppresses motion; a confinement clamps it to the
// region box holding the pointer.
func (m *Manager) Clip(x0, y0, x1, y1 float64) (float64, float64) {
	c := m.active
	if c == nil {
		return x1, y1
	}
	if c.Kind == Lock {
		return x0, y0
	}
	box, ok := m.host.SurfaceBox(c.Surface)
	if !ok {
		return x1, y1
	}
	region := c.Region
	if len(region) == 0 {
		region = []wm.Box{{Width: box.Width, Height: box.Height}}
	}
	var home wm.Box
	found := false
	for _, r := range region {
		r.X += box.X
		r.Y += box.Y
		if r.Contains(x1, y1) {
			return x1, y1
		}
		if !found && r.Contains(x0, y0) {
			home, found = r, true
		}
	}
	if !found {
		// The pointer is outside the region; pull it to the first box.
		home = region[0]
		home.X += box.X
		home.Y += box.Y
	}
	return home.ClampPoint(x1, y1)
}
