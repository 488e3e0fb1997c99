package constraint

import (
	"testing"

	"github.com/dshills/driftwm/internal/wm"
)

type fakeHost struct {
	boxes       map[wm.SurfaceID]wm.Box
	warps       [][2]float64
	activated   []ID
	deactivated []ID
}

func newFakeHost() *fakeHost {
	return &fakeHost{boxes: map[wm.SurfaceID]wm.Box{
		1: {X: 100, Y: 100, Width: 200, Height: 200},
		2: {X: 500, Y: 100, Width: 200, Height: 200},
	}}
}

func (h *fakeHost) SurfaceBox(s wm.SurfaceID) (wm.Box, bool) {
	b, ok := h.boxes[s]
	return b, ok
}
func (h *fakeHost) Warp(x, y float64)         { h.warps = append(h.warps, [2]float64{x, y}) }
func (h *fakeHost) Activated(c *Constraint)   { h.activated = append(h.activated, c.ID) }
func (h *fakeHost) Deactivated(c *Constraint) { h.deactivated = append(h.deactivated, c.ID) }

func TestActivatingNewDeactivatesOldWithWarp(t *testing.T) {
	h := newFakeHost()
	m := NewManager(h, nil)
	lock := m.Create(1, Lock, nil)
	confine := m.Create(2, Confine, nil)
	if err := m.SetHint(lock.ID, 10, 20); err != nil {
		t.Fatal(err)
	}

	m.ActivateFor(1)
	if m.Active() != lock || !m.Locked() {
		t.Fatal("lock should be active")
	}
	m.ActivateFor(2)
	if m.Active() != confine {
		t.Fatal("confine should be active")
	}
	if len(h.deactivated) != 1 || h.deactivated[0] != lock.ID {
		t.Errorf("deactivated = %v", h.deactivated)
	}
	if len(h.warps) != 1 || h.warps[0] != [2]float64{110, 120} {
		t.Errorf("warps = %v", h.warps)
	}
}

func TestDestroyActiveLockWarpsThenClears(t *testing.T) {
	h := newFakeHost()
	m := NewManager(h, nil)
	lock := m.Create(1, Lock, nil)
	m.ActivateFor(1)
	if err := m.SetHint(lock.ID, 50, 60); err != nil {
		t.Fatal(err)
	}
	m.Destroy(lock.ID)
	if m.Active() != nil || m.Locked() {
		t.Error("destroyed constraint still active")
	}
	if len(h.warps) != 1 || h.warps[0] != [2]float64{150, 160} {
		t.Errorf("warps = %v", h.warps)
	}
	if _, ok := m.Get(lock.ID); ok {
		t.Error("constraint not removed")
	}
	if err := m.SetHint(lock.ID, 1, 1); err == nil {
		t.Error("SetHint on destroyed constraint should fail")
	}
}

func TestConfineWithoutHintDoesNotWarp(t *testing.T) {
	h := newFakeHost()
	m := NewManager(h, nil)
	c := m.Create(1, Confine, nil)
	m.ActivateFor(1)
	m.SetHint(c.ID, 5, 5)
	m.ActivateFor(0)
	if len(h.warps) != 0 {
		t.Errorf("confine should not warp: %v", h.warps)
	}
}

func TestClip(t *testing.T) {
	h := newFakeHost()
	m := NewManager(h, nil)

	if x, y := m.Clip(0, 0, 5, 5); x != 5 || y != 5 {
		t.Error("no constraint should not clip")
	}

	c := m.Create(1, Confine, []wm.Box{{X: 10, Y: 10, Width: 50, Height: 50}})
	m.ActivateFor(1)
	if x, y := m.Clip(120, 120, 130, 130); x != 130 || y != 130 {
		t.Errorf("inside motion clipped to %v,%v", x, y)
	}
	if x, y := m.Clip(150, 150, 400, 130); x != 159 || y != 130 {
		t.Errorf("outside motion = %v,%v want 159,130", x, y)
	}

	m.Destroy(c.ID)
	lock := m.Create(1, Lock, nil)
	m.ActivateFor(1)
	if x, y := m.Clip(150, 150, 400, 130); x != 150 || y != 150 {
		t.Errorf("locked motion = %v,%v", x, y)
	}
	m.DestroySurface(1)
	if _, ok := m.Get(lock.ID); ok || m.Active() != nil {
		t.Error("DestroySurface left the lock")
	}
}
