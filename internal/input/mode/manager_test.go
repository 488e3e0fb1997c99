package mode

import (
	"errors"
	"testing"

	"github.com/dshills/driftwm/internal/wm"
)

var win = wm.Ref{Slot: 1, Gen: 1}

func TestModeExclusivity(t *testing.T) {
	modes := []Mode{Move, Resize, Menu, WindowSwitcher}
	for _, first := range modes {
		for _, second := range modes {
			t.Run(first.String()+"->"+second.String(), func(t *testing.T) {
				m := NewManager()
				if err := m.Enter(first, Grab{Window: win}); err != nil {
					t.Fatalf("Enter(%s): %v", first, err)
				}
				err := m.Enter(second, Grab{Window: win})
				if !errors.Is(err, ErrNotPassthrough) {
					t.Errorf("Enter(%s) from %s err = %v", second, first, err)
				}
				if m.Current() != first {
					t.Errorf("Current = %s, want %s", m.Current(), first)
				}
				for _, other := range modes {
					if other != first && m.Is(other) {
						t.Errorf("%s active alongside %s", other, first)
					}
				}
			})
		}
	}
}

func TestEnterExit(t *testing.T) {
	m := NewManager()
	var changes [][2]Mode
	m.OnChange(func(from, to Mode) { changes = append(changes, [2]Mode{from, to}) })

	g := Grab{Window: win, Box: wm.Box{Width: 10, Height: 10}, Button: 0x110, Edges: wm.EdgeRight}
	if err := m.Enter(Resize, g); err != nil {
		t.Fatal(err)
	}
	got, ok := m.Grab()
	if !ok || got != g {
		t.Errorf("Grab = %+v, %v", got, ok)
	}
	if !m.Involves(win) {
		t.Error("Involves should report the grabbed window")
	}
	if m.Exit(Move) {
		t.Error("Exit of inactive mode should report false")
	}
	if !m.Exit(Resize) || m.Current() != Passthrough {
		t.Error("Exit(Resize) failed")
	}
	if _, ok := m.Grab(); ok {
		t.Error("grab should be cleared")
	}
	want := [][2]Mode{{Passthrough, Resize}, {Resize, Passthrough}}
	if len(changes) != len(want) || changes[0] != want[0] || changes[1] != want[1] {
		t.Errorf("changes = %v", changes)
	}
}

func TestEnterValidation(t *testing.T) {
	m := NewManager()
	if err := m.Enter(Passthrough, Grab{}); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Enter(Passthrough) err = %v", err)
	}
	if err := m.Enter(Move, Grab{}); !errors.Is(err, ErrInvalidMode) {
		t.Errorf("Enter(Move) without window err = %v", err)
	}
	if err := m.Enter(Menu, Grab{}); err != nil {
		t.Errorf("Enter(Menu): %v", err)
	}
	if prev := m.Reset(); prev != Menu || m.Current() != Passthrough {
		t.Errorf("Reset = %s", prev)
	}
}
