package backend

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/driftwm/internal/wm"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := NewTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	sim.SetSize(40, 10)
	term.tr.SetSize(40, 10)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func TestDrawPaintsShapes(t *testing.T) {
	term, sim := newSimTerminal(t)
	term.Draw(Scene{
		Shapes: []Shape{
			{Kind: ShapeTitlebar, Box: wm.Box{X: 16, Y: 16, Width: 80, Height: 16}, Label: "term", Active: true},
			{Kind: ShapeSurface, Box: wm.Box{X: 16, Y: 32, Width: 80, Height: 32}},
		},
		Status: "ws 1",
	})

	r, _, style, _ := sim.GetContent(2, 1)
	if r != 't' {
		t.Errorf("label rune = %q, want 't'", r)
	}
	if _, bg, _ := style.Decompose(); bg != tcell.ColorNavy {
		t.Errorf("active titlebar background = %v", bg)
	}
	if _, _, style, _ := sim.GetContent(12, 1); style != desktopStyle {
		t.Error("titlebar painted past its box")
	}
	if r, _, _, _ := sim.GetContent(0, 9); r != 'w' {
		t.Errorf("status rune = %q", r)
	}
}

func TestPreviewIsOutline(t *testing.T) {
	term, sim := newSimTerminal(t)
	term.Draw(Scene{Shapes: []Shape{{Kind: ShapePreview, Box: wm.Box{X: 0, Y: 0, Width: 80, Height: 64}}}})
	if r, _, _, _ := sim.GetContent(3, 0); r != tcell.RuneHLine {
		t.Errorf("top edge = %q", r)
	}
	if r, _, _, _ := sim.GetContent(3, 2); r != ' ' {
		t.Errorf("interior = %q, want blank", r)
	}
}

func TestPollDeliversTranslatedEvents(t *testing.T) {
	term, sim := newSimTerminal(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	term.Start(ctx)

	sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-term.Events():
			if _, ok := ev.(Quit); ok {
				return
			}
		case <-deadline:
			t.Fatal("quit not delivered")
		}
	}
}

func TestCells(t *testing.T) {
	term := NewTerminalWithScreen(tcell.NewSimulationScreen("UTF-8"))
	x0, y0, x1, y1 := term.cells(wm.Box{X: -4, Y: 16, Width: 20, Height: 17})
	if x0 != -1 || y0 != 1 || x1 != 1 || y1 != 2 {
		t.Errorf("cells = %d,%d %d,%d", x0, y0, x1, y1)
	}
}
