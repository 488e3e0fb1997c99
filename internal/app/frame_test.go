package app

import (
	"testing"

	"github.com/dshills/driftwm/internal/backend"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/menu"
	"github.com/dshills/driftwm/internal/seat"
	"github.com/dshills/driftwm/internal/wm"
)

func shapesOf(sc backend.Scene, kind backend.ShapeKind) []backend.Shape {
	var out []backend.Shape
	for _, sh := range sc.Shapes {
		if sh.Kind == kind {
			out = append(out, sh)
		}
	}
	return out
}

func TestFrameDrawsWindowsBottomToTop(t *testing.T) {
	app := newTestApp(t, nil, 2)
	sc := app.frame()

	surfaces := shapesOf(sc, backend.ShapeSurface)
	if len(surfaces) != 2 {
		t.Fatalf("surfaces = %d, want 2", len(surfaces))
	}
	if surfaces[0].Active || !surfaces[1].Active {
		t.Errorf("the focused window should be drawn last: %+v", surfaces)
	}
	titles := shapesOf(sc, backend.ShapeTitlebar)
	if len(titles) != 2 || titles[1].Label != " window 2" {
		t.Errorf("titlebars = %+v", titles)
	}
	// Default layout: menu on the left, three buttons on the right.
	if got := len(shapesOf(sc, backend.ShapeButton)); got != 8 {
		t.Errorf("buttons = %d, want 8", got)
	}
	if !sc.CursorVisible {
		t.Error("cursor hidden")
	}
	if sc.Status == "" {
		t.Error("empty status line")
	}
}

func TestFrameShadedAndUndecorated(t *testing.T) {
	app := newTestApp(t, nil, 2)
	ws := app.WM().Windows()
	app.WM().Shade(ws[0].Ref(), true)
	app.WM().SetDecorations(ws[1].Ref(), wm.DecorNone)

	sc := app.frame()
	if got := len(shapesOf(sc, backend.ShapeSurface)); got != 1 {
		t.Errorf("surfaces = %d, want 1 with one window shaded", got)
	}
	if got := len(shapesOf(sc, backend.ShapeTitlebar)); got != 1 {
		t.Errorf("titlebars = %d, want 1 with one window undecorated", got)
	}
}

func TestFrameMenu(t *testing.T) {
	app := newTestApp(t, nil, 0)
	if err := app.Seat().ShowMenu(menu.RootMenu, 10, 10, wm.Ref{}); err != nil {
		t.Fatal(err)
	}
	sc := app.frame()
	if len(shapesOf(sc, backend.ShapeMenu)) != 1 {
		t.Fatal("menu not drawn")
	}
	items := shapesOf(sc, backend.ShapeMenuItem)
	if want := len(app.menus.Get(menu.RootMenu).Items); len(items) != want {
		t.Errorf("items = %d, want %d", len(items), want)
	}
}

func TestFrameSwitcher(t *testing.T) {
	app := newTestApp(t, nil, 3)
	app.Seat().Key(key.Event{Keycode: 64, Sym: key.SymAltL, Pressed: true, Mods: key.ModAlt})
	app.Seat().Key(key.Event{Keycode: 23, Sym: key.SymTab, Pressed: true, Mods: key.ModAlt})
	if app.Seat().Mode() != mode.WindowSwitcher {
		t.Fatalf("mode = %s, want window-switcher", app.Seat().Mode())
	}

	sc := app.frame()
	rows := shapesOf(sc, backend.ShapeSwitcher)
	if len(rows) != 4 {
		t.Fatalf("switcher shapes = %d, want box plus 3 rows", len(rows))
	}
	active := 0
	for _, r := range rows {
		if r.Active {
			active++
		}
	}
	if active != 1 {
		t.Errorf("%d rows highlighted, want 1", active)
	}
}

func TestFrameHiddenCursor(t *testing.T) {
	app := newTestApp(t, nil, 0)
	app.Seat().HideCursor()
	if app.frame().CursorVisible {
		t.Error("hidden cursor drawn")
	}
	app.Seat().Motion(seat.Motion{Time: 1, DX: 1})
	if !app.frame().CursorVisible {
		t.Error("cursor not shown after motion")
	}
}
