package cursor

import (
	"testing"

	"github.com/dshills/driftwm/internal/event"
	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/wm"
)

func newScene(t *testing.T) (*scene.Scene, *wm.Manager, *wm.Window) {
	t.Helper()
	m := wm.NewManager(wm.DefaultConfig(), event.NewBus(), nil)
	if err := m.AddOutput(&wm.Output{Name: "out", Box: wm.Box{Width: 1000, Height: 800}}); err != nil {
		t.Fatal(err)
	}
	// Frame spans x 96..304, y 72..304; titlebar y 76..100.
	w := m.Create("foot", "shell", wm.Box{X: 100, Y: 100, Width: 200, Height: 200})
	return scene.FromManager(m, scene.DefaultMetrics()), m, w
}

func TestResolveClassifiesByPriority(t *testing.T) {
	s, _, w := newScene(t)
	tests := []struct {
		name string
		x, y float64
		want Element
	}{
		{"client", 150, 150, ElementClient},
		{"close button", 290, 90, ElementButtonClose},
		{"maximize button", 265, 90, ElementButtonMaximize},
		{"window menu button", 110, 90, ElementButtonWindowMenu},
		{"title", 200, 90, ElementTitle},
		{"top edge", 200, 73, ElementTop},
		{"left edge", 97, 200, ElementLeft},
		{"right edge", 302, 200, ElementRight},
		{"bottom edge", 200, 302, ElementBottom},
		{"bottom right corner", 302, 302, ElementCornerBottomRight},
		{"corner range along bottom", 101, 302, ElementCornerBottomLeft},
		{"top left corner", 97, 73, ElementCornerTopLeft},
		{"desktop", 700, 700, ElementRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := Resolve(s, tt.x, tt.y)
			if ctx.Element != tt.want {
				t.Errorf("Element = %v, want %v", ctx.Element, tt.want)
			}
			if tt.want != ElementRoot && ctx.Window != w.Ref() {
				t.Errorf("Window = %v, want %v", ctx.Window, w.Ref())
			}
		})
	}
}

func TestResolveSurfaceLocalCoordinates(t *testing.T) {
	s, m, _ := newScene(t)
	csd := m.Create("gtk", "", wm.Box{X: 500, Y: 400, Width: 100, Height: 100})
	csd.Decorations = wm.DecorNone
	csd.CSDOffsetX, csd.CSDOffsetY = 10, 12

	ctx := Resolve(s, 520, 430)
	if ctx.Element != ElementClient || ctx.Surface != csd.Surface {
		t.Fatalf("ctx = %+v", ctx)
	}
	if ctx.SX != 30 || ctx.SY != 42 {
		t.Errorf("SX,SY = %v,%v want 30,42", ctx.SX, ctx.SY)
	}

	// The invisible CSD border still belongs to the client.
	ctx = Resolve(s, 495, 430)
	if ctx.Element != ElementClient || ctx.SX != 5 {
		t.Errorf("csd border ctx = %+v", ctx)
	}
}

func TestResolveAfterDestroyIsRoot(t *testing.T) {
	s, m, w := newScene(t)
	m.Destroy(w.Ref())
	if ctx := Resolve(s, 150, 150); ctx.Element != ElementRoot || !ctx.Window.IsZero() {
		t.Errorf("ctx = %+v", ctx)
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		whole, cand Element
		want        bool
	}{
		{ElementAll, ElementRoot, true},
		{ElementAll, ElementNone, false},
		{ElementFrame, ElementClient, true},
		{ElementFrame, ElementButtonClose, true},
		{ElementFrame, ElementRoot, false},
		{ElementTitlebar, ElementTitle, true},
		{ElementTitlebar, ElementButtonIconify, true},
		{ElementTitlebar, ElementTop, false},
		{ElementTop, ElementCornerTopLeft, true},
		{ElementTop, ElementCornerBottomLeft, false},
		{ElementButton, ElementButtonShade, true},
		{ElementClient, ElementTitle, false},
		{ElementRoot, ElementRoot, true},
	}
	for _, tt := range tests {
		if got := Contains(tt.whole, tt.cand); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.whole, tt.cand, got, tt.want)
		}
	}
}

func TestParseElement(t *testing.T) {
	for _, name := range []string{"Client", "TitleBar", "Frame", "All", "Root", "Close", "TLCorner"} {
		if _, ok := ParseElement(name); !ok {
			t.Errorf("ParseElement(%q) failed", name)
		}
	}
	if e, _ := ParseElement("Desktop"); e != ElementRoot {
		t.Error("Desktop alias")
	}
	if _, ok := ParseElement("Nowhere"); ok {
		t.Error("unknown context accepted")
	}
}

func TestResizeEdges(t *testing.T) {
	w := &wm.Window{Geometry: wm.Box{X: 0, Y: 0, Width: 100, Height: 100}}
	if e := ResizeEdges(Context{Element: ElementLeft}, w, 90, 90); e != wm.EdgeLeft {
		t.Errorf("edge element = %v", e)
	}
	if e := ResizeEdges(Context{Element: ElementClient}, w, 10, 90); e != wm.EdgeLeft|wm.EdgeBottom {
		t.Errorf("quadrant = %v", e)
	}
}
