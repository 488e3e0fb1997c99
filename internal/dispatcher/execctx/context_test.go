package execctx

import (
	"errors"
	"testing"

	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/wm"
)

func TestNewContextDefaults(t *testing.T) {
	ctx := New()
	if ctx.Ref() != (wm.Ref{}) {
		t.Error("Ref without window should be zero")
	}
	if ctx.Mode() != mode.Passthrough {
		t.Errorf("Mode = %v", ctx.Mode())
	}
	if x, y := ctx.CursorPosition(); x != 0 || y != 0 {
		t.Errorf("CursorPosition = %v,%v", x, y)
	}
	if !errors.Is(ctx.Validate(), ErrMissingWM) {
		t.Error("Validate without WM should fail")
	}
	if _, err := ctx.RequireSeat(); !errors.Is(err, ErrMissingSeat) {
		t.Error("RequireSeat without seat should fail")
	}
}

func TestData(t *testing.T) {
	ctx := &ExecutionContext{}
	if _, ok := ctx.GetData("x"); ok {
		t.Error("unexpected data")
	}
	ctx.SetData("x", 3)
	if v, ok := ctx.GetData("x"); !ok || v.(int) != 3 {
		t.Errorf("GetData = %v, %v", v, ok)
	}
}

func TestRefFromWindow(t *testing.T) {
	m := wm.NewManager(wm.DefaultConfig(), nil, nil)
	w := m.Create("a", "a", wm.Box{Width: 10, Height: 10})
	ctx := New()
	ctx.WM = m
	ctx.Window = w
	if ctx.Ref() != w.Ref() || ctx.Validate() != nil {
		t.Error("context with window and WM should be valid")
	}
}
