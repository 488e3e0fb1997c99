package seat

import (
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/input/mousebind"
	"github.com/dshills/driftwm/internal/menu"
	"github.com/dshills/driftwm/internal/wm"
)

// Button handles a pointer button press or release.
func (s *Seat) Button(ev Button) {
	s.hidden = false
	if ev.Pressed {
		s.press(ev)
	} else {
		s.release(ev)
	}
}

func (s *Seat) press(ev Button) {
	switch s.mode.Current() {
	case mode.Menu:
		s.grabbedButtons[ev.Button] = true
		ctx := s.resolve()
		if ctx.Element == cursor.ElementMenu {
			s.menuOutcome(s.menus.Activate(ctx.Node.Item))
			return
		}
		s.menus.ClickOutside()
		s.closeMenu()
		return
	case mode.WindowSwitcher, mode.Move, mode.Resize:
		s.grabbedButtons[ev.Button] = true
		return
	}

	ctx := s.resolve()
	s.pressed = PressedState{Context: ctx, Button: ev.Button, X: s.x, Y: s.y}
	s.clickToFocus(ctx)

	res := s.mouse.Press(ctx, ev.Button, s.mods, ev.Time)
	for _, b := range res.Fire {
		s.run(b.Actions, ctx.Window, ctx)
	}
	if !s.mode.Is(mode.Passthrough) || res.Consumed || !ctx.HasSurface() {
		return
	}
	// The binding may have destroyed the window that was clicked.
	if !ctx.Window.IsZero() && s.wm.Lookup(ctx.Window) == nil {
		return
	}
	s.clientButtons[ev.Button] = ctx.Surface
	s.notify.Notify(Notification{
		Kind:    NotifyPointerButton,
		Surface: ctx.Surface,
		Time:    ev.Time,
		Button:  ev.Button,
		Pressed: true,
	})
}

func (s *Seat) clickToFocus(ctx cursor.Context) {
	w := s.wm.Lookup(ctx.Window)
	if w == nil {
		return
	}
	if f := s.wm.Focused(); f == nil || f.Ref() != ctx.Window {
		s.wm.Focus(ctx.Window)
	}
	if s.cfg.RaiseOnFocus {
		s.wm.Raise(ctx.Window)
	}
}

func (s *Seat) release(ev Button) {
	ctx := s.resolve()
	pressed := s.pressed
	if pressed.Button == ev.Button {
		s.pressed = PressedState{}
	}
	// Pending flags on the button clear on every release.
	res := s.mouse.Release(ctx, ev.Button, s.mods)

	switch s.mode.Current() {
	case mode.Move, mode.Resize:
		delete(s.grabbedButtons, ev.Button)
		g, _ := s.mode.Grab()
		if g.Button == 0 || mousebind.Button(g.Button) == ev.Button {
			s.finishInteractive()
		}
		return
	case mode.Menu, mode.WindowSwitcher:
		delete(s.grabbedButtons, ev.Button)
		return
	}
	if s.grabbedButtons[ev.Button] {
		delete(s.grabbedButtons, ev.Button)
		return
	}

	if surface, ok := s.clientButtons[ev.Button]; ok {
		delete(s.clientButtons, ev.Button)
		s.notify.Notify(Notification{
			Kind:    NotifyPointerButton,
			Surface: surface,
			Time:    ev.Time,
			Button:  ev.Button,
		})
	}

	for _, b := range res.Fire {
		bctx := ctx
		if b.Event == mousebind.EventClick && pressed.Active() {
			bctx = pressed.Context
		}
		s.run(b.Actions, bctx.Window, bctx)
	}
	s.UpdateFocus()
}

// menuOutcome acts on the result of input fed to an open menu. Selected
// actions run after the menu has closed.
func (s *Seat) menuOutcome(out menu.Outcome, sel menu.Selection) {
	switch out {
	case menu.Run:
		s.mode.Exit(mode.Menu)
		s.run(sel.Actions, sel.Target, s.resolve())
	case menu.Closed:
		s.closeMenu()
	}
}

func (s *Seat) closeMenu() {
	s.menus.Close()
	s.mode.Exit(mode.Menu)
}

// ButtonHeld reports whether a press of b reached a client and awaits
// its release.
func (s *Seat) ButtonHeld(b mousebind.Button) (wm.SurfaceID, bool) {
	sf, ok := s.clientButtons[b]
	return sf, ok
}
