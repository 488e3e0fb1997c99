package seat

import (
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/wm"
)

// Key handles a keyboard key event.
func (s *Seat) Key(ev key.Event) {
	modsChanged := ev.Mods != s.mods
	s.mods = ev.Mods

	switch s.mode.Current() {
	case mode.Menu:
		s.swallow(ev)
		if ev.Pressed {
			s.menuOutcome(s.menus.Key(ev.Sym))
		}
		return
	case mode.WindowSwitcher:
		s.swallow(ev)
		s.switcherKey(ev)
		return
	case mode.Move, mode.Resize:
		s.swallow(ev)
		if ev.Pressed && ev.Sym == key.SymEscape {
			s.cancelInteractive()
		}
		return
	}

	if !ev.Pressed && s.swallowedKeys[ev.Keycode] {
		delete(s.swallowedKeys, ev.Keycode)
		s.keys.Release(ev)
		return
	}

	if ev.Pressed {
		inhibited := false
		if f := s.wm.Focused(); f != nil {
			inhibited = f.InhibitsKeybinds
		}
		res := s.keys.Press(ev, inhibited)
		if res.Fire != nil {
			s.run(res.Fire.Actions, wm.Ref{}, cursor.Context{})
		}
		if res.Consumed {
			return
		}
	} else {
		res := s.keys.Release(ev)
		if res.Fire != nil {
			s.run(res.Fire.Actions, wm.Ref{}, cursor.Context{})
		}
		if res.Consumed {
			return
		}
	}
	s.deliverKey(ev, modsChanged)
}

// swallow hides a key from clients while a modal operation holds the
// keyboard, including its release after the operation ends.
func (s *Seat) swallow(ev key.Event) {
	if ev.Pressed {
		s.swallowedKeys[ev.Keycode] = true
	} else {
		delete(s.swallowedKeys, ev.Keycode)
	}
}

func (s *Seat) deliverKey(ev key.Event, modsChanged bool) {
	if s.keyboardFocus == 0 {
		return
	}
	s.notify.Notify(Notification{
		Kind:    NotifyKey,
		Surface: s.keyboardFocus,
		Time:    ev.Time,
		Keycode: ev.Keycode,
		Pressed: ev.Pressed,
	})
	if modsChanged {
		s.notify.Notify(Notification{Kind: NotifyModifiers, Surface: s.keyboardFocus, Mods: s.mods})
	}
}

func (s *Seat) switcherKey(ev key.Event) {
	if !ev.Pressed {
		if res := s.keys.Release(ev); res.Fire != nil {
			s.run(res.Fire.Actions, wm.Ref{}, cursor.Context{})
		}
		if ev.Sym.IsModifier() && s.mods.IsEmpty() {
			s.commitSwitcher()
		}
		return
	}

	if res := s.keys.Press(ev, false); res.Fire != nil {
		s.run(res.Fire.Actions, wm.Ref{}, cursor.Context{})
		return
	} else if res.Consumed {
		return
	}

	switch ev.Sym {
	case key.SymTab:
		s.switcher.Step(s.mods.Has(key.ModShift))
	case key.SymRight, key.SymDown:
		s.switcher.Step(false)
	case key.SymLeftTab, key.SymLeft, key.SymUp:
		s.switcher.Step(true)
	case key.SymEscape:
		s.switcher.Cancel()
		s.mode.Exit(mode.WindowSwitcher)
	case key.SymReturn:
		s.commitSwitcher()
	}
}

func (s *Seat) commitSwitcher() {
	if !s.mode.Is(mode.WindowSwitcher) {
		return
	}
	ref := s.switcher.Commit()
	s.mode.Exit(mode.WindowSwitcher)
	if !ref.IsZero() {
		s.log.Debug("switched to %s", ref)
	}
}
