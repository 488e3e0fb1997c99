package seat

import (
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/mode"
)

// Motion handles relative pointer motion.
func (s *Seat) Motion(ev Motion) {
	s.hidden = false
	if s.constraints.Locked() {
		return
	}
	x, y := s.constraints.Clip(s.x, s.y, s.x+ev.DX, s.y+ev.DY)
	s.x, s.y = s.clamp(x, y)
	s.processMotion(ev.Time)
}

// MotionAbsolute handles absolute pointer motion from tablets and
// nested sessions.
func (s *Seat) MotionAbsolute(ev MotionAbsolute) {
	s.hidden = false
	if s.constraints.Locked() {
		return
	}
	lb := s.wm.LayoutBox()
	nx := float64(lb.X) + ev.X*float64(lb.Width)
	ny := float64(lb.Y) + ev.Y*float64(lb.Height)
	x, y := s.constraints.Clip(s.x, s.y, nx, ny)
	s.x, s.y = s.clamp(x, y)
	s.processMotion(ev.Time)
}

func (s *Seat) processMotion(time uint32) {
	switch s.mode.Current() {
	case mode.Move:
		s.processMove()
	case mode.Resize:
		s.processResize(time)
	case mode.Menu:
		if ctx := s.resolve(); ctx.Element == cursor.ElementMenu {
			s.menus.Hover(ctx.Node.Item)
		}
	case mode.WindowSwitcher:
	default:
		if s.processDrag() {
			return
		}
		s.updatePointer(time, true)
	}
}

// processDrag fires pending drag bindings once the pointer has travelled
// past the threshold. It reports whether a binding left passthrough.
func (s *Seat) processDrag() bool {
	p := s.pressed
	if !p.Active() || !s.mouse.PendingDrag(p.Button) {
		return false
	}
	if !s.mouse.PastThreshold(p.Delta(s.x, s.y)) {
		return false
	}
	res := s.mouse.Drag(p.Button)
	for _, b := range res.Fire {
		s.run(b.Actions, p.Context.Window, p.Context)
	}
	return !s.mode.Is(mode.Passthrough)
}

// UpdateFocus re-resolves what is under the pointer after the scene
// changed beneath it, sending enter and leave but no motion.
func (s *Seat) UpdateFocus() {
	if !s.mode.Is(mode.Passthrough) {
		return
	}
	s.updatePointer(0, false)
}

// updatePointer moves pointer focus and the cursor image to what is under
// the pointer. moved is set for real device motion, which is forwarded
// to the client and may move keyboard focus.
func (s *Seat) updatePointer(time uint32, moved bool) {
	if s.updatingFocus || s.hidden {
		return
	}
	s.updatingFocus = true
	defer func() { s.updatingFocus = false }()

	ctx := s.resolve()

	// A client that took a button press keeps receiving motion until the
	// button is released.
	if p := s.pressed; p.Active() && p.Context.HasSurface() && p.Context.Surface != ctx.Surface {
		if moved && s.pointerFocus == p.Context.Surface {
			if box, ok := s.SurfaceBox(p.Context.Surface); ok {
				s.notify.Notify(Notification{
					Kind:    NotifyPointerMotion,
					Surface: s.pointerFocus,
					Time:    time,
					SX:      s.x - float64(box.X),
					SY:      s.y - float64(box.Y),
				})
			}
		}
		return
	}

	s.setPointerFocus(ctx)
	if ctx.HasSurface() {
		s.cursorName = s.clientCursor
		if s.cursorName == "" {
			s.cursorName = "default"
		}
		if moved {
			s.notify.Notify(Notification{Kind: NotifyPointerMotion, Surface: ctx.Surface, Time: time, SX: ctx.SX, SY: ctx.SY})
		}
	} else {
		s.cursorName = ctx.Element.CursorName()
	}

	if moved {
		s.focusFollowsMouse(ctx)
	}
}

func (s *Seat) focusFollowsMouse(ctx cursor.Context) {
	if !s.cfg.FocusFollowsMouse || s.pressed.Active() || ctx.Window.IsZero() {
		return
	}
	if f := s.wm.Focused(); f != nil && f.Ref() == ctx.Window {
		return
	}
	s.wm.Focus(ctx.Window)
	if s.cfg.RaiseOnFocus {
		s.wm.Raise(ctx.Window)
	}
}

// setPointerFocus sends leave to the old and enter to the new surface
// under the pointer.
func (s *Seat) setPointerFocus(ctx cursor.Context) {
	if ctx.Surface == s.pointerFocus {
		return
	}
	if s.pointerFocus != 0 {
		s.notify.Notify(Notification{Kind: NotifyPointerLeave, Surface: s.pointerFocus})
	}
	s.pointerFocus = ctx.Surface
	s.clientCursor = ""
	if ctx.Surface != 0 {
		s.notify.Notify(Notification{Kind: NotifyPointerEnter, Surface: ctx.Surface, SX: ctx.SX, SY: ctx.SY})
	}
}
