package seat

import (
	"github.com/dshills/driftwm/internal/input/mode"
	"github.com/dshills/driftwm/internal/input/mousebind"
)

// Axis handles a scroll event. Scroll bindings see whole steps only:
// 120 high-resolution units per wheel detent, 10 pixels of continuous
// scrolling. The remainder carries to the next event.
func (s *Seat) Axis(ev Axis) {
	s.hidden = false
	if !s.mode.Is(mode.Passthrough) || ev.Orientation > mousebind.Horizontal {
		return
	}
	delta, discrete := ev.Delta, ev.Discrete
	if s.cfg.NaturalScroll {
		delta, discrete = -delta, -discrete
	}

	acc := &s.scroll[ev.Orientation]
	var steps int
	sign := delta
	if discrete != 0 {
		steps = acc.Add(float64(discrete), true)
		sign = float64(discrete)
	} else {
		steps = acc.Add(delta, false)
	}

	dir := ev.Orientation.StepDirection(steps)
	if steps == 0 {
		switch {
		case sign < 0:
			dir = ev.Orientation.StepDirection(-1)
		case sign > 0:
			dir = ev.Orientation.StepDirection(1)
		}
	}
	if steps < 0 {
		steps = -steps
	}

	ctx := s.resolve()
	res := s.mouse.Scroll(ctx, dir, steps, s.mods)
	for _, b := range res.Fire {
		for i := 0; i < res.Steps; i++ {
			s.run(b.Actions, ctx.Window, ctx)
		}
	}
	if res.Consumed || s.pointerFocus == 0 || !s.mode.Is(mode.Passthrough) {
		return
	}
	factor := s.cfg.ScrollFactor
	if factor == 0 {
		factor = 1
	}
	s.notify.Notify(Notification{
		Kind:        NotifyPointerAxis,
		Surface:     s.pointerFocus,
		Time:        ev.Time,
		Orientation: ev.Orientation,
		Delta:       delta * factor,
		Discrete:    int(float64(discrete) * factor),
	})
}

// Frame forwards the end of a pointer event group to the focused client.
func (s *Seat) Frame(ev Frame) {
	if s.pointerFocus == 0 || !s.mode.Is(mode.Passthrough) {
		return
	}
	s.notify.Notify(Notification{Kind: NotifyPointerFrame, Surface: s.pointerFocus, Time: ev.Time})
}
