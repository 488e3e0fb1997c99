// Package switcher implements the keyboard window switcher (alt-tab).
package switcher

import (
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/wm"
)

// Switcher cycles focusable windows in stacking order.
type Switcher struct {
	wm       *wm.Manager
	log      *logging.Logger
	active   bool
	windows  []wm.Ref
	index    int
	original wm.Ref
}

// New creates a switcher over m.
func New(m *wm.Manager, log *logging.Logger) *Switcher {
	return &Switcher{wm: m, log: logging.OrNull(log).WithComponent("switcher")}
}

// Active reports whether a switch is in progress.
func (s *Switcher) Active() bool {
	return s.active
}

// Start snapshots the focusable windows and selects the one after the
// focused window (or before it when backward). It returns false when
// there is nothing to switch to.
func (s *Switcher) Start(backward bool) bool {
	wins := s.wm.Focusable()
	if len(wins) == 0 {
		return false
	}
	s.windows = s.windows[:0]
	for _, w := range wins {
		s.windows = append(s.windows, w.Ref())
	}
	s.original = wm.Ref{}
	if f := s.wm.Focused(); f != nil {
		s.original = f.Ref()
	}
	s.index = -1
	if s.windows[0] == s.original {
		s.index = 0
	}
	s.active = true
	s.Step(backward)
	s.log.Debug("started with %d windows", len(s.windows))
	return true
}

// Step moves the selection forward or backward, skipping windows that
// were destroyed since Start.
func (s *Switcher) Step(backward bool) {
	if !s.active || len(s.windows) == 0 {
		return
	}
	n := len(s.windows)
	delta := 1
	if backward {
		delta = -1
	}
	i := s.index
	for k := 0; k < n; k++ {
		if i < 0 {
			i = 0
			if backward {
				i = n - 1
			}
		} else {
			i = ((i+delta)%n + n) % n
		}
		if s.wm.Lookup(s.windows[i]) != nil {
			s.index = i
			return
		}
	}
	s.index = -1
}

// Selected returns the selected window ref, or the zero ref.
func (s *Switcher) Selected() wm.Ref {
	if !s.active || s.index < 0 || s.index >= len(s.windows) {
		return wm.Ref{}
	}
	return s.windows[s.index]
}

// Windows returns the cycle order, for drawing.
func (s *Switcher) Windows() []wm.Ref {
	return s.windows
}

// Commit focuses and raises the selection and ends the switch.
func (s *Switcher) Commit() wm.Ref {
	ref := s.Selected()
	s.end()
	if s.wm.Lookup(ref) == nil {
		return wm.Ref{}
	}
	s.wm.Focus(ref)
	s.wm.Raise(ref)
	return ref
}

// Cancel ends the switch, restoring the original focus if it still exists.
func (s *Switcher) Cancel() {
	orig := s.original
	s.end()
	if s.wm.Lookup(orig) != nil {
		s.wm.Focus(orig)
	}
}

// Forget drops a destroyed window from the cycle. If it was selected the
// selection moves on.
func (s *Switcher) Forget(ref wm.Ref) {
	if !s.active {
		return
	}
	if s.original == ref {
		s.original = wm.Ref{}
	}
	for i, r := range s.windows {
		if r != ref {
			continue
		}
		s.windows = append(s.windows[:i], s.windows[i+1:]...)
		switch {
		case len(s.windows) == 0:
			s.index = -1
		case i < s.index:
			s.index--
		case i == s.index:
			s.index = i % len(s.windows)
		}
		return
	}
}

func (s *Switcher) end() {
	s.active = false
	s.windows = s.windows[:0]
	s.index = -1
	s.original = wm.Ref{}
}
