package wm

import "fmt"

// Ref is a generation-checked handle to a window. The zero Ref refers to
// no window. A Ref outlives its window safely: once the window is destroyed
// the slot generation advances and Lookup returns nil.
type Ref struct {
	Slot uint32
	Gen  uint32
}

// IsZero reports whether r is the null reference.
func (r Ref) IsZero() bool {
	return r.Gen == 0
}

// String returns a debug representation.
func (r Ref) String() string {
	if r.IsZero() {
		return "window(nil)"
	}
	return fmt.Sprintf("window(%d#%d)", r.Slot, r.Gen)
}

type slot struct {
	gen    uint32
	window *Window
}

// Registry is the slot arena that owns window lifetimes.
type Registry struct {
	slots []slot
	free  []uint32
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// insert stores w and assigns its Ref.
func (r *Registry) insert(w *Window) Ref {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}
	s := &r.slots[idx]
	s.gen++
	if s.gen == 0 {
		// Generation 0 is reserved for the null Ref.
		s.gen = 1
	}
	s.window = w
	w.ref = Ref{Slot: idx, Gen: s.gen}
	return w.ref
}

// remove invalidates ref. Every outstanding copy of ref resolves to nil
// from this point on.
func (r *Registry) remove(ref Ref) *Window {
	if int(ref.Slot) >= len(r.slots) {
		return nil
	}
	s := &r.slots[ref.Slot]
	if s.gen != ref.Gen || s.window == nil {
		return nil
	}
	w := s.window
	s.window = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	r.free = append(r.free, ref.Slot)
	return w
}

// Lookup returns the live window for ref, or nil.
func (r *Registry) Lookup(ref Ref) *Window {
	if ref.IsZero() || int(ref.Slot) >= len(r.slots) {
		return nil
	}
	s := r.slots[ref.Slot]
	if s.gen != ref.Gen {
		return nil
	}
	return s.window
}

// Alive reports whether ref still refers to a live window.
func (r *Registry) Alive(ref Ref) bool {
	return r.Lookup(ref) != nil
}

// Len returns the number of live windows.
func (r *Registry) Len() int {
	return len(r.slots) - len(r.free)
}
