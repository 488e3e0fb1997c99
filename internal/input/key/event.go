package key

// Event is a keyboard key event from the device layer.
type Event struct {
	// Keycode is the hardware keycode.
	Keycode uint32
	// Sym is the keysym produced under the current layout.
	Sym     Sym
	Pressed bool
	// Mods is the modifier state at the time of the event.
	Mods Modifier
	// Time is the event timestamp in milliseconds.
	Time uint32
}

// PressedKeys tracks keys currently held down.
type PressedKeys struct {
	down map[uint32]Sym
}

// NewPressedKeys creates an empty tracker.
func NewPressedKeys() *PressedKeys {
	return &PressedKeys{down: make(map[uint32]Sym)}
}

// Update records ev and returns the number of keys still held.
func (p *PressedKeys) Update(ev Event) int {
	if ev.Pressed {
		p.down[ev.Keycode] = ev.Sym
	} else {
		delete(p.down, ev.Keycode)
	}
	return len(p.down)
}

// Held reports whether keycode is down.
func (p *PressedKeys) Held(keycode uint32) bool {
	_, ok := p.down[keycode]
	return ok
}

// OnlyModifiers reports whether every held key is a modifier.
func (p *PressedKeys) OnlyModifiers() bool {
	for _, s := range p.down {
		if !s.IsModifier() {
			return false
		}
	}
	return true
}

// Len returns the number of held keys.
func (p *PressedKeys) Len() int {
	return len(p.down)
}
