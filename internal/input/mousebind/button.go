package mousebind

import (
	"fmt"
	"strings"
)

// Button is a pointer button in evdev numbering.
type Button uint32

const (
	BtnNone    Button = 0
	BtnLeft    Button = 0x110
	BtnRight   Button = 0x111
	BtnMiddle  Button = 0x112
	BtnSide    Button = 0x113
	BtnExtra   Button = 0x114
	BtnForward Button = 0x115
	BtnBack    Button = 0x116
	BtnTask    Button = 0x117
)

var buttonNames = []struct {
	name string
	b    Button
}{
	{"left", BtnLeft},
	{"right", BtnRight},
	{"middle", BtnMiddle},
	{"side", BtnSide},
	{"extra", BtnExtra},
	{"forward", BtnForward},
	{"back", BtnBack},
	{"task", BtnTask},
}

// String returns the configuration name of the button.
func (b Button) String() string {
	for _, n := range buttonNames {
		if n.b == b {
			return n.name
		}
	}
	return fmt.Sprintf("button(0x%x)", uint32(b))
}

// ParseButton parses a button name case-insensitively.
func ParseButton(s string) (Button, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range buttonNames {
		if n.name == s {
			return n.b, true
		}
	}
	return BtnNone, false
}

// Direction is a scroll direction.
type Direction uint8

const (
	ScrollNone Direction = iota
	ScrollUp
	ScrollDown
	ScrollLeft
	ScrollRight
)

// String returns the configuration name of the direction.
func (d Direction) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection parses a scroll direction name case-insensitively.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return ScrollUp, true
	case "down":
		return ScrollDown, true
	case "left":
		return ScrollLeft, true
	case "right":
		return ScrollRight, true
	default:
		return ScrollNone, false
	}
}

// Orientation is a scroll axis.
type Orientation uint8

const (
	Vertical Orientation = iota
	Horizontal
)

// StepDirection returns the direction of a step of the given sign.
func (o Orientation) StepDirection(steps int) Direction {
	switch {
	case steps == 0:
		return ScrollNone
	case o == Vertical && steps < 0:
		return ScrollUp
	case o == Vertical:
		return ScrollDown
	case steps < 0:
		return ScrollLeft
	default:
		return ScrollRight
	}
}

// EventKind is the gesture a binding reacts to.
type EventKind uint8

const (
	EventPress EventKind = iota
	EventRelease
	EventClick
	EventDoubleClick
	EventDrag
	EventScroll
)

var eventNames = []struct {
	name string
	k    EventKind
}{
	{"press", EventPress},
	{"release", EventRelease},
	{"click", EventClick},
	{"doubleclick", EventDoubleClick},
	{"drag", EventDrag},
	{"scroll", EventScroll},
}

// String returns the configuration name.
func (k EventKind) String() string {
	for _, n := range eventNames {
		if n.k == k {
			return n.name
		}
	}
	return "unknown"
}

// ParseEventKind parses an event kind name case-insensitively.
func ParseEventKind(s string) (EventKind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range eventNames {
		if n.name == s {
			return n.k, true
		}
	}
	return EventPress, false
}
