package seat

import (
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/mousebind"
)

// Device events. Time is a monotonic timestamp in milliseconds.

// Motion is relative pointer motion.
type Motion struct {
	Time   uint32
	DX, DY float64
}

// MotionAbsolute is absolute pointer motion in device-normalized [0, 1]
// coordinates over the output layout.
type MotionAbsolute struct {
	Time uint32
	X, Y float64
}

// Button is a pointer button press or release.
type Button struct {
	Time    uint32
	Button  mousebind.Button
	Pressed bool
}

// AxisSource is the device class that produced a scroll event.
type AxisSource uint8

const (
	SourceWheel AxisSource = iota
	SourceFinger
	SourceContinuous
	SourceWheelTilt
)

// Axis is a scroll event on one axis.
type Axis struct {
	Time        uint32
	Orientation mousebind.Orientation
	// Delta is the continuous scroll distance. Zero with a zero Discrete
	// ends a scroll sequence.
	Delta float64
	// Discrete is the high-resolution wheel delta, 120 per detent, or 0
	// for continuous sources.
	Discrete int
	Source   AxisSource
}

// Frame groups the pointer events sent before it.
type Frame struct {
	Time uint32
}

// HandleEvent routes a device event to the matching Seat method. It
// reports false for event types the seat does not know.
func (s *Seat) HandleEvent(ev any) bool {
	switch e := ev.(type) {
	case Motion:
		s.Motion(e)
	case MotionAbsolute:
		s.MotionAbsolute(e)
	case Button:
		s.Button(e)
	case Axis:
		s.Axis(e)
	case Frame:
		s.Frame(e)
	case key.Event:
		s.Key(e)
	default:
		return false
	}
	return true
}
