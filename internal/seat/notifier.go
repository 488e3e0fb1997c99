package seat

import (
	"fmt"

	"github.com/dshills/driftwm/internal/constraint"
	"github.com/dshills/driftwm/internal/input/key"
	"github.com/dshills/driftwm/internal/input/mousebind"
	"github.com/dshills/driftwm/internal/wm"
)

// NotifyKind is the type of a client notification.
type NotifyKind uint8

const (
	NotifyPointerEnter NotifyKind = iota
	NotifyPointerLeave
	NotifyPointerMotion
	NotifyPointerButton
	NotifyPointerAxis
	NotifyPointerFrame
	NotifyKeyboardEnter
	NotifyKeyboardLeave
	NotifyKey
	NotifyModifiers
	NotifyConstraintActivated
	NotifyConstraintDeactivated
)

var notifyNames = [...]string{
	NotifyPointerEnter:          "pointer-enter",
	NotifyPointerLeave:          "pointer-leave",
	NotifyPointerMotion:         "pointer-motion",
	NotifyPointerButton:         "pointer-button",
	NotifyPointerAxis:           "pointer-axis",
	NotifyPointerFrame:          "pointer-frame",
	NotifyKeyboardEnter:         "keyboard-enter",
	NotifyKeyboardLeave:         "keyboard-leave",
	NotifyKey:                   "key",
	NotifyModifiers:             "modifiers",
	NotifyConstraintActivated:   "constraint-activated",
	NotifyConstraintDeactivated: "constraint-deactivated",
}

// String returns the notification name.
func (k NotifyKind) String() string {
	if int(k) < len(notifyNames) {
		return notifyNames[k]
	}
	return "unknown"
}

// Notification is one event sent to a client surface. Only the fields
// relevant to Kind are set.
type Notification struct {
	Kind    NotifyKind
	Surface wm.SurfaceID
	Time    uint32

	// SX and SY are surface-local pointer coordinates.
	SX, SY float64

	Button  mousebind.Button
	Pressed bool

	Orientation mousebind.Orientation
	Delta       float64
	Discrete    int

	Keycode uint32
	Mods    key.Modifier

	Constraint constraint.ID
}

// String returns a short description for logs.
func (n Notification) String() string {
	return fmt.Sprintf("%s surface=%d", n.Kind, n.Surface)
}

// Notifier is the windowing-protocol side of the seat: it turns
// notifications into wire events.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

// RecordingNotifier records every notification in order.
type RecordingNotifier struct {
	Events []Notification
}

// Notify implements Notifier.
func (r *RecordingNotifier) Notify(n Notification) {
	r.Events = append(r.Events, n)
}

// Of returns the recorded notifications of kind.
func (r *RecordingNotifier) Of(kind NotifyKind) []Notification {
	var out []Notification
	for _, n := range r.Events {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// Count returns how many notifications of kind were recorded.
func (r *RecordingNotifier) Count(kind NotifyKind) int {
	return len(r.Of(kind))
}

// Last returns the most recent notification and false if none.
func (r *RecordingNotifier) Last() (Notification, bool) {
	if len(r.Events) == 0 {
		return Notification{}, false
	}
	return r.Events[len(r.Events)-1], true
}

// Reset forgets recorded notifications.
func (r *RecordingNotifier) Reset() {
	r.Events = r.Events[:0]
}
