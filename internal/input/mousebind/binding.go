package mousebind

import (
	"fmt"

	"github.com/dshills/driftwm/internal/action"
	"github.com/dshills/driftwm/internal/cursor"
	"github.com/dshills/driftwm/internal/input/key"
)

// Binding maps a pointer gesture in a context to an action list.
// Bindings are immutable once built.
type Binding struct {
	Context cursor.Element
	// Button is set for button gestures.
	Button Button
	// Direction is set for scroll gestures.
	Direction Direction
	Mods      key.Modifier
	Event     EventKind
	Actions   []action.Action
}

// String returns a short description for logs.
func (b *Binding) String() string {
	trigger := b.Button.String()
	if b.Event == EventScroll {
		trigger = b.Direction.String()
	}
	if m := b.Mods.String(); m != "" {
		trigger = m + "-" + trigger
	}
	return fmt.Sprintf("%s %s on %s", b.Event, trigger, b.Context)
}

// matchesButton reports whether b applies to a button event.
func (b *Binding) matchesButton(ctx cursor.Element, button Button, mods key.Modifier) bool {
	return b.Event != EventScroll &&
		b.Button == button &&
		mods.Matches(b.Mods) &&
		cursor.Contains(b.Context, ctx)
}

// consumes reports whether a match of b hides the event from clients.
func (b *Binding) consumes() bool {
	return b.Context == cursor.ElementFrame || b.Context == cursor.ElementAll
}
