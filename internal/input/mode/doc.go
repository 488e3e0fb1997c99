// Package mode implements the exclusive input mode of the seat.
//
// Exactly one mode is active at a time:
//
//   - Passthrough: pointer and keyboard events go to clients and bindings
//   - Move: pointer motion drags a grabbed window
//   - Resize: pointer motion resizes a grabbed window along active edges
//   - Menu: pointer and keyboard drive an open menu
//   - WindowSwitcher: only window cycling is accepted
//
// Every non-passthrough mode is entered from Passthrough and returns to
// it. Attempting to enter one modal state from another fails with
// ErrNotPassthrough so that two grabs can never overlap.
package mode
