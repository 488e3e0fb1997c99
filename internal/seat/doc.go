// Package seat routes device input for the single compositor seat.
//
// Every pointer and keyboard event enters through a Seat method. The seat
// resolves what is under the cursor, consults the input mode, and then
// either feeds the event to the active modal operation (interactive move
// or resize, an open menu, the window switcher), runs the mousebinds or
// keybinds it matches, or forwards it to the client that owns pointer or
// keyboard focus through a Notifier.
//
// The seat holds only weak references to windows. It subscribes to the
// window manager's lifecycle topics and, when a window is destroyed,
// clears the pressed state, abandons any grab, menu or switcher that
// targets it, destroys its pointer constraints and re-runs focus
// resolution once the window is gone.
//
// A Seat is not safe for concurrent use; it runs on the event loop.
package seat
