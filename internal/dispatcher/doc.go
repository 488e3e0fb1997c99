// Package dispatcher executes configured action lists.
//
// A binding yields an ordered list of actions and, for pointer bindings,
// the window it fired on. Run walks the list depth first. Before each
// action the target window is resolved again:
//
//   - a binding with an activator window always targets that window, and
//     once it is destroyed the rest of the list runs with no target;
//   - keyboard-triggered Focus, Move and Resize target the window under
//     the cursor;
//   - every other action targets the focused window.
//
// Kinds are routed through a Registry to handlers. The window, desktop,
// seat and system handler packages are registered by New; tests and
// embedders may replace any of them.
//
// If and ForEach are evaluated here because they run nested lists. An If
// with a message.prompt spawns the prompt command and records a Prompt
// keyed by pid; ProcessExited later runs the then or else branch against
// the window captured at spawn time.
//
// Pre-dispatch hooks may cancel an action. While the window switcher is
// active, SwitcherGate rejects everything except NextWindow and
// PreviousWindow.
package dispatcher
