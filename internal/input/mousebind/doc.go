// Package mousebind matches pointer button and scroll events against the
// configured mousebind table.
//
// A press marks click and drag bindings as pending unless it completes a
// double-click; press bindings fire at once. A release fires release
// bindings and pending click bindings, then clears every pending flag on
// that button. Pending drag bindings fire once the pointer moves past the
// drag threshold, using the context captured at press time. Bindings in
// the Frame or All context consume the event so clients never see it.
package mousebind
