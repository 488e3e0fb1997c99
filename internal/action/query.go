package action

import (
	"golang.org/x/text/cases"

	"github.com/dshills/driftwm/internal/wm"
)

// Tristate is an optional boolean query criterion.
type Tristate uint8

const (
	Any Tristate = iota
	Yes
	No
)

// ParseTristate parses "yes"/"no"-style strings; the empty string is Any.
func ParseTristate(s string) (Tristate, bool) {
	if s == "" {
		return Any, true
	}
	b, ok := parseBool(s)
	if !ok {
		return Any, false
	}
	if b {
		return Yes, true
	}
	return No, true
}

func (t Tristate) matches(v bool) bool {
	switch t {
	case Yes:
		return v
	case No:
		return !v
	}
	return true
}

// Query matches windows. All set criteria must match.
type Query struct {
	// Identifier and Title are case-insensitive globs supporting * and ?.
	Identifier string
	Title      string

	Focused     Tristate
	Iconified   Tristate
	Fullscreen  Tristate
	Shaded      Tristate
	Omnipresent Tristate
	AlwaysOnTop Tristate

	// Maximized is "both", "horizontal", "vertical", "none" or empty.
	Maximized string
	// Tiled is a direction, "any", "none" or empty.
	Tiled string
	// Decoration is "full", "border", "none" or empty.
	Decoration string
	// Workspace is a workspace name, "current" or empty.
	Workspace string
	// Output is an output name, "current" or empty.
	Output string
}

// State is the window-manager state queries consult.
type State interface {
	Focused() *wm.Window
	Current() *wm.Workspace
	OutputFor(w *wm.Window) *wm.Output
}

// Matches reports whether w satisfies every criterion of q.
func (q Query) Matches(w *wm.Window, st State) bool {
	if w == nil {
		return false
	}
	if q.Identifier != "" && !Glob(q.Identifier, w.AppID) {
		return false
	}
	if q.Title != "" && !Glob(q.Title, w.Title) {
		return false
	}
	if q.Focused != Any && !q.Focused.matches(st != nil && st.Focused() == w) {
		return false
	}
	if !q.Iconified.matches(w.Minimized) || !q.Fullscreen.matches(w.Fullscreen) ||
		!q.Shaded.matches(w.Shaded) || !q.Omnipresent.matches(w.Omnipresent) ||
		!q.AlwaysOnTop.matches(w.AlwaysOnTop) {
		return false
	}
	if q.Maximized != "" {
		want, ok := wm.ParseAxis(q.Maximized)
		if q.Maximized == "none" {
			want, ok = wm.AxisNone, true
		}
		if !ok || w.Maximized != want {
			return false
		}
	}
	switch q.Tiled {
	case "":
	case "any":
		if w.Tiled == wm.DirNone {
			return false
		}
	case "none":
		if w.Tiled != wm.DirNone {
			return false
		}
	default:
		if d, ok := wm.ParseDirection(q.Tiled); !ok || w.Tiled != d {
			return false
		}
	}
	if q.Decoration != "" && w.Decorations.String() != q.Decoration {
		return false
	}
	if q.Workspace != "" {
		name := q.Workspace
		if name == "current" && st != nil && st.Current() != nil {
			name = st.Current().Name
		}
		if !w.Omnipresent && (w.Workspace == nil || w.Workspace.Name != name) {
			return false
		}
	}
	if q.Output != "" && st != nil {
		o := st.OutputFor(w)
		name := q.Output
		if name == "current" {
			name = ""
			if f := st.Focused(); f != nil {
				if fo := st.OutputFor(f); fo != nil {
					name = fo.Name
				}
			}
		}
		if o == nil || o.Name != name {
			return false
		}
	}
	return true
}

// MatchAny reports whether w matches at least one query.
func MatchAny(queries []Query, w *wm.Window, st State) bool {
	for _, q := range queries {
		if q.Matches(w, st) {
			return true
		}
	}
	return false
}

// Glob matches s against a pattern where * matches any run of characters
// and ? matches exactly one. Matching is case-insensitive.
func Glob(pattern, s string) bool {
	fold := cases.Fold()
	p := []rune(fold.String(pattern))
	r := []rune(fold.String(s))

	// Iterative matching with single-star backtracking.
	pi, si := 0, 0
	star, mark := -1, 0
	for si < len(r) {
		switch {
		case pi < len(p) && (p[pi] == '?' || p[pi] == r[si]):
			pi++
			si++
		case pi < len(p) && p[pi] == '*':
			star, mark = pi, si
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			si = mark
		default:
			return false
		}
	}
	for pi < len(p) && p[pi] == '*' {
		pi++
	}
	return pi == len(p)
}
