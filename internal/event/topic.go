package event

import "strings"

// Topic is a dotted event name such as "window.destroyed". Patterns may
// use "*" for one segment and a final "**" for any remainder, so
// "window.*" sees every window event and "**" sees everything.
type Topic string

func (t Topic) String() string { return string(t) }

// IsValid reports whether t has no empty segments and uses "**" only as
// its last segment.
func (t Topic) IsValid() bool {
	if t == "" {
		return false
	}
	rest := string(t)
	for rest != "" {
		seg, tail, more := strings.Cut(rest, ".")
		if seg == "" || (seg == "**" && more) || (more && tail == "") {
			return false
		}
		rest = tail
	}
	return true
}

// Matches reports whether t is selected by pattern.
func (t Topic) Matches(pattern Topic) bool {
	name, pat := string(t), string(pattern)
	for {
		p, prest, pmore := strings.Cut(pat, ".")
		if p == "**" {
			return true
		}
		n, nrest, nmore := strings.Cut(name, ".")
		if p != "*" && p != n {
			return false
		}
		if !nmore {
			return !pmore || prest == "**"
		}
		if !pmore {
			return false
		}
		name, pat = nrest, prest
	}
}
