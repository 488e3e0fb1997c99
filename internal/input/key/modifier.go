package key

import "strings"

// Modifier is a keyboard modifier mask in xkb bit order.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	ModShift Modifier = 1 << 0
	ModCaps  Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
	ModAlt   Modifier = 1 << 3
	ModMod2  Modifier = 1 << 4
	ModMod3  Modifier = 1 << 5
	ModLogo  Modifier = 1 << 6
	ModMod5  Modifier = 1 << 7
)

// lockMask covers lock modifiers that never take part in matching.
const lockMask = ModCaps | ModMod2

// Has returns true if m contains every modifier in mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// Effective strips lock modifiers (Caps Lock, Num Lock).
func (m Modifier) Effective() Modifier {
	return m &^ lockMask
}

// Matches reports whether the pressed mask m satisfies a binding mask
// exactly, ignoring lock modifiers.
func (m Modifier) Matches(binding Modifier) bool {
	return m.Effective() == binding.Effective()
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m.Effective() == ModNone
}

var modifierLetters = []struct {
	letter string
	mod    Modifier
}{
	{"S", ModShift},
	{"C", ModCtrl},
	{"A", ModAlt},
	{"W", ModLogo},
	{"M", ModMod5},
	{"H", ModMod3},
}

// String returns the compact prefix form, like "W-S".
func (m Modifier) String() string {
	var parts []string
	for _, ml := range modifierLetters {
		if m&ml.mod != 0 {
			parts = append(parts, ml.letter)
		}
	}
	return strings.Join(parts, "-")
}

// ModifierFromLetter returns the modifier for a prefix letter,
// case-insensitively.
func ModifierFromLetter(s string) (Modifier, bool) {
	for _, ml := range modifierLetters {
		if strings.EqualFold(ml.letter, s) {
			return ml.mod, true
		}
	}
	return ModNone, false
}

// ParseModifiers parses a hyphen-separated modifier list like "W-S".
// The empty string yields ModNone.
func ParseModifiers(s string) (Modifier, error) {
	var mods Modifier
	if strings.TrimSpace(s) == "" {
		return mods, nil
	}
	for _, part := range strings.Split(s, "-") {
		mod, ok := ModifierFromLetter(strings.TrimSpace(part))
		if !ok {
			return ModNone, &ParseError{Spec: s, Reason: "unknown modifier " + part}
		}
		mods |= mod
	}
	return mods, nil
}

// SymModifier returns the modifier a modifier keysym controls.
func SymModifier(sym Sym) Modifier {
	switch sym {
	case SymShiftL, SymShiftR:
		return ModShift
	case SymControlL, SymControlR:
		return ModCtrl
	case SymAltL, SymAltR, SymMetaL, SymMetaR:
		return ModAlt
	case SymSuperL, SymSuperR:
		return ModLogo
	case SymCapsLock:
		return ModCaps
	}
	return ModNone
}
