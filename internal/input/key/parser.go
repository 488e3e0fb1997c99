package key

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySpec is returned for an empty key specification.
var ErrEmptySpec = errors.New("key: empty key specification")

// ParseError describes a malformed key specification.
type ParseError struct {
	Spec   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("key: invalid specification %q: %s", e.Spec, e.Reason)
}

// Combo is a parsed key specification.
type Combo struct {
	Mods Modifier
	Sym  Sym
}

// String returns the canonical specification.
func (c Combo) String() string {
	if m := c.Mods.String(); m != "" {
		return m + "-" + c.Sym.String()
	}
	return c.Sym.String()
}

// Matches reports whether a pressed key with mods matches the combo.
func (c Combo) Matches(sym Sym, mods Modifier) bool {
	return c.Sym.Lower() == sym.Lower() && mods.Matches(c.Mods)
}

// Parse parses a specification like "W-S-Return" or "A-Tab". A trailing
// hyphen names the minus key: "C--".
func Parse(spec string) (Combo, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combo{}, ErrEmptySpec
	}
	keyPart := spec
	var modPart string
	if strings.HasSuffix(spec, "--") {
		keyPart = "-"
		modPart = strings.TrimSuffix(spec, "--")
	} else if i := strings.LastIndex(spec, "-"); i > 0 {
		modPart, keyPart = spec[:i], spec[i+1:]
	}
	if keyPart == "" {
		return Combo{}, &ParseError{Spec: spec, Reason: "missing key"}
	}
	mods, err := ParseModifiers(modPart)
	if err != nil {
		return Combo{}, err
	}
	sym, ok := SymFromName(keyPart)
	if !ok {
		return Combo{}, &ParseError{Spec: spec, Reason: "unknown key " + keyPart}
	}
	return Combo{Mods: mods, Sym: sym}, nil
}

// MustParse is Parse for static specifications.
func MustParse(spec string) Combo {
	c, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return c
}
