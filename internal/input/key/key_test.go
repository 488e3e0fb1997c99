package key

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		mods Modifier
		sym  Sym
	}{
		{"W-Return", ModLogo, SymReturn},
		{"A-Tab", ModAlt, SymTab},
		{"A-S-Tab", ModAlt | ModShift, SymTab},
		{"C-A-Delete", ModCtrl | ModAlt, SymDelete},
		{"W-a", ModLogo, 'a'},
		{"W-F4", ModLogo, SymF1 + 3},
		{"C--", ModCtrl, '-'},
		{"XF86AudioMute", ModNone, SymAudioMute},
		{"w-return", ModLogo, SymReturn},
		{"H-M-space", ModMod3 | ModMod5, SymSpace},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			c, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if c.Mods != tt.mods || c.Sym != tt.sym {
				t.Errorf("Parse = %v/%v, want %v/%v", c.Mods, c.Sym, tt.mods, tt.sym)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrEmptySpec) {
		t.Errorf("empty: %v", err)
	}
	for _, spec := range []string{"Q-Return", "W-NoSuchKey", "W-"} {
		var pe *ParseError
		if _, err := Parse(spec); !errors.As(err, &pe) {
			t.Errorf("Parse(%q) err = %v, want ParseError", spec, err)
		}
	}
}

func TestComboMatchesIgnoresLocksAndCase(t *testing.T) {
	c := MustParse("W-S-a")
	tests := []struct {
		name string
		sym  Sym
		mods Modifier
		want bool
	}{
		{"exact", 'a', ModLogo | ModShift, true},
		{"shifted sym", 'A', ModLogo | ModShift, true},
		{"caps and numlock", 'A', ModLogo | ModShift | ModCaps | ModMod2, true},
		{"missing shift", 'a', ModLogo, false},
		{"extra ctrl", 'a', ModLogo | ModShift | ModCtrl, false},
		{"other key", 'b', ModLogo | ModShift, false},
	}
	for _, tt := range tests {
		if got := c.Matches(tt.sym, tt.mods); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestComboString(t *testing.T) {
	for _, spec := range []string{"S-W-Return", "A-Tab", "F12", "Prior"} {
		c := MustParse(spec)
		back := MustParse(c.String())
		if back != c {
			t.Errorf("%q -> %q does not reparse to the same combo", spec, c.String())
		}
	}
	if s := MustParse("W-S-Return").String(); s != "S-W-Return" {
		t.Errorf("String = %q", s)
	}
}

func TestPressedKeys(t *testing.T) {
	p := NewPressedKeys()
	p.Update(Event{Keycode: 64, Sym: SymAltL, Pressed: true})
	if !p.OnlyModifiers() {
		t.Error("only Alt held")
	}
	p.Update(Event{Keycode: 23, Sym: SymTab, Pressed: true})
	if p.OnlyModifiers() || p.Len() != 2 {
		t.Error("Tab held")
	}
	if n := p.Update(Event{Keycode: 23, Sym: SymTab}); n != 1 {
		t.Errorf("held = %d", n)
	}
	if !p.Held(64) || p.Held(23) {
		t.Error("Held")
	}
}
