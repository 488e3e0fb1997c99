package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Sym is a keysym.
type Sym uint32

// Common keysyms.
const (
	SymNone Sym = 0

	SymSpace     Sym = 0x0020
	SymBackSpace Sym = 0xff08
	SymTab       Sym = 0xff09
	SymReturn    Sym = 0xff0d
	SymEscape    Sym = 0xff1b
	SymDelete    Sym = 0xffff
	SymHome      Sym = 0xff50
	SymLeft      Sym = 0xff51
	SymUp        Sym = 0xff52
	SymRight     Sym = 0xff53
	SymDown      Sym = 0xff54
	SymPrior     Sym = 0xff55
	SymNext      Sym = 0xff56
	SymEnd       Sym = 0xff57
	SymPrint     Sym = 0xff61
	SymF1        Sym = 0xffbe
	SymF12       Sym = 0xffc9

	SymLeftTab Sym = 0xfe20

	SymShiftL   Sym = 0xffe1
	SymShiftR   Sym = 0xffe2
	SymControlL Sym = 0xffe3
	SymControlR Sym = 0xffe4
	SymCapsLock Sym = 0xffe5
	SymMetaL    Sym = 0xffe7
	SymMetaR    Sym = 0xffe8
	SymAltL     Sym = 0xffe9
	SymAltR     Sym = 0xffea
	SymSuperL   Sym = 0xffeb
	SymSuperR   Sym = 0xffec

	SymAudioLowerVolume  Sym = 0x1008ff11
	SymAudioMute         Sym = 0x1008ff12
	SymAudioRaiseVolume  Sym = 0x1008ff13
	SymMonBrightnessUp   Sym = 0x1008ff02
	SymMonBrightnessDown Sym = 0x1008ff03
)

var symNames = map[string]Sym{
	"space":                 SymSpace,
	"BackSpace":             SymBackSpace,
	"Tab":                   SymTab,
	"ISO_Left_Tab":          SymLeftTab,
	"Return":                SymReturn,
	"Escape":                SymEscape,
	"Delete":                SymDelete,
	"Home":                  SymHome,
	"Left":                  SymLeft,
	"Up":                    SymUp,
	"Right":                 SymRight,
	"Down":                  SymDown,
	"Prior":                 SymPrior,
	"Page_Up":               SymPrior,
	"Next":                  SymNext,
	"Page_Down":             SymNext,
	"End":                   SymEnd,
	"Print":                 SymPrint,
	"Shift_L":               SymShiftL,
	"Shift_R":               SymShiftR,
	"Control_L":             SymControlL,
	"Control_R":             SymControlR,
	"Caps_Lock":             SymCapsLock,
	"Meta_L":                SymMetaL,
	"Meta_R":                SymMetaR,
	"Alt_L":                 SymAltL,
	"Alt_R":                 SymAltR,
	"Super_L":               SymSuperL,
	"Super_R":               SymSuperR,
	"minus":                 '-',
	"plus":                  '+',
	"equal":                 '=',
	"comma":                 ',',
	"period":                '.',
	"slash":                 '/',
	"XF86AudioLowerVolume":  SymAudioLowerVolume,
	"XF86AudioMute":         SymAudioMute,
	"XF86AudioRaiseVolume":  SymAudioRaiseVolume,
	"XF86MonBrightnessUp":   SymMonBrightnessUp,
	"XF86MonBrightnessDown": SymMonBrightnessDown,
}

var symAliases = map[string]bool{"Page_Up": true, "Page_Down": true}

var symByValue = func() map[Sym]string {
	m := make(map[Sym]string, len(symNames))
	for name, s := range symNames {
		if !symAliases[name] {
			m[s] = name
		}
	}
	return m
}()

// SymFromName looks up a keysym by name. Names match case-insensitively;
// single printable characters map to their Latin-1 keysym and F1..F12 to
// function keys.
func SymFromName(name string) (Sym, bool) {
	if s, ok := symNames[name]; ok {
		return s, true
	}
	for n, s := range symNames {
		if strings.EqualFold(n, name) {
			return s, true
		}
	}
	if r := []rune(name); len(r) == 1 && r[0] > 0x20 && r[0] <= 0xff {
		return Sym(r[0]), true
	}
	var fn int
	if _, err := fmt.Sscanf(strings.ToUpper(name), "F%d", &fn); err == nil && fn >= 1 && fn <= 12 {
		return SymF1 + Sym(fn-1), true
	}
	return SymNone, false
}

// String returns the keysym name.
func (s Sym) String() string {
	if name, ok := symByValue[s]; ok {
		return name
	}
	if s >= SymF1 && s <= SymF12 {
		return fmt.Sprintf("F%d", s-SymF1+1)
	}
	if s > 0x20 && s <= 0xff {
		return string(rune(s))
	}
	return fmt.Sprintf("0x%x", uint32(s))
}

// Lower folds Latin-1 letters to lower case so bindings match regardless
// of Shift or Caps Lock.
func (s Sym) Lower() Sym {
	if s <= 0xff {
		return Sym(unicode.ToLower(rune(s)))
	}
	return s
}

// IsModifier reports whether s is a modifier key.
func (s Sym) IsModifier() bool {
	return SymModifier(s) != ModNone
}
