package cursor

import (
	"strings"

	"github.com/dshills/driftwm/internal/scene"
	"github.com/dshills/driftwm/internal/wm"
)

// Element is the classification of what lies under the pointer.
type Element uint8

const (
	ElementNone Element = iota
	ElementRoot
	ElementClient
	ElementTitlebar
	ElementTitle

	// Titlebar buttons; keep contiguous.
	ElementButtonWindowMenu
	ElementButtonIconify
	ElementButtonMaximize
	ElementButtonShade
	ElementButtonOmnipresent
	ElementButtonClose

	// Resize corners and edges; keep contiguous.
	ElementCornerTopLeft
	ElementCornerTopRight
	ElementCornerBottomRight
	ElementCornerBottomLeft
	ElementTop
	ElementRight
	ElementBottom
	ElementLeft

	// Containers that only appear in binding contexts.
	ElementFrame
	ElementAll
	ElementButton

	ElementMenu
	ElementLayerSurface
	ElementLayerSubsurface
	ElementUnmanaged
)

var elementNames = []struct {
	name string
	e    Element
}{
	{"none", ElementNone},
	{"root", ElementRoot},
	{"client", ElementClient},
	{"titlebar", ElementTitlebar},
	{"title", ElementTitle},
	{"windowmenu", ElementButtonWindowMenu},
	{"iconify", ElementButtonIconify},
	{"maximize", ElementButtonMaximize},
	{"shade", ElementButtonShade},
	{"alldesktops", ElementButtonOmnipresent},
	{"close", ElementButtonClose},
	{"tlcorner", ElementCornerTopLeft},
	{"trcorner", ElementCornerTopRight},
	{"brcorner", ElementCornerBottomRight},
	{"blcorner", ElementCornerBottomLeft},
	{"top", ElementTop},
	{"right", ElementRight},
	{"bottom", ElementBottom},
	{"left", ElementLeft},
	{"frame", ElementFrame},
	{"all", ElementAll},
	{"button", ElementButton},
	{"menu", ElementMenu},
	{"layersurface", ElementLayerSurface},
	{"layersubsurface", ElementLayerSubsurface},
	{"unmanaged", ElementUnmanaged},
}

// String returns the configuration name of the element.
func (e Element) String() string {
	for _, n := range elementNames {
		if n.e == e {
			return n.name
		}
	}
	return "unknown"
}

// ParseElement parses a binding context name, case-insensitively.
// "desktop" is accepted for root and "omnipresent" for the all-desktops button.
func ParseElement(s string) (Element, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "desktop":
		return ElementRoot, true
	case "omnipresent":
		return ElementButtonOmnipresent, true
	}
	for _, n := range elementNames {
		if n.name == s {
			return n.e, true
		}
	}
	return ElementNone, false
}

// IsButton reports whether e is a titlebar button.
func (e Element) IsButton() bool {
	return e >= ElementButtonWindowMenu && e <= ElementButtonClose
}

// IsResizeEdge reports whether e is a resize corner or edge.
func (e Element) IsResizeEdge() bool {
	return e >= ElementCornerTopLeft && e <= ElementLeft
}

// IsDecoration reports whether e is part of a window's server-side frame.
func (e Element) IsDecoration() bool {
	return e == ElementTitlebar || e == ElementTitle || e.IsButton() || e.IsResizeEdge()
}

// Contains reports whether a binding context whole matches a resolved
// element candidate.
func Contains(whole, candidate Element) bool {
	if whole == candidate {
		return true
	}
	switch whole {
	case ElementAll:
		return candidate != ElementNone
	case ElementButton:
		return candidate.IsButton()
	case ElementTitlebar:
		return candidate == ElementTitle || candidate.IsButton()
	case ElementFrame:
		return candidate.IsDecoration() || candidate == ElementClient
	case ElementTop:
		return candidate == ElementCornerTopLeft || candidate == ElementCornerTopRight
	case ElementRight:
		return candidate == ElementCornerTopRight || candidate == ElementCornerBottomRight
	case ElementBottom:
		return candidate == ElementCornerBottomLeft || candidate == ElementCornerBottomRight
	case ElementLeft:
		return candidate == ElementCornerTopLeft || candidate == ElementCornerBottomLeft
	}
	return false
}

// Edges returns the resize edges an element stands for.
func (e Element) Edges() wm.Edges {
	switch e {
	case ElementCornerTopLeft:
		return wm.EdgeTop | wm.EdgeLeft
	case ElementCornerTopRight:
		return wm.EdgeTop | wm.EdgeRight
	case ElementCornerBottomRight:
		return wm.EdgeBottom | wm.EdgeRight
	case ElementCornerBottomLeft:
		return wm.EdgeBottom | wm.EdgeLeft
	case ElementTop:
		return wm.EdgeTop
	case ElementRight:
		return wm.EdgeRight
	case ElementBottom:
		return wm.EdgeBottom
	case ElementLeft:
		return wm.EdgeLeft
	}
	return wm.EdgeNone
}

// CursorName returns the cursor image shown over e in passthrough mode.
func (e Element) CursorName() string {
	if e.IsResizeEdge() {
		return e.Edges().CursorName()
	}
	return "default"
}

func buttonElement(b scene.Button) Element {
	switch b {
	case scene.ButtonWindowMenu:
		return ElementButtonWindowMenu
	case scene.ButtonIconify:
		return ElementButtonIconify
	case scene.ButtonMaximize:
		return ElementButtonMaximize
	case scene.ButtonShade:
		return ElementButtonShade
	case scene.ButtonOmnipresent:
		return ElementButtonOmnipresent
	case scene.ButtonClose:
		return ElementButtonClose
	}
	return ElementNone
}
