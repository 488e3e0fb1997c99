package action

import "strings"

// Kind is an action type.
type Kind uint8

const (
	Invalid Kind = iota
	None
	Close
	Kill
	Debug
	Execute
	Exit
	Reconfigure
	ShowMenu
	NextWindow
	PreviousWindow
	Focus
	Unfocus
	Raise
	Lower
	Iconify
	Move
	Resize
	ResizeRelative
	MoveTo
	ResizeTo
	MoveRelative
	MoveToCursor
	Maximize
	UnMaximize
	ToggleMaximize
	ToggleFullscreen
	SnapToEdge
	ToggleSnapToEdge
	MoveToEdge
	GrowToEdge
	ShrinkToEdge
	SnapToRegion
	ToggleSnapToRegion
	UnSnap
	SetDecorations
	ToggleDecorations
	ToggleAlwaysOnTop
	ToggleAlwaysOnBottom
	ToggleOmnipresent
	Shade
	Unshade
	ToggleShade
	GoToDesktop
	SendToDesktop
	FocusOutput
	MoveToOutput
	FitToOutput
	AutoPlace
	ToggleKeybinds
	WarpCursor
	HideCursor
	ZoomIn
	ZoomOut
	ToggleMagnify
	ToggleTearing
	VirtualOutputAdd
	VirtualOutputRemove
	If
	ForEach

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:              "Invalid",
	None:                 "None",
	Close:                "Close",
	Kill:                 "Kill",
	Debug:                "Debug",
	Execute:              "Execute",
	Exit:                 "Exit",
	Reconfigure:          "Reconfigure",
	ShowMenu:             "ShowMenu",
	NextWindow:           "NextWindow",
	PreviousWindow:       "PreviousWindow",
	Focus:                "Focus",
	Unfocus:              "Unfocus",
	Raise:                "Raise",
	Lower:                "Lower",
	Iconify:              "Iconify",
	Move:                 "Move",
	Resize:               "Resize",
	ResizeRelative:       "ResizeRelative",
	MoveTo:               "MoveTo",
	ResizeTo:             "ResizeTo",
	MoveRelative:         "MoveRelative",
	MoveToCursor:         "MoveToCursor",
	Maximize:             "Maximize",
	UnMaximize:           "UnMaximize",
	ToggleMaximize:       "ToggleMaximize",
	ToggleFullscreen:     "ToggleFullscreen",
	SnapToEdge:           "SnapToEdge",
	ToggleSnapToEdge:     "ToggleSnapToEdge",
	MoveToEdge:           "MoveToEdge",
	GrowToEdge:           "GrowToEdge",
	ShrinkToEdge:         "ShrinkToEdge",
	SnapToRegion:         "SnapToRegion",
	ToggleSnapToRegion:   "ToggleSnapToRegion",
	UnSnap:               "UnSnap",
	SetDecorations:       "SetDecorations",
	ToggleDecorations:    "ToggleDecorations",
	ToggleAlwaysOnTop:    "ToggleAlwaysOnTop",
	ToggleAlwaysOnBottom: "ToggleAlwaysOnBottom",
	ToggleOmnipresent:    "ToggleOmnipresent",
	Shade:                "Shade",
	Unshade:              "Unshade",
	ToggleShade:          "ToggleShade",
	GoToDesktop:          "GoToDesktop",
	SendToDesktop:        "SendToDesktop",
	FocusOutput:          "FocusOutput",
	MoveToOutput:         "MoveToOutput",
	FitToOutput:          "FitToOutput",
	AutoPlace:            "AutoPlace",
	ToggleKeybinds:       "ToggleKeybinds",
	WarpCursor:           "WarpCursor",
	HideCursor:           "HideCursor",
	ZoomIn:               "ZoomIn",
	ZoomOut:              "ZoomOut",
	ToggleMagnify:        "ToggleMagnify",
	ToggleTearing:        "ToggleTearing",
	VirtualOutputAdd:     "VirtualOutputAdd",
	VirtualOutputRemove:  "VirtualOutputRemove",
	If:                   "If",
	ForEach:              "ForEach",
}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if k >= kindCount {
		return "Unknown"
	}
	return kindNames[k]
}

// ParseKind parses an action name case-insensitively.
func ParseKind(name string) (Kind, bool) {
	name = strings.TrimSpace(name)
	for k := None; k < kindCount; k++ {
		if strings.EqualFold(kindNames[k], name) {
			return k, true
		}
	}
	return Invalid, false
}

// Kinds returns every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := None; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// windowless lists kinds that act without a target window.
var windowless = map[Kind]bool{
	None:                true,
	Debug:               true,
	Execute:             true,
	Exit:                true,
	Reconfigure:         true,
	ShowMenu:            true,
	NextWindow:          true,
	PreviousWindow:      true,
	Unfocus:             true,
	GoToDesktop:         true,
	FocusOutput:         true,
	ToggleKeybinds:      true,
	WarpCursor:          true,
	HideCursor:          true,
	ZoomIn:              true,
	ZoomOut:             true,
	ToggleMagnify:       true,
	VirtualOutputAdd:    true,
	VirtualOutputRemove: true,
	If:                  true,
	ForEach:             true,
}

// NeedsWindow reports whether the kind does nothing without a target
// window.
func (k Kind) NeedsWindow() bool {
	return k != Invalid && k < kindCount && !windowless[k]
}

// TargetsCursor reports whether a keyboard-triggered action of this kind
// targets the window under the cursor rather than the focused window.
func (k Kind) TargetsCursor() bool {
	return k == Focus || k == Move || k == Resize
}
