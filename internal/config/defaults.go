package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/driftwm/internal/config/loader"
	"github.com/dshills/driftwm/internal/input/keybind"
	"github.com/dshills/driftwm/internal/input/mousebind"
)

// DefaultBindings is the stock binding set, in the same form a user file
// takes.
const DefaultBindings = `
[[keybind]]
key = "A-Tab"
action = [{ name = "NextWindow" }]

[[keybind]]
key = "A-S-Tab"
action = [{ name = "PreviousWindow" }]

[[keybind]]
key = "W-Return"
action = [{ name = "Execute", command = "foot" }]

[[keybind]]
key = "A-F3"
action = [{ name = "Execute", command = "bemenu-run" }]

[[keybind]]
key = "A-F4"
action = [{ name = "Close" }]

[[keybind]]
key = "W-a"
action = [{ name = "ToggleMaximize" }]

[[keybind]]
key = "A-Left"
action = [{ name = "MoveToEdge", direction = "left" }]

[[keybind]]
key = "A-Right"
action = [{ name = "MoveToEdge", direction = "right" }]

[[keybind]]
key = "A-Up"
action = [{ name = "MoveToEdge", direction = "up" }]

[[keybind]]
key = "A-Down"
action = [{ name = "MoveToEdge", direction = "down" }]

[[keybind]]
key = "W-Left"
action = [{ name = "SnapToEdge", direction = "left" }]

[[keybind]]
key = "W-Right"
action = [{ name = "SnapToEdge", direction = "right" }]

[[keybind]]
key = "W-Up"
action = [{ name = "SnapToEdge", direction = "up" }]

[[keybind]]
key = "W-Down"
action = [{ name = "SnapToEdge", direction = "down" }]

[[keybind]]
key = "A-Space"
action = [{ name = "ShowMenu", menu = "client-menu" }]

[[keybind]]
key = "XF86AudioLowerVolume"
allow_when_locked = true
action = [{ name = "Execute", command = "amixer sset Master 5%-" }]

[[keybind]]
key = "XF86AudioRaiseVolume"
allow_when_locked = true
action = [{ name = "Execute", command = "amixer sset Master 5%+" }]

[[keybind]]
key = "XF86AudioMute"
allow_when_locked = true
action = [{ name = "Execute", command = "amixer sset Master toggle" }]

[[keybind]]
key = "XF86MonBrightnessUp"
allow_when_locked = true
action = [{ name = "Execute", command = "brightnessctl set +10%" }]

[[keybind]]
key = "XF86MonBrightnessDown"
allow_when_locked = true
action = [{ name = "Execute", command = "brightnessctl set 10%-" }]

[[mousebind]]
context = "Frame"
button = "A-Left"
event = "Press"
action = [{ name = "Focus" }, { name = "Raise" }]

[[mousebind]]
context = "Frame"
button = "A-Left"
event = "Drag"
action = [{ name = "Move" }]

[[mousebind]]
context = "Frame"
button = "A-Right"
event = "Press"
action = [{ name = "Focus" }, { name = "Raise" }]

[[mousebind]]
context = "Frame"
button = "A-Right"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "Frame"
button = "W-Left"
event = "Drag"
action = [{ name = "Move" }]

[[mousebind]]
context = "Frame"
button = "W-Right"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "Titlebar"
button = "Left"
event = "Press"
action = [{ name = "Focus" }, { name = "Raise" }]

[[mousebind]]
context = "Titlebar"
button = "Left"
event = "Drag"
action = [{ name = "Move" }]

[[mousebind]]
context = "Titlebar"
button = "Left"
event = "DoubleClick"
action = [{ name = "ToggleMaximize" }]

[[mousebind]]
context = "Titlebar"
button = "Right"
event = "Click"
action = [{ name = "Focus" }, { name = "Raise" }, { name = "ShowMenu", menu = "client-menu" }]

[[mousebind]]
context = "Titlebar"
direction = "Up"
event = "Scroll"
action = [{ name = "Unshade" }, { name = "Focus" }]

[[mousebind]]
context = "Titlebar"
direction = "Down"
event = "Scroll"
action = [{ name = "Focus" }, { name = "Shade" }]

[[mousebind]]
context = "Top"
button = "Left"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "Bottom"
button = "Left"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "Left"
button = "Left"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "Right"
button = "Left"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "TLCorner"
button = "Left"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "TRCorner"
button = "Left"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "BLCorner"
button = "Left"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "BRCorner"
button = "Left"
event = "Drag"
action = [{ name = "Resize" }]

[[mousebind]]
context = "Iconify"
button = "Left"
event = "Click"
action = [{ name = "Iconify" }]

[[mousebind]]
context = "Maximize"
button = "Left"
event = "Click"
action = [{ name = "ToggleMaximize" }]

[[mousebind]]
context = "Maximize"
button = "Right"
event = "Click"
action = [{ name = "ToggleMaximize", direction = "horizontal" }]

[[mousebind]]
context = "Maximize"
button = "Middle"
event = "Click"
action = [{ name = "ToggleMaximize", direction = "vertical" }]

[[mousebind]]
context = "Close"
button = "Left"
event = "Click"
action = [{ name = "Close" }]

[[mousebind]]
context = "WindowMenu"
button = "Left"
event = "Click"
action = [{ name = "ShowMenu", menu = "client-menu" }]

[[mousebind]]
context = "Shade"
button = "Left"
event = "Click"
action = [{ name = "ToggleShade" }]

[[mousebind]]
context = "AllDesktops"
button = "Left"
event = "Click"
action = [{ name = "ToggleOmnipresent" }]

[[mousebind]]
context = "Client"
button = "Left"
event = "Press"
action = [{ name = "Focus" }, { name = "Raise" }]

[[mousebind]]
context = "Client"
button = "Middle"
event = "Press"
action = [{ name = "Focus" }, { name = "Raise" }]

[[mousebind]]
context = "Client"
button = "Right"
event = "Press"
action = [{ name = "Focus" }, { name = "Raise" }]

[[mousebind]]
context = "Root"
button = "Left"
event = "Press"
action = [{ name = "ShowMenu", menu = "root-menu" }]

[[mousebind]]
context = "Root"
button = "Right"
event = "Press"
action = [{ name = "ShowMenu", menu = "root-menu" }]

[[mousebind]]
context = "Root"
direction = "Up"
event = "Scroll"
action = [{ name = "GoToDesktop", to = "left" }]

[[mousebind]]
context = "Root"
direction = "Down"
event = "Scroll"
action = [{ name = "GoToDesktop", to = "right" }]
`

type bindingSet struct {
	keybinds   []keybind.Binding
	mousebinds []mousebind.Binding
}

var builtinBindings = sync.OnceValue(func() bindingSet {
	raw, err := loader.NewTOMLLoader("").LoadFromReader(strings.NewReader(DefaultBindings))
	if err != nil {
		panic(fmt.Sprintf("config: default bindings: %v", err))
	}
	b := &builder{raw: raw}
	set := bindingSet{
		keybinds:   b.keybinds(raw["keybind"]),
		mousebinds: b.mousebinds(raw["mousebind"]),
	}
	if len(b.errs) > 0 {
		panic(fmt.Sprintf("config: default bindings: %v", errors.Join(b.errs...)))
	}
	return set
})
