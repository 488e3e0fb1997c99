package menu

import "github.com/dshills/driftwm/internal/action"

func item(label string, kind action.Kind, args ...action.Arg) Item {
	return Item{Label: label, Actions: []action.Action{action.New(kind, args...)}}
}

// Builtin returns the menus that exist without configuration.
func Builtin() []*Menu {
	return []*Menu{
		{
			ID:    RootMenu,
			Label: "driftwm",
			Items: []Item{
				item("Terminal", action.Execute, action.StringArg("command", "foot")),
				{Separator: true},
				item("Reconfigure", action.Reconfigure),
				item("Exit", action.Exit),
			},
		},
		{
			ID: ClientMenu,
			Items: []Item{
				item("Minimize", action.Iconify),
				item("Maximize", action.ToggleMaximize),
				item("Fullscreen", action.ToggleFullscreen),
				item("Roll Up/Down", action.ToggleShade),
				item("Decorations", action.ToggleDecorations),
				item("Always on Top", action.ToggleAlwaysOnTop),
				{Label: "Move to Desktop", Submenu: SendToMenu},
				item("Move", action.Move),
				item("Resize", action.Resize),
				{Separator: true},
				item("Close", action.Close),
			},
		},
		{
			ID: SendToMenu,
			Items: []Item{
				item("Move Left", action.SendToDesktop, action.StringArg("to", "left")),
				item("Move Right", action.SendToDesktop, action.StringArg("to", "right")),
				item("Always on Visible Desktop", action.ToggleOmnipresent),
			},
		},
	}
}
