// Package config loads the driftwm configuration file.
//
// A configuration is built from three layers, lowest first:
//
//  1. built-in defaults, including the stock key and mouse bindings
//  2. the user file, TOML or YAML by extension
//  3. DRIFTWM_ environment variables
//
// Settings live in the core, input, resistance and theme tables.
// Bindings and menus are arrays of tables:
//
//	[input]
//	double_click_time = 400
//
//	[[keybind]]
//	key = "W-Return"
//	action = [{ name = "Execute", command = "foot" }]
//
//	[[mousebind]]
//	context = "Frame"
//	button = "A-Left"
//	event = "Drag"
//	action = [{ name = "Move" }]
//
// A file that defines no keybind entries keeps the default keybinds, and
// likewise for mousebinds. Menus merge by id.
//
// Malformed entries never abort a load. The offending setting keeps its
// default and the offending binding or action is dropped; each is
// reported in the warnings Load returns. Only an unreadable or
// unparsable file fails the load.
package config
