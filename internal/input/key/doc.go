// Package key provides keyboard modifier masks, keysyms and the parser for
// keybind specifications.
//
// Key specifications are written as modifier prefixes joined by hyphens,
// followed by a keysym name:
//
//   - "W-Return": Logo+Return
//   - "A-Tab", "A-S-Tab": Alt+Tab, Alt+Shift+Tab
//   - "C-A-Delete"
//   - "XF86AudioMute"
//
// Modifier prefixes are S (Shift), C (Control), A (Alt), W (Logo),
// M (Mod5) and H (Mod3). Keysym values follow the X keysym numbering.
package key
