// Package window provides handlers for actions that change the state of
// one target window: closing, stacking, maximize and fullscreen, snapping
// to edges and regions, decorations, layers and explicit geometry.
//
// Every handler here no-ops when the dispatcher resolved no target.
package window
