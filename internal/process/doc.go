// Package process spawns and tracks client commands.
//
// Commands launched by the Execute action and prompt helpers started by
// the If action run as supervised children. Each exit is reported as an
// Exit value on the supervisor's channel so the event loop can handle it
// on its own goroutine:
//
//	sup := process.NewSupervisor(process.WithShell("/bin/sh"))
//	p, err := sup.Spawn("terminal", "foot")
//	...
//	for ex := range sup.Exits() {
//	    // ex.PID, ex.Code
//	}
package process
