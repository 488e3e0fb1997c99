package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/driftwm/internal/event"
	"github.com/dshills/driftwm/internal/logging"
	"github.com/dshills/driftwm/internal/process"
	"github.com/dshills/driftwm/internal/seat"
	"github.com/dshills/driftwm/internal/wm"
)

// clients stands in for the windowing protocol. Every command started
// through the dispatcher gets a placeholder window that lives as long as
// its process.
type clients struct {
	sup *process.Supervisor
	wm  *wm.Manager
	log *logging.Logger

	byPID  map[int]wm.Ref
	byRef  map[wm.Ref]*process.Process
	placed int

	subs []event.Subscription
}

func newClients(sup *process.Supervisor, m *wm.Manager, log *logging.Logger) *clients {
	c := &clients{
		sup:   sup,
		wm:    m,
		log:   log,
		byPID: make(map[int]wm.Ref),
		byRef: make(map[wm.Ref]*process.Process),
	}
	m.SetCloseHandler(c.close)
	c.subs = append(c.subs, m.Bus().MustSubscribe(wm.TopicDestroyed, c.destroyed))
	return c
}

// Spawn implements execctx.Spawner.
func (c *clients) Spawn(name, command string) (int, error) {
	p, err := c.sup.Spawn(name, command)
	if err != nil {
		return 0, err
	}
	w := c.Map(appID(command), command)
	c.byPID[p.PID()] = w.Ref()
	c.byRef[w.Ref()] = p
	return p.PID(), nil
}

// Map creates a placeholder window cascaded from the previous one and
// focuses it.
func (c *clients) Map(appID, title string) *wm.Window {
	box := c.placement()
	w := c.wm.Create(appID, title, box)
	c.wm.Focus(w.Ref())
	return w
}

func (c *clients) placement() wm.Box {
	lb := c.wm.LayoutBox()
	if lb.Empty() {
		lb = wm.Box{Width: 1024, Height: 768}
	}
	w, h := max(lb.Width/2, 160), max(lb.Height/2, 120)
	step := 48
	slots := max(1, (lb.Height-h)/step)
	off := (c.placed % slots) * step
	c.placed++
	return wm.Box{X: lb.X + lb.Width/8 + off, Y: lb.Y + lb.Height/8 + off, Width: w, Height: h}
}

// Exited destroys the window of a process that has exited.
func (c *clients) Exited(pid int) {
	ref, ok := c.byPID[pid]
	if !ok {
		return
	}
	delete(c.byPID, pid)
	delete(c.byRef, ref)
	c.wm.Destroy(ref)
}

// close asks the client's process to terminate; its window goes away
// with the exit. Windows without a process close at once.
func (c *clients) close(w *wm.Window) {
	p, ok := c.byRef[w.Ref()]
	if !ok {
		c.wm.Destroy(w.Ref())
		return
	}
	if err := p.Terminate(); err != nil {
		c.log.WithError(err).Warn("terminate pid %d", p.PID())
		c.wm.Destroy(w.Ref())
	}
}

func (c *clients) destroyed(ev event.Event) {
	we, ok := ev.Payload.(wm.WindowEvent)
	if !ok {
		return
	}
	p, ok := c.byRef[we.Ref]
	if !ok {
		return
	}
	delete(c.byRef, we.Ref)
	delete(c.byPID, p.PID())
	if p.IsRunning() {
		_ = p.Kill()
	}
}

// Count returns the number of windows backed by a process.
func (c *clients) Count() int {
	return len(c.byRef)
}

func (c *clients) Close() {
	for _, sub := range c.subs {
		sub.Cancel()
	}
	c.subs = nil
}

func appID(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "unknown"
	}
	return filepath.Base(fields[0])
}

// lastNotification keeps the most recent client notification for the
// status line.
type lastNotification struct {
	n     seat.Notification
	valid bool
	log   *logging.Logger
}

// Notify implements seat.Notifier.
func (l *lastNotification) Notify(n seat.Notification) {
	l.n = n
	l.valid = true
	if n.Kind != seat.NotifyPointerMotion && n.Kind != seat.NotifyPointerFrame {
		l.log.Debug("client %s", n)
	}
}

func (l *lastNotification) String() string {
	if !l.valid {
		return ""
	}
	switch l.n.Kind {
	case seat.NotifyKey:
		state := "up"
		if l.n.Pressed {
			state = "down"
		}
		return fmt.Sprintf("%s %d %s", l.n.Kind, l.n.Keycode, state)
	case seat.NotifyPointerButton:
		state := "up"
		if l.n.Pressed {
			state = "down"
		}
		return fmt.Sprintf("%s %s %s", l.n.Kind, l.n.Button, state)
	default:
		return l.n.Kind.String()
	}
}
