package process

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/driftwm/internal/logging"
)

// Supervisor starts child processes and reports their exits.
//
// Supervisor is safe for concurrent use. Exit reports are buffered on a
// channel; when the buffer is full the report is dropped and logged.
type Supervisor struct {
	mu        sync.RWMutex
	processes map[string]*Process
	closed    atomic.Bool

	shell  string
	env    []string
	exits  chan Exit
	onExit func(Exit)
	log    *logging.Logger
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithShell sets the shell used by Spawn. Defaults to /bin/sh.
func WithShell(shell string) Option {
	return func(s *Supervisor) { s.shell = shell }
}

// WithEnv appends environment entries to every child.
func WithEnv(env ...string) Option {
	return func(s *Supervisor) { s.env = append(s.env, env...) }
}

// WithExitBuffer sets the exit channel capacity.
func WithExitBuffer(n int) Option {
	return func(s *Supervisor) { s.exits = make(chan Exit, n) }
}

// WithExitCallback sets a function called on the waiting goroutine for
// every exit, before the report is queued.
func WithExitCallback(fn func(Exit)) Option {
	return func(s *Supervisor) { s.onExit = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Supervisor) { s.log = l }
}

// NewSupervisor creates a supervisor.
func NewSupervisor(opts ...Option) *Supervisor {
	s := &Supervisor{
		processes: make(map[string]*Process),
		shell:     "/bin/sh",
		exits:     make(chan Exit, 64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = logging.OrNull(s.log).WithComponent("process")
	return s
}

// Exits returns the channel of exit reports.
func (s *Supervisor) Exits() <-chan Exit {
	return s.exits
}

// Spawn runs command through the shell.
func (s *Supervisor) Spawn(name, command string) (*Process, error) {
	if strings.TrimSpace(command) == "" {
		return nil, ErrEmptyCommand
	}
	return s.Start(name, exec.Command(s.shell, "-c", command))
}

// Start starts cmd under supervision. The child gets its own session so
// it survives the compositor's controlling terminal.
func (s *Supervisor) Start(name string, cmd *exec.Cmd) (*Process, error) {
	return s.StartWithID(uuid.New().String(), name, cmd)
}

// StartWithID starts cmd with a caller-chosen id.
func (s *Supervisor) StartWithID(id, name string, cmd *exec.Cmd) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrShutdown
	}
	if _, exists := s.processes[id]; exists {
		return nil, fmt.Errorf("process: id already exists: %s", id)
	}
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	}
	if len(s.env) > 0 {
		if cmd.Env == nil {
			cmd.Env = os.Environ()
		}
		cmd.Env = append(cmd.Env, s.env...)
	}

	p := NewProcess(id, name, cmd)
	if err := p.start(); err != nil {
		return nil, err
	}
	s.processes[id] = p
	s.log.Debug("started %s pid=%d", name, p.PID())

	go s.monitor(p)
	return p, nil
}

func (s *Supervisor) monitor(p *Process) {
	<-p.Done()
	ex := p.Exit()

	s.mu.Lock()
	delete(s.processes, p.ID)
	s.mu.Unlock()

	s.log.Debug("%s pid=%d exited with %d", ex.Name, ex.PID, ex.Code)
	if s.onExit != nil {
		func() {
			defer func() {
				if r := recover(); r != nil {
					s.log.Error("exit callback panic: %v", r)
				}
			}()
			s.onExit(ex)
		}()
	}
	if s.closed.Load() {
		return
	}
	select {
	case s.exits <- ex:
	default:
		s.log.Warn("exit queue full, dropping exit of pid %d", ex.PID)
	}
}

// Get returns a running process by id.
func (s *Supervisor) Get(id string) *Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processes[id]
}

// ByPID returns a running process by OS pid.
func (s *Supervisor) ByPID(pid int) *Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.processes {
		if p.PID() == pid {
			return p
		}
	}
	return nil
}

// Count returns the number of running processes.
func (s *Supervisor) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}

// Shutdown stops accepting new processes, sends SIGTERM to every child
// and SIGKILL to those still alive after timeout.
func (s *Supervisor) Shutdown(timeout time.Duration) {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	s.mu.RLock()
	procs := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		procs = append(procs, p)
	}
	s.mu.RUnlock()

	for _, p := range procs {
		_ = p.Terminate()
	}
	deadline := time.After(timeout)
	for _, p := range procs {
		select {
		case <-p.Done():
		case <-deadline:
			for _, q := range procs {
				_ = q.Kill()
			}
			return
		}
	}
}
