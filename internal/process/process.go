package process

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

var (
	// ErrAlreadyStarted is returned when starting a started process.
	ErrAlreadyStarted = errors.New("process: already started")
	// ErrNotRunning is returned when signalling a process that is not running.
	ErrNotRunning = errors.New("process: not running")
	// ErrShutdown is returned by a supervisor that has been shut down.
	ErrShutdown = errors.New("process: supervisor shut down")
	// ErrEmptyCommand is returned for a blank command line.
	ErrEmptyCommand = errors.New("process: empty command")
)

// State is the lifecycle state of a process.
type State int

const (
	StateCreated State = iota
	StateRunning
	StateExited
	StateKilled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateRunning:
		return "running"
	case StateExited:
		return "exited"
	case StateKilled:
		return "killed"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// Exit reports a finished process.
type Exit struct {
	ID   string
	Name string
	PID  int
	// Code is the exit status, or -1 when the process died from a signal
	// or could not be waited on.
	Code int
}

// Process is a supervised child process.
type Process struct {
	ID      string
	Name    string
	Cmd     *exec.Cmd
	Started time.Time

	done     chan struct{}
	state    atomic.Int32
	exitCode atomic.Int32

	mu      sync.RWMutex
	exitErr error
}

// NewProcess wraps cmd without starting it.
func NewProcess(id, name string, cmd *exec.Cmd) *Process {
	p := &Process{ID: id, Name: name, Cmd: cmd, done: make(chan struct{})}
	p.state.Store(int32(StateCreated))
	p.exitCode.Store(-1)
	return p
}

// State returns the current state.
func (p *Process) State() State {
	return State(p.state.Load())
}

// ExitCode returns the exit status, or -1 while running.
func (p *Process) ExitCode() int {
	return int(p.exitCode.Load())
}

// ExitError returns the error from waiting on the process, if any.
func (p *Process) ExitError() error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitErr
}

// Done is closed when the process exits.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// IsRunning reports whether the process is running.
func (p *Process) IsRunning() bool {
	return p.State() == StateRunning
}

// PID returns the OS process id, or -1 before start.
func (p *Process) PID() int {
	if p.Cmd.Process == nil {
		return -1
	}
	return p.Cmd.Process.Pid
}

// Signal sends sig to the process.
func (p *Process) Signal(sig os.Signal) error {
	if !p.IsRunning() || p.Cmd.Process == nil {
		return ErrNotRunning
	}
	return p.Cmd.Process.Signal(sig)
}

// Terminate sends SIGTERM.
func (p *Process) Terminate() error {
	return p.Signal(syscall.SIGTERM)
}

// Kill sends SIGKILL.
func (p *Process) Kill() error {
	return p.Signal(syscall.SIGKILL)
}

// Exit returns the exit report. Valid once Done is closed.
func (p *Process) Exit() Exit {
	return Exit{ID: p.ID, Name: p.Name, PID: p.PID(), Code: p.ExitCode()}
}

func (p *Process) start() error {
	if p.State() != StateCreated {
		return ErrAlreadyStarted
	}
	if err := p.Cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", p.Name, err)
	}
	p.Started = time.Now()
	p.state.Store(int32(StateRunning))
	go p.wait()
	return nil
}

func (p *Process) wait() {
	err := p.Cmd.Wait()

	p.mu.Lock()
	p.exitErr = err
	p.mu.Unlock()

	code, state := 0, StateExited
	if err != nil {
		code = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
			if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
				state = StateKilled
			}
		}
	}
	p.exitCode.Store(int32(code))
	p.state.Store(int32(state))
	close(p.done)
}
