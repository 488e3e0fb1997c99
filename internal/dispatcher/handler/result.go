package handler

import "fmt"

// ResultStatus is the outcome of one action.
type ResultStatus uint8

const (
	StatusOK ResultStatus = iota
	// StatusNoOp means a precondition did not hold and nothing changed,
	// such as Maximize with no target window.
	StatusNoOp
	StatusError
	// StatusPending means the action waits on a child process; the rest
	// of its branch runs when the process exits.
	StatusPending
	// StatusCancelled means a pre-dispatch hook rejected the action.
	StatusCancelled
)

var statusNames = [...]string{"ok", "no-op", "error", "pending", "cancelled"}

func (s ResultStatus) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// Result is what a handler reports back to the dispatcher.
type Result struct {
	Status  ResultStatus
	Error   error
	Message string

	// Stop ends the enclosing action list, after Exit or once a prompt
	// has taken over the remaining branch.
	Stop bool
}

func (r Result) IsOK() bool    { return r.Status == StatusOK }
func (r Result) IsError() bool { return r.Status == StatusError }

func Success() Result { return Result{Status: StatusOK} }

func NoOp() Result { return Result{Status: StatusNoOp} }

// NoOpWithMessage records why the action did nothing.
func NoOpWithMessage(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

func Error(err error) Result { return Result{Status: StatusError, Error: err} }

func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// Pending reports an action parked until a child exits.
func Pending(msg string) Result {
	return Result{Status: StatusPending, Message: msg}
}

func Cancelled() Result { return Result{Status: StatusCancelled} }

// WithMessage returns a copy of r carrying msg.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithStop returns a copy of r that ends the action list.
func (r Result) WithStop() Result {
	r.Stop = true
	return r
}
