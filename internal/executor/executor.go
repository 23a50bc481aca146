// Package executor supervises a single external encoder process: it
// spawns the command through the system shell, streams its combined
// output, classifies every line for overwrite prompts, errors and the
// completion summary, and can answer the prompt on the child's stdin.
package executor

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// confirmToken answers an overwrite prompt affirmatively.
const confirmToken = "y\n"

// ErrAlreadyRunning rejects a second Execute while one is in flight.
var ErrAlreadyRunning = errors.New("an execution is already in progress")

// LaunchError reports that the child process could not be created.
// The existing state of the Executor is unaffected.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launching %q: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Executor runs at most one supervised command at a time.
type Executor struct {
	spawner Spawner

	running       atomic.Bool
	autoOverwrite atomic.Bool

	mu      sync.Mutex
	proc    Process
	lastErr string
}

// New builds an Executor that spawns commands through the system shell.
// Auto-overwrite starts enabled.
func New() *Executor {
	return NewWithSpawner(shellSpawner{})
}

// NewWithSpawner is the seam for tests and for callers that need a
// different process backend.
func NewWithSpawner(s Spawner) *Executor {
	e := &Executor{spawner: s}
	e.autoOverwrite.Store(true)
	return e
}

// SetAutoOverwrite controls whether detected overwrite prompts are
// answered automatically.
func (e *Executor) SetAutoOverwrite(v bool) { e.autoOverwrite.Store(v) }

// IsRunning reports whether an execution is currently in flight.
func (e *Executor) IsRunning() bool { return e.running.Load() }

// LastError returns the most recent error line (or launch failure
// message) observed on this Executor.
func (e *Executor) LastError() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Execute passes command verbatim to the system shell and supervises the
// child until it exits or Stop is called. It blocks the caller for the
// whole run; the returned Result is complete, never partial.
func (e *Executor) Execute(command string) (Result, error) {
	if !e.running.CompareAndSwap(false, true) {
		return Result{ExitCode: -1}, ErrAlreadyRunning
	}
	defer e.running.Store(false)

	proc, err := e.spawner.Spawn(command)
	if err != nil {
		lerr := &LaunchError{Command: command, Err: err}
		e.setLastError(lerr.Error())
		return Result{ExitCode: -1}, lerr
	}

	e.setProc(proc)
	defer e.setProc(nil)

	// The supervising goroutine owns the Result until it hands it over.
	resCh := make(chan Result, 1)
	go e.supervise(proc, resCh)

	res := <-resCh
	if res.ErrorLine != "" {
		e.setLastError(res.ErrorLine)
	}
	return res, nil
}

// supervise is the read/classify/respond loop. It drains the capture
// pipe to EOF, waits for the exit code, applies the clean-exit
// tie-break, and sends the finished Result.
func (e *Executor) supervise(proc Process, resCh chan<- Result) {
	defer proc.Close()

	res := Result{ExitCode: -1}
	cl := &classifier{
		res:  &res,
		auto: e.autoOverwrite.Load,
		respond: func() {
			// Fire and forget: the child may already have exited or
			// closed its stdin.
			_, _ = io.WriteString(proc.Input(), confirmToken)
		},
	}

	// Blocking reads. Stop kills the child, which closes the pipe and
	// ends the loop; EOF arrives only after every buffered byte has
	// been drained, so trailing output is never lost.
	buf := make([]byte, 4096)
	out := proc.Output()
	for {
		n, err := out.Read(buf)
		if n > 0 {
			cl.consume(buf[:n])
		}
		if err != nil {
			// EOF and a closed pipe end both finish the stream; neither
			// is surfaced to the caller.
			break
		}
	}
	cl.finish()

	if code, err := proc.Wait(); err == nil {
		res.ExitCode = code
		if res.ExitCode == 0 && !res.Success {
			// No pattern fired either way; trust the clean exit.
			res.Success = true
		}
	}

	resCh <- res
}

// Stop terminates a live child, if any. The in-flight Execute call still
// returns whatever was accumulated before the kill. Calling Stop with no
// active execution is a no-op.
func (e *Executor) Stop() {
	e.mu.Lock()
	proc := e.proc
	e.mu.Unlock()
	if proc != nil {
		_ = proc.Terminate()
	}
}

func (e *Executor) setProc(p Process) {
	e.mu.Lock()
	e.proc = p
	e.mu.Unlock()
}

func (e *Executor) setLastError(msg string) {
	e.mu.Lock()
	e.lastErr = msg
	e.mu.Unlock()
}
