package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Process is a live child with redirected pipes.
type Process interface {
	// Output reads the child's combined stdout and stderr.
	Output() io.Reader
	// Input writes into the child's stdin.
	Input() io.Writer
	// Wait blocks until the child exits and returns its exit code.
	// The error is non-nil only when the code could not be retrieved.
	Wait() (int, error)
	// Terminate forcefully kills the child.
	Terminate() error
	// Close releases the pipe ends held by the parent.
	Close() error
}

// Spawner creates child processes. The default implementation runs the
// command through the system shell; tests substitute scripted fakes.
type Spawner interface {
	Spawn(command string) (Process, error)
}

type shellSpawner struct{}

func (shellSpawner) Spawn(command string) (Process, error) {
	name, args := shellCommand(command)
	cmd := exec.Command(name, args...)

	// One pipe carries both output streams so lines arrive in the order
	// the child produced them.
	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("creating capture pipe: %w", err)
	}
	cmd.Stdout = outW
	cmd.Stderr = outW

	stdin, err := cmd.StdinPipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return nil, fmt.Errorf("creating feed pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		outR.Close()
		outW.Close()
		stdin.Close()
		return nil, fmt.Errorf("starting shell: %w", err)
	}

	// The child now holds the write end; keeping ours open would delay
	// EOF past the child's exit.
	outW.Close()

	return &shellProcess{cmd: cmd, out: outR, in: stdin}, nil
}

type shellProcess struct {
	cmd *exec.Cmd
	out *os.File
	in  io.WriteCloser
}

func (p *shellProcess) Output() io.Reader { return p.out }
func (p *shellProcess) Input() io.Writer  { return p.in }

func (p *shellProcess) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// Covers non-zero exits and kills (-1 when signalled).
		return exitErr.ExitCode(), nil
	}
	return -1, err
}

func (p *shellProcess) Terminate() error {
	if p.cmd.Process == nil {
		return nil
	}
	return p.cmd.Process.Kill()
}

func (p *shellProcess) Close() error {
	p.in.Close()
	return p.out.Close()
}
