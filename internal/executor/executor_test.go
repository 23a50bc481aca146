package executor

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProcess replays a canned output stream and exit code.
type fakeProcess struct {
	out      io.Reader
	in       bytes.Buffer
	exitCode int
	waitErr  error
	killed   atomic.Bool
}

func (p *fakeProcess) Output() io.Reader { return p.out }
func (p *fakeProcess) Input() io.Writer  { return &p.in }
func (p *fakeProcess) Wait() (int, error) {
	if p.waitErr != nil {
		return -1, p.waitErr
	}
	return p.exitCode, nil
}
func (p *fakeProcess) Terminate() error { p.killed.Store(true); return nil }
func (p *fakeProcess) Close() error     { return nil }

type fakeSpawner struct {
	proc   *fakeProcess
	err    error
	spawns atomic.Int32
}

func (s *fakeSpawner) Spawn(string) (Process, error) {
	s.spawns.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.proc, nil
}

func scripted(output string, exitCode int) *fakeSpawner {
	return &fakeSpawner{proc: &fakeProcess{
		out:      strings.NewReader(output),
		exitCode: exitCode,
	}}
}

func TestExecute_CleanExitWithoutPatterns(t *testing.T) {
	e := NewWithSpawner(scripted("frame=  100 fps= 25 q=28.0 size=     512kB\n", 0))

	res, err := e.Execute("ffmpeg -i in.mp4 out.mp4")
	require.NoError(t, err)

	assert.True(t, res.Success, "exit code 0 with no verdict counts as success")
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "frame=  100")
	assert.False(t, e.IsRunning())
}

func TestExecute_NonZeroExitWithoutPatterns(t *testing.T) {
	e := NewWithSpawner(scripted("Stream mapping:\n", 3))

	res, err := e.Execute("ffmpeg -i in.mp4 out.mp4")
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 3, res.ExitCode)
}

func TestExecute_SuccessSummaryDespiteNonZeroExit(t *testing.T) {
	out := "Error while decoding stream #0:1\n" +
		"video:5634kB audio:1026kB subtitle:0kB other streams:0kB global headers:0kB muxing overhead: 0.412%\n"
	e := NewWithSpawner(scripted(out, 1))

	res, err := e.Execute("ffmpeg -i in.mkv out.mkv")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "Error while decoding stream #0:1", res.ErrorLine)
	assert.Equal(t, "Error while decoding stream #0:1", e.LastError())
}

func TestExecute_AutoOverwriteSendsToken(t *testing.T) {
	sp := scripted("File 'out.mp4' already exists. Overwrite? [y/N]\nmuxing overhead: 0.1%\n", 0)
	e := NewWithSpawner(sp)

	res, err := e.Execute("ffmpeg -i in.mp4 out.mp4")
	require.NoError(t, err)

	assert.True(t, res.OverwritePrompted)
	assert.True(t, res.OverwriteConfirmed)
	assert.Equal(t, "y\n", sp.proc.in.String())
}

func TestExecute_AutoOverwriteDisabled(t *testing.T) {
	sp := scripted("File 'out.mp4' already exists. Overwrite? [y/N]\n", 0)
	e := NewWithSpawner(sp)
	e.SetAutoOverwrite(false)

	res, err := e.Execute("ffmpeg -i in.mp4 out.mp4")
	require.NoError(t, err)

	assert.True(t, res.OverwritePrompted)
	assert.False(t, res.OverwriteConfirmed)
	assert.Zero(t, sp.proc.in.Len(), "no token may be written")
}

func TestExecute_LaunchFailure(t *testing.T) {
	e := NewWithSpawner(&fakeSpawner{err: errors.New("pipe creation failed")})

	res, err := e.Execute("ffmpeg -version")
	require.Error(t, err)

	var lerr *LaunchError
	require.ErrorAs(t, err, &lerr)
	assert.False(t, res.Success)
	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, e.LastError(), "pipe creation failed")
	assert.False(t, e.IsRunning())
}

func TestExecute_ExitCodeSentinelWhenWaitFails(t *testing.T) {
	sp := &fakeSpawner{proc: &fakeProcess{
		out:     strings.NewReader("some output\n"),
		waitErr: errors.New("wait: no child processes"),
	}}
	e := NewWithSpawner(sp)

	res, err := e.Execute("ffmpeg -i in.mp4 out.mp4")
	require.NoError(t, err)

	assert.Equal(t, -1, res.ExitCode)
	assert.False(t, res.Success)
	assert.Contains(t, res.Output, "some output")
}

func TestExecute_SecondCallRejectedWhileRunning(t *testing.T) {
	// A pipe reader keeps the first execution alive until we close it.
	pr, pw := io.Pipe()
	sp := &fakeSpawner{proc: &fakeProcess{out: pr}}
	e := NewWithSpawner(sp)

	done := make(chan Result, 1)
	go func() {
		res, _ := e.Execute("ffmpeg -i a.mp4 b.mp4")
		done <- res
	}()

	require.Eventually(t, e.IsRunning, time.Second, 5*time.Millisecond)

	_, err := e.Execute("ffmpeg -i c.mp4 d.mp4")
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Equal(t, int32(1), sp.spawns.Load(), "no second child may be spawned")

	pw.Close()
	select {
	case res := <-done:
		assert.True(t, res.Success) // fake exit code 0, no patterns
	case <-time.After(2 * time.Second):
		t.Fatal("first execution did not finish")
	}
}

func TestStop_TerminatesLiveChild(t *testing.T) {
	pr, pw := io.Pipe()
	proc := &fakeProcess{out: pr}
	e := NewWithSpawner(&fakeSpawner{proc: proc})

	done := make(chan struct{})
	go func() {
		e.Execute("ffmpeg -i a.mp4 b.mp4")
		close(done)
	}()
	require.Eventually(t, e.IsRunning, time.Second, 5*time.Millisecond)

	e.Stop()
	assert.True(t, proc.killed.Load())

	// The pipe closing stands in for the killed child's EOF.
	pw.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("execution did not finish after stop")
	}
}

func TestStop_WithoutActiveExecutionIsNoop(t *testing.T) {
	e := New()
	assert.NotPanics(t, e.Stop)
	assert.False(t, e.IsRunning())
}
