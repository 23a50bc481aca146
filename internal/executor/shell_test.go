//go:build !windows

package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run real children through /bin/sh.

func TestShell_CleanExit(t *testing.T) {
	e := New()
	res, err := e.Execute("echo converting; echo done 1>&2")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 0, res.ExitCode)
	// Both streams land in one transcript.
	assert.Contains(t, res.Output, "converting")
	assert.Contains(t, res.Output, "done")
}

func TestShell_NonZeroExit(t *testing.T) {
	e := New()
	res, err := e.Execute("exit 7")
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 7, res.ExitCode)
}

func TestShell_PromptAnsweredOnStdin(t *testing.T) {
	e := New()
	// The child echoes an overwrite prompt, then blocks reading stdin.
	// Only the injected confirmation lets it finish.
	res, err := e.Execute(
		`echo "File 'out.mp4' already exists. Overwrite? [y/N]"; read ans; echo "answer=$ans"`)
	require.NoError(t, err)

	assert.True(t, res.OverwritePrompted)
	assert.True(t, res.OverwriteConfirmed)
	assert.Contains(t, res.Output, "answer=y")
	assert.Equal(t, 0, res.ExitCode)
}

func TestShell_StopKillsChild(t *testing.T) {
	e := New()

	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		// exec keeps the sleep in the shell's own process so the kill
		// reaches it and the pipe closes.
		res, err := e.Execute("echo started; exec sleep 30")
		done <- outcome{res, err}
	}()

	require.Eventually(t, e.IsRunning, 2*time.Second, 10*time.Millisecond)
	// Give the echo a moment to reach the pipe before the kill.
	time.Sleep(100 * time.Millisecond)
	e.Stop()

	select {
	case o := <-done:
		require.NoError(t, o.err)
		assert.False(t, o.res.Success)
		assert.Contains(t, o.res.Output, "started", "output before the kill is preserved")
	case <-time.After(5 * time.Second):
		t.Fatal("execution did not return after Stop")
	}
	assert.False(t, e.IsRunning())
}
