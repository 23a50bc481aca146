//go:build !windows

package executor

// shellCommand wraps a verbatim command string for the platform shell.
func shellCommand(command string) (string, []string) {
	return "/bin/sh", []string{"-c", command}
}
