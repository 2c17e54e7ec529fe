//go:build windows

package backend

import (
	"os"
	"os/exec"
)

// setupProcessGroup is a no-op on Windows
func setupProcessGroup(cmd *exec.Cmd) {
	// Windows doesn't use process groups the same way
}

// killProcess terminates the direct child only.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return os.ErrProcessDone
	}
	return cmd.Process.Kill()
}
