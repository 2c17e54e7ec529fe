//go:build !windows

package backend

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/cockroachdb/errors"
)

// setupProcessGroup configures the command to run in its own process group
func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcess sends SIGKILL to the whole process group so that anything the backend
// spawned goes down with it.
func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return os.ErrProcessDone
	}

	pgid, pgErr := syscall.Getpgid(cmd.Process.Pid)
	if pgErr != nil {
		return cmd.Process.Kill()
	}

	if err := syscall.Kill(-pgid, syscall.SIGKILL); err != nil {
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return errors.Wrapf(err, "kill process group %d", pgid)
	}
	return nil
}
