//go:build unix

package executor

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// killProcessGroup makes cancellation reach every process the shell spawned,
// not only the shell itself.
func killProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
	cmd.WaitDelay = waitDelay
}
