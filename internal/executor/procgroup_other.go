//go:build !unix

package executor

import "os/exec"

func killProcessGroup(cmd *exec.Cmd) {
	cmd.WaitDelay = waitDelay
}
