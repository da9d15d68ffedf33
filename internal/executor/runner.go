package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// exitCodeNotRunnable mirrors the shell convention for a command that could
// not be started at all.
const exitCodeNotRunnable = 127

// waitDelay bounds how long Run waits for output pipes after a cancelled
// command has been killed.
const waitDelay = 500 * time.Millisecond

// Runner runs one command line to completion.
type Runner interface {
	Run(ctx context.Context, text string) (Result, error)
}

// ShellRunner executes commands through the user's shell.
type ShellRunner struct {
	// Shell overrides shell detection when set.
	Shell string
}

// Run starts the command and waits for it. Only context cancellation is
// returned as an error; every other failure is folded into the Result.
func (r ShellRunner) Run(ctx context.Context, text string) (Result, error) {
	shell, shellArgs, err := determineShell(r.Shell)
	if err != nil {
		return Result{Stderr: []byte(err.Error()), ExitCode: exitCodeNotRunnable}, nil
	}

	args := append(shellArgs, text)
	cmd := exec.CommandContext(ctx, shell, args...)
	killProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if runErr == nil {
		return res, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.ExitCode = -1
		return res, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	res.ExitCode = exitCodeNotRunnable
	res.Stderr = append(res.Stderr, []byte(runErr.Error())...)
	return res, nil
}

func determineShell(explicit string) (string, []string, error) {
	if explicit != "" {
		return explicit, []string{"-c"}, nil
	}

	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}, nil
	}

	if path, err := exec.LookPath("bash"); err == nil {
		return path, []string{"-c"}, nil
	}

	if path, err := exec.LookPath("sh"); err == nil {
		return path, []string{"-c"}, nil
	}

	return "", nil, fmt.Errorf("no suitable shell found")
}
