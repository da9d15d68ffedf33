// Package executor runs external commands with a bounded retry policy and
// classifies each attempt as success or failure.
package executor

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/alexisbeaulieu97/keysmith/internal/logger"
	"github.com/alexisbeaulieu97/keysmith/internal/metrics"
	keysmitherrors "github.com/alexisbeaulieu97/keysmith/pkg/errors"
)

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Executor runs commands through a Runner, retrying failed attempts.
type Executor struct {
	runner  Runner
	sleep   Sleeper
	log     *logger.Logger
	metrics *metrics.Recorder
}

// Option configures an Executor.
type Option func(*Executor)

// WithLogger traces every attempt at debug level.
func WithLogger(log *logger.Logger) Option {
	return func(e *Executor) {
		e.log = log
	}
}

// WithMetrics counts attempts by outcome.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(e *Executor) {
		e.metrics = rec
	}
}

// WithSleeper replaces the delay implementation.
func WithSleeper(s Sleeper) Option {
	return func(e *Executor) {
		e.sleep = s
	}
}

// New constructs an Executor. A nil runner falls back to ShellRunner.
func New(runner Runner, opts ...Option) *Executor {
	if runner == nil {
		runner = ShellRunner{}
	}
	e := &Executor{runner: runner, sleep: sleepContext}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs cmd until it succeeds or its attempts are exhausted.
//
// On exhaustion a command with SuppressErrors returns its last result and a
// nil error. Otherwise the last result is returned together with a
// *errors.CommandError, which callers propagate unchanged so the process
// can exit with the command's status.
func (e *Executor) Execute(ctx context.Context, cmd Command) (Result, error) {
	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(cmd.RetryDelay()), uint64(cmd.MaxRetries()-1))
	policy.Reset()

	for attempt := 1; ; attempt++ {
		res, err := e.attempt(ctx, cmd, attempt)
		if err != nil {
			return res, err
		}

		if res.Succeeded(cmd.RequireOutput()) {
			e.metrics.CommandAttempt("succeeded")
			return res, nil
		}
		e.metrics.CommandAttempt("failed")

		next := policy.NextBackOff()
		if next == backoff.Stop {
			if cmd.SuppressErrors() {
				return res, nil
			}
			cmdErr := keysmitherrors.NewCommandError(cmd.Text(), res.Stderr, res.ExitCode)
			e.log.Error(cmdErr, "failed to execute command")
			return res, cmdErr
		}

		if err := e.sleep(ctx, next); err != nil {
			return res, err
		}
	}
}

func (e *Executor) attempt(ctx context.Context, cmd Command, attempt int) (Result, error) {
	log := e.log.WithFields(map[string]any{
		"command": cmd.Text(),
		"attempt": attempt,
	})
	log.Debug("executing command")

	res, err := e.runner.Run(ctx, cmd.Text())
	if err != nil {
		log.Error(err, "command interrupted")
		return res, err
	}

	log.WithFields(map[string]any{
		"stdout":    string(res.Stdout),
		"stderr":    string(res.Stderr),
		"exit_code": res.ExitCode,
	}).Debug("command finished")
	return res, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
