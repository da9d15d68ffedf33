package executor

import (
	"strings"
	"time"
)

const (
	// DefaultMaxRetries is the number of attempts a command gets unless overridden.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the pause between two attempts.
	DefaultRetryDelay = 5 * time.Second
)

// Command is a shell-executable string together with its retry policy.
// Commands are immutable once built.
type Command struct {
	text           string
	maxRetries     int
	retryDelay     time.Duration
	suppressErrors bool
	requireOutput  bool
}

// CommandOption customises a Command at construction time.
type CommandOption func(*Command)

// NewCommand builds a command with the default retry policy.
func NewCommand(text string, opts ...CommandOption) Command {
	cmd := Command{
		text:       text,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
	for _, opt := range opts {
		opt(&cmd)
	}
	if cmd.maxRetries < 1 {
		cmd.maxRetries = 1
	}
	if cmd.retryDelay < 0 {
		cmd.retryDelay = 0
	}
	return cmd
}

// WithMaxRetries sets the total number of attempts.
func WithMaxRetries(n int) CommandOption {
	return func(c *Command) {
		c.maxRetries = n
	}
}

// WithRetryDelay sets the pause between attempts.
func WithRetryDelay(d time.Duration) CommandOption {
	return func(c *Command) {
		c.retryDelay = d
	}
}

// WithSuppressErrors makes an exhausted command return its last result
// instead of failing.
func WithSuppressErrors() CommandOption {
	return func(c *Command) {
		c.suppressErrors = true
	}
}

// WithRequireOutput treats an empty stdout as a failed attempt.
func WithRequireOutput() CommandOption {
	return func(c *Command) {
		c.requireOutput = true
	}
}

// Text returns the shell command line.
func (c Command) Text() string { return c.text }

// MaxRetries returns the total number of attempts.
func (c Command) MaxRetries() int { return c.maxRetries }

// RetryDelay returns the pause between attempts.
func (c Command) RetryDelay() time.Duration { return c.retryDelay }

// SuppressErrors reports whether exhaustion returns the last result.
func (c Command) SuppressErrors() bool { return c.suppressErrors }

// RequireOutput reports whether success needs a non-empty stdout.
func (c Command) RequireOutput() bool { return c.requireOutput }

// Result captures one finished attempt.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Output returns stdout without surrounding whitespace, the form used for
// identifiers read back from gcloud.
func (r Result) Output() string {
	return strings.TrimSpace(string(r.Stdout))
}

// Succeeded applies the success rule: exit code 0 and, when required, some
// non-blank output on stdout.
func (r Result) Succeeded(requireOutput bool) bool {
	if r.ExitCode != 0 {
		return false
	}
	return !requireOutput || r.Output() != ""
}
