// Package gate implements the retry / continue / cancel decision the
// operator takes whenever automatic convergence fails.
package gate

import (
	"context"
	"fmt"

	"github.com/alexisbeaulieu97/keysmith/internal/logger"
	"github.com/alexisbeaulieu97/keysmith/internal/metrics"
	keysmitherrors "github.com/alexisbeaulieu97/keysmith/pkg/errors"
)

// Asker is the decision primitive used by verification loops.
type Asker interface {
	Ask(ctx context.Context, prompt string, allowForceContinue bool) (Decision, error)
}

// Gate turns prompter answers into decisions.
type Gate struct {
	prompter Prompter
	log      *logger.Logger
	metrics  *metrics.Recorder
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger records every decision at debug level.
func WithLogger(log *logger.Logger) Option {
	return func(g *Gate) {
		g.log = log
	}
}

// WithMetrics counts decisions.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(g *Gate) {
		g.metrics = rec
	}
}

// New constructs a Gate around p.
func New(p Prompter, opts ...Option) *Gate {
	g := &Gate{prompter: p}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Ask prompts once and returns Retry or ForceContinue. Cancel is reported as
// errors.ErrCancelled so it unwinds the pipeline; a prompter failure
// (closed input, interrupt) counts as Cancel.
func (g *Gate) Ask(ctx context.Context, prompt string, allowForceContinue bool) (Decision, error) {
	answer, err := g.prompter.Prompt(ctx, prompt)
	decision := ParseAnswer(answer, allowForceContinue)
	if err != nil {
		g.log.Error(err, "prompt failed, treating as cancel")
		decision = Cancel
	}

	g.log.WithFields(map[string]any{
		"prompt":   prompt,
		"answer":   answer,
		"decision": decision.String(),
	}).Debug("gate decision")
	g.metrics.GateDecision(decision.String())

	if decision == Cancel {
		return Cancel, keysmitherrors.ErrCancelled
	}
	return decision, nil
}

// Confirm shows message and waits for the operator to press Enter. Answering
// "n" cancels the run.
func (g *Gate) Confirm(ctx context.Context, message string) error {
	_, err := g.Ask(ctx, fmt.Sprintf("%s\n\nPress Enter to continue or 'n' to cancel:", message), false)
	return err
}

var _ Asker = (*Gate)(nil)
