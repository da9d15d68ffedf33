// Package verify polls a set of checks until they all pass or the operator
// decides to move on.
package verify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexisbeaulieu97/keysmith/internal/gate"
	"github.com/alexisbeaulieu97/keysmith/internal/logger"
	"github.com/alexisbeaulieu97/keysmith/internal/metrics"
)

// Outcome tells the caller how a poll ended.
type Outcome int

const (
	// Converged means every check passed in the same round.
	Converged Outcome = iota
	// Forced means the operator continued with failing checks.
	Forced
)

// Round describes one verification loop.
type Round struct {
	// Name labels the loop in logs and metrics.
	Name               string
	Checks             []Check
	AllowForceContinue bool
	// Headers and Footers frame the failure list of the tier being shown.
	Headers map[Tier]string
	Footers map[Tier]string
}

// Failure is a failing check in a round.
type Failure struct {
	Check   string
	Tier    Tier
	Message string
}

// Poller evaluates rounds and escalates failures to a gate.
type Poller struct {
	gate    gate.Asker
	out     io.Writer
	log     *logger.Logger
	metrics *metrics.Recorder
}

// Option configures a Poller.
type Option func(*Poller)

// WithOutput sets where failure reports are written.
func WithOutput(w io.Writer) Option {
	return func(p *Poller) {
		p.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(p *Poller) {
		p.log = log
	}
}

// WithMetrics counts rounds.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(p *Poller) {
		p.metrics = rec
	}
}

// NewPoller constructs a Poller asking g on failure.
func NewPoller(g gate.Asker, opts ...Option) *Poller {
	p := &Poller{gate: g, out: os.Stdout}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll loops until all checks pass in one round or the operator forces
// continuation. A cancel decision is returned as the gate's error and Poll
// never reports success after it.
func (p *Poller) Poll(ctx context.Context, round Round) (Outcome, error) {
	log := p.log.WithFields(map[string]any{"round": round.Name})

	for iteration := 1; ; iteration++ {
		if err := ctx.Err(); err != nil {
			return Converged, err
		}

		failures := Evaluate(ctx, round.Checks)
		p.metrics.PollRound(round.Name, len(failures) == 0)
		if len(failures) == 0 {
			log.WithFields(map[string]any{"iteration": iteration}).Debug("all checks passed")
			return Converged, nil
		}

		for _, f := range failures {
			log.WithFields(map[string]any{
				"iteration": iteration,
				"check":     f.Check,
				"tier":      int(f.Tier),
			}).Debug("check failed")
		}

		fmt.Fprint(p.out, Report(round, failures))

		decision, err := p.gate.Ask(ctx, gate.RetryPrompt(round.AllowForceContinue), round.AllowForceContinue)
		if err != nil {
			return Converged, err
		}
		if decision == gate.ForceContinue {
			log.Warn("continuing with unverified checks")
			return Forced, nil
		}
	}
}

// Evaluate runs every check once and returns the failures in check order.
// All checks are evaluated even after the first failure.
func Evaluate(ctx context.Context, checks []Check) []Failure {
	var failures []Failure
	for _, check := range checks {
		finding := check.Evaluate(ctx)
		if finding.Passed {
			continue
		}
		message := finding.Message
		if strings.TrimSpace(message) == "" {
			message = check.Name
		}
		failures = append(failures, Failure{Check: check.Name, Tier: finding.Tier, Message: message})
	}
	return failures
}

// Visible returns the failures of the most urgent tier present.
func Visible(failures []Failure) []Failure {
	if len(failures) == 0 {
		return nil
	}
	top := failures[0].Tier
	for _, f := range failures[1:] {
		if f.Tier < top {
			top = f.Tier
		}
	}
	var visible []Failure
	for _, f := range failures {
		if f.Tier == top {
			visible = append(visible, f)
		}
	}
	return visible
}

// Report renders the visible failures of a round with the tier's header and
// footer.
func Report(round Round, failures []Failure) string {
	visible := Visible(failures)
	if len(visible) == 0 {
		return ""
	}
	tier := visible[0].Tier

	var b strings.Builder
	b.WriteString("\n")
	if header := round.Headers[tier]; header != "" {
		b.WriteString(header)
		b.WriteString("\n")
	}
	for _, f := range visible {
		b.WriteString("  - ")
		b.WriteString(f.Message)
		b.WriteString("\n")
	}
	if footer := round.Footers[tier]; footer != "" {
		b.WriteString("\n")
		b.WriteString(footer)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	return b.String()
}
