// Package metrics counts command attempts, verification rounds and operator
// decisions for a single provisioning run.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder owns a private registry so parallel test runs never collide on the
// global default registry.
type Recorder struct {
	registry *prometheus.Registry

	commandAttempts *prometheus.CounterVec
	pollRounds      *prometheus.CounterVec
	gateDecisions   *prometheus.CounterVec
	stepDuration    *prometheus.HistogramVec
}

// NewRecorder registers the keysmith collectors on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		commandAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keysmith_command_attempts_total",
				Help: "External command attempts by outcome",
			},
			[]string{"outcome"},
		),
		pollRounds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keysmith_verification_rounds_total",
				Help: "Verification rounds by result",
			},
			[]string{"round", "result"},
		),
		gateDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "keysmith_gate_decisions_total",
				Help: "Operator decisions taken at interactive gates",
			},
			[]string{"decision"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "keysmith_step_duration_seconds",
				Help:    "Duration of provisioning steps",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			},
			[]string{"step", "status"},
		),
	}
	r.registry.MustRegister(r.commandAttempts, r.pollRounds, r.gateDecisions, r.stepDuration)
	return r
}

// CommandAttempt records one executor attempt.
func (r *Recorder) CommandAttempt(outcome string) {
	if r == nil {
		return
	}
	r.commandAttempts.WithLabelValues(outcome).Inc()
}

// PollRound records one verification round.
func (r *Recorder) PollRound(round string, passed bool) {
	if r == nil {
		return
	}
	result := "failed"
	if passed {
		result = "passed"
	}
	r.pollRounds.WithLabelValues(round, result).Inc()
}

// GateDecision records an operator decision.
func (r *Recorder) GateDecision(decision string) {
	if r == nil {
		return
	}
	r.gateDecisions.WithLabelValues(decision).Inc()
}

// StepFinished observes the duration of a pipeline step.
func (r *Recorder) StepFinished(step, status string, d time.Duration) {
	if r == nil {
		return
	}
	r.stepDuration.WithLabelValues(step, status).Observe(d.Seconds())
}

// Gatherer exposes the registry for inspection.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile dumps every metric in the text exposition format, suitable for
// the node exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
