// Package provision runs the fixed pipeline that creates a project, its
// service account and a delegated key for one Workspace tool.
package provision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexisbeaulieu97/keysmith/internal/classify"
	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
	"github.com/alexisbeaulieu97/keysmith/internal/executor"
	"github.com/alexisbeaulieu97/keysmith/internal/gate"
	"github.com/alexisbeaulieu97/keysmith/internal/google"
	"github.com/alexisbeaulieu97/keysmith/internal/logger"
	"github.com/alexisbeaulieu97/keysmith/internal/metrics"
	"github.com/alexisbeaulieu97/keysmith/internal/verify"
	keysmitherrors "github.com/alexisbeaulieu97/keysmith/pkg/errors"
)

// Gate is the operator interaction the pipeline needs.
type Gate interface {
	gate.Asker
	Confirm(ctx context.Context, message string) error
}

// Fetcher performs authenticated probe requests.
type Fetcher interface {
	Get(ctx context.Context, url, token string) ([]byte, error)
}

type stepOutcome struct {
	status  pipeline.ResultStatus
	message string
}

func done(message string) stepOutcome {
	return stepOutcome{status: pipeline.StatusSuccess, message: message}
}

func skipped(message string) stepOutcome {
	return stepOutcome{status: pipeline.StatusSkipped, message: message}
}

type stepFunc func(ctx context.Context, sess *pipeline.Session) (stepOutcome, error)

// Sequencer walks the provisioning steps in order.
type Sequencer struct {
	exec     *executor.Executor
	gate     Gate
	minter   google.TokenMinter
	fetcher  Fetcher
	classify classify.ResponseClassifier
	observer Observer
	out      io.Writer
	log      *logger.Logger
	metrics  *metrics.Recorder
	now      func() time.Time

	handlers map[string]stepFunc
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Sequencer) {
		s.log = log
	}
}

// WithMetrics records step durations and verification rounds.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Sequencer) {
		s.metrics = rec
	}
}

// WithOutput sets where operator-facing text is written.
func WithOutput(w io.Writer) Option {
	return func(s *Sequencer) {
		s.out = w
	}
}

// WithObserver receives step progress.
func WithObserver(o Observer) Option {
	return func(s *Sequencer) {
		s.observer = o
	}
}

// WithMinter replaces the key-file token minter.
func WithMinter(m google.TokenMinter) Option {
	return func(s *Sequencer) {
		s.minter = m
	}
}

// WithFetcher replaces the probe HTTP client.
func WithFetcher(f Fetcher) Option {
	return func(s *Sequencer) {
		s.fetcher = f
	}
}

// WithClassifier replaces the probe response classifier.
func WithClassifier(c classify.ResponseClassifier) Option {
	return func(s *Sequencer) {
		s.classify = c
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) {
		s.now = now
	}
}

// New constructs a Sequencer running commands through exec and asking g.
func New(exec *executor.Executor, g Gate, opts ...Option) *Sequencer {
	s := &Sequencer{
		exec:     exec,
		gate:     g,
		classify: classify.Default,
		out:      os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handlers = map[string]stepFunc{
		StepCreateProject:           s.createProject,
		StepVerifyTerms:             s.verifyTerms,
		StepEnableAPIs:              s.enableAPIs,
		StepCreateServiceAccount:    s.createServiceAccount,
		StepAuthorizeServiceAccount: s.authorizeServiceAccount,
		StepCreateKey:               s.createKey,
		StepVerifyScopes:            s.verifyScopes,
		StepVerifyAPIAccess:         s.verifyAPIAccess,
		StepDownloadKey:             s.downloadKey,
		StepDeleteKey:               s.deleteKey,
	}
	return s
}

// Run executes every step strictly in order. The first error aborts the run
// and is returned wrapped in an *errors.ExecutionError, so a command failure
// keeps its exit code and a cancel stays errors.ErrCancelled. When the run
// aborts after the key was written, the key is shredded before returning.
func (s *Sequencer) Run(ctx context.Context, sess *pipeline.Session) error {
	def := Definition()
	if err := def.Validate(); err != nil {
		return err
	}

	for i, step := range def.Steps {
		handler, ok := s.handlers[step.ID]
		if !ok {
			return fmt.Errorf("no handler for step %s", step.ID)
		}

		log := s.log.WithFields(map[string]any{"step": step.ID})
		log.Info(step.Name + "...")
		s.emit(Event{StepID: step.ID, Name: step.Name, Index: i, Total: len(def.Steps), Status: StatusRunning})

		start := s.now()
		outcome, err := handler(ctx, sess)
		elapsed := s.now().Sub(start)

		result := pipeline.StepResult{
			StepID:   step.ID,
			Status:   outcome.status,
			Duration: elapsed,
			Message:  outcome.message,
			Error:    err,
		}
		if err != nil {
			result.Status = pipeline.StatusFailure
			if errors.Is(err, keysmitherrors.ErrCancelled) {
				result.Status = pipeline.StatusCancelled
			}
		}
		sess.Record(result)
		s.metrics.StepFinished(step.ID, string(result.Status), elapsed)
		s.emit(Event{
			StepID:   step.ID,
			Name:     step.Name,
			Index:    i,
			Total:    len(def.Steps),
			Status:   result.Status,
			Duration: elapsed,
			Message:  result.Message,
			Err:      err,
		})

		if err != nil {
			if !errors.Is(err, keysmitherrors.ErrCancelled) {
				log.Error(err, "step failed")
			}
			s.discardKey(ctx, sess)
			return keysmitherrors.NewExecutionError(step.ID, err)
		}

		if result.Message != "" {
			log.Info(result.Message)
		}
	}

	log := s.log.WithFields(map[string]any{"project": sess.ProjectID})
	log.Info("Done!")
	fmt.Fprintf(s.out, "\n%s\n", Farewell)
	return nil
}

// discardKey shreds a key left behind by an aborted run. It ignores the
// caller's cancellation so an interrupted run still cleans up.
func (s *Sequencer) discardKey(ctx context.Context, sess *pipeline.Session) {
	if !sess.KeyOnDisk() {
		return
	}
	cleanupCtx := context.WithoutCancel(ctx)
	cmd := executor.NewCommand(shredCommand(sess.KeyFile), executor.WithMaxRetries(1), executor.WithSuppressErrors())
	res, err := s.exec.Execute(cleanupCtx, cmd)
	if err != nil || res.ExitCode != 0 {
		s.log.WithFields(map[string]any{"key_file": sess.KeyFile}).Warn("could not remove key file, delete it manually")
		return
	}
	sess.KeyDeleted = true
	s.log.WithFields(map[string]any{"key_file": sess.KeyFile}).Info("key file removed")
}

func (s *Sequencer) emit(e Event) {
	if s.observer != nil {
		s.observer(e)
	}
}

// command applies the profile's retry policy to text.
func (s *Sequencer) command(sess *pipeline.Session, text string, opts ...executor.CommandOption) executor.Command {
	base := []executor.CommandOption{
		executor.WithMaxRetries(sess.Profile.Settings.MaxRetries),
		executor.WithRetryDelay(sess.Profile.Settings.RetryDelay),
	}
	return executor.NewCommand(text, append(base, opts...)...)
}

func (s *Sequencer) run(ctx context.Context, sess *pipeline.Session, text string, opts ...executor.CommandOption) (executor.Result, error) {
	return s.exec.Execute(ctx, s.command(sess, text, opts...))
}

// value runs a getter and returns its trimmed output.
func (s *Sequencer) value(ctx context.Context, sess *pipeline.Session, text string) (string, error) {
	res, err := s.run(ctx, sess, text, executor.WithRequireOutput())
	if err != nil {
		return "", err
	}
	return res.Output(), nil
}

func (s *Sequencer) projectID(ctx context.Context, sess *pipeline.Session) (string, error) {
	if sess.ProjectID != "" {
		return sess.ProjectID, nil
	}
	id, err := s.value(ctx, sess, projectIDCommand)
	if err != nil {
		return "", err
	}
	sess.ProjectID = id
	return id, nil
}

func (s *Sequencer) serviceAccountID(ctx context.Context, sess *pipeline.Session) (string, error) {
	if sess.ServiceAccountID != "" {
		return sess.ServiceAccountID, nil
	}
	id, err := s.value(ctx, sess, serviceAccountIDCommand)
	if err != nil {
		return "", err
	}
	sess.ServiceAccountID = id
	return id, nil
}

func (s *Sequencer) serviceAccountEmail(ctx context.Context, sess *pipeline.Session) (string, error) {
	if sess.ServiceAccountEmail != "" {
		return sess.ServiceAccountEmail, nil
	}
	email, err := s.value(ctx, sess, serviceAccountEmailCommand)
	if err != nil {
		return "", err
	}
	sess.ServiceAccountEmail = email
	return email, nil
}

func (s *Sequencer) adminEmail(ctx context.Context, sess *pipeline.Session) (string, error) {
	if sess.AdminEmail != "" {
		return sess.AdminEmail, nil
	}
	email, err := s.value(ctx, sess, adminEmailCommand)
	if err != nil {
		return "", err
	}
	sess.AdminEmail = email
	return email, nil
}

func (s *Sequencer) tokenMinter(sess *pipeline.Session) google.TokenMinter {
	if s.minter != nil {
		return s.minter
	}
	return google.KeyFileMinter{KeyFile: sess.KeyFile}
}

func (s *Sequencer) probeFetcher(sess *pipeline.Session) Fetcher {
	if s.fetcher != nil {
		return s.fetcher
	}
	return google.NewAPIClient(nil, sess.Profile.UserAgent(), s.log)
}

func (s *Sequencer) poller() *verify.Poller {
	return verify.NewPoller(s.gate,
		verify.WithOutput(s.out),
		verify.WithLogger(s.log),
		verify.WithMetrics(s.metrics),
	)
}
