package provision

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/alexisbeaulieu97/keysmith/internal/classify"
	"github.com/alexisbeaulieu97/keysmith/internal/config"
	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
	"github.com/alexisbeaulieu97/keysmith/internal/executor"
	"github.com/alexisbeaulieu97/keysmith/internal/gate"
	"github.com/alexisbeaulieu97/keysmith/internal/google"
	"github.com/alexisbeaulieu97/keysmith/internal/verify"
	keysmitherrors "github.com/alexisbeaulieu97/keysmith/pkg/errors"
)

func (s *Sequencer) createProject(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	now := s.now()
	id := sess.Profile.ProjectID(now)
	if _, err := s.run(ctx, sess, createProjectCommand(id, sess.Profile.ProjectName(now))); err != nil {
		return stepOutcome{}, err
	}
	sess.ProjectID = id
	return done(fmt.Sprintf("%s successfully created", id)), nil
}

// verifyTerms enables the primary API once per round. Its failure is how
// pending terms of service surface, so the stderr is classified instead of
// retried.
func (s *Sequencer) verifyTerms(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	api := sess.Profile.PrimaryAPI()
	if api == "" {
		return skipped("no APIs to enable"), nil
	}

	text := enableServiceCommand(api)
	for {
		res, err := s.run(ctx, sess, text, executor.WithMaxRetries(1), executor.WithSuppressErrors())
		if err != nil {
			return stepOutcome{}, err
		}
		if res.ExitCode == 0 {
			return done("Terms of service acceptance verified"), nil
		}

		stderr := string(res.Stderr)
		terms := classify.ClassifyTermsOfService(stderr)
		if !terms.NotAccepted() {
			return stepOutcome{}, keysmitherrors.NewCommandError(text, res.Stderr, 1)
		}

		s.log.WithFields(map[string]any{"terms": terms.String()}).Debug("terms of service not accepted")
		if instructions := terms.Instructions(); instructions != "" {
			fmt.Fprintf(s.out, "\n%s\n\n", instructions)
		}
		if _, err := s.gate.Ask(ctx, termsRetryPrompt, false); err != nil {
			return stepOutcome{}, err
		}
	}
}

// enableAPIs enables every API after the primary one concurrently. The first
// permanent failure cancels the remaining commands.
func (s *Sequencer) enableAPIs(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	apis := sess.Profile.RemainingAPIs()
	if len(apis) == 0 {
		return skipped("no further APIs to enable"), nil
	}

	g, groupCtx := errgroup.WithContext(ctx)
	for _, api := range apis {
		api := api
		g.Go(func() error {
			_, err := s.run(groupCtx, sess, enableServiceCommand(api))
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return stepOutcome{}, err
	}
	return done("APIs successfully enabled"), nil
}

func (s *Sequencer) createServiceAccount(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	name := sess.Profile.ServiceAccountName()
	if _, err := s.run(ctx, sess, createServiceAccountCommand(name, sess.Profile.ServiceAccountDisplayName())); err != nil {
		return stepOutcome{}, err
	}
	return done(fmt.Sprintf("%s successfully created", name)), nil
}

func (s *Sequencer) authorizeServiceAccount(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	clientID, err := s.serviceAccountID(ctx, sess)
	if err != nil {
		return stepOutcome{}, err
	}
	link := DelegationURL(clientID, sess.Profile.Scopes)
	if err := s.gate.Confirm(ctx, "\n"+authorizeMessage(sess.Profile, link)); err != nil {
		return stepOutcome{}, err
	}
	return done(""), nil
}

func (s *Sequencer) createKey(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	email, err := s.serviceAccountEmail(ctx, sess)
	if err != nil {
		return stepOutcome{}, err
	}
	if _, err := s.run(ctx, sess, createKeyCommand(sess.KeyFile, email)); err != nil {
		return stepOutcome{}, err
	}
	sess.KeyCreated = true
	return done("Service account key successfully created"), nil
}

// verifyScopes mints one token per scope. A refused grant means the scope is
// not delegated yet.
func (s *Sequencer) verifyScopes(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	admin, err := s.adminEmail(ctx, sess)
	if err != nil {
		return stepOutcome{}, err
	}
	clientID, err := s.serviceAccountID(ctx, sess)
	if err != nil {
		return stepOutcome{}, err
	}

	minter := s.tokenMinter(sess)
	checks := make([]verify.Check, 0, len(sess.Profile.Scopes))
	for _, scope := range sess.Profile.Scopes {
		scope := scope
		checks = append(checks, verify.Check{
			Name: scope,
			Evaluate: func(ctx context.Context) verify.Finding {
				_, err := minter.Token(ctx, admin, []string{scope})
				if err == nil {
					return verify.Pass()
				}
				if !google.IsUnauthorized(err) {
					s.log.WithFields(map[string]any{"scope": scope}).Error(err, "an unknown error occurred")
				}
				return verify.Fail(verify.TierProject, scope)
			},
		})
	}

	round := verify.Round{
		Name:               StepVerifyScopes,
		Checks:             checks,
		AllowForceContinue: sess.Profile.Settings.AllowScopeForceContinue,
		Headers:            map[verify.Tier]string{verify.TierProject: missingScopesHeader},
		Footers: map[verify.Tier]string{
			verify.TierProject: missingScopesFooter + "\n\n" + DelegationURL(clientID, sess.Profile.Scopes),
		},
	}
	outcome, err := s.poller().Poll(ctx, round)
	return pollOutcome(outcome, err, "Service account successfully authorized")
}

// verifyAPIAccess probes every enabled API that has a probe with a token
// carrying all scopes. Disabled APIs are reported before per-user services.
func (s *Sequencer) verifyAPIAccess(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	probed := sess.Profile.ProbedAPIs()
	if len(probed) == 0 {
		return skipped("no APIs to probe"), nil
	}

	admin, err := s.adminEmail(ctx, sess)
	if err != nil {
		return stepOutcome{}, err
	}
	project, err := s.projectID(ctx, sess)
	if err != nil {
		return stepOutcome{}, err
	}

	token := &tokenCache{minter: s.tokenMinter(sess), subject: admin, scopes: sess.Profile.Scopes}
	fetcher := s.probeFetcher(sess)

	checks := make([]verify.Check, 0, len(probed))
	for _, p := range probed {
		checks = append(checks, s.probeCheck(p, admin, project, token, fetcher))
	}

	round := verify.Round{
		Name:               StepVerifyAPIAccess,
		Checks:             checks,
		AllowForceContinue: true,
		Footers: map[verify.Tier]string{
			verify.TierProject: disabledAPIsFooter,
			verify.TierUser:    disabledServicesFooter(),
		},
	}
	outcome, err := s.poller().Poll(ctx, round)
	return pollOutcome(outcome, err, "API access verified")
}

func (s *Sequencer) probeCheck(p config.ProbedAPI, admin, project string, token *tokenCache, fetcher Fetcher) verify.Check {
	return verify.Check{
		Name: p.API,
		Evaluate: func(ctx context.Context) verify.Finding {
			tok, err := token.get(ctx)
			if err != nil {
				s.log.WithFields(map[string]any{"api": p.API}).Error(err, "failed to obtain access token")
				return verify.Fail(verify.TierProject, fmt.Sprintf("Unable to obtain an access token to verify the %s API.", p.Probe.DisplayName))
			}

			body, fetchErr := fetcher.Get(ctx, p.Probe.ProbeURL(admin), tok)
			result := s.classify(body, fetchErr)
			switch {
			case result.APIDisabled:
				return verify.Fail(verify.TierProject, fmt.Sprintf("The %s API is not enabled. Please enable it by clicking %s.",
					p.Probe.DisplayName, apiOverviewURL(p.API, project)))
			case p.Probe.ServiceName != "" && result.ServiceDisabled:
				return verify.Fail(verify.TierUser, fmt.Sprintf("The %s service is not enabled for %s.", p.Probe.ServiceName, admin))
			default:
				return verify.Pass()
			}
		},
	}
}

func (s *Sequencer) downloadKey(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	if _, err := s.run(ctx, sess, downloadCommand(sess.KeyFile)); err != nil {
		return stepOutcome{}, err
	}
	return done(""), nil
}

func (s *Sequencer) deleteKey(ctx context.Context, sess *pipeline.Session) (stepOutcome, error) {
	if err := s.gate.Confirm(ctx, "\n"+downloadReminder); err != nil {
		return stepOutcome{}, err
	}
	s.log.WithFields(map[string]any{"key_file": sess.KeyFile}).Debug("deleting key file")
	if _, err := s.run(ctx, sess, shredCommand(sess.KeyFile)); err != nil {
		return stepOutcome{}, err
	}
	sess.KeyDeleted = true
	return done("Key file removed from this machine"), nil
}

// pollOutcome maps a poll result onto a step outcome.
func pollOutcome(outcome verify.Outcome, err error, message string) (stepOutcome, error) {
	if err != nil {
		return stepOutcome{}, err
	}
	if outcome == verify.Forced {
		return stepOutcome{status: pipeline.StatusUnverified, message: "continued without full verification"}, nil
	}
	return done(message), nil
}

// tokenCache mints the all-scopes token on first use and keeps it for the
// rest of the verification. Failures are not cached so a later round can
// succeed once delegation propagates.
type tokenCache struct {
	minter  google.TokenMinter
	subject string
	scopes  []string

	mu    sync.Mutex
	token string
}

func (c *tokenCache) get(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token, nil
	}
	tok, err := c.minter.Token(ctx, c.subject, c.scopes)
	if err != nil {
		return "", err
	}
	c.token = strings.TrimSpace(tok)
	return c.token, nil
}

var _ Gate = (*gate.Gate)(nil)
