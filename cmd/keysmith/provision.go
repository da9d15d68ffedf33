package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/keysmith/internal/config"
	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
	"github.com/alexisbeaulieu97/keysmith/internal/executor"
	"github.com/alexisbeaulieu97/keysmith/internal/gate"
	"github.com/alexisbeaulieu97/keysmith/internal/google"
	"github.com/alexisbeaulieu97/keysmith/internal/logger"
	"github.com/alexisbeaulieu97/keysmith/internal/metrics"
	"github.com/alexisbeaulieu97/keysmith/internal/provision"
	"github.com/alexisbeaulieu97/keysmith/internal/validation"
	keysmitherrors "github.com/alexisbeaulieu97/keysmith/pkg/errors"
)

type provisionOptions struct {
	Profile     string
	ConfigPath  string
	Verbose     bool
	SkipWelcome bool
	KeyDir      string
	MetricsFile string
}

// provisionEnv holds the process boundaries of a run. Nil fields use the
// real implementations.
type provisionEnv struct {
	runner    executor.Runner
	prompter  gate.Prompter
	minter    google.TokenMinter
	fetcher   provision.Fetcher
	sleeper   executor.Sleeper
	preflight func(keyDir string) []validation.Check
	now       func() time.Time
	logDir    string
}

var provisionCmdRunner = runProvision

func newProvisionCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "provision",
		Aliases: []string{"run"},
		Short:   "Create the project, service account and key for a profile",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProvisionCmd(cmd, root)
		},
	}

	return cmd
}

func runProvisionCmd(cmd *cobra.Command, root *rootFlags) error {
	opts := provisionOptions{
		Profile:     root.profile,
		ConfigPath:  root.configPath,
		Verbose:     root.verbose,
		SkipWelcome: root.yes,
		KeyDir:      root.keyDir,
		MetricsFile: root.metricsFile,
	}
	if err := validateProvisionOptions(opts); err != nil {
		return err
	}
	return provisionCmdRunner(cmd.Context(), opts, cmd.OutOrStdout(), provisionEnv{})
}

func runProvision(ctx context.Context, opts provisionOptions, out io.Writer, env provisionEnv) error {
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now
	if env.now != nil {
		now = env.now
	}

	profile, err := config.Load(opts.Profile, opts.ConfigPath)
	if err != nil {
		return err
	}

	keyFile, err := provision.KeyFilePath(profile, opts.KeyDir, now())
	if err != nil {
		return err
	}

	logFile, err := logger.OpenFile(filepath.Join(env.logDir, profile.LogFile))
	if err != nil {
		return err
	}
	defer logFile.Close()

	level := "info"
	if opts.Verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, HumanReadable: true, Writer: out, File: logFile})
	if err != nil {
		return err
	}
	log = log.WithFields(map[string]any{"profile": profile.Name})

	rec := metrics.NewRecorder()
	if opts.MetricsFile != "" {
		defer func() {
			if werr := rec.WriteTextfile(opts.MetricsFile); werr != nil {
				log.Warn(fmt.Sprintf("failed to write metrics: %v", werr))
			}
		}()
	}

	reporter := newProgressReporter(out, profile.FriendlyName, provision.Definition().Steps)

	preflight := validation.Preflight
	if env.preflight != nil {
		preflight = env.preflight
	}
	results, err := validation.RunChecks(ctx, preflight(filepath.Dir(keyFile)))
	reporter.Preflight(results)
	for _, r := range results {
		if r.Warning {
			log.Warn(r.Message)
		}
	}
	if err != nil {
		reporter.Finish()
		return err
	}

	prompter := env.prompter
	if prompter == nil {
		prompter = gate.NewTerminalPrompter()
	}
	g := gate.New(prompter, gate.WithLogger(log), gate.WithMetrics(rec))

	if !opts.SkipWelcome {
		if err := g.Confirm(ctx, provision.Welcome(profile)); err != nil {
			return err
		}
	}

	execOpts := []executor.Option{executor.WithLogger(log), executor.WithMetrics(rec)}
	if env.sleeper != nil {
		execOpts = append(execOpts, executor.WithSleeper(env.sleeper))
	}
	exec := executor.New(env.runner, execOpts...)

	seqOpts := []provision.Option{
		provision.WithLogger(log),
		provision.WithMetrics(rec),
		provision.WithOutput(out),
		provision.WithObserver(reporter.Observe),
		provision.WithClock(now),
	}
	if env.minter != nil {
		seqOpts = append(seqOpts, provision.WithMinter(env.minter))
	}
	if env.fetcher != nil {
		seqOpts = append(seqOpts, provision.WithFetcher(env.fetcher))
	}

	log.WithFields(map[string]any{"key_file": keyFile}).Debug("starting provisioning")
	sess := pipeline.NewSession(profile, keyFile)
	runErr := provision.New(exec, g, seqOpts...).Run(ctx, sess)
	reporter.Finish()

	if runErr != nil && ctx.Err() != nil && errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("%w: %w", keysmitherrors.ErrCancelled, runErr)
	}
	return runErr
}
