package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	profile     string
	configPath  string
	verbose     bool
	yes         bool
	keyDir      string
	metricsFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "keysmith",
		Short: "keysmith creates a delegated Google Cloud service account key for a Workspace tool",
		Long: "keysmith creates a Google Cloud project, enables the tool's APIs, creates a service account, " +
			"walks you through domain-wide delegation and hands you the key file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// a bare invocation provisions with the selected profile
			return runProvisionCmd(cmd, flags)
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVarP(&flags.profile, "profile", "p", "", "Built-in profile to provision (default \"password-sync\")")
	persistent.StringVarP(&flags.configPath, "config", "c", "", "Path to a custom profile file; overrides --profile")
	persistent.BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	persistent.BoolVarP(&flags.yes, "yes", "y", false, "Skip the welcome confirmation")
	persistent.StringVar(&flags.keyDir, "key-dir", "", "Directory the key file is written to (default from profile)")
	persistent.StringVar(&flags.metricsFile, "metrics-file", "", "Write run metrics in Prometheus textfile format")

	cmd.AddCommand(newProvisionCmd(flags))
	cmd.AddCommand(newProfilesCmd(flags))
	cmd.AddCommand(newStepsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}
