package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/keysmith/internal/config"
)

type profilesOptions struct {
	jsonOutput bool
}

func newProfilesCmd(root *rootFlags) *cobra.Command {
	opts := &profilesOptions{}

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in tool profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(cmd, root, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func runProfiles(cmd *cobra.Command, root *rootFlags, opts *profilesOptions) error {
	var profiles []*config.Profile
	var keys []string
	if root.configPath != "" {
		p, err := config.ParseProfile(root.configPath)
		if err != nil {
			return err
		}
		profiles = append(profiles, p)
		keys = append(keys, root.configPath)
	} else {
		for _, name := range config.BuiltinNames() {
			p, err := config.Builtin(name)
			if err != nil {
				return err
			}
			profiles = append(profiles, p)
			keys = append(keys, name)
		}
	}

	if opts.jsonOutput {
		return renderProfilesJSON(cmd, keys, profiles)
	}
	return renderProfilesTable(cmd, keys, profiles)
}

func renderProfilesTable(cmd *cobra.Command, keys []string, profiles []*config.Profile) error {
	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "PROFILE\tTOOL\tVERSION\tAPIS\tSCOPES")
	for i, p := range profiles {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%d\n",
			keys[i],
			p.FriendlyName,
			p.Version,
			strings.Join(p.APIs, ","),
			len(p.Scopes),
		)
	}

	return writer.Flush()
}

type profileJSON struct {
	Profile  string   `json:"profile"`
	Tool     string   `json:"tool"`
	Name     string   `json:"name"`
	Version  string   `json:"version"`
	HelpURL  string   `json:"help_url"`
	APIs     []string `json:"apis"`
	Scopes   []string `json:"scopes"`
	Probed   []string `json:"probed_apis"`
	LogFile  string   `json:"log_file"`
	KeyDir   string   `json:"key_dir"`
	Retries  int      `json:"max_retries"`
	Interval string   `json:"retry_delay"`
}

func renderProfilesJSON(cmd *cobra.Command, keys []string, profiles []*config.Profile) error {
	payload := make([]profileJSON, 0, len(profiles))
	for i, p := range profiles {
		probed := make([]string, 0, len(p.Probes))
		for _, pa := range p.ProbedAPIs() {
			probed = append(probed, pa.API)
		}
		payload = append(payload, profileJSON{
			Profile:  keys[i],
			Tool:     p.FriendlyName,
			Name:     p.Name,
			Version:  p.Version,
			HelpURL:  p.HelpURL,
			APIs:     p.APIs,
			Scopes:   p.Scopes,
			Probed:   probed,
			LogFile:  p.LogFile,
			KeyDir:   p.KeyDir,
			Retries:  p.Settings.MaxRetries,
			Interval: p.Settings.RetryDelay.String(),
		})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
