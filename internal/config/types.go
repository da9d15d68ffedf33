package config

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxRetries is the attempt budget of provisioning commands.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the pause between command attempts.
	DefaultRetryDelay = 5 * time.Second
	// KeyTimestamp is the layout stamped into key file names.
	KeyTimestamp = "2006-01-02-15-04-05"
	// DefaultProjectTimestamp is the layout stamped into project names.
	DefaultProjectTimestamp = KeyTimestamp
	// DefaultKeyDir is where key files are written when nothing else is set.
	DefaultKeyDir = "~"

	adminEmailPlaceholder = "{admin_email}"
)

// Profile describes one Workspace tool the service account is provisioned for.
type Profile struct {
	Name             string           `yaml:"name" validate:"required,tool_name,max=20"`
	FriendlyName     string           `yaml:"friendly_name" validate:"required,min=1,max=100"`
	Version          string           `yaml:"version" validate:"required,numeric"`
	HelpURL          string           `yaml:"help_url" validate:"required,url"`
	LogFile          string           `yaml:"log_file,omitempty"`
	KeyDir           string           `yaml:"key_dir,omitempty"`
	ProjectTimestamp string           `yaml:"project_timestamp,omitempty"`
	APIs             []string         `yaml:"apis" validate:"omitempty,dive,api_name"`
	Scopes           []string         `yaml:"scopes" validate:"required,min=1,dive,scope_url"`
	Probes           map[string]Probe `yaml:"probes,omitempty" validate:"omitempty,dive,keys,api_name,endkeys"`
	Settings         Settings         `yaml:"settings,omitempty"`
}

// Probe is the request used to confirm an API answers for the admin user.
type Probe struct {
	DisplayName string `yaml:"display_name" validate:"required"`
	// ServiceName is set for APIs backed by a product that can be turned off
	// per user.
	ServiceName string `yaml:"service_name,omitempty"`
	URL         string `yaml:"url" validate:"required,url"`
}

// Settings tunes the run.
type Settings struct {
	MaxRetries              int           `yaml:"max_retries,omitempty" validate:"omitempty,min=1,max=10"`
	RetryDelay              time.Duration `yaml:"retry_delay,omitempty"`
	AllowScopeForceContinue bool          `yaml:"allow_scope_force_continue,omitempty"`
}

// UnmarshalYAML applies defaults for fields a profile may omit.
func (p *Profile) UnmarshalYAML(value *yaml.Node) error {
	type rawProfile Profile
	var temp rawProfile
	if err := value.Decode(&temp); err != nil {
		return err
	}
	*p = Profile(temp)
	p.applyDefaults()
	return nil
}

func (p *Profile) applyDefaults() {
	if p.LogFile == "" && p.Name != "" {
		p.LogFile = fmt.Sprintf("%s_create_service_account.log", p.Name)
	}
	if p.KeyDir == "" {
		p.KeyDir = DefaultKeyDir
	}
	if p.ProjectTimestamp == "" {
		p.ProjectTimestamp = DefaultProjectTimestamp
	}
	if p.Settings.MaxRetries == 0 {
		p.Settings.MaxRetries = DefaultMaxRetries
	}
	if p.Settings.RetryDelay == 0 {
		p.Settings.RetryDelay = DefaultRetryDelay
	}
}

// Slug is the lowercase tool name used in generated identifiers.
func (p *Profile) Slug() string {
	return strings.ToLower(p.Name)
}

// UserAgent identifies probe requests.
func (p *Profile) UserAgent() string {
	return fmt.Sprintf("%s_create_service_account_v%s", p.Name, p.Version)
}

// ProjectID is unique per run: project IDs must start with a lowercase letter
// and may contain only lowercase letters, digits and hyphens.
func (p *Profile) ProjectID(now time.Time) string {
	return fmt.Sprintf("%s-%d", p.Slug(), now.UnixMilli())
}

// ProjectName is the human-readable project name.
func (p *Profile) ProjectName(now time.Time) string {
	return fmt.Sprintf("%s-%s", p.Name, now.Format(p.ProjectTimestamp))
}

// ServiceAccountName is the account ID passed to gcloud.
func (p *Profile) ServiceAccountName() string {
	return p.Slug() + "-service-account"
}

// ServiceAccountDisplayName is shown in the cloud console.
func (p *Profile) ServiceAccountDisplayName() string {
	return p.Name + " Service Account"
}

// KeyFileName is the base name of the downloaded key.
func (p *Profile) KeyFileName(now time.Time) string {
	return fmt.Sprintf("%s-service-account-key-%s.json", p.Slug(), now.Format(KeyTimestamp))
}

// PrimaryAPI is the API enabled first, which doubles as the terms of service
// check. It is empty when the profile enables no APIs.
func (p *Profile) PrimaryAPI() string {
	if len(p.APIs) == 0 {
		return ""
	}
	return p.APIs[0]
}

// RemainingAPIs are enabled concurrently after the primary API.
func (p *Profile) RemainingAPIs() []string {
	if len(p.APIs) < 2 {
		return nil
	}
	return append([]string(nil), p.APIs[1:]...)
}

// ProbedAPI pairs an enabled API with its probe.
type ProbedAPI struct {
	API   string
	Probe Probe
}

// ProbedAPIs lists enabled APIs that have a probe, in enablement order.
// Probes for APIs the profile does not enable are ignored.
func (p *Profile) ProbedAPIs() []ProbedAPI {
	var out []ProbedAPI
	for _, api := range p.APIs {
		if probe, ok := p.Probes[api]; ok {
			out = append(out, ProbedAPI{API: api, Probe: probe})
		}
	}
	return out
}

// ProbeURL resolves the probe URL for adminEmail.
func (pr Probe) ProbeURL(adminEmail string) string {
	return strings.ReplaceAll(pr.URL, adminEmailPlaceholder, adminEmail)
}
