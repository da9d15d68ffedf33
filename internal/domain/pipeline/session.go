package pipeline

import "github.com/alexisbeaulieu97/keysmith/internal/config"

// Session is the state of one provisioning run. It is created once and
// passed by pointer to every step; only the goroutine running the steps
// writes to it.
type Session struct {
	Profile *config.Profile

	ProjectID           string
	ServiceAccountID    string
	ServiceAccountEmail string
	AdminEmail          string

	// KeyFile is fixed when the session starts and exists on disk from the
	// key creation step until the secure delete.
	KeyFile    string
	KeyCreated bool
	KeyDeleted bool

	Results []StepResult
}

// NewSession starts a run for profile writing its key to keyFile.
func NewSession(profile *config.Profile, keyFile string) *Session {
	return &Session{Profile: profile, KeyFile: keyFile}
}

// KeyOnDisk reports whether the key file still needs a secure delete.
func (s *Session) KeyOnDisk() bool {
	return s.KeyCreated && !s.KeyDeleted
}

// Record appends a step result.
func (s *Session) Record(result StepResult) {
	s.Results = append(s.Results, result)
}
