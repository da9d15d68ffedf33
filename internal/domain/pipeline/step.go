package pipeline

import (
	"regexp"
	"sort"
)

var stepIDPattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// Step is one stage of the provisioning pipeline.
type Step struct {
	ID        string
	Name      string
	DependsOn []string
}

// Validate ensures the step satisfies all business rules.
func (s Step) Validate() error {
	if s.ID == "" {
		return newMissingFieldError("id")
	}
	if !stepIDPattern.MatchString(s.ID) {
		return newValidationError("step id must match ^[a-z0-9_]+$", map[string]any{"step_id": s.ID})
	}
	if s.Name == "" {
		return newMissingFieldError("name").WithContext(map[string]any{"step_id": s.ID})
	}
	return nil
}

// HasDependency returns true if the step depends on the provided identifier.
func (s Step) HasDependency(id string) bool {
	for _, dep := range s.DependsOn {
		if dep == id {
			return true
		}
	}
	return false
}

// SortedDependencies returns a sorted copy of the dependency list.
func (s Step) SortedDependencies() []string {
	deps := append([]string(nil), s.DependsOn...)
	sort.Strings(deps)
	return deps
}
