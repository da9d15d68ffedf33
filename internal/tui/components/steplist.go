package components

import (
	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
)

// StepEntry represents a single step for rendering.
type StepEntry struct {
	ID     string
	Name   string
	Result pipeline.StepResult
}

// StepList renders a list of steps with their current status.
type StepList struct {
	entries []StepEntry
}

// NewStepList constructs a step list in the given order. Names fall back to
// the step ID.
func NewStepList(order []string, names map[string]string, steps map[string]pipeline.StepResult) StepList {
	entries := make([]StepEntry, 0, len(order))
	for _, id := range order {
		name := names[id]
		if name == "" {
			name = id
		}
		entries = append(entries, StepEntry{ID: id, Name: name, Result: steps[id]})
	}
	return StepList{entries: entries}
}

// Entries returns the ordered step entries.
func (s StepList) Entries() []StepEntry {
	clone := make([]StepEntry, len(s.entries))
	copy(clone, s.entries)
	return clone
}
