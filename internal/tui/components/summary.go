package components

import (
	"fmt"
	"strings"
)

// CheckStatus is a preflight outcome for summary rendering.
type CheckStatus struct {
	Passed  bool
	Warning bool
	Message string
}

// SummaryData aggregates counts for rendering summaries.
type SummaryData struct {
	Total      int
	Completed  int
	Unverified int
	Finished   bool
	Cancelled  bool
	Failed     string
	Checks     []CheckStatus
}

// Summary renders a textual run summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// View renders the summary.
func (s Summary) View() string {
	var lines []string
	if len(s.data.Checks) > 0 {
		lines = append(lines, "Preflight:")
		for _, c := range s.data.Checks {
			status := "✗"
			switch {
			case c.Passed:
				status = "✓"
			case c.Warning:
				status = "!"
			}
			lines = append(lines, fmt.Sprintf("  %s %s", status, c.Message))
		}
	}

	if s.data.Total > 0 {
		lines = append(lines, fmt.Sprintf("Steps: %d/%d completed", s.data.Completed, s.data.Total))
	}

	switch {
	case s.data.Cancelled:
		lines = append(lines, "Provisioning cancelled")
	case s.data.Failed != "":
		lines = append(lines, fmt.Sprintf("Provisioning failed at %s", s.data.Failed))
	case s.data.Finished && s.data.Total > 0:
		if s.data.Completed < s.data.Total {
			lines = append(lines, "Provisioning stopped with pending steps")
		} else if s.data.Unverified > 0 {
			lines = append(lines, fmt.Sprintf("Provisioning finished, %d verification(s) skipped", s.data.Unverified))
		} else {
			lines = append(lines, "Provisioning finished successfully")
		}
	}

	return strings.Join(lines, "\n")
}
