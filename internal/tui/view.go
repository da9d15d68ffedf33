package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
	"github.com/alexisbeaulieu97/keysmith/internal/provision"
	"github.com/alexisbeaulieu97/keysmith/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render(m.heading()))

	progress := components.NewProgress(m.total, m.barWidth()).View(m.completed, m.current)
	sections = append(sections, sectionStyle.Render("Progress"), progress)

	entries := components.NewStepList(m.order, m.names, m.steps).Entries()
	if len(entries) > 0 {
		sections = append(sections, sectionStyle.Render("Steps"))
		sections = append(sections, renderStepEntries(entries))
	}

	summary := components.NewSummary(components.SummaryData{
		Total:      m.total,
		Completed:  m.completed,
		Unverified: m.unverified,
		Finished:   m.finished,
		Cancelled:  m.cancelled,
		Failed:     m.failed,
		Checks:     m.checks,
	}).View()
	if strings.TrimSpace(summary) != "" {
		sections = append(sections, sectionStyle.Render("Summary"), summaryStyle.Render(summary))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// StepLine renders the single line for id, for printing as steps finish.
func (m Model) StepLine(id string) string {
	res, ok := m.steps[id]
	if !ok {
		return ""
	}
	name := m.names[id]
	if name == "" {
		name = id
	}
	return renderEntry(components.StepEntry{ID: id, Name: name, Result: res})
}

func renderStepEntries(entries []components.StepEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, renderEntry(entry))
	}
	return strings.Join(lines, "\n")
}

func renderEntry(entry components.StepEntry) string {
	res := entry.Result
	line := fmt.Sprintf(" %s %s", StatusIcon(res.Status), entry.Name)
	if text := strings.TrimSpace(res.FormatOutput()); text != "" {
		line = fmt.Sprintf("%s: %s", line, messageStyle.Render(firstLine(text)))
	}
	if res.Duration > 0 {
		line = fmt.Sprintf("%s (%s)", line, res.Duration.Truncate(10*time.Millisecond))
	}
	return line
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func (m Model) heading() string {
	if strings.TrimSpace(m.title) != "" {
		return fmt.Sprintf("keysmith • %s", m.title)
	}
	return "keysmith"
}

func (m Model) barWidth() int {
	if m.width <= 0 {
		return 0
	}
	// leave room for the counter and the current step label
	return max(10, m.width/3)
}

// StatusIcon returns the glyph representing a step status.
func StatusIcon(status pipeline.ResultStatus) string {
	switch status {
	case pipeline.StatusSuccess:
		return successStyle.Render("✓")
	case provision.StatusRunning:
		return runningStyle.Render("⏳")
	case pipeline.StatusFailure:
		return failureStyle.Render("✗")
	case pipeline.StatusCancelled:
		return failureStyle.Render("■")
	case pipeline.StatusUnverified:
		return unverifiedStyle.Render("?")
	case pipeline.StatusSkipped:
		return skippedStyle.Render("⊘")
	default:
		return pendingStyle.Render("…")
	}
}
