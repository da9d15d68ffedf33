// Package tui renders provisioning progress with bubbletea models. The model
// is updated from step events and rendered inline, since the run interleaves
// operator prompts with progress output.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
	"github.com/alexisbeaulieu97/keysmith/internal/provision"
	"github.com/alexisbeaulieu97/keysmith/internal/tui/components"
)

// StatusPending marks a step that has not started.
const StatusPending pipeline.ResultStatus = "pending"

// StepStartMsg indicates a step has started executing.
type StepStartMsg struct {
	ID   string
	Name string
}

// StepCompleteMsg reports that a step has finished execution.
type StepCompleteMsg struct {
	Result pipeline.StepResult
}

// PreflightMsg carries the outcome of one preflight check.
type PreflightMsg struct {
	Passed  bool
	Warning bool
	Message string
}

type tickMsg struct{}

// EventMsg converts a sequencer event into the matching message.
func EventMsg(e provision.Event) tea.Msg {
	if e.Status == provision.StatusRunning {
		return StepStartMsg{ID: e.StepID, Name: e.Name}
	}
	return StepCompleteMsg{Result: pipeline.StepResult{
		StepID:   e.StepID,
		Status:   e.Status,
		Duration: e.Duration,
		Message:  e.Message,
		Error:    e.Err,
	}}
}

// Model contains the bubbletea state for a provisioning run.
type Model struct {
	title      string
	steps      map[string]pipeline.StepResult
	names      map[string]string
	order      []string
	checks     []components.CheckStatus
	total      int
	completed  int
	unverified int
	current    string
	failed     string
	width      int
	finished   bool
	cancelled  bool
}

// NewModel constructs a model tracking steps in order.
func NewModel(title string, steps []pipeline.Step) Model {
	m := Model{
		title: title,
		steps: make(map[string]pipeline.StepResult, len(steps)),
		names: make(map[string]string, len(steps)),
		order: make([]string, 0, len(steps)),
	}
	for _, step := range steps {
		if _, exists := m.steps[step.ID]; exists {
			continue
		}
		m.steps[step.ID] = pipeline.StepResult{StepID: step.ID, Status: StatusPending}
		m.names[step.ID] = step.Name
		m.order = append(m.order, step.ID)
		m.total++
	}
	return m
}

// Init starts the bubbletea program.
func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Millisecond, func(time.Time) tea.Msg { return tickMsg{} })
}

// TotalSteps returns the total number of steps tracked by the model.
func (m Model) TotalSteps() int {
	return m.total
}

// CompletedSteps returns the number of steps that let the run move on.
func (m Model) CompletedSteps() int {
	return m.completed
}

// IsFinished reports whether the run has ended.
func (m Model) IsFinished() bool {
	return m.finished
}

// Step returns the latest known state of id.
func (m Model) Step(id string) (pipeline.StepResult, bool) {
	res, ok := m.steps[id]
	return res, ok
}

func (m *Model) ensureStep(id, name string) {
	if id == "" {
		return
	}
	if _, exists := m.steps[id]; !exists {
		m.steps[id] = pipeline.StepResult{StepID: id, Status: StatusPending}
		m.order = append(m.order, id)
		m.total++
	}
	if name != "" {
		m.names[id] = name
	}
}

func (m *Model) markFinishedIfComplete() {
	if m.total > 0 && m.completed >= m.total {
		m.finished = true
		m.current = ""
	}
}
