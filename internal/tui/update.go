package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
	"github.com/alexisbeaulieu97/keysmith/internal/provision"
	"github.com/alexisbeaulieu97/keysmith/internal/tui/components"
)

// Update handles bubbletea messages and updates model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case StepStartMsg:
		m.ensureStep(msg.ID, msg.Name)
		step := m.steps[msg.ID]
		step.Status = provision.StatusRunning
		m.steps[msg.ID] = step
		m.current = m.names[msg.ID]
		return m, nil
	case StepCompleteMsg:
		id := msg.Result.StepID
		if id == "" {
			return m, nil
		}
		m.ensureStep(id, "")
		previouslyCompleted := m.steps[id].IsSuccess()
		m.steps[id] = msg.Result
		m.current = ""

		switch {
		case msg.Result.Status == pipeline.StatusCancelled:
			m.cancelled = true
			m.finished = true
		case msg.Result.IsFailure():
			m.failed = id
			m.finished = true
		case msg.Result.IsSuccess() && !previouslyCompleted:
			m.completed++
			if msg.Result.Status == pipeline.StatusUnverified {
				m.unverified++
			}
			m.markFinishedIfComplete()
		}
		return m, nil
	case PreflightMsg:
		m.checks = append(m.checks, components.CheckStatus{Passed: msg.Passed, Warning: msg.Warning, Message: msg.Message})
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.cancelled = true
			m.finished = true
			return m, nil
		}
	case tea.QuitMsg:
		m.finished = true
		return m, nil
	}

	return m, nil
}
