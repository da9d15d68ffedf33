package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
)

func complete(t *testing.T, m Model, id string, status pipeline.ResultStatus) Model {
	t.Helper()
	updated, cmd := m.Update(StepCompleteMsg{Result: pipeline.StepResult{StepID: id, Status: status}})
	require.Nil(t, cmd)
	return updated.(Model)
}

func TestUpdateFinishesWhenAllStepsComplete(t *testing.T) {
	m := NewModel("", testSteps())
	m = complete(t, m, "create_project", pipeline.StatusSuccess)
	m = complete(t, m, "verify_scopes", pipeline.StatusUnverified)

	require.True(t, m.IsFinished())
	require.Equal(t, 2, m.CompletedSteps())
	require.Equal(t, 1, m.unverified)
	require.False(t, m.cancelled)
	require.Empty(t, m.failed)
}

func TestUpdateCountsRepeatedCompletionOnce(t *testing.T) {
	m := NewModel("", testSteps())
	m = complete(t, m, "create_project", pipeline.StatusSuccess)
	m = complete(t, m, "create_project", pipeline.StatusSuccess)
	require.Equal(t, 1, m.CompletedSteps())
}

func TestUpdateFailureStopsTracking(t *testing.T) {
	m := NewModel("", testSteps())
	m = complete(t, m, "create_project", pipeline.StatusFailure)

	require.True(t, m.IsFinished())
	require.Equal(t, "create_project", m.failed)
	require.Zero(t, m.CompletedSteps())
}

func TestUpdateCancelledStep(t *testing.T) {
	m := NewModel("", testSteps())
	m = complete(t, m, "create_project", pipeline.StatusSuccess)
	m = complete(t, m, "verify_scopes", pipeline.StatusCancelled)

	require.True(t, m.IsFinished())
	require.True(t, m.cancelled)
	require.Equal(t, 1, m.CompletedSteps())
}

func TestUpdateIgnoresResultWithoutID(t *testing.T) {
	m := NewModel("", testSteps())
	m = complete(t, m, "", pipeline.StatusSuccess)
	require.Zero(t, m.CompletedSteps())
	require.Equal(t, 2, m.TotalSteps())
}

func TestUpdateTracksUnknownSteps(t *testing.T) {
	m := NewModel("", nil)
	updated, _ := m.Update(StepStartMsg{ID: "extra", Name: "Extra step"})
	m = updated.(Model)
	require.Equal(t, 1, m.TotalSteps())
	require.Equal(t, "Extra step", m.names["extra"])
}

func TestUpdateHandlesTeaMessages(t *testing.T) {
	m := NewModel("", nil)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.Nil(t, cmd)
	m = updated.(Model)
	require.True(t, m.cancelled)

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	require.Equal(t, 120, m.width)
	require.Equal(t, 40, m.barWidth())
}
