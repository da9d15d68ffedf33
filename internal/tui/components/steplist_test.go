package components

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/keysmith/internal/domain/pipeline"
)

func TestNewStepList(t *testing.T) {
	t.Parallel()

	t.Run("creates empty step list", func(t *testing.T) {
		t.Parallel()
		sl := NewStepList(nil, nil, nil)
		require.Empty(t, sl.Entries())
	})

	t.Run("respects provided order and names", func(t *testing.T) {
		t.Parallel()
		order := []string{"create_key", "create_project"}
		names := map[string]string{"create_project": "Creating project"}
		steps := map[string]pipeline.StepResult{
			"create_project": {Status: pipeline.StatusSuccess},
			"create_key":     {Status: pipeline.StatusFailure},
		}

		entries := NewStepList(order, names, steps).Entries()
		require.Len(t, entries, 2)
		require.Equal(t, "create_key", entries[0].ID)
		require.Equal(t, "create_key", entries[0].Name)
		require.Equal(t, pipeline.StatusFailure, entries[0].Result.Status)
		require.Equal(t, "Creating project", entries[1].Name)
	})

	t.Run("entries are a copy", func(t *testing.T) {
		t.Parallel()
		sl := NewStepList([]string{"a"}, nil, nil)
		entries := sl.Entries()
		entries[0].ID = "changed"
		require.Equal(t, "a", sl.Entries()[0].ID)
	})
}
