package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckCommandExists(t *testing.T) {
	t.Parallel()

	require.NoError(t, CheckCommandExists("sh"))

	err := CheckCommandExists("command-that-should-not-exist-12345")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found on PATH")

	require.Error(t, CheckCommandExists(""))
}

func TestCheckDirExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "key.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{"directory", dir, ""},
		{"missing", filepath.Join(dir, "missing"), "does not exist"},
		{"file", file, "is not a directory"},
		{"empty", "", "path is required"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := CheckDirExists(tt.path)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
