package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type logEntry map[string]any

func TestLoggerInfoWithFields(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"step": "create_project", "attempt": 1})
	log.Info("starting execution")

	var entry logEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "starting execution", entry["message"])
	require.Equal(t, "create_project", entry["step"])
	require.EqualValues(t, 1, entry["attempt"])
	require.Equal(t, "info", entry["level"])
}

func TestLoggerDebugRespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "info", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log.Debug("this should not appear")
	require.Equal(t, "", strings.TrimSpace(buf.String()))
}

func TestLoggerErrorIncludesContext(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := New(Options{Level: "debug", HumanReadable: false, Writer: buf})
	require.NoError(t, err)

	log = log.WithFields(map[string]any{"step": "create_key"})
	log.Error(errors.New("boom"), "failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "failed", entry["message"])
	require.Equal(t, "create_key", entry["step"])
	require.Equal(t, "boom", entry["error"])
}

func TestLoggerFileReceivesDebugWhileConsoleStaysAtInfo(t *testing.T) {
	t.Parallel()

	console := &bytes.Buffer{}
	file := &bytes.Buffer{}
	log, err := New(Options{Level: "info", Writer: console, File: file})
	require.NoError(t, err)

	log.Debug("attempt trace")
	log.Info("project created")

	require.NotContains(t, console.String(), "attempt trace")
	require.Contains(t, console.String(), "project created")

	lines := strings.Split(strings.TrimSpace(file.String()), "\n")
	require.Len(t, lines, 2)

	var first logEntry
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, "debug", first["level"])
	require.Equal(t, "attempt trace", first["message"])
}

func TestLoggerRejectsUnknownLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Level: "chatty"})
	require.Error(t, err)
}

func TestNilLoggerIsSafe(t *testing.T) {
	t.Parallel()

	var log *Logger
	require.NotPanics(t, func() {
		log.Info("ignored")
		log.Debug("ignored")
		log.Warn("ignored")
		log.Error(errors.New("ignored"), "ignored")
		require.Nil(t, log.WithFields(map[string]any{"k": "v"}))
	})
}

func TestOpenFileAppends(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.log")
	require.NoError(t, os.WriteFile(path, []byte("previous\n"), 0o600))

	f, err := OpenFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("next\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "previous\nnext\n", string(data))
}
