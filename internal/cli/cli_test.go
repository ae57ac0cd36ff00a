package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/config"
	apperrors "task-tracker/internal/errors"
	"task-tracker/internal/logging"
	"task-tracker/internal/storage"
)

var testNow = time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC)

func setupFixedTime(t *testing.T) {
	t.Helper()
	original := timeNow
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = original })
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	cfg.Store.Dir = t.TempDir()
	return cfg
}

// executeCommand runs one invocation of the command tree against cfg
func executeCommand(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()
	return executeWithOpener(t, cfg, config.OpenBackend, args...)
}

func executeWithOpener(t *testing.T, cfg *config.Config, opener BackendOpener, args ...string) (string, string, error) {
	t.Helper()
	t.Cleanup(func() { logging.SetVerbose(false) })

	root := NewRootCommand(cfg, opener)
	var out, errOut bytes.Buffer
	root.Command().SetOut(&out)
	root.Command().SetErr(&errOut)
	root.Command().SetArgs(args)

	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand_BackendOpenFailureIsFatal(t *testing.T) {
	cfg := newTestConfig(t)
	failing := func(*config.Config) (storage.Backend, error) {
		return nil, errors.New("disk on fire")
	}

	_, _, err := executeWithOpener(t, cfg, failing, "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestRootCommand_InvalidFlagConfiguration(t *testing.T) {
	cfg := newTestConfig(t)

	_, _, err := executeCommand(t, cfg, "--backend", "csv", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.backend")
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	setupFixedTime(t)
	cfg := newTestConfig(t)
	defaultDir := cfg.Store.Dir
	dir := filepath.Join(t.TempDir(), "elsewhere")

	stdout, stderr, err := executeCommand(t, cfg, "--store-dir", dir, "--store-file", "todo.yaml", "add", "Call mom", "-p", "2")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, "Task 1 added.\n", stdout)

	assert.FileExists(t, filepath.Join(dir, "todo.yaml"))
	assert.NoFileExists(t, filepath.Join(defaultDir, config.DefaultFileName))
}

func TestRootCommand_LoadFailureIsReported(t *testing.T) {
	cfg := newTestConfig(t)
	require.NoError(t, os.WriteFile(cfg.GetStorePath(), []byte("{not json"), 0644))

	stdout, stderr, err := executeCommand(t, cfg, "list")
	require.NoError(t, err)
	assert.Contains(t, stderr, "failed to load tasks")
	assert.Equal(t, "No tasks found\n", stdout)
}

func TestRootCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"add without priority", []string{"add", "Call mom"}},
		{"add without name", []string{"add", "-p", "1"}},
		{"add with due and in", []string{"add", "Call mom", "-p", "1", "--due", "2026-10-20", "--in", "2"}},
		{"complete without id", []string{"complete"}},
		{"postpone without days", []string{"postpone", "1"}},
		{"list with args", []string{"list", "extra"}},
		{"unknown command", []string{"schedule"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, newTestConfig(t), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestRootCommand_SQLiteBackend(t *testing.T) {
	setupFixedTime(t)
	cfg := newTestConfig(t)

	_, stderr, err := executeCommand(t, cfg, "--backend", "sqlite", "add", "Finish project", "-p", "1", "--in", "2")
	require.NoError(t, err)
	require.Empty(t, stderr)

	stdout, stderr, err := executeCommand(t, cfg, "--backend", "sqlite", "list")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, "[1] Finish project - Priority: 1, Due: 2026-10-18, Status: Pending\n", stdout)
	assert.FileExists(t, filepath.Join(cfg.Store.Dir, config.DefaultSQLiteName))
}

func TestParseDueDate(t *testing.T) {
	setupFixedTime(t)
	two := 2
	minusOne := -1
	farFuture := 3000000

	tests := []struct {
		name     string
		due      string
		inDays   *int
		expected string
		wantErr  bool
	}{
		{"no due date", "", nil, "", false},
		{"explicit date", "2026-12-01", nil, "2026-12-01", false},
		{"relative date", "", &two, "2026-10-18", false},
		{"relative date in the past", "", &minusOne, "2026-10-15", false},
		{"bad date", "tomorrow", nil, "", true},
		{"year zero", "0000-06-01", nil, "", true},
		{"relative date past year 9999", "", &farFuture, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due, err := parseDueDate(tt.due, tt.inDays)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.expected == "" {
				assert.Nil(t, due)
				return
			}
			require.NotNil(t, due)
			assert.Equal(t, tt.expected, due.Format("2006-01-02"))
		})
	}
}

func TestParseDays(t *testing.T) {
	days, err := parseDays(" -3 ")
	require.NoError(t, err)
	assert.Equal(t, -3, days)

	_, err = parseDays("three")
	assert.Error(t, err)
}

type readOnlyBackend struct {
	storage.Backend
}

func (readOnlyBackend) Save(ctx context.Context, snapshot storage.Snapshot) error {
	return apperrors.NewStorageError("write task file", errors.New("read-only file system"))
}

func TestRootCommand_SaveFailureIsReported(t *testing.T) {
	cfg := newTestConfig(t)
	readOnly := func(cfg *config.Config) (storage.Backend, error) {
		backend, err := config.OpenBackend(cfg)
		return readOnlyBackend{backend}, err
	}

	stdout, stderr, err := executeWithOpener(t, cfg, readOnly, "add", "Call mom", "-p", "2")
	require.NoError(t, err)
	assert.Equal(t, "Task 1 added.\n", stdout)
	assert.Equal(t, "failed to save tasks: storage operation failed: write task file: read-only file system\n", stderr)

	stdout, _, err = executeCommand(t, cfg, "list")
	require.NoError(t, err)
	assert.Equal(t, "No tasks found\n", stdout)
}

func TestRootCommand_VerboseEnablesDebugOutput(t *testing.T) {
	cfg := newTestConfig(t)
	var debug bytes.Buffer
	logging.SetOutput(&debug)
	t.Cleanup(func() { logging.SetOutput(nil) })

	_, _, err := executeCommand(t, cfg, "--verbose", "list")
	require.NoError(t, err)
	assert.Contains(t, debug.String(), "debug: using "+cfg.GetStorePath())
	assert.Contains(t, debug.String(), "debug: running list")
}
