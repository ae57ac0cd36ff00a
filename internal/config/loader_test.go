package config

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker/internal/storage"
	"task-tracker/internal/storage/filestore"
	"task-tracker/internal/storage/sqlite"
)

func TestLoader_Load(t *testing.T) {
	t.Setenv("TASKS_BACKEND", "sqlite")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
}

func TestLoader_LoadInvalidEnvironment(t *testing.T) {
	t.Setenv("TASKS_BACKEND", "mongo")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.backend")
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("TASKS_STORE_DIR", "/from/env")

	dir := "/from/flag"
	relative := true
	maxLen := 20
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		StoreDir:          &dir,
		Relative:          &relative,
		TaskNameMaxLength: &maxLen,
	})
	require.NoError(t, err)

	assert.Equal(t, "/from/flag", cfg.Store.Dir, "flags win over environment")
	assert.True(t, cfg.Display.Relative)
	assert.Equal(t, 20, cfg.Validation.TaskNameMaxLength)
	assert.Equal(t, "2006-01-02", cfg.Display.DateFormat, "unset overrides keep defaults")
}

func TestLoader_LoadWithInvalidOverrides(t *testing.T) {
	backend := "csv"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{Backend: &backend})
	assert.Error(t, err)
}

func TestOpenBackend(t *testing.T) {
	tests := []struct {
		name     string
		backend  string
		filename string
		check    func(t *testing.T, b storage.Backend)
	}{
		{
			name:    "file backend",
			backend: BackendFile,
			check: func(t *testing.T, b storage.Backend) {
				_, ok := b.(*filestore.Backend)
				assert.True(t, ok)
				assert.Equal(t, "tasks.json", filepath.Base(b.Location()))
			},
		},
		{
			name:     "yaml file backend",
			backend:  BackendFile,
			filename: "tasks.yaml",
			check: func(t *testing.T, b storage.Backend) {
				assert.Equal(t, "tasks.yaml", filepath.Base(b.Location()))
			},
		},
		{
			name:    "sqlite backend",
			backend: BackendSQLite,
			check: func(t *testing.T, b storage.Backend) {
				_, ok := b.(*sqlite.Repository)
				assert.True(t, ok)
				assert.Equal(t, "tasks.db", filepath.Base(b.Location()))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.Store.Dir = filepath.Join(t.TempDir(), "store")
			cfg.Store.Backend = tt.backend
			cfg.Store.Filename = tt.filename

			backend, err := OpenBackend(cfg)
			require.NoError(t, err)
			defer backend.Close()
			tt.check(t, backend)

			snapshot, err := backend.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, snapshot.Tasks)
		})
	}
}

func TestOpenBackend_Unknown(t *testing.T) {
	cfg := NewConfig()
	cfg.Store.Backend = "bolt"

	_, err := OpenBackend(cfg)
	assert.Error(t, err)
}
