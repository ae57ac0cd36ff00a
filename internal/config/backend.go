package config

import (
	"fmt"
	"os"
	"path/filepath"

	"task-tracker/internal/storage"
	"task-tracker/internal/storage/filestore"
	"task-tracker/internal/storage/sqlite"
)

// OpenBackend creates the storage backend selected by the configuration
func OpenBackend(config *Config) (storage.Backend, error) {
	path := config.GetStorePath()

	switch config.Store.Backend {
	case BackendSQLite:
		// SQLite will not create missing parent directories
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, os.FileMode(config.Store.DirPermissions)); err != nil {
				return nil, fmt.Errorf("failed to create store directory: %w", err)
			}
		}
		repo, err := sqlite.New(path)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	case BackendFile, "":
		return filestore.New(path).WithDirPermissions(os.FileMode(config.Store.DirPermissions)), nil
	default:
		return nil, &ConfigError{Field: "store.backend", Message: fmt.Sprintf("unknown backend %q", config.Store.Backend)}
	}
}
