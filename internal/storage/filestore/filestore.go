// Package filestore keeps the task collection in a single JSON or YAML file
// that is rewritten in full on every save.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"task-tracker/internal/errors"
	"task-tracker/internal/logging"
	"task-tracker/internal/storage"
)

// Backend stores tasks in one structured text file.
type Backend struct {
	path     string
	codec    codec
	dirPerms os.FileMode
}

// New creates a file backend for path. The codec is chosen by extension.
func New(path string) *Backend {
	return &Backend{
		path:     path,
		codec:    codecFor(path),
		dirPerms: 0755,
	}
}

// WithDirPermissions sets the mode used when creating missing parent
// directories on save.
func (b *Backend) WithDirPermissions(perm os.FileMode) *Backend {
	if perm != 0 {
		b.dirPerms = perm
	}
	return b
}

// Location returns the path of the task file.
func (b *Backend) Location() string {
	return b.path
}

// Close is a no-op; the file is only open during Load and Save.
func (b *Backend) Close() error {
	return nil
}

// Load reads the task file. A missing file yields an empty snapshot.
func (b *Backend) Load(ctx context.Context) (storage.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return storage.Snapshot{}, err
	}

	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Debugf("task file %s does not exist, starting empty\n", b.path)
			return storage.Snapshot{NextID: 1}, nil
		}
		return storage.Snapshot{}, errors.NewStorageError("read task file", err)
	}

	doc, err := b.codec.Decode(data)
	if err != nil {
		return storage.Snapshot{}, errors.NewStorageError("parse task file", fmt.Errorf("%s: %w", b.path, err))
	}

	tasks, err := storage.FromRecords(doc.Tasks)
	if err != nil {
		return storage.Snapshot{}, errors.NewStorageError("parse task file", fmt.Errorf("%s: %w", b.path, err))
	}

	nextID := doc.NextID
	if minNext := storage.NextIDFor(tasks); nextID < minNext {
		nextID = minNext
	}

	logging.Debugf("loaded %d tasks from %s (%s)\n", len(tasks), b.path, b.codec.Name())
	return storage.Snapshot{NextID: nextID, Tasks: tasks}, nil
}

// Save overwrites the task file. The content is written to a temporary file
// in the same directory and renamed over the target.
func (b *Backend) Save(ctx context.Context, snapshot storage.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := b.codec.Encode(document{
		NextID: snapshot.NextID,
		Tasks:  storage.ToRecords(snapshot.Tasks),
	})
	if err != nil {
		return errors.NewStorageError("encode task file", err)
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, b.dirPerms); err != nil {
		return errors.NewStorageError("create task directory", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*.tmp")
	if err != nil {
		return errors.NewStorageError("write task file", err)
	}
	tmpPath := tmp.Name()

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewStorageError("write task file", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.NewStorageError("write task file", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.NewStorageError("write task file", err)
	}
	if err := os.Rename(tmpPath, b.path); err != nil {
		os.Remove(tmpPath)
		return errors.NewStorageError("replace task file", err)
	}

	logging.Debugf("saved %d tasks to %s\n", len(snapshot.Tasks), b.path)
	return nil
}
