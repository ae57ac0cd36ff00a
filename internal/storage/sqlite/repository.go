// Package sqlite keeps the task collection in a single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"task-tracker/internal/errors"
	"task-tracker/internal/logging"
	"task-tracker/internal/storage"
	"task-tracker/internal/storage/sqlite/migrations"

	_ "modernc.org/sqlite"
)

const nextIDKey = "next_id"

// Repository implements storage.Backend on top of SQLite
type Repository struct {
	db   *sql.DB
	path string
}

// New creates a new SQLite repository instance and runs pending migrations
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStorageError("open database", err)
	}
	// a single connection keeps ":memory:" databases alive across calls
	db.SetMaxOpenConns(1)

	if err := migrations.Run(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewStorageError("run migrations", err)
	}

	return &Repository{db: db, path: dbPath}, nil
}

// Location returns the database path
func (r *Repository) Location() string {
	return r.path
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

// Load reads every task in stored order together with the id counter
func (r *Repository) Load(ctx context.Context) (storage.Snapshot, error) {
	query := `
	SELECT task_id, name, priority, due_date, status
	FROM tasks
	ORDER BY position ASC`

	records, err := QueryMultiple(ctx, r.db, query, ScanRecords, "tasks")
	if err != nil {
		return storage.Snapshot{}, err
	}

	tasks, err := storage.FromRecords(records)
	if err != nil {
		return storage.Snapshot{}, errors.NewStorageError("parse tasks", err)
	}

	nextID, err := r.loadNextID(ctx)
	if err != nil {
		return storage.Snapshot{}, err
	}
	if minNext := storage.NextIDFor(tasks); nextID < minNext {
		nextID = minNext
	}

	logging.Debugf("loaded %d tasks from %s (sqlite)\n", len(tasks), r.path)
	return storage.Snapshot{NextID: nextID, Tasks: tasks}, nil
}

func (r *Repository) loadNextID(ctx context.Context) (int64, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, nextIDKey).Scan(&value)
	if err == sql.ErrNoRows {
		return 1, nil
	}
	if err != nil {
		return 0, HandleDatabaseError("read next id", err)
	}

	nextID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, errors.NewStorageError("parse next id", fmt.Errorf("%q: %w", value, err))
	}
	return nextID, nil
}

// Save replaces the stored tasks and id counter in one transaction
func (r *Repository) Save(ctx context.Context, snapshot storage.Snapshot) error {
	err := WithTransaction(ctx, r.db, "save tasks", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (position, task_id, name, priority, due_date, status)
		VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, record := range storage.ToRecords(snapshot.Tasks) {
			if _, err := stmt.ExecContext(ctx, i, record.TaskID, record.Name, record.Priority, record.DueDate, record.Status); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			nextIDKey, strconv.FormatInt(snapshot.NextID, 10))
		return err
	})
	if err != nil {
		return err
	}

	logging.Debugf("saved %d tasks to %s (sqlite)\n", len(snapshot.Tasks), r.path)
	return nil
}
