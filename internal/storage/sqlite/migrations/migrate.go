// Package migrations holds the versioned schema of the SQLite task store.
// Files are named NNNNNN_description.up.sql / .down.sql and applied in
// version order; applied versions are recorded in the migrations table.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

//go:embed *.sql
var files embed.FS

// Migration is one schema step. Down is kept for manual rollback only.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Run applies every embedded migration not yet recorded, each in its own
// transaction.
func Run(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	all, err := load()
	if err != nil {
		return err
	}
	applied, err := Applied(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range all {
		if slices.Contains(applied, m.Version) {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %06d_%s: %w", m.Version, m.Name, err)
		}
	}
	return nil
}

// Applied returns the recorded versions in ascending order.
func Applied(ctx context.Context, db *sql.DB) ([]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("read applied migrations: %w", err)
	}
	defer rows.Close()

	var versions []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func load() ([]Migration, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var all []Migration
	for _, entry := range entries {
		base, ok := strings.CutSuffix(entry.Name(), ".up.sql")
		if !ok {
			continue
		}
		version, name, ok := parseName(base)
		if !ok {
			continue
		}

		up, err := files.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}
		down, err := files.ReadFile(base + ".down.sql")
		if err != nil {
			return nil, fmt.Errorf("migration %s has no down file: %w", base, err)
		}
		all = append(all, Migration{Version: version, Name: name, Up: string(up), Down: string(down)})
	}

	slices.SortFunc(all, func(a, b Migration) int { return a.Version - b.Version })
	return all, nil
}

// parseName splits "000001_create_tasks" into 1 and "create_tasks".
func parseName(base string) (int, string, bool) {
	prefix, name, ok := strings.Cut(base, "_")
	if !ok {
		return 0, "", false
	}
	version, err := strconv.Atoi(prefix)
	if err != nil || version <= 0 {
		return 0, "", false
	}
	return version, name, true
}

func apply(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO migrations (version) VALUES (?)`, m.Version); err != nil {
		return err
	}
	return tx.Commit()
}
