// Package storage defines the persisted form of the task collection and the
// Backend interface implemented by the file and SQLite stores.
package storage

import (
	"context"

	"task-tracker/internal/domain"
)

// NoneDate is written in place of a missing due date.
const NoneDate = "None"

// Record is the persisted form of one task.
type Record struct {
	TaskID   int64  `json:"task_id" yaml:"task_id"`
	Name     string `json:"name" yaml:"name"`
	Priority int    `json:"priority" yaml:"priority"`
	DueDate  string `json:"due_date" yaml:"due_date"`
	Status   string `json:"status" yaml:"status"`
}

// Snapshot is the complete persisted state: the ordered tasks and the next
// id to hand out.
type Snapshot struct {
	NextID int64
	Tasks  []domain.Task
}

// Backend persists snapshots. Save always replaces everything previously
// stored. Load on a backend that has never been saved returns an empty
// snapshot and no error.
type Backend interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
	Location() string
	Close() error
}
