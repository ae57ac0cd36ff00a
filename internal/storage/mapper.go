package storage

import (
	"fmt"
	"strings"
	"time"

	"task-tracker/internal/domain"
)

// ToRecord converts a domain Task to its persisted form.
func ToRecord(task domain.Task) Record {
	due := NoneDate
	if task.DueDate != nil {
		due = task.DueDate.Format(domain.DateLayout)
	}
	return Record{
		TaskID:   task.ID,
		Name:     task.Name,
		Priority: task.Priority,
		DueDate:  due,
		Status:   task.Status.String(),
	}
}

// FromRecord converts a persisted record back to a domain Task.
func FromRecord(record Record) (domain.Task, error) {
	due, err := ParseStoredDate(record.DueDate)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %d: %w", record.TaskID, err)
	}
	status, err := domain.ParseStatus(record.Status)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %d: %w", record.TaskID, err)
	}
	if record.TaskID <= 0 {
		return domain.Task{}, fmt.Errorf("invalid task id %d", record.TaskID)
	}

	task := domain.NewTask(record.TaskID, record.Name, record.Priority, due)
	task.Status = status
	return task, nil
}

// ToRecords converts a slice of domain Tasks to records.
func ToRecords(tasks []domain.Task) []Record {
	records := make([]Record, len(tasks))
	for i, task := range tasks {
		records[i] = ToRecord(task)
	}
	return records
}

// FromRecords converts records to domain Tasks. Any bad record fails the
// whole conversion.
func FromRecords(records []Record) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(records))
	for _, record := range records {
		task, err := FromRecord(record)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// ParseStoredDate parses a persisted due date. "None" and the empty string
// mean no due date. Timestamps with a leading YYYY-MM-DD date (as written
// by older versions) are accepted and truncated to the date.
func ParseStoredDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == NoneDate {
		return nil, nil
	}
	if len(s) > len(domain.DateLayout) {
		sep := s[len(domain.DateLayout)]
		if sep == ' ' || sep == 'T' {
			s = s[:len(domain.DateLayout)]
		}
	}
	t, err := domain.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q: %w", s, err)
	}
	return &t, nil
}

// NextIDFor returns the id following the largest id in tasks, or 1.
func NextIDFor(tasks []domain.Task) int64 {
	var maxID int64
	for _, task := range tasks {
		if task.ID > maxID {
			maxID = task.ID
		}
	}
	return maxID + 1
}
