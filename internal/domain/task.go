package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the fixed format used to persist due dates.
const DateLayout = "2006-01-02"

// NoDueDate is displayed in place of a missing due date.
const NoDueDate = "No due date"

// MinDate and MaxDate bound the due dates that fit the YYYY-MM-DD layout.
var (
	MinDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	MaxDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
)

// maxDaySpan is the number of days from MinDate to MaxDate.
const maxDaySpan = 3652058

// ErrDateOutOfRange is returned when a due date would fall outside
// MinDate..MaxDate.
var ErrDateOutOfRange = errors.New("due date out of range 0001-01-01..9999-12-31")

// Status is the completion state of a task. It only moves from
// StatusPending to StatusCompleted.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
)

// String returns the persisted and displayed name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus converts a stored status name back into a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.TrimSpace(s) {
	case "Pending":
		return StatusPending, nil
	case "Completed":
		return StatusCompleted, nil
	default:
		return StatusPending, fmt.Errorf("unknown task status %q", s)
	}
}

// Task represents one unit of trackable work.
type Task struct {
	ID       int64
	Name     string
	Priority int
	DueDate  *time.Time
	Status   Status
}

// NewTask creates a pending task. The due date, when given, is truncated to
// its calendar date.
func NewTask(id int64, name string, priority int, dueDate *time.Time) Task {
	task := Task{
		ID:       id,
		Name:     name,
		Priority: priority,
		Status:   StatusPending,
	}
	if dueDate != nil {
		d := DateOf(*dueDate)
		task.DueDate = &d
	}
	return task
}

// DateOf returns the calendar date of t as midnight UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// InDateRange reports whether the calendar date of d lies in MinDate..MaxDate.
func InDateRange(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(MinDate) && !d.After(MaxDate)
}

// ShiftDate moves d by days. It fails with ErrDateOutOfRange instead of
// producing a date that cannot be stored.
func ShiftDate(d time.Time, days int) (time.Time, error) {
	if days > maxDaySpan || days < -maxDaySpan {
		return time.Time{}, ErrDateOutOfRange
	}
	shifted := d.AddDate(0, 0, days)
	if !InDateRange(shifted) {
		return time.Time{}, ErrDateOutOfRange
	}
	return shifted, nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// MarkComplete sets the task to completed. Calling it again has no effect.
func (t *Task) MarkComplete() {
	t.Status = StatusCompleted
}

// Postpone shifts the due date by the given number of days, which may be
// negative. It reports false and leaves the task untouched when there is no
// due date, or when the shift fails with ErrDateOutOfRange.
func (t *Task) Postpone(days int) (bool, error) {
	if t.DueDate == nil {
		return false, nil
	}
	shifted, err := ShiftDate(*t.DueDate, days)
	if err != nil {
		return false, err
	}
	t.DueDate = &shifted
	return true, nil
}

// IsCompleted reports whether the task has been completed.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue returns true if the task is pending and its due date is before
// the calendar date of now.
func (t Task) IsOverdue(now time.Time) bool {
	if t.IsCompleted() || t.DueDate == nil {
		return false
	}
	return t.DueDate.Before(DateOf(now))
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.ID > 0 && strings.TrimSpace(t.Name) != ""
}

// Less orders tasks by ascending priority, then by due date with undated
// tasks last.
func Less(a, b Task) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	if (a.DueDate == nil) != (b.DueDate == nil) {
		return a.DueDate != nil
	}
	if a.DueDate == nil {
		return false
	}
	return a.DueDate.Before(*b.DueDate)
}

// Clone returns a copy that shares no memory with t.
func (t Task) Clone() Task {
	c := t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return c
}

// DueString formats the due date with layout, or NoDueDate.
func (t Task) DueString(layout string) string {
	if t.DueDate == nil {
		return NoDueDate
	}
	if layout == "" {
		layout = DateLayout
	}
	return t.DueDate.Format(layout)
}

// Summary returns the one-line listing of the task.
func (t Task) Summary(layout string) string {
	return fmt.Sprintf("[%d] %s - Priority: %d, Due: %s, Status: %s",
		t.ID, t.Name, t.Priority, t.DueString(layout), t.Status)
}

// String returns the summary using the default date layout.
func (t Task) String() string {
	return t.Summary(DateLayout)
}
