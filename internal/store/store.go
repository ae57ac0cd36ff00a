// Package store owns the in-memory task collection and mediates every read
// and write of its persisted state.
package store

import (
	"context"
	"slices"
	"sort"
	"strconv"
	"time"

	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
	"task-tracker/internal/logging"
	"task-tracker/internal/storage"
	"task-tracker/internal/validation"
)

// TaskStore is an ordered collection of tasks backed by a storage.Backend.
// Every mutating operation rewrites the whole persisted state. It is not
// safe for concurrent use.
type TaskStore struct {
	backend    storage.Backend
	validator  *validation.TaskValidator
	dateLayout string

	tasks  []domain.Task
	nextID int64
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithValidator replaces the default task name validator.
func WithValidator(v *validation.TaskValidator) Option {
	return func(s *TaskStore) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithDateLayout sets the layout used by List.
func WithDateLayout(layout string) Option {
	return func(s *TaskStore) {
		if layout != "" {
			s.dateLayout = layout
		}
	}
}

// New creates an empty store on top of backend without loading it.
func New(backend storage.Backend, opts ...Option) *TaskStore {
	s := &TaskStore{
		backend:    backend,
		validator:  validation.NewTaskValidator(),
		dateLayout: domain.DateLayout,
		nextID:     1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a store and loads the persisted state. The returned store is
// always usable: when loading fails it is empty and the error describes why.
func Open(ctx context.Context, backend storage.Backend, opts ...Option) (*TaskStore, error) {
	s := New(backend, opts...)
	return s, s.Load(ctx)
}

// Load replaces the collection with the persisted state. On failure the
// collection is left empty; partial loads are never kept.
func (s *TaskStore) Load(ctx context.Context) error {
	s.tasks = nil
	s.nextID = 1

	snapshot, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}

	s.tasks = snapshot.Tasks
	s.nextID = snapshot.NextID
	if minNext := storage.NextIDFor(s.tasks); s.nextID < minNext {
		s.nextID = minNext
	}
	return nil
}

// Save overwrites the persisted state with the current collection. A failed
// save leaves memory untouched, so memory and disk may diverge.
func (s *TaskStore) Save(ctx context.Context) error {
	snapshot := storage.Snapshot{
		NextID: s.nextID,
		Tasks:  s.Tasks(),
	}
	if err := s.backend.Save(ctx, snapshot); err != nil {
		logging.Debugf("save to %s failed: %v\n", s.backend.Location(), err)
		return err
	}
	return nil
}

// Add appends a new pending task and saves. The name is trimmed and
// validated. The created task is returned even when the save fails.
func (s *TaskStore) Add(ctx context.Context, name string, priority int, dueDate *time.Time) (domain.Task, error) {
	cleanName, err := s.validator.GetValidTaskName(name)
	if err != nil {
		return domain.Task{}, errors.NewValidationError("invalid task name", err)
	}
	if dueDate != nil && !domain.InDateRange(*dueDate) {
		return domain.Task{}, errors.NewInvalidInputError("due", dueDate.Format(domain.DateLayout), domain.ErrDateOutOfRange.Error())
	}

	task := domain.NewTask(s.nextID, cleanName, priority, dueDate)
	s.nextID++
	s.tasks = append(s.tasks, task)
	logging.Debugf("added task %d %q\n", task.ID, task.Name)

	return task.Clone(), s.Save(ctx)
}

// List returns one summary line per task in collection order.
func (s *TaskStore) List() []string {
	lines := make([]string, len(s.tasks))
	for i, task := range s.tasks {
		lines[i] = task.Summary(s.dateLayout)
	}
	return lines
}

// Tasks returns copies of all tasks in collection order.
func (s *TaskStore) Tasks() []domain.Task {
	tasks := make([]domain.Task, len(s.tasks))
	for i, task := range s.tasks {
		tasks[i] = task.Clone()
	}
	return tasks
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// NextID returns the id the next added task will receive.
func (s *TaskStore) NextID() int64 {
	return s.nextID
}

// Location describes where the backend persists tasks.
func (s *TaskStore) Location() string {
	return s.backend.Location()
}

// FindByID returns a copy of the first task with the given id.
func (s *TaskStore) FindByID(id int64) (domain.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i].Clone(), true
}

// Remove deletes the task with the given id and saves. An unknown id yields
// a not found error and nothing is saved.
func (s *TaskStore) Remove(ctx context.Context, id int64) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}

	s.tasks = slices.Delete(s.tasks, i, i+1)
	logging.Debugf("removed task %d\n", id)
	return s.Save(ctx)
}

// Prioritize stably sorts the collection by ascending priority, then due
// date with undated tasks last, and saves.
func (s *TaskStore) Prioritize(ctx context.Context) error {
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return domain.Less(s.tasks[i], s.tasks[j])
	})
	logging.Debugln("prioritized", len(s.tasks), "tasks")
	return s.Save(ctx)
}

// MarkComplete completes the task with the given id and saves. An unknown
// id yields a not found error and nothing is saved.
func (s *TaskStore) MarkComplete(ctx context.Context, id int64) error {
	i := s.indexOf(id)
	if i < 0 {
		return notFound(id)
	}

	s.tasks[i].MarkComplete()
	return s.Save(ctx)
}

// Postpone shifts the due date of the task with the given id by days and
// saves. It returns false without saving when the task has no due date. A
// shift that would leave the storable date range is rejected as invalid
// input; the task is unchanged and nothing is saved.
func (s *TaskStore) Postpone(ctx context.Context, id int64, days int) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, notFound(id)
	}

	shifted, err := s.tasks[i].Postpone(days)
	if err != nil {
		return false, errors.NewInvalidInputError("days", days, err.Error())
	}
	if !shifted {
		return false, nil
	}
	return true, s.Save(ctx)
}

// Close releases the backend.
func (s *TaskStore) Close() error {
	return s.backend.Close()
}

func (s *TaskStore) indexOf(id int64) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool {
		return t.ID == id
	})
}

func notFound(id int64) error {
	return errors.NewNotFoundError("task", strconv.FormatInt(id, 10)).WithContext("id", id)
}
