package cli

import (
	"context"
	"strings"
	"time"

	"task-tracker/internal/domain"
)

// AddCommand handles the add command
type AddCommand struct {
	app *App
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute adds a task named by the joined args
func (c *AddCommand) Execute(ctx context.Context, args []string, priority int, dueDate *time.Time) error {
	_, err := c.add(ctx, strings.Join(args, " "), priority, dueDate)
	return err
}

// add creates the task and confirms it. A task that was added but could not
// be saved is still confirmed before the save failure is returned.
func (c *AddCommand) add(ctx context.Context, name string, priority int, dueDate *time.Time) (domain.Task, error) {
	task, err := c.app.store.Add(ctx, name, priority, dueDate)
	if c.app.errors.IsValidationError(err) || c.app.errors.IsInvalidInputError(err) {
		return task, err
	}

	c.app.printf("Task %d added.\n", task.ID)
	return task, c.app.saved(err)
}
