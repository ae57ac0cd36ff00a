package cli

import (
	"context"
)

// PostponeCommand handles the postpone command
type PostponeCommand struct {
	app *App
}

// NewPostponeCommand creates a new postpone command handler
func NewPostponeCommand(app *App) *PostponeCommand {
	return &PostponeCommand{app: app}
}

// Execute shifts the due date of task args[0] by args[1] days
func (c *PostponeCommand) Execute(ctx context.Context, args []string) error {
	id, err := c.app.parseTaskID(args[0])
	if err != nil {
		return err
	}
	days, err := parseDays(args[1])
	if err != nil {
		return err
	}

	// not found and out of range leave the task untouched
	shifted, err := c.app.store.Postpone(ctx, id, days)
	if !shifted && err != nil {
		return err
	}

	task, _ := c.app.store.FindByID(id)
	if !shifted {
		c.app.printf("Task %s does not have a due date to postpone.\n", task.Name)
		return nil
	}

	c.app.printf("Task %d postponed to %s.\n", id, c.app.formatDate(*task.DueDate))
	return c.app.saved(err)
}
