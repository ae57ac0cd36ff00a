package cli

import (
	"context"
)

// RemoveCommand handles the remove command
type RemoveCommand struct {
	app *App
}

// NewRemoveCommand creates a new remove command handler
func NewRemoveCommand(app *App) *RemoveCommand {
	return &RemoveCommand{app: app}
}

// Execute removes the task whose id is args[0]
func (c *RemoveCommand) Execute(ctx context.Context, args []string) error {
	id, err := c.app.parseTaskID(args[0])
	if err != nil {
		return err
	}
	return c.remove(ctx, id)
}

func (c *RemoveCommand) remove(ctx context.Context, id int64) error {
	err := c.app.store.Remove(ctx, id)
	if c.app.errors.IsNotFoundError(err) {
		return err
	}

	c.app.printf("Task %d removed successfully.\n", id)
	return c.app.saved(err)
}
