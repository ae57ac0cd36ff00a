package cli

import (
	"context"
)

// CompleteCommand handles the complete command
type CompleteCommand struct {
	app *App
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{app: app}
}

// Execute marks the task whose id is args[0] as complete
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	id, err := c.app.parseTaskID(args[0])
	if err != nil {
		return err
	}
	return c.complete(ctx, id)
}

func (c *CompleteCommand) complete(ctx context.Context, id int64) error {
	err := c.app.store.MarkComplete(ctx, id)
	if c.app.errors.IsNotFoundError(err) {
		return err
	}

	c.app.printf("Task %d marked as complete.\n", id)
	return c.app.saved(err)
}
