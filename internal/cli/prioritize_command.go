package cli

import (
	"context"
)

// PrioritizeCommand handles the prioritize command
type PrioritizeCommand struct {
	app *App
}

// NewPrioritizeCommand creates a new prioritize command handler
func NewPrioritizeCommand(app *App) *PrioritizeCommand {
	return &PrioritizeCommand{app: app}
}

// Execute reorders the tasks and saves them
func (c *PrioritizeCommand) Execute(ctx context.Context, args []string) error {
	if err := c.app.store.Prioritize(ctx); err != nil {
		return c.app.errors.Handle("prioritize tasks", err)
	}

	c.app.printf("Tasks have been prioritized successfully.\n")
	return nil
}
