package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"task-tracker/internal/domain"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute prints one summary line per task
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if c.app.store.Len() == 0 {
		c.app.printf("No tasks found\n")
		return nil
	}

	lines := c.app.store.List()
	if !c.app.config.Display.Relative {
		for _, line := range lines {
			c.app.printf("%s\n", line)
		}
		return nil
	}

	today := domain.DateOf(timeNow())
	for i, task := range c.app.store.Tasks() {
		c.app.printf("%s%s\n", lines[i], relativeDue(task, today))
	}
	return nil
}

// relativeDue describes how far the due date is from today
func relativeDue(task domain.Task, today time.Time) string {
	if task.DueDate == nil {
		return ""
	}
	rel := humanize.RelTime(*task.DueDate, today, "ago", "from now")
	if task.DueDate.Equal(today) {
		rel = "today"
	}
	if task.IsOverdue(today) {
		return fmt.Sprintf(" (%s, overdue)", rel)
	}
	return fmt.Sprintf(" (%s)", rel)
}
