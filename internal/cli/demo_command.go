package cli

import (
	"context"

	"task-tracker/internal/domain"
)

// DemoCommand runs the sample session
type DemoCommand struct {
	app *App
}

// NewDemoCommand creates a new demo command handler
func NewDemoCommand(app *App) *DemoCommand {
	return &DemoCommand{app: app}
}

// Execute adds three tasks, prioritizes and lists them, then completes the
// first and removes the second, listing after each step. It stops at the
// first failure.
func (c *DemoCommand) Execute(ctx context.Context, args []string) error {
	today := domain.DateOf(timeNow())
	inTwoDays := today.AddDate(0, 0, 2)
	tomorrow := today.AddDate(0, 0, 1)

	add := NewAddCommand(c.app)
	finish, err := add.add(ctx, "Finish project", 1, &inTwoDays)
	if err != nil {
		return err
	}
	grocery, err := add.add(ctx, "Go grocery shopping", 3, nil)
	if err != nil {
		return err
	}
	if _, err := add.add(ctx, "Call mom", 2, &tomorrow); err != nil {
		return err
	}

	list := NewListCommand(c.app)
	steps := []func() error{
		func() error { return NewPrioritizeCommand(c.app).Execute(ctx, nil) },
		func() error { return list.Execute(ctx, nil) },
		func() error { return NewCompleteCommand(c.app).complete(ctx, finish.ID) },
		func() error { return list.Execute(ctx, nil) },
		func() error { return NewRemoveCommand(c.app).remove(ctx, grocery.ID) },
		func() error { return list.Execute(ctx, nil) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
