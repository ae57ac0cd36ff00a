package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"task-tracker/internal/config"
	"task-tracker/internal/logging"
	"task-tracker/internal/storage"
	"task-tracker/internal/store"
)

// BackendOpener opens the storage backend described by the configuration
type BackendOpener func(*config.Config) (storage.Backend, error)

// commandFunc is the body of a command that works on the task store
type commandFunc func(ctx context.Context, app *App, args []string) error

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd         *cobra.Command
	config      *config.Config
	openBackend BackendOpener
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, openBackend BackendOpener) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if openBackend == nil {
		openBackend = config.OpenBackend
	}

	root := &RootCommand{
		config:      cfg,
		openBackend: openBackend,
	}

	root.cmd = &cobra.Command{
		Use:   "tasks",
		Short: "A command-line personal task tracker",
		Long: `tasks keeps a prioritized list of things to do in a single file.

EXAMPLES:
  tasks add "Finish project" -p 1 --in 2     # Add a task due in two days
  tasks add "Go grocery shopping" -p 3       # Add a task without a due date
  tasks prioritize                           # Order by priority, then due date
  tasks list                                 # Show all tasks
  tasks complete 1                           # Mark task 1 as complete
  tasks postpone 3 2                         # Move the due date of task 3 by two days
  tasks postpone 3 -- -1                     # Pull it back one day
  tasks remove 2                             # Remove task 2
  tasks demo                                 # Run the sample session

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

    TASKS_STORE_DIR                        Directory holding the task file (default: .)
    TASKS_STORE_FILE                       Task file name (default: tasks.json, tasks.db for sqlite)
    TASKS_BACKEND                          Storage backend: file or sqlite (default: file)
    TASKS_STORE_DIR_PERMISSIONS            Mode for created directories (default: 755)
    TASKS_DATE_FORMAT                      Due date display format (default: 2006-01-02)
    TASKS_DISPLAY_RELATIVE                 Show how far away due dates are (default: false)
    TASKS_NAME_MIN                         Min task name length (default: 1)
    TASKS_NAME_MAX                         Max task name length (default: 255)
    TASKS_APP_TIMEOUT                      Per command timeout (default: 30s)
    TASKS_APP_VERBOSE                      Enable verbose output (default: false)
    TASKS_DEBUG                            Enable debug output on stderr

  A task file ending in .yaml or .yml is stored as YAML, anything else as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.applyFlags(cmd.Flags())
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command returns the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent of every
// command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("store-dir", "", "Directory holding the task file (overrides TASKS_STORE_DIR)")
	flags.String("store-file", "", "Task file name (overrides TASKS_STORE_FILE)")
	flags.String("backend", "", "Storage backend, file or sqlite (overrides TASKS_BACKEND)")

	flags.String("date-format", "", "Due date display format (overrides TASKS_DATE_FORMAT)")
	flags.Bool("relative", false, "Show how far away due dates are (overrides TASKS_DISPLAY_RELATIVE)")

	flags.Int("task-name-min-length", 0, "Minimum task name length (overrides TASKS_NAME_MIN)")
	flags.Int("task-name-max-length", 0, "Maximum task name length (overrides TASKS_NAME_MAX)")

	flags.Duration("timeout", 0, "Per command timeout (overrides TASKS_APP_TIMEOUT)")
	flags.BoolP("verbose", "v", false, "Enable verbose output (overrides TASKS_APP_VERBOSE)")
}

// overridesFromFlags collects the global flags the user actually set
func overridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	if flags.Changed("store-dir") {
		v, _ := flags.GetString("store-dir")
		overrides.StoreDir = &v
	}
	if flags.Changed("store-file") {
		v, _ := flags.GetString("store-file")
		overrides.StoreFile = &v
	}
	if flags.Changed("backend") {
		v, _ := flags.GetString("backend")
		overrides.Backend = &v
	}
	if flags.Changed("date-format") {
		v, _ := flags.GetString("date-format")
		overrides.DateFormat = &v
	}
	if flags.Changed("relative") {
		v, _ := flags.GetBool("relative")
		overrides.Relative = &v
	}
	if flags.Changed("task-name-min-length") {
		v, _ := flags.GetInt("task-name-min-length")
		overrides.TaskNameMinLength = &v
	}
	if flags.Changed("task-name-max-length") {
		v, _ := flags.GetInt("task-name-max-length")
		overrides.TaskNameMaxLength = &v
	}
	if flags.Changed("timeout") {
		v, _ := flags.GetDuration("timeout")
		overrides.Timeout = &v
	}
	if flags.Changed("verbose") {
		v, _ := flags.GetBool("verbose")
		overrides.Verbose = &v
	}

	return overrides
}

// applyFlags updates the configuration with values from command-line flags
func (r *RootCommand) applyFlags(flags *pflag.FlagSet) error {
	overridesFromFlags(flags).Apply(r.config)
	if err := r.config.Validate(); err != nil {
		return err
	}
	logging.SetVerbose(r.config.Application.Verbose)
	return nil
}

// openApp opens the configured store. A backend that cannot be opened is
// fatal; a store that cannot be loaded is reported and used empty.
func (r *RootCommand) openApp(ctx context.Context, cmd *cobra.Command) (*App, error) {
	backend, err := r.openBackend(r.config)
	if err != nil {
		return nil, fmt.Errorf("failed to open task store: %w", err)
	}

	app := NewApp(nil, r.config, cmd.OutOrStdout(), cmd.ErrOrStderr())
	logging.Debugf("using %s\n", backend.Location())

	s, loadErr := store.Open(ctx, backend,
		store.WithValidator(app.validator),
		store.WithDateLayout(r.config.Display.DateFormat),
	)
	app.store = s
	if loadErr != nil {
		app.report(app.errors.Handle("load tasks", loadErr))
	}
	return app, nil
}

// run wraps a store command: it opens the store, runs fn under the
// configured timeout and reports any failure without failing the process.
func (r *RootCommand) run(fn commandFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
		defer cancel()

		app, err := r.openApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := app.Close(); err != nil {
				logging.Debugf("close store: %v\n", err)
			}
		}()

		logging.Debugf("running %s %v\n", cmd.Name(), args)
		if err := fn(ctx, app, args); err != nil {
			app.report(err)
		}
		return nil
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	var (
		priority int
		due      string
		inDays   int
	)
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Long: `Add a pending task. The words of the name are joined with spaces.

Examples:
  tasks add "Finish project" -p 1 --due 2026-10-18
  tasks add Call mom -p 2 --in 1`,
		Args: cobra.MinimumNArgs(1),
	}
	addCmd.RunE = r.run(func(ctx context.Context, app *App, args []string) error {
		var in *int
		if addCmd.Flags().Changed("in") {
			in = &inDays
		}
		dueDate, err := parseDueDate(due, in)
		if err != nil {
			return err
		}
		return NewAddCommand(app).Execute(ctx, args, priority, dueDate)
	})
	addCmd.Flags().IntVarP(&priority, "priority", "p", 0, "Priority, lower is more important")
	addCmd.Flags().StringVar(&due, "due", "", "Due date as YYYY-MM-DD")
	addCmd.Flags().IntVar(&inDays, "in", 0, "Due in this many days from today")
	_ = addCmd.MarkFlagRequired("priority")
	addCmd.MarkFlagsMutuallyExclusive("due", "in")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		Long:  "List all tasks in their current order. Use --relative to also show how far away each due date is.",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewListCommand(app).Execute(ctx, args)
		}),
	}

	prioritizeCmd := &cobra.Command{
		Use:   "prioritize",
		Short: "Order tasks by priority and due date",
		Long:  "Sort tasks by ascending priority, then by due date. Tasks without a due date come last within a priority.",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewPrioritizeCommand(app).Execute(ctx, args)
		}),
	}

	completeCmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task as complete",
		Args:  cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewCompleteCommand(app).Execute(ctx, args)
		}),
	}

	removeCmd := &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewRemoveCommand(app).Execute(ctx, args)
		}),
	}

	postponeCmd := &cobra.Command{
		Use:   "postpone <id> <days>",
		Short: "Move the due date of a task",
		Long: `Move the due date of a task by a number of days. Negative values move it
earlier; put them after -- so they are not read as flags.

Examples:
  tasks postpone 3 2
  tasks postpone 3 -- -1`,
		Args: cobra.ExactArgs(2),
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewPostponeCommand(app).Execute(ctx, args)
		}),
	}

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a sample session against the task file",
		Long:  "Add three sample tasks, prioritize them, complete the first, remove the second and list the tasks after each step.",
		Args:  cobra.NoArgs,
		RunE: r.run(func(ctx context.Context, app *App, args []string) error {
			return NewDemoCommand(app).Execute(ctx, args)
		}),
	}

	r.cmd.AddCommand(
		addCmd,
		listCmd,
		prioritizeCmd,
		completeCmd,
		removeCmd,
		postponeCmd,
		demoCmd,
	)
}
