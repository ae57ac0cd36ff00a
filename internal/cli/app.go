package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"task-tracker/internal/config"
	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
	"task-tracker/internal/logging"
	"task-tracker/internal/store"
	"task-tracker/internal/validation"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App represents the state shared by every command: the open task store,
// the effective configuration and the writers results are reported to.
type App struct {
	store     *store.TaskStore
	config    *config.Config
	validator *validation.TaskValidator
	errors    *ErrorHandler

	out    io.Writer
	errOut io.Writer
}

// NewApp creates a CLI application around an already opened store
func NewApp(s *store.TaskStore, cfg *config.Config, out, errOut io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		store:     s,
		config:    cfg,
		validator: validation.NewTaskValidatorWithLimits(cfg.Validation.TaskNameMinLength, cfg.Validation.TaskNameMaxLength),
		errors:    NewErrorHandler(),
		out:       out,
		errOut:    errOut,
	}
}

// Close releases the store
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) printf(format string, args ...interface{}) {
	fmt.Fprintf(a.out, format, args...)
}

// report writes a failure to the error writer. Failures are never fatal.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	if errors.ShouldLogError(err) {
		logging.Debugf("%s: %v\n", a.errors.GetErrorCode(err), err)
	}
	fmt.Fprintln(a.errOut, a.errors.HandleSimple(err))
}

// saved converts the save error of an applied mutation into a report
func (a *App) saved(err error) error {
	if err != nil {
		return a.errors.Handle("save tasks", err)
	}
	return nil
}

func (a *App) formatDate(t time.Time) string {
	return t.Format(a.config.Display.DateFormat)
}

// parseTaskID parses a positive task id argument
func (a *App) parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err == nil {
		err = a.validator.ValidateTaskID(id)
	}
	if err != nil {
		return 0, errors.NewInvalidInputError("id", s, "must be a positive integer")
	}
	return id, nil
}

// parseDays parses a signed day count
func parseDays(s string) (int, error) {
	days, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.NewInvalidInputError("days", s, "must be an integer")
	}
	return days, nil
}

// parseDueDate resolves the --due and --in flags into a due date. At most
// one of them is set; neither means no due date.
func parseDueDate(due string, inDays *int) (*time.Time, error) {
	switch {
	case due != "":
		date, err := domain.ParseDate(due)
		if err != nil {
			return nil, errors.NewInvalidInputError("due", due, "expected YYYY-MM-DD")
		}
		if !domain.InDateRange(date) {
			return nil, errors.NewInvalidInputError("due", due, domain.ErrDateOutOfRange.Error())
		}
		return &date, nil
	case inDays != nil:
		date, err := domain.ShiftDate(domain.DateOf(timeNow()), *inDays)
		if err != nil {
			return nil, errors.NewInvalidInputError("in", *inDays, err.Error())
		}
		return &date, nil
	default:
		return nil, nil
	}
}
