package validation

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithLimits creates a task validator with configured name limits
func NewTaskValidatorWithLimits(nameMin, nameMax int) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithLimits(nameMin, nameMax),
	}
}

// ValidateTaskName validates a task name for creation
func (tv *TaskValidator) ValidateTaskName(name string) error {
	validationError := NewValidationError()

	trimmedName := tv.validator.TrimAndValidateString(name)

	if !tv.validator.IsNonEmptyString(trimmedName) {
		validationError.AddRequiredError("name")
		return validationError
	}

	if !tv.validator.IsValidTaskNameLength(trimmedName) {
		validationError.AddInvalidLengthError("name", trimmedName, tv.validator.nameMin, tv.validator.nameMax)
	}

	if !tv.validator.IsValidTaskName(trimmedName) {
		validationError.AddInvalidCharacterError("name", trimmedName)
	}

	if validationError.HasErrors() {
		return validationError
	}

	return nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTaskName returns a cleaned task name if valid
func (tv *TaskValidator) GetValidTaskName(name string) (string, error) {
	if err := tv.ValidateTaskName(name); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(name), nil
}
