package cli

import (
	"fmt"

	"task-tracker/internal/errors"
	"task-tracker/internal/validation"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages prefixed with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.Error())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return fmt.Errorf("%s", validationErr.Error())
	}

	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", eh.message(err))
	}

	return err
}

// message renders a missing task the way users refer to it
func (eh *ErrorHandler) message(err error) string {
	if appErr, ok := errors.AsAppError(err); ok && appErr.IsType(errors.ErrorTypeNotFound) {
		if id, ok := appErr.Lookup("id"); ok {
			return fmt.Sprintf("Task with ID %v not found.", id)
		}
	}
	return errors.GetUserMessage(err)
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	if validation.IsValidationError(err) {
		return true
	}
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// IsInvalidInputError checks if an error rejects user input
func (eh *ErrorHandler) IsInvalidInputError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeInvalidInput)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
