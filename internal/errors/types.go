package errors

import "fmt"

// ErrorType is the category an AppError belongs to. The zero value means
// the category is unknown.
type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeStorage      ErrorType = "storage"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypePermission   ErrorType = "permission"
)

func (et ErrorType) String() string {
	switch et {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeStorage, ErrorTypeInvalidInput, ErrorTypePermission:
		return string(et)
	}
	return "unknown"
}

// AppError carries a category, a stable code for callers that switch on it,
// and key/value details about the failing task or field.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]any
}

func (e *AppError) Error() string {
	msg := e.Type.String() + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return fmt.Sprintf("%s: %v", msg, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches another *AppError with the same type and code, so sentinel
// values can be used with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

func (e *AppError) IsType(errorType ErrorType) bool { return e.Type == errorType }

// WithContext records a detail and returns e for chaining.
func (e *AppError) WithContext(key string, value any) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Lookup returns the detail recorded under key.
func (e *AppError) Lookup(key string) (any, bool) {
	value, ok := e.Context[key]
	return value, ok
}
