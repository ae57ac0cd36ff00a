package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "42")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: 42" {
		t.Errorf("NewNotFoundError message = %v", err.Message)
	}
	if err.Code != "NOT_FOUND" {
		t.Errorf("NewNotFoundError code = %v, want NOT_FOUND", err.Code)
	}

	identifier, ok := err.Lookup("identifier")
	if !ok || identifier != "42" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewStorageError("save tasks", cause)

	if err.Type != ErrorTypeStorage {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypeStorage)
	}
	if err.Message != "storage operation failed: save tasks" {
		t.Errorf("NewStorageError message = %v", err.Message)
	}
	if err.Cause != cause {
		t.Errorf("NewStorageError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewStorageError_Permission(t *testing.T) {
	cause := fmt.Errorf("open tasks.json: %w", fs.ErrPermission)
	err := NewStorageError("save tasks", cause)

	if err.Type != ErrorTypePermission {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypePermission)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("permission error should keep its cause")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("id", "abc", "must be a positive integer")

	if err.Message != "invalid input for id: must be a positive integer" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	if err.Code != "INVALID_INPUT" {
		t.Errorf("NewInvalidInputError code = %v", err.Code)
	}
	value, ok := err.Lookup("value")
	if !ok || value != "abc" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original error")
	err := WrapError(cause, ErrorTypeStorage, "wrapped message")

	if err.Code != "storage" {
		t.Errorf("WrapError code = %v, want storage", err.Code)
	}
	if err.Cause != cause {
		t.Errorf("WrapError cause = %v, want %v", err.Cause, cause)
	}
}

func TestIsErrorType(t *testing.T) {
	wrapped := fmt.Errorf("remove: %w", NewNotFoundError("task", "2"))

	if !IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Errorf("IsErrorType should see through wrapping")
	}
	if !IsNotFound(wrapped) {
		t.Errorf("IsNotFound should return true for wrapped not found error")
	}
	if IsErrorType(errors.New("plain"), ErrorTypeNotFound) {
		t.Errorf("IsErrorType should return false for regular error")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Validation error",
			err:      NewValidationError("invalid task name", nil),
			expected: "invalid task name",
		},
		{
			name:     "Validation error with cause",
			err:      NewValidationError("invalid task name", errors.New("name is required")),
			expected: "invalid task name: name is required",
		},
		{
			name:     "Not found error",
			err:      NewNotFoundError("task", "3"),
			expected: "task not found: 3",
		},
		{
			name:     "Storage error",
			err:      NewStorageError("save tasks", errors.New("disk full")),
			expected: "storage operation failed: save tasks: disk full",
		},
		{
			name:     "Permission error",
			err:      NewPermissionError("save tasks", "task file"),
			expected: "permission denied for save tasks on task file",
		},
		{
			name:     "Regular error",
			err:      errors.New("regular error"),
			expected: "regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetUserMessage(tt.err)
			if result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewNotFoundError("task", "1")) != "NOT_FOUND" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("bad", nil), false},
		{"Not found error", NewNotFoundError("task", "1"), false},
		{"Invalid input error", NewInvalidInputError("id", "x", "format"), false},
		{"Storage error", NewStorageError("save", errors.New("io")), true},
		{"Permission error", NewPermissionError("save", "task file"), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ShouldLogError(tt.err); result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}
