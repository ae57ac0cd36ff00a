package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultNameMinLength = 1
	DefaultNameMaxLength = 255
)

// Validator provides common validation utilities
type Validator struct {
	nameMin int
	nameMax int
}

// NewValidator creates a validator with the default task name limits
func NewValidator() *Validator {
	return NewValidatorWithLimits(DefaultNameMinLength, DefaultNameMaxLength)
}

// NewValidatorWithLimits creates a validator with configured task name limits
func NewValidatorWithLimits(nameMin, nameMax int) *Validator {
	if nameMin < 1 {
		nameMin = DefaultNameMinLength
	}
	if nameMax < nameMin {
		nameMax = DefaultNameMaxLength
	}
	return &Validator{nameMin: nameMin, nameMax: nameMax}
}

// TrimAndValidateString trims surrounding whitespace
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks if a string's rune count is within the specified range
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// IsValidTaskNameLength checks a task name against the configured limits
func (v *Validator) IsValidTaskNameLength(name string) bool {
	return v.IsValidStringLength(name, v.nameMin, v.nameMax)
}

// IsValidTaskName rejects names containing control characters such as
// newlines or tabs, which would break the one-line listing
func (v *Validator) IsValidTaskName(name string) bool {
	for _, r := range name {
		if unicode.IsControl(r) {
			return false
		}
	}
	return utf8.ValidString(name)
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}
