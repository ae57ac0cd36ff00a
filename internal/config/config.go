package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Storage backends
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Default file names per backend
const (
	DefaultFileName   = "tasks.json"
	DefaultSQLiteName = "tasks.db"
)

// Config holds all configuration options for the task tracker
type Config struct {
	Store       StoreConfig
	Display     DisplayConfig
	Validation  ValidationConfig
	Application ApplicationConfig
}

// StoreConfig holds persistence configuration
type StoreConfig struct {
	Dir            string `env:"TASKS_STORE_DIR"`
	Filename       string `env:"TASKS_STORE_FILE"`
	Backend        string `env:"TASKS_BACKEND"`
	DirPermissions uint32 `env:"TASKS_STORE_DIR_PERMISSIONS"`
}

// DisplayConfig holds listing configuration
type DisplayConfig struct {
	DateFormat string `env:"TASKS_DATE_FORMAT"`
	Relative   bool   `env:"TASKS_DISPLAY_RELATIVE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TaskNameMinLength int `env:"TASKS_NAME_MIN"`
	TaskNameMaxLength int `env:"TASKS_NAME_MAX"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TASKS_APP_TIMEOUT"`
	Verbose bool          `env:"TASKS_APP_VERBOSE"`
}

// NewConfig creates a new configuration with defaults. The task file lives
// in the working directory.
func NewConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Dir:            ".",
			Backend:        BackendFile,
			DirPermissions: 0755,
		},
		Display: DisplayConfig{
			DateFormat: "2006-01-02",
		},
		Validation: ValidationConfig{
			TaskNameMinLength: 1,
			TaskNameMaxLength: 255,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
		},
	}
}

// GetStorePath returns the full path to the task file. Without an explicit
// filename the backend's default name is used.
func (c *Config) GetStorePath() string {
	filename := c.Store.Filename
	if filename == "" {
		filename = DefaultFileName
		if c.Store.Backend == BackendSQLite {
			filename = DefaultSQLiteName
		}
	}
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(c.Store.Dir, filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Store configuration
	if dir := os.Getenv("TASKS_STORE_DIR"); dir != "" {
		c.Store.Dir = dir
	}
	if filename := os.Getenv("TASKS_STORE_FILE"); filename != "" {
		c.Store.Filename = filename
	}
	if backend := os.Getenv("TASKS_BACKEND"); backend != "" {
		c.Store.Backend = backend
	}
	if perms := os.Getenv("TASKS_STORE_DIR_PERMISSIONS"); perms != "" {
		c.Store.DirPermissions = ParseUint32WithFallback(perms, 8, c.Store.DirPermissions)
	}

	// Display configuration
	if format := os.Getenv("TASKS_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if relative := os.Getenv("TASKS_DISPLAY_RELATIVE"); relative != "" {
		c.Display.Relative = ParseBoolWithFallback(relative, c.Display.Relative)
	}

	// Validation configuration
	if minLen := os.Getenv("TASKS_NAME_MIN"); minLen != "" {
		c.Validation.TaskNameMinLength = ParseIntWithFallback(minLen, c.Validation.TaskNameMinLength)
	}
	if maxLen := os.Getenv("TASKS_NAME_MAX"); maxLen != "" {
		c.Validation.TaskNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.TaskNameMaxLength)
	}

	// Application configuration
	if timeout := os.Getenv("TASKS_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TASKS_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Store.Dir == "" {
		return &ConfigError{Field: "store.dir", Message: "store directory cannot be empty"}
	}
	if c.Store.Backend != BackendFile && c.Store.Backend != BackendSQLite {
		return &ConfigError{Field: "store.backend", Message: "backend must be 'file' or 'sqlite'"}
	}

	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	if c.Validation.TaskNameMinLength < 1 {
		return &ConfigError{Field: "validation.task_name_min_length", Message: "task name minimum length must be at least 1"}
	}
	if c.Validation.TaskNameMaxLength < c.Validation.TaskNameMinLength {
		return &ConfigError{Field: "validation.task_name_max_length", Message: "task name maximum length must be greater than minimum length"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
