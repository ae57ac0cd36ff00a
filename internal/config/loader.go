package config

import (
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides. Nil fields are left alone.
type ConfigOverrides struct {
	StoreDir  *string
	StoreFile *string
	Backend   *string

	DateFormat *string
	Relative   *bool

	TaskNameMinLength *int
	TaskNameMaxLength *int

	Timeout *time.Duration
	Verbose *bool
}

// Apply copies every set override into config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.StoreDir != nil {
		config.Store.Dir = *o.StoreDir
	}
	if o.StoreFile != nil {
		config.Store.Filename = *o.StoreFile
	}
	if o.Backend != nil {
		config.Store.Backend = *o.Backend
	}

	if o.DateFormat != nil {
		config.Display.DateFormat = *o.DateFormat
	}
	if o.Relative != nil {
		config.Display.Relative = *o.Relative
	}

	if o.TaskNameMinLength != nil {
		config.Validation.TaskNameMinLength = *o.TaskNameMinLength
	}
	if o.TaskNameMaxLength != nil {
		config.Validation.TaskNameMaxLength = *o.TaskNameMaxLength
	}

	if o.Timeout != nil {
		config.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}
