package config

import (
	"time"
)

// Config represents the application configuration
type Config struct {
	GitHub  GitHubConfig  `mapstructure:"github" yaml:"github"`
	Picker  PickerConfig  `mapstructure:"picker" yaml:"picker"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// GitHubConfig contains source API settings
type GitHubConfig struct {
	APIRoot   string        `mapstructure:"api_root" yaml:"api_root"`
	RawRoot   string        `mapstructure:"raw_root" yaml:"raw_root"`
	UserAgent string        `mapstructure:"user_agent" yaml:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// PickerConfig contains interactive picker settings
type PickerConfig struct {
	Command string `mapstructure:"command" yaml:"command"`
	Builtin bool   `mapstructure:"builtin" yaml:"builtin"`
	Height  string `mapstructure:"height" yaml:"height"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	Directory  string `mapstructure:"directory" yaml:"directory"`
	CreateDirs bool   `mapstructure:"create_dirs" yaml:"create_dirs"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Validate repairs out-of-range values with their defaults
func (c *Config) Validate() error {
	if c.GitHub.APIRoot == "" {
		c.GitHub.APIRoot = DefaultAPIRoot
	}
	if c.GitHub.RawRoot == "" {
		c.GitHub.RawRoot = DefaultRawRoot
	}
	if c.GitHub.UserAgent == "" {
		c.GitHub.UserAgent = DefaultUserAgent
	}
	if c.GitHub.Timeout < time.Second {
		c.GitHub.Timeout = DefaultTimeout
	}
	if c.Picker.Command == "" {
		c.Picker.Command = DefaultPickerCommand
	}
	if c.Picker.Height == "" {
		c.Picker.Height = DefaultPickerHeight
	}
	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	return nil
}
