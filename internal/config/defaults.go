package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// GitHub defaults
	DefaultAPIRoot   = "https://api.github.com/repos"
	DefaultRawRoot   = "https://raw.githubusercontent.com"
	DefaultUserAgent = "gitpick"
	DefaultTimeout   = 30 * time.Second

	// Picker defaults
	DefaultPickerCommand = "fzf"
	DefaultPickerHeight  = "40%"

	// Output defaults
	DefaultOutputDir  = "."
	DefaultCreateDirs = true

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gitpick"
	}
	return filepath.Join(home, ".gitpick")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIRoot:   DefaultAPIRoot,
			RawRoot:   DefaultRawRoot,
			UserAgent: DefaultUserAgent,
			Timeout:   DefaultTimeout,
		},
		Picker: PickerConfig{
			Command: DefaultPickerCommand,
			Builtin: false,
			Height:  DefaultPickerHeight,
		},
		Output: OutputConfig{
			Directory:  DefaultOutputDir,
			CreateDirs: DefaultCreateDirs,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
