package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file, environment, and defaults.
// Uses the global viper instance to access CLI flag bindings.
func Load() (*Config, error) {
	v := viper.GetViper()

	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(ConfigDir())
	v.AddConfigPath(".")

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Environment variables (GITPICK_*)
	v.SetEnvPrefix("GITPICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	// GitHub defaults
	v.SetDefault("github.api_root", DefaultAPIRoot)
	v.SetDefault("github.raw_root", DefaultRawRoot)
	v.SetDefault("github.user_agent", DefaultUserAgent)
	v.SetDefault("github.timeout", DefaultTimeout)

	// Picker defaults
	v.SetDefault("picker.command", DefaultPickerCommand)
	v.SetDefault("picker.builtin", false)
	v.SetDefault("picker.height", DefaultPickerHeight)

	// Output defaults
	v.SetDefault("output.directory", DefaultOutputDir)
	v.SetDefault("output.create_dirs", DefaultCreateDirs)

	// Logging defaults
	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	dir := ConfigDir()
	return os.MkdirAll(dir, 0755)
}
