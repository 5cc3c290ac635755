package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skel-dev/skel/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"

	defaultsFileName = "defaults.env"
)

// Keys understood in config.yaml.
const (
	KeyTemplatesDir      = "templates_dir"
	KeyDefaultsFile      = "defaults_file"
	KeyVersionConstraint = "version_constraint"
)

// Keys lists every supported key, in display order.
var Keys = []string{KeyTemplatesDir, KeyDefaultsFile, KeyVersionConstraint}

// Dir returns the config directory. SKEL_CONFIG_DIR overrides the default
// of ~/.skel.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("CONFIG_DIR")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// TemplatesDir returns the configured templates directory, if any.
func TemplatesDir() string {
	return Get(KeyTemplatesDir)
}

// DefaultsFile returns the defaults file path and whether it was configured
// explicitly. Unconfigured, it is defaults.env in the config directory.
func DefaultsFile() (string, bool) {
	if v := Get(KeyDefaultsFile); v != "" {
		return v, true
	}
	return filepath.Join(Dir(), defaultsFileName), false
}

// VersionConstraint returns the configured semver constraint, if any.
func VersionConstraint() string {
	return Get(KeyVersionConstraint)
}

// Set validates and writes a config key-value pair to the config file.
// Viper is only updated once the merged settings pass validation.
func Set(key, value string) error {
	settings := viper.AllSettings()
	settings[strings.ToLower(key)] = value

	result, err := ValidateSettings(settings)
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("invalid configuration: %s", result)
	}
	viper.Set(key, value)

	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
