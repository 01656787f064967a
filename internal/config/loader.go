package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "NGCOMP"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	file    string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads exactly the given config file.
// Unlike NewLoader, a missing file is an error.
func NewFileLoader(path string) Loader {
	return &loader{
		file: path,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (NGCOMP_*)
// 2. Config file (.ngcomp/config.yml or .ngcomp/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.file != "" {
		v.SetConfigFile(l.file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, ".ngcomp"))
	}

	// NGCOMP_EXTENSIONS_STYLE overrides extensions.style
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("component.infix")
	v.BindEnv("component.class_suffix")
	v.BindEnv("component.name_placeholder")

	v.BindEnv("extensions.script")
	v.BindEnv("extensions.template")
	v.BindEnv("extensions.style")

	v.BindEnv("rewrite.strict")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("component.infix", defaults.Component.Infix)
	v.SetDefault("component.class_suffix", defaults.Component.ClassSuffix)
	v.SetDefault("component.name_placeholder", defaults.Component.NamePlaceholder)

	v.SetDefault("extensions.script", defaults.Extensions.Script)
	v.SetDefault("extensions.template", defaults.Extensions.Template)
	v.SetDefault("extensions.style", defaults.Extensions.Style)

	v.SetDefault("rewrite.strict", defaults.Rewrite.Strict)

	v.SetDefault("paths.components", defaults.Paths.Components)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
