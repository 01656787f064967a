package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mvp-joe/ngcomp/internal/guard"
)

// LoadGlobalConfig loads global configuration from ~/.ngcomp/config.yml.
// Returns default values if file doesn't exist (not an error).
// Environment variables override file values (NGCOMP_* prefix).
func LoadGlobalConfig() (*GlobalConfig, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return loadGlobalConfigFrom(filepath.Join(home, ".ngcomp"))
}

func loadGlobalConfigFrom(ngcompDir string) (*GlobalConfig, error) {
	v := viper.New()

	// Look for ~/.ngcomp/config.yml (NOT project .ngcomp/config.yml)
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(ngcompDir)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindGlobalEnvVars(v)
	setGlobalDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &GlobalConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateGlobal(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// bindGlobalEnvVars binds all environment variables for global config.
func bindGlobalEnvVars(v *viper.Viper) {
	v.BindEnv("guard.mode")
	v.BindEnv("guard.lock_dir")
	v.BindEnv("guard.retry_delay_ms")
	v.BindEnv("guard.timeout_seconds")

	v.BindEnv("log.level")
}

// setGlobalDefaults configures viper with default values for global config.
func setGlobalDefaults(v *viper.Viper) {
	v.SetDefault("guard.mode", string(guard.ModeWait))
	v.SetDefault("guard.lock_dir", guard.DefaultLockDir())
	v.SetDefault("guard.retry_delay_ms", 50)
	v.SetDefault("guard.timeout_seconds", 30)

	v.SetDefault("log.level", "info")
}
