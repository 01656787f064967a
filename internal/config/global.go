// Package config provides configuration loading for ngcomp.
//
// It supports two distinct configuration scopes:
//
// 1. Global Configuration (~/.ngcomp/config.yml)
//   - Machine-wide settings shared by every ngcomp process
//   - Target guard mode, lock directory, timeouts
//   - Log level
//   - Loaded via LoadGlobalConfig()
//
// 2. Project Configuration (.ngcomp/config.yml)
//   - Generated file naming (infix, extensions, class suffix)
//   - Rewrite strictness
//   - Component discovery patterns for `ngcomp inspect`
//   - Loaded via LoadConfig() / NewLoader(dir).Load()
//
// Configuration Hierarchy (highest to lowest priority):
//  1. Environment variables (NGCOMP_*), including values from a .env file
//  2. Config file of the scope
//  3. Built-in defaults
//
// Environment Variable Convention:
//   - Prefix: NGCOMP_
//   - Nested fields: Use underscores (NGCOMP_GUARD_MODE, NGCOMP_EXTENSIONS_STYLE)
//   - Automatic mapping via Viper's SetEnvKeyReplacer
//
// Example usage:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	extractor := extract.NewExtractor(fs,
//	    extract.WithLayout(cfg.Layout()),
//	    extract.WithStrict(cfg.Rewrite.Strict),
//	)
package config

// GlobalConfig holds machine-wide configuration.
// Loaded from ~/.ngcomp/config.yml (not project .ngcomp/config.yml).
//
// The guard settings must be shared by every process that can write the same
// targets, which is why they live here rather than in the project config.
type GlobalConfig struct {
	Guard GuardConfig `yaml:"guard" mapstructure:"guard"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// GuardConfig holds target guard settings.
type GuardConfig struct {
	Mode           string `yaml:"mode" mapstructure:"mode"`                       // "wait" or "reject"
	LockDir        string `yaml:"lock_dir" mapstructure:"lock_dir"`               // directory for lock files
	RetryDelayMS   int    `yaml:"retry_delay_ms" mapstructure:"retry_delay_ms"`   // lock poll interval in milliseconds
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"` // 0 waits indefinitely
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // trace, debug, info, warn, error
}
