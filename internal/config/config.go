package config

// Config represents the project ngcomp configuration.
// It can be loaded from .ngcomp/config.yml with environment variable overrides.
type Config struct {
	Component  ComponentConfig  `yaml:"component" mapstructure:"component"`
	Extensions ExtensionsConfig `yaml:"extensions" mapstructure:"extensions"`
	Rewrite    RewriteConfig    `yaml:"rewrite" mapstructure:"rewrite"`
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
}

// ComponentConfig controls generated component naming.
type ComponentConfig struct {
	Infix           string `yaml:"infix" mapstructure:"infix"`                       // "component" in user-card.component.ts
	ClassSuffix     string `yaml:"class_suffix" mapstructure:"class_suffix"`         // appended to the classified name
	NamePlaceholder string `yaml:"name_placeholder" mapstructure:"name_placeholder"` // prompt text for the component name
}

// ExtensionsConfig defines the file extensions of the three artifacts.
type ExtensionsConfig struct {
	Script   string `yaml:"script" mapstructure:"script"`
	Template string `yaml:"template" mapstructure:"template"`
	Style    string `yaml:"style" mapstructure:"style"`
}

// RewriteConfig controls class source rewriting.
type RewriteConfig struct {
	Strict bool `yaml:"strict" mapstructure:"strict"` // abort when a metadata field is missing
}

// PathsConfig defines which files `ngcomp inspect` considers components.
type PathsConfig struct {
	Components []string `yaml:"components" mapstructure:"components"` // glob patterns for component class files
	Ignore     []string `yaml:"ignore" mapstructure:"ignore"`         // glob patterns to ignore
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Component: ComponentConfig{
			Infix:           "component",
			ClassSuffix:     "Component",
			NamePlaceholder: "Enter new component name",
		},
		Extensions: ExtensionsConfig{
			Script:   ".ts",
			Template: ".html",
			Style:    ".scss",
		},
		Rewrite: RewriteConfig{
			Strict: false,
		},
		Paths: PathsConfig{
			Components: []string{
				"**/*.component.ts",
			},
			Ignore: []string{
				"node_modules/**",
				"dist/**",
				".angular/**",
				".git/**",
			},
		},
	}
}
