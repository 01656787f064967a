package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/ngcomp/internal/guard"
)

var (
	// ErrInvalidExtension indicates an artifact extension without a leading dot
	ErrInvalidExtension = errors.New("invalid file extension")

	// ErrDuplicateExtension indicates two artifacts would share a file name
	ErrDuplicateExtension = errors.New("duplicate file extension")

	// ErrInvalidInfix indicates a file name infix containing a path separator
	ErrInvalidInfix = errors.New("invalid file name infix")

	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidGuardMode indicates an unsupported guard mode
	ErrInvalidGuardMode = errors.New("invalid guard mode")

	// ErrInvalidTimeout indicates a negative timeout or retry delay
	ErrInvalidTimeout = errors.New("invalid timeout")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateComponent(&cfg.Component); err != nil {
		errs = append(errs, err)
	}

	if err := validateExtensions(&cfg.Extensions); err != nil {
		errs = append(errs, err)
	}

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateComponent(cfg *ComponentConfig) error {
	if strings.ContainsAny(cfg.Infix, `/\`) {
		return fmt.Errorf("%w: infix must not contain path separators, got '%s'", ErrInvalidInfix, cfg.Infix)
	}
	// Class suffix and placeholder may be empty
	return nil
}

func validateExtensions(cfg *ExtensionsConfig) error {
	var errs []error

	exts := map[string]string{
		"script":   cfg.Script,
		"template": cfg.Template,
		"style":    cfg.Style,
	}
	seen := make(map[string]string)
	for _, kind := range []string{"script", "template", "style"} {
		ext := exts[kind]
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 || strings.ContainsAny(ext, `/\`) {
			errs = append(errs, fmt.Errorf("%w: %s extension must start with '.', got '%s'", ErrInvalidExtension, kind, ext))
			continue
		}
		if other, ok := seen[ext]; ok {
			errs = append(errs, fmt.Errorf("%w: %s and %s both use '%s'", ErrDuplicateExtension, other, kind, ext))
			continue
		}
		seen[ext] = kind
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	for _, pattern := range append(append([]string{}, cfg.Components...), cfg.Ignore...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: '%s': %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// ValidateGlobal checks that the global configuration is valid.
func ValidateGlobal(cfg *GlobalConfig) error {
	var errs []error

	mode := guard.Mode(strings.ToLower(cfg.Guard.Mode))
	if mode != guard.ModeWait && mode != guard.ModeReject {
		errs = append(errs, fmt.Errorf("%w: must be 'wait' or 'reject', got '%s'", ErrInvalidGuardMode, cfg.Guard.Mode))
	}

	if cfg.Guard.RetryDelayMS < 0 {
		errs = append(errs, fmt.Errorf("%w: retry_delay_ms cannot be negative, got %d", ErrInvalidTimeout, cfg.Guard.RetryDelayMS))
	}

	if cfg.Guard.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: timeout_seconds cannot be negative, got %d", ErrInvalidTimeout, cfg.Guard.TimeoutSeconds))
	}

	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		errs = append(errs, fmt.Errorf("%w: '%s' (valid: trace, debug, info, warn, error)", ErrInvalidLogLevel, cfg.Log.Level))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

var validLogLevels = map[string]bool{
	"trace":   true,
	"debug":   true,
	"info":    true,
	"warn":    true,
	"warning": true,
	"error":   true,
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The result still matches each input error with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return &validationError{
		msg:  fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - ")),
		errs: errs,
	}
}

type validationError struct {
	msg  string
	errs []error
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
