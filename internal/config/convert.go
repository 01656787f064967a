package config

import (
	"strings"
	"time"

	"github.com/mvp-joe/ngcomp/internal/extract"
	"github.com/mvp-joe/ngcomp/internal/guard"
)

// Layout converts the naming settings to an extract.Layout.
func (c *Config) Layout() extract.Layout {
	return extract.Layout{
		Infix:       c.Component.Infix,
		ScriptExt:   c.Extensions.Script,
		TemplateExt: c.Extensions.Template,
		StyleExt:    c.Extensions.Style,
		ClassSuffix: c.Component.ClassSuffix,
	}
}

// GuardConfig converts the guard settings to a guard.Config.
func (g *GlobalConfig) GuardConfig() guard.Config {
	return guard.Config{
		Mode:       guard.Mode(strings.ToLower(g.Guard.Mode)),
		LockDir:    g.Guard.LockDir,
		RetryDelay: time.Duration(g.Guard.RetryDelayMS) * time.Millisecond,
		Timeout:    time.Duration(g.Guard.TimeoutSeconds) * time.Second,
	}
}
