package config

import (
	"fmt"
	"slices"
	"strings"
)

// validLogLevels lists recognized slog level names.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for correctness. It returns a
// *ValidationErrors aggregating every failed field, or nil.
func Validate(cfg *Config) error {
	var errs []ValidationError

	errs = append(errs, validatePaths(&cfg.Paths)...)
	errs = append(errs, validateTools(&cfg.Tools)...)
	errs = append(errs, validateHealth(&cfg.Health)...)
	errs = append(errs, validateGit(&cfg.Git)...)
	errs = append(errs, validateLog(&cfg.Log)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

// validatePaths checks that required paths are populated.
func validatePaths(p *PathsConfig) []ValidationError {
	var errs []ValidationError

	if p.Projects == "" {
		errs = append(errs, ValidationError{
			Field:   "paths.projects",
			Message: "required field is empty; set the projects root directory (example: ~/ai/projects)",
			Wrapped: ErrInvalidConfig,
		})
	}
	if p.Clients == "" {
		errs = append(errs, ValidationError{
			Field:   "paths.clients",
			Message: "required field is empty; set the clients file path (example: ~/ai/clients.toml)",
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

// validateTools checks that the default AI tool, when set, is offered.
func validateTools(t *ToolsConfig) []ValidationError {
	if t.DefaultAITool == "" {
		return nil
	}
	if !slices.Contains(t.AITools, t.DefaultAITool) {
		return []ValidationError{
			{
				Field:   "tools.default_ai_tool",
				Message: fmt.Sprintf("must be one of ai_tools: %s", strings.Join(t.AITools, ", ")),
				Value:   t.DefaultAITool,
				Wrapped: ErrInvalidConfig,
			},
		}
	}
	return nil
}

// validateHealth validates health-check value ranges.
func validateHealth(h *HealthConfig) []ValidationError {
	var errs []ValidationError

	if h.StaleDays < 1 {
		errs = append(errs, ValidationError{
			Field:   "health.stale_days",
			Message: "must be at least 1",
			Value:   h.StaleDays,
			Wrapped: ErrInvalidConfig,
		})
	}
	if h.MaxAlerts < 1 {
		errs = append(errs, ValidationError{
			Field:   "health.max_alerts",
			Message: "must be at least 1",
			Value:   h.MaxAlerts,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

// validateGit validates branch-lookup value ranges.
func validateGit(g *GitConfig) []ValidationError {
	var errs []ValidationError

	if g.TimeoutSeconds < 1 {
		errs = append(errs, ValidationError{
			Field:   "git.timeout_seconds",
			Message: "must be at least 1",
			Value:   g.TimeoutSeconds,
			Wrapped: ErrInvalidConfig,
		})
	}
	if g.CacheSize < 1 {
		errs = append(errs, ValidationError{
			Field:   "git.cache_size",
			Message: "must be at least 1",
			Value:   g.CacheSize,
			Wrapped: ErrInvalidConfig,
		})
	}
	if g.CacheTTLSeconds < 0 {
		errs = append(errs, ValidationError{
			Field:   "git.cache_ttl_seconds",
			Message: "must be non-negative",
			Value:   g.CacheTTLSeconds,
			Wrapped: ErrInvalidConfig,
		})
	}

	return errs
}

// validateLog checks the log level name.
func validateLog(l *LogConfig) []ValidationError {
	if l.Level == "" {
		return nil // empty is acceptable, defaults will be applied
	}
	if !slices.Contains(validLogLevels, strings.ToLower(l.Level)) {
		return []ValidationError{
			{
				Field:   "log.level",
				Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
				Value:   l.Level,
				Wrapped: ErrInvalidConfig,
			},
		}
	}
	return nil
}
