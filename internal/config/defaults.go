package config

import "github.com/hawklabs/hawk/internal/defs"

// Default value constants to avoid magic numbers and strings.
const (
	DefaultProjectsDir = "~/ai/projects"
	DefaultClientsFile = "~/ai/" + defs.ClientsFile
	DefaultRoutineFile = "~/ai/" + defs.RoutineFile

	DefaultEditor = "vim"

	DefaultStaleDays = 7
	DefaultMaxAlerts = 5

	DefaultGitTimeoutSeconds = 2
	DefaultCacheSize         = 128
	DefaultCacheTTLSeconds   = 30

	DefaultLogLevel = "info"
)

// NewDefaultConfig returns a Config with all fields set to compiled defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Paths:  NewDefaultPathsConfig(),
		Tools:  NewDefaultToolsConfig(),
		Health: NewDefaultHealthConfig(),
		Git:    NewDefaultGitConfig(),
		Log:    NewDefaultLogConfig(),
	}
}

// NewDefaultPathsConfig returns a PathsConfig with default values.
// Paths are home-relative until the Loader expands them.
func NewDefaultPathsConfig() PathsConfig {
	return PathsConfig{
		Projects: DefaultProjectsDir,
		Clients:  DefaultClientsFile,
		Routine:  DefaultRoutineFile,
	}
}

// NewDefaultToolsConfig returns a ToolsConfig with default values.
// Note: Editor is intentionally empty; the Loader resolves it from the
// environment.
func NewDefaultToolsConfig() ToolsConfig {
	return ToolsConfig{
		AITools: []string{"claude", "opencode"},
	}
}

// NewDefaultHealthConfig returns a HealthConfig with default values.
func NewDefaultHealthConfig() HealthConfig {
	return HealthConfig{
		StaleDays: DefaultStaleDays,
		MaxAlerts: DefaultMaxAlerts,
	}
}

// NewDefaultGitConfig returns a GitConfig with default values.
func NewDefaultGitConfig() GitConfig {
	return GitConfig{
		TimeoutSeconds:  DefaultGitTimeoutSeconds,
		CacheSize:       DefaultCacheSize,
		CacheTTLSeconds: DefaultCacheTTLSeconds,
	}
}

// NewDefaultLogConfig returns a LogConfig with default values.
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		Level: DefaultLogLevel,
	}
}
