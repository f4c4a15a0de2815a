package config

// Config is the root configuration aggregate. It is constructed once at
// startup by the Loader and injected into the scanner, health checker,
// store, and launcher. The zero value is not usable; use NewDefaultConfig
// or Loader.Load.
type Config struct {
	Paths  PathsConfig  `yaml:"paths"`
	Tools  ToolsConfig  `yaml:"tools"`
	Health HealthConfig `yaml:"health"`
	Git    GitConfig    `yaml:"git"`
	Log    LogConfig    `yaml:"log"`

	// Home is the user home directory resolved at load time, used for
	// expanding ~ in repo paths found in project metadata. Not persisted.
	Home string `yaml:"-"`
}

// PathsConfig locates the data the dashboard reads and writes. All paths
// may use a leading ~; the Loader expands them once.
type PathsConfig struct {
	// Projects is the root directory holding one subdirectory per project.
	Projects string `yaml:"projects"`
	// Clients is the TOML file backing the client store.
	Clients string `yaml:"clients"`
	// Routine is an optional Markdown file shown in the routine overlay.
	Routine string `yaml:"routine"`
}

// ToolsConfig names the external programs hawk launches.
type ToolsConfig struct {
	// Editor is the command used to open a repository. Empty resolves to
	// $EDITOR, then the compiled default.
	Editor string `yaml:"editor"`
	// AITools lists the AI assistant commands offered for sessions.
	AITools []string `yaml:"ai_tools"`
	// DefaultAITool, when set, is launched without prompting. Must be one
	// of AITools.
	DefaultAITool string `yaml:"default_ai_tool"`
}

// HealthConfig tunes the health checker.
type HealthConfig struct {
	// StaleDays is the session.md age, in whole days, beyond which a
	// staleness alert fires.
	StaleDays int `yaml:"stale_days"`
	// MaxAlerts caps how many alerts the dashboard displays; the full
	// list is always computed.
	MaxAlerts int `yaml:"max_alerts"`
}

// GitConfig tunes the branch lookup.
type GitConfig struct {
	TimeoutSeconds  int `yaml:"timeout_seconds"`
	CacheSize       int `yaml:"cache_size"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

// LogConfig controls slog output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// File, when set, receives log output; required for logging while the
	// dashboard owns the terminal.
	File string `yaml:"file"`
}
