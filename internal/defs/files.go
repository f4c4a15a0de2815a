package defs

// Per-project convention files read by the scanner and health checker.
const (
	// ProjectFile holds project metadata: the Repo: line and status marker.
	ProjectFile = "project.md"

	// SessionFile holds working notes; its mtime drives staleness.
	SessionFile = "session.md"

	// GotchasFile holds bullet-point reminders for the project.
	GotchasFile = "gotchas.md"
)

// Marker files expected inside a linked repository.
const (
	// ClaudeMD is expected to be a symlink resolving to the project's
	// own project.md.
	ClaudeMD = "CLAUDE.md"

	// AgentsMD is checked for plain existence.
	AgentsMD = "AGENTS.md"
)

// Application data and configuration file names.
const (
	ConfigFile  = "config.yaml"
	ClientsFile = "clients.toml"
	RoutineFile = "routine.md"

	// AppDir is the directory name used under the user config root.
	AppDir = "hawk"
)
