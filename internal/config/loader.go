package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hawklabs/hawk/internal/defs"
)

// Loader builds the effective configuration: compiled defaults, then the
// YAML file if present, then environment overrides, then home expansion
// and validation.
type Loader struct {
	home string // empty means resolve from the OS at Load time
}

// NewLoader creates a new Loader instance.
func NewLoader() *Loader {
	return &Loader{}
}

// NewLoaderWithHome creates a Loader that expands ~ against the given
// directory instead of the OS home. Used by tests.
func NewLoaderWithHome(home string) *Loader {
	return &Loader{home: home}
}

// DefaultPath returns the configuration file path: $HAWK_CONFIG when set,
// otherwise <user config dir>/hawk/config.yaml.
func DefaultPath() string {
	if env := os.Getenv("HAWK_CONFIG"); env != "" {
		return filepath.Clean(env)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return defs.ConfigFile
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, defs.AppDir, defs.ConfigFile)
}

// Load reads the configuration file at path and returns the effective
// Config. A missing file yields defaults; a malformed file is skipped with
// a warning. Environment overrides are applied on top of file values, and
// all home-relative paths are expanded before validation.
func (l *Loader) Load(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	loaded, err := loadYAMLFile(path, cfg)
	if err != nil {
		slog.Warn("failed to load config file, using defaults", "path", path, "error", err)
	} else if !loaded {
		slog.Debug("config file not found, using defaults", "path", path)
	}

	applyEnvOverrides(cfg)

	home := l.home
	if home == "" {
		home, err = os.UserHomeDir()
		if err != nil {
			slog.Warn("cannot resolve home directory, ~ paths left as-is", "error", err)
			home = ""
		}
	}
	cfg.Home = home
	cfg.Paths.Projects = ExpandHome(cfg.Paths.Projects, home)
	cfg.Paths.Clients = ExpandHome(cfg.Paths.Clients, home)
	cfg.Paths.Routine = ExpandHome(cfg.Paths.Routine, home)

	if cfg.Tools.Editor == "" {
		if env := os.Getenv("EDITOR"); env != "" {
			cfg.Tools.Editor = env
		} else {
			cfg.Tools.Editor = DefaultEditor
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ in path with the given home directory.
// An empty home leaves the path untouched.
func ExpandHome(path, home string) string {
	if home == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	return home + path[1:]
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables have higher priority than file
// values.
func applyEnvOverrides(cfg *Config) {
	if dir := os.Getenv("HAWK_PROJECTS_DIR"); dir != "" {
		cfg.Paths.Projects = dir
	}
	if file := os.Getenv("HAWK_CLIENTS_FILE"); file != "" {
		cfg.Paths.Clients = file
	}
	if file := os.Getenv("HAWK_ROUTINE_FILE"); file != "" {
		cfg.Paths.Routine = file
	}
	if editor := os.Getenv("HAWK_EDITOR"); editor != "" {
		cfg.Tools.Editor = editor
	}
	if tool := os.Getenv("HAWK_AI_TOOL"); tool != "" {
		cfg.Tools.DefaultAITool = tool
	}
	if days := os.Getenv("HAWK_STALE_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil {
			cfg.Health.StaleDays = n
		} else {
			slog.Warn("ignoring invalid HAWK_STALE_DAYS", "value", days)
		}
	}
	if level := os.Getenv("HAWK_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if file := os.Getenv("HAWK_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}
}

// loadYAMLFile reads a YAML file and unmarshals it into the target struct.
// Returns (true, nil) if the file was found and parsed, (false, nil) if
// the file does not exist, or (false, error) on failure.
func loadYAMLFile(path string, target any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return false, fmt.Errorf("parse %s: %w", filepath.Base(path), ErrInvalidYAML)
	}

	return true, nil
}

// Write persists a configuration to disk atomically, creating parent
// directories as needed. Used by `hawk config init`.
func Write(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return atomicWrite(path, data)
}

// atomicWrite writes data to a file atomically using temp file + os.Rename.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".hawk-config-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }() // cleanup on error path

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	return os.Rename(tmpName, path)
}
