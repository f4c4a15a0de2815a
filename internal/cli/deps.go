// Package cli provides the Cobra command tree and dependency wiring for
// the hawk CLI. This file defines the Dependencies struct (composition
// root) that builds every domain service from the loaded configuration.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/hawklabs/hawk/internal/client"
	"github.com/hawklabs/hawk/internal/config"
	"github.com/hawklabs/hawk/internal/git"
	"github.com/hawklabs/hawk/internal/health"
	"github.com/hawklabs/hawk/internal/launch"
	"github.com/hawklabs/hawk/internal/project"
)

// Dependencies holds the domain services used by CLI commands and the
// dashboard. This is the only place concrete types are instantiated and
// wired together.
type Dependencies struct {
	Config   *config.Config
	Scanner  *project.Scanner
	Checker  *health.Checker
	Store    *client.Store
	Git      *git.Lookup
	Launcher launch.Launcher
	Logger   *slog.Logger
}

// deps is the global dependencies instance, initialized once by the root
// command's PersistentPreRunE.
var deps *Dependencies

// initDependencies loads configuration and wires the domain services.
// An empty configPath falls back to HAWK_CONFIG, then the default path.
func initDependencies(configPath string) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.NewLoader().Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Log)

	lookup, err := git.NewLookup(git.LookupConfig{
		Timeout:   time.Duration(cfg.Git.TimeoutSeconds) * time.Second,
		CacheSize: cfg.Git.CacheSize,
		CacheTTL:  time.Duration(cfg.Git.CacheTTLSeconds) * time.Second,
	}, git.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("init branch lookup: %w", err)
	}

	deps = &Dependencies{
		Config:   cfg,
		Scanner:  project.NewScanner(cfg.Paths.Projects, cfg.Home, lookup.Branch, logger),
		Checker:  health.NewChecker(cfg.Paths.Projects, cfg.Health.StaleDays, health.WithLogger(logger)),
		Store:    client.NewStore(cfg.Paths.Clients, logger),
		Git:      lookup,
		Launcher: launch.NewProcessLauncher(cfg.Tools.Editor, launch.WithLogger(logger)),
		Logger:   logger,
	}
	return nil
}

// newLogger builds the slog logger from the log config. Without a log
// file everything is discarded; the dashboard owns the terminal, so
// stderr is not an option while it runs.
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = io.Discard
	if cfg.File != "" {
		if f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w = f
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// GetDeps returns the current Dependencies instance, nil before init.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies (used for testing).
func SetDeps(d *Dependencies) {
	deps = d
}
