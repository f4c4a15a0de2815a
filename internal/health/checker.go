package health

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hawklabs/hawk/internal/defs"
	"github.com/hawklabs/hawk/internal/project"
)

// Checker evaluates health checks against project summaries plus the
// filesystem state of their linked repositories.
type Checker struct {
	root      string
	staleDays int
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithNow overrides the clock used for staleness. Tests use this to pin
// the reference time.
func WithNow(now func() time.Time) Option {
	return func(c *Checker) {
		c.now = now
	}
}

// WithLogger sets the logger for check diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// NewChecker creates a Checker for projects under root. staleDays is the
// session.md age threshold; values below 1 fall back to 7.
func NewChecker(root string, staleDays int, opts ...Option) *Checker {
	if staleDays < 1 {
		staleDays = 7
	}
	c := &Checker{
		root:      filepath.Clean(root),
		staleDays: staleDays,
		now:       time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check evaluates every project in order and returns the full report.
// Per project the checks run in a fixed order: missing required files,
// session staleness, repo path presence and existence, then the repo
// marker files. Marker checks only run when the repo path exists.
func (c *Checker) Check(summaries []project.Summary) Report {
	report := Report{MissingFiles: make(map[string][]string)}
	now := c.now()

	for _, sum := range summaries {
		alerts, missing := c.checkProject(sum, now)
		report.Alerts = append(report.Alerts, alerts...)
		if len(missing) > 0 {
			report.MissingFiles[sum.Name] = missing
		}
	}

	c.logger.Debug("health check complete",
		"projects", len(summaries), "alerts", len(report.Alerts))
	return report
}

// checkProject runs the fixed check sequence for one project.
func (c *Checker) checkProject(sum project.Summary, now time.Time) ([]Alert, []string) {
	var alerts []Alert
	add := func(kind Kind, message string) {
		alerts = append(alerts, Alert{Project: sum.Name, Kind: kind, Message: message})
	}

	var missing []string
	if !sum.HasProject {
		missing = append(missing, defs.ProjectFile)
	}
	if !sum.HasSession {
		missing = append(missing, defs.SessionFile)
	}
	if !sum.HasGotchas {
		missing = append(missing, defs.GotchasFile)
	}
	if len(missing) > 0 {
		add(KindMissingFiles, "missing "+strings.Join(missing, ", "))
	}

	if sum.HasSession && !sum.LastModified.IsZero() {
		if days := int(now.Sub(sum.LastModified).Hours() / 24); days > c.staleDays {
			add(KindStaleSession, fmt.Sprintf("%s stale (%dd)", defs.SessionFile, days))
		}
	}

	switch {
	case sum.HasProject && sum.RepoPath == "":
		add(KindRepoPath, "no Repo: path in "+defs.ProjectFile)
	case sum.RepoPath != "" && !sum.RepoExists:
		add(KindRepoPath, "repo path not found")
	case sum.RepoExists:
		alerts = append(alerts, c.checkMarkers(sum)...)
	}

	return alerts, missing
}

// checkMarkers verifies the marker files inside an existing repo: the
// context marker must exist and, when it is a symlink, resolve to the
// project's own project.md; the agents marker must exist.
func (c *Checker) checkMarkers(sum project.Summary) []Alert {
	var alerts []Alert
	add := func(kind Kind, message string) {
		alerts = append(alerts, Alert{Project: sum.Name, Kind: kind, Message: message})
	}

	claudePath := filepath.Join(sum.RepoPath, defs.ClaudeMD)
	if _, err := os.Stat(claudePath); err != nil {
		add(KindMarker, defs.ClaudeMD+" missing in repo")
	} else if isSymlink(claudePath) {
		resolved, rerr := filepath.EvalSymlinks(claudePath)
		canonical, cerr := filepath.EvalSymlinks(filepath.Join(c.root, sum.Name, defs.ProjectFile))
		if rerr != nil || cerr != nil || resolved != canonical {
			add(KindSymlink, defs.ClaudeMD+" symlink incorrect")
		}
	}

	if _, err := os.Stat(filepath.Join(sum.RepoPath, defs.AgentsMD)); err != nil {
		add(KindMarker, defs.AgentsMD+" missing in repo")
	}

	return alerts
}

// isSymlink reports whether path itself is a symbolic link.
func isSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}
