// Package git resolves the checked-out branch of project repositories.
//
// Branch names decorate the dashboard only, so lookups are best effort: a
// repository that is missing, not a work tree, or slow to answer yields an
// empty branch rather than an error. Results are cached in a bounded LRU so
// a scan over many projects does not fork git for every refresh.
package git

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// RunFunc executes a command in dir and returns its trimmed stdout.
type RunFunc func(ctx context.Context, dir, name string, args ...string) (string, error)

// LookupConfig controls timeouts and caching for branch lookups.
type LookupConfig struct {
	// Timeout bounds a single git invocation. Defaults to 2s.
	Timeout time.Duration

	// CacheSize is the maximum number of repositories tracked. Defaults
	// to 128.
	CacheSize int

	// CacheTTL is how long a cached branch stays fresh. Zero or negative
	// means entries never expire.
	CacheTTL time.Duration
}

// entry is a cached lookup result with its resolution time.
type entry struct {
	branch string
	at     time.Time
}

// Lookup resolves branch names via the git binary, caching per repo path.
type Lookup struct {
	config LookupConfig
	cache  *lru.Cache[string, entry]
	run    RunFunc
	now    func() time.Time
	logger *slog.Logger
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// WithRunFunc replaces the command runner, mainly for tests.
func WithRunFunc(run RunFunc) LookupOption {
	return func(l *Lookup) { l.run = run }
}

// WithNow replaces the clock used for cache expiry, mainly for tests.
func WithNow(now func() time.Time) LookupOption {
	return func(l *Lookup) { l.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *slog.Logger) LookupOption {
	return func(l *Lookup) { l.logger = logger }
}

// NewLookup creates a Lookup with the given configuration. Zero config
// fields fall back to defaults.
func NewLookup(config LookupConfig, opts ...LookupOption) (*Lookup, error) {
	if config.Timeout <= 0 {
		config.Timeout = 2 * time.Second
	}
	if config.CacheSize <= 0 {
		config.CacheSize = 128
	}

	cache, err := lru.New[string, entry](config.CacheSize)
	if err != nil {
		return nil, err
	}

	l := &Lookup{
		config: config,
		cache:  cache,
		run:    defaultRun,
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Branch returns the current branch of the repository at repoPath, or ""
// when it cannot be determined. Both hits and misses are cached; a repo
// that fails once is not re-probed until its entry expires or is evicted.
func (l *Lookup) Branch(ctx context.Context, repoPath string) string {
	if repoPath == "" {
		return ""
	}

	if e, ok := l.cache.Get(repoPath); ok {
		if l.config.CacheTTL <= 0 || l.now().Sub(e.at) <= l.config.CacheTTL {
			return e.branch
		}
		l.cache.Remove(repoPath)
	}

	ctx, cancel := context.WithTimeout(ctx, l.config.Timeout)
	defer cancel()

	branch, err := l.run(ctx, repoPath, "git", "branch", "--show-current")
	if err != nil {
		l.logger.Debug("branch lookup failed", "repo", repoPath, "error", err)
		branch = ""
	}

	l.cache.Add(repoPath, entry{branch: branch, at: l.now()})
	return branch
}

// Forget drops the cached entry for repoPath, forcing the next Branch
// call to re-run git.
func (l *Lookup) Forget(repoPath string) {
	l.cache.Remove(repoPath)
}

// defaultRun executes the command with exec, capturing stdout.
func defaultRun(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}
