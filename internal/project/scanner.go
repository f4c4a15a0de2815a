package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hawklabs/hawk/internal/defs"
)

// BranchFunc resolves the current branch of a repository working copy.
// Implementations return "" when the branch cannot be determined and must
// honor the context deadline; they never return an error.
type BranchFunc func(ctx context.Context, repoPath string) string

// Scanner enumerates project directories and produces a Summary per
// project. It never fails on a per-project basis: unreadable files degrade
// to absent, and the branch lookup is best-effort.
type Scanner struct {
	root   string
	home   string
	branch BranchFunc
	logger *slog.Logger
}

// NewScanner creates a Scanner over the given projects root. home is used
// for ~ expansion in repo paths; branch may be nil to skip branch lookups;
// logger may be nil to discard logs.
func NewScanner(root, home string, branch BranchFunc, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{
		root:   filepath.Clean(root),
		home:   home,
		branch: branch,
		logger: logger,
	}
}

// Scan returns a Summary for every project directory directly under the
// root, in lexicographic name order. Directories whose name starts with
// "." are skipped. A missing root yields an empty result; any other
// failure reading the root is returned.
func (s *Scanner) Scan(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("projects root not found", "root", s.root)
			return nil, nil
		}
		return nil, fmt.Errorf("read projects root %s: %w", s.root, err)
	}

	var summaries []Summary
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !entry.IsDir() && !s.isDirThroughSymlink(name) {
			continue
		}
		summaries = append(summaries, s.scanProject(ctx, name))
	}

	s.logger.Debug("scan complete", "root", s.root, "projects", len(summaries))
	return summaries, nil
}

// isDirThroughSymlink reports whether a non-directory entry is a symlink
// resolving to a directory, which counts as a project.
func (s *Scanner) isDirThroughSymlink(name string) bool {
	info, err := os.Stat(filepath.Join(s.root, name))
	return err == nil && info.IsDir()
}

// scanProject builds the Summary for a single project directory.
func (s *Scanner) scanProject(ctx context.Context, name string) Summary {
	dir := filepath.Join(s.root, name)
	sum := Summary{Name: name, Status: StatusActive}

	projectText, ok := s.readFile(dir, defs.ProjectFile)
	sum.HasProject = ok
	if HasArchivedMarker(projectText) {
		sum.Status = StatusArchived
	}
	sum.RepoPath = RepoPath(projectText, s.home)

	sessionText, ok := s.readFile(dir, defs.SessionFile)
	sum.HasSession = ok
	sum.DoneTasks, sum.TotalTasks = CountTasks(sessionText)
	sum.NextSection = Section(sessionText, HeaderNext)
	sum.RecentSection = Section(sessionText, HeaderRecent)
	if ok {
		if info, err := os.Stat(filepath.Join(dir, defs.SessionFile)); err == nil {
			sum.LastModified = info.ModTime()
		}
	}

	gotchasText, ok := s.readFile(dir, defs.GotchasFile)
	sum.HasGotchas = ok
	sum.Gotchas = Bullets(gotchasText, maxGotchas)

	if sum.RepoPath != "" {
		if info, err := os.Stat(sum.RepoPath); err == nil && info.IsDir() {
			sum.RepoExists = true
			if s.branch != nil {
				sum.Branch = s.branch(ctx, sum.RepoPath)
			}
		}
	}

	return sum
}

// readFile reads one project file, treating read failures as absence.
func (s *Scanner) readFile(dir, name string) (string, bool) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("unreadable project file, treating as absent",
				"dir", dir, "file", name, "error", err)
		}
		return "", false
	}
	return string(data), true
}

// scaffoldTemplates holds the starter content for missing convention files,
// in the required-file order.
func scaffoldTemplates(name string) []struct{ file, content string } {
	return []struct{ file, content string }{
		{defs.ProjectFile, fmt.Sprintf("# %s\n\nRepo: \n", name)},
		{defs.SessionFile, "# Session\n\n" + HeaderNext + "\n\n- [ ] \n\n" + HeaderRecent + "\n"},
		{defs.GotchasFile, "# Gotchas\n"},
	}
}

// Scaffold creates any of the three convention files missing from the
// named project directory, with minimal starter content. Existing files
// are never touched. It returns the names of the files created.
func (s *Scanner) Scaffold(name string) ([]string, error) {
	dir := filepath.Join(s.root, name)
	var created []string
	for _, tpl := range scaffoldTemplates(name) {
		path := filepath.Join(dir, tpl.file)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return created, fmt.Errorf("create %s: %w", tpl.file, err)
		}
		if _, err := f.WriteString(tpl.content); err != nil {
			_ = f.Close()
			return created, fmt.Errorf("write %s: %w", tpl.file, err)
		}
		if err := f.Close(); err != nil {
			return created, fmt.Errorf("close %s: %w", tpl.file, err)
		}
		created = append(created, tpl.file)
		s.logger.Debug("scaffolded project file", "project", name, "file", tpl.file)
	}
	return created, nil
}
