package project

import "time"

// Status classifies a project as active or archived.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Summary is the derived snapshot of one project directory. It is a pure
// projection of the filesystem at scan time and is never persisted.
type Summary struct {
	// Name is the project directory name, unique under the projects root.
	Name   string
	Status Status

	// RepoPath is the repository path from project.md, home-expanded.
	// Empty when project.md is missing or has no Repo: line.
	RepoPath   string
	RepoExists bool

	// Branch is the repository's current branch, empty when the lookup
	// failed or the repo path is absent.
	Branch string

	DoneTasks  int
	TotalTasks int

	NextSection   string
	RecentSection string
	Gotchas       []string

	// LastModified is session.md's mtime; zero when the file is missing.
	LastModified time.Time

	HasProject bool
	HasSession bool
	HasGotchas bool
}

// Progress returns the fraction of done tasks, 0 when there are none.
func (s Summary) Progress() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.DoneTasks) / float64(s.TotalTasks)
}

// Warning reports whether the project is missing working files worth
// flagging in list views.
func (s Summary) Warning() bool {
	return !s.HasSession || !s.HasGotchas
}
