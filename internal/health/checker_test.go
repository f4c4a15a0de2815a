package health

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/hawklabs/hawk/internal/project"
)

// fixedNow pins the checker clock for deterministic staleness.
var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestChecker(root string) *Checker {
	return NewChecker(root, 7, WithNow(func() time.Time { return fixedNow }))
}

// makeRepo creates a repo directory whose markers satisfy every check:
// AGENTS.md present and CLAUDE.md symlinked to the project's project.md.
func makeRepo(t *testing.T, root, name string) string {
	t.Helper()
	projDir := filepath.Join(root, name)
	if err := os.MkdirAll(projDir, 0o755); err != nil {
		t.Fatal(err)
	}
	projectMD := filepath.Join(projDir, "project.md")
	if err := os.WriteFile(projectMD, []byte("# "+name+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	repo := filepath.Join(root, name+"-repo")
	if err := os.MkdirAll(repo, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(repo, "AGENTS.md"), []byte("# agents\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(projectMD, filepath.Join(repo, "CLAUDE.md")); err != nil {
		t.Fatal(err)
	}
	return repo
}

func healthySummary(name, repo string) project.Summary {
	return project.Summary{
		Name:         name,
		Status:       project.StatusActive,
		RepoPath:     repo,
		RepoExists:   true,
		HasProject:   true,
		HasSession:   true,
		HasGotchas:   true,
		LastModified: fixedNow.Add(-24 * time.Hour),
	}
}

func alertMessages(alerts []Alert) []string {
	var out []string
	for _, a := range alerts {
		out = append(out, a.Message)
	}
	return out
}

func TestCheckHealthyProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := makeRepo(t, root, "api")

	report := newTestChecker(root).Check([]project.Summary{healthySummary("api", repo)})
	if !report.Healthy() {
		t.Errorf("Check() alerts = %v, want none", alertMessages(report.Alerts))
	}
	if len(report.MissingFiles) != 0 {
		t.Errorf("MissingFiles = %v, want empty", report.MissingFiles)
	}
}

func TestCheckMissingFilesListOrder(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := makeRepo(t, root, "api")

	sum := healthySummary("api", repo)
	sum.HasSession = false
	sum.HasGotchas = false
	sum.LastModified = time.Time{}

	report := newTestChecker(root).Check([]project.Summary{sum})

	want := []string{"missing session.md, gotchas.md"}
	if got := alertMessages(report.Alerts); !slices.Equal(got, want) {
		t.Errorf("alerts = %v, want %v", got, want)
	}
	wantFiles := []string{"session.md", "gotchas.md"}
	if got := report.MissingFiles["api"]; !slices.Equal(got, wantFiles) {
		t.Errorf("MissingFiles[api] = %v, want %v", got, wantFiles)
	}
}

func TestCheckEmptyProjectDir(t *testing.T) {
	t.Parallel()

	sum := project.Summary{Name: "bare", Status: project.StatusActive}
	report := newTestChecker(t.TempDir()).Check([]project.Summary{sum})

	// Only the missing-files alert: no project.md means no repo-dependent
	// checks can run.
	want := []string{"missing project.md, session.md, gotchas.md"}
	if got := alertMessages(report.Alerts); !slices.Equal(got, want) {
		t.Errorf("alerts = %v, want %v", got, want)
	}
	wantFiles := []string{"project.md", "session.md", "gotchas.md"}
	if got := report.MissingFiles["bare"]; !slices.Equal(got, wantFiles) {
		t.Errorf("MissingFiles[bare] = %v, want %v", got, wantFiles)
	}
}

func TestCheckStaleness(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := makeRepo(t, root, "api")

	tests := []struct {
		name      string
		age       time.Duration
		wantAlert string
	}{
		{"fresh", 24 * time.Hour, ""},
		{"at threshold", 7 * 24 * time.Hour, ""},
		{"past threshold", 8 * 24 * time.Hour, "session.md stale (8d)"},
		{"long stale", 40*24*time.Hour + 3*time.Hour, "session.md stale (40d)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sum := healthySummary("api", repo)
			sum.LastModified = fixedNow.Add(-tt.age)

			report := newTestChecker(root).Check([]project.Summary{sum})
			got := alertMessages(report.Alerts)
			if tt.wantAlert == "" {
				if len(got) != 0 {
					t.Errorf("alerts = %v, want none", got)
				}
				return
			}
			if !slices.Contains(got, tt.wantAlert) {
				t.Errorf("alerts = %v, want containing %q", got, tt.wantAlert)
			}
		})
	}
}

func TestCheckRepoPathAlerts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	tests := []struct {
		name   string
		mutate func(*project.Summary)
		want   string
		kind   Kind
	}{
		{
			name:   "no repo line",
			mutate: func(s *project.Summary) { s.RepoPath = ""; s.RepoExists = false },
			want:   "no Repo: path in project.md",
			kind:   KindRepoPath,
		},
		{
			name:   "repo path gone",
			mutate: func(s *project.Summary) { s.RepoPath = "/nowhere/api"; s.RepoExists = false },
			want:   "repo path not found",
			kind:   KindRepoPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sum := healthySummary("api", "")
			tt.mutate(&sum)

			report := newTestChecker(root).Check([]project.Summary{sum})
			if len(report.Alerts) != 1 {
				t.Fatalf("alerts = %v, want exactly one", alertMessages(report.Alerts))
			}
			if got := report.Alerts[0]; got.Message != tt.want || got.Kind != tt.kind {
				t.Errorf("alert = {%q, %q}, want {%q, %q}", got.Kind, got.Message, tt.kind, tt.want)
			}
		})
	}
}

func TestCheckMarkerAlerts(t *testing.T) {
	t.Parallel()

	t.Run("claude marker missing", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		repo := makeRepo(t, root, "api")
		if err := os.Remove(filepath.Join(repo, "CLAUDE.md")); err != nil {
			t.Fatal(err)
		}

		report := newTestChecker(root).Check([]project.Summary{healthySummary("api", repo)})
		want := []string{"CLAUDE.md missing in repo"}
		if got := alertMessages(report.Alerts); !slices.Equal(got, want) {
			t.Errorf("alerts = %v, want %v", got, want)
		}
	})

	t.Run("symlink to the wrong file", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		repo := makeRepo(t, root, "api")
		link := filepath.Join(repo, "CLAUDE.md")
		if err := os.Remove(link); err != nil {
			t.Fatal(err)
		}
		other := filepath.Join(root, "other.md")
		if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.Symlink(other, link); err != nil {
			t.Fatal(err)
		}

		report := newTestChecker(root).Check([]project.Summary{healthySummary("api", repo)})
		want := []string{"CLAUDE.md symlink incorrect"}
		if got := alertMessages(report.Alerts); !slices.Equal(got, want) {
			t.Errorf("alerts = %v, want %v", got, want)
		}
	})

	t.Run("regular file passes", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		repo := makeRepo(t, root, "api")
		link := filepath.Join(repo, "CLAUDE.md")
		if err := os.Remove(link); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(link, []byte("# directives\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		report := newTestChecker(root).Check([]project.Summary{healthySummary("api", repo)})
		if !report.Healthy() {
			t.Errorf("alerts = %v, want none", alertMessages(report.Alerts))
		}
	})

	t.Run("agents marker missing", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		repo := makeRepo(t, root, "api")
		if err := os.Remove(filepath.Join(repo, "AGENTS.md")); err != nil {
			t.Fatal(err)
		}

		report := newTestChecker(root).Check([]project.Summary{healthySummary("api", repo)})
		want := []string{"AGENTS.md missing in repo"}
		if got := alertMessages(report.Alerts); !slices.Equal(got, want) {
			t.Errorf("alerts = %v, want %v", got, want)
		}
	})
}

func TestCheckOrderWithinProject(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	sum := project.Summary{
		Name:         "messy",
		HasProject:   true,
		HasSession:   true,
		HasGotchas:   false,
		LastModified: fixedNow.Add(-20 * 24 * time.Hour),
		RepoPath:     "/nowhere/messy",
	}

	report := newTestChecker(root).Check([]project.Summary{sum})
	want := []string{
		"missing gotchas.md",
		"session.md stale (20d)",
		"repo path not found",
	}
	if got := alertMessages(report.Alerts); !slices.Equal(got, want) {
		t.Errorf("alerts = %v, want %v", got, want)
	}
}

func TestCheckIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := makeRepo(t, root, "api")

	sums := []project.Summary{
		{Name: "alpha", HasProject: true},
		healthySummary("api", repo),
		{Name: "zeta"},
	}

	c := newTestChecker(root)
	first := c.Check(sums)
	second := c.Check(sums)

	if !slices.Equal(first.Alerts, second.Alerts) {
		t.Errorf("repeated Check() differs:\n first = %v\nsecond = %v", first.Alerts, second.Alerts)
	}
}

func TestReportTopCapsDisplayOnly(t *testing.T) {
	t.Parallel()

	var sums []project.Summary
	for i := 0; i < 7; i++ {
		sums = append(sums, project.Summary{Name: fmt.Sprintf("p%d", i)})
	}

	report := newTestChecker(t.TempDir()).Check(sums)
	if len(report.Alerts) != 7 {
		t.Fatalf("Alerts = %d, want 7", len(report.Alerts))
	}
	if got := len(report.Top(5)); got != 5 {
		t.Errorf("Top(5) = %d alerts, want 5", got)
	}
	if got := len(report.MissingFiles); got != 7 {
		t.Errorf("MissingFiles = %d entries, want 7 (uncapped)", got)
	}
}

func TestAlertString(t *testing.T) {
	t.Parallel()

	a := Alert{Project: "api", Kind: KindRepoPath, Message: "repo path not found"}
	if got, want := a.String(), "api: repo path not found"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
