// Package project turns a directory of loosely-structured Markdown files
// into typed project summaries. The extraction functions are pure and
// best-effort: malformed content never errors, an absent pattern yields the
// zero value.
package project

import "strings"

// Line conventions recognized in the per-project Markdown files.
const (
	// HeaderNext marks the section of session.md listing upcoming work.
	HeaderNext = "## What's Next"

	// HeaderRecent marks the section of session.md listing recent work.
	HeaderRecent = "## Recent Work"

	repoPrefix     = "Repo:"
	archivedMarker = "Status: archived"
	sectionPrefix  = "## "
)

const (
	maxSectionLines = 10
	maxGotchas      = 5
)

// RepoPath returns the repository path named by the first line of text
// beginning with "Repo:". The remainder of that line is trimmed and a
// leading ~ is expanded against home. The first matching line determines
// the result even when its remainder is empty; no match yields "".
func RepoPath(text, home string) string {
	for line := range strings.SplitSeq(text, "\n") {
		if !strings.HasPrefix(line, repoPrefix) {
			continue
		}
		path := strings.TrimSpace(strings.TrimPrefix(line, repoPrefix))
		if path == "" {
			return ""
		}
		if strings.HasPrefix(path, "~") && home != "" {
			path = home + path[1:]
		}
		return path
	}
	return ""
}

// Section returns the body of the first section whose header line starts
// with headerPrefix: all subsequent non-blank lines until the next "## "
// line or end of input, capped at 10 lines, newline-joined. Returns ""
// when the header is absent or the section is empty.
func Section(text, headerPrefix string) string {
	var lines []string
	inSection := false
	for line := range strings.SplitSeq(text, "\n") {
		if !inSection {
			if strings.HasPrefix(line, headerPrefix) {
				inSection = true
			}
			continue
		}
		if strings.HasPrefix(line, sectionPrefix) {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxSectionLines {
			break
		}
	}
	return strings.Join(lines, "\n")
}

// CountTasks counts checkbox tokens: done is the number of [x] occurrences
// case-insensitive, total adds the number of exact [ ] tokens.
func CountTasks(text string) (done, total int) {
	done = strings.Count(text, "[x]") + strings.Count(text, "[X]")
	undone := strings.Count(text, "[ ]")
	return done, done + undone
}

// Bullets returns lines whose trimmed form starts with - or •, excluding
// bare "-" and horizontal rules ("---"). Lines keep their original
// indentation. A positive max caps the result; order is preserved.
func Bullets(text string, max int) []string {
	var out []string
	for line := range strings.SplitSeq(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "-" || trimmed == "---" {
			continue
		}
		if !strings.HasPrefix(trimmed, "-") && !strings.HasPrefix(trimmed, "•") {
			continue
		}
		out = append(out, line)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// HasArchivedMarker reports whether the literal "Status: archived" appears
// anywhere in the text.
func HasArchivedMarker(text string) bool {
	return strings.Contains(text, archivedMarker)
}
