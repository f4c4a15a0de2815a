package ui

import (
	"strings"

	"github.com/hawklabs/hawk/internal/project"
)

// Digest assembles the Markdown body of the detail pane for one project:
// the What's Next and Recent Work extracts followed by the gotchas
// bullets. Sections the project lacks are omitted; the result is empty
// when there is nothing to show.
func Digest(sum project.Summary) string {
	var parts []string
	if sum.NextSection != "" {
		parts = append(parts, project.HeaderNext+"\n\n"+sum.NextSection)
	}
	if sum.RecentSection != "" {
		parts = append(parts, project.HeaderRecent+"\n\n"+sum.RecentSection)
	}
	if len(sum.Gotchas) > 0 {
		parts = append(parts, "## Gotchas\n\n"+strings.Join(sum.Gotchas, "\n"))
	}
	return strings.Join(parts, "\n\n")
}
