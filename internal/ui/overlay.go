package ui

import (
	"fmt"
	"strings"

	"github.com/hawklabs/hawk/internal/defs"
)

// RenderRoutine formats routine.md for the overlay. Section headers
// ("## Name") become labels and quoted lines are indented verbatim, so
// the routine reads as a checklist of things to say to the tool.
func RenderRoutine(text string) string {
	if strings.TrimSpace(text) == "" {
		return styleDim.Render("No " + defs.RoutineFile + " found")
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "## "):
			lines = append(lines, styleOK.Render(strings.TrimPrefix(line, "## ")+":"))
		case strings.HasPrefix(line, `"`):
			lines = append(lines, "  "+styleDim.Render(line))
		}
	}
	if len(lines) == 0 {
		return styleDim.Render("No " + defs.RoutineFile + " found")
	}
	return strings.Join(lines, "\n")
}

// healthHelp describes every check the health pass runs.
func healthHelp(staleDays int) string {
	rows := []struct {
		check string
		what  string
	}{
		{"files", fmt.Sprintf("%s, %s and %s exist in the project folder", defs.ProjectFile, defs.SessionFile, defs.GotchasFile)},
		{"fresh", fmt.Sprintf("%s touched within the last %d days", defs.SessionFile, staleDays)},
		{"repo line", fmt.Sprintf("%s declares a Repo: path", defs.ProjectFile)},
		{"repo path", "the declared repository directory exists"},
		{"symlink", fmt.Sprintf("the repository's %s links back to the project's %s", defs.ClaudeMD, defs.ProjectFile)},
		{"agents", fmt.Sprintf("%s exists in the repository", defs.AgentsMD)},
	}

	var b strings.Builder
	b.WriteString(styleHeader.Render("Checks on every project") + "\n\n")
	for _, r := range rows {
		b.WriteString(styleOK.Render(fmt.Sprintf("%-10s", r.check)))
		b.WriteString(r.what + "\n")
	}
	b.WriteString("\n" + styleDim.Render("Failures show in the alert strip; run hawk check --fix to scaffold missing files."))
	return b.String()
}
