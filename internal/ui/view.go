package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hawklabs/hawk/internal/client"
	"github.com/hawklabs/hawk/internal/defs"
	"github.com/hawklabs/hawk/internal/health"
	"github.com/hawklabs/hawk/internal/project"
)

// View renders the full frame: header, panes, alert strip, status bar.
// Modals and overlays replace the frame and are centered in the window.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.form != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styleOverlay.Render(m.form.View()))
	}
	if m.overlay != overlayNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.overlayView())
	}

	header := m.headerView()
	alerts := m.alertsView()
	status := m.statusView()

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(alerts) - lipgloss.Height(status)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	if m.tab == tabClients {
		body = m.clientsBody(bodyHeight)
	} else {
		body = m.projectsBody(bodyHeight)
	}

	return strings.Join([]string{header, body, alerts, status}, "\n")
}

// --- Layout ---

// listOuterWidth is the total width of the left pane, border included.
func (m Model) listOuterWidth() int {
	w := m.width / 3
	if w < 26 {
		w = 26
	}
	if w > m.width-2 {
		w = m.width - 2
	}
	return w
}

// detailWidth is the usable content width of the right pane; the glamour
// renderer wraps to it.
func (m Model) detailWidth() int {
	w := m.width - m.listOuterWidth() - 8
	if w < 0 {
		w = 0
	}
	return w
}

func (m Model) panes(list, detail string, height int, listFocused bool) string {
	listW := m.listOuterWidth()
	detailW := m.width - listW
	inner := height - 2
	if inner < 1 {
		inner = 1
	}

	listStyle, detailStyle := stylePaneFocused, stylePane
	if !listFocused {
		listStyle, detailStyle = stylePane, stylePaneFocused
	}

	left := listStyle.Width(listW - 2).Height(inner).Render(list)
	right := detailStyle.Width(detailW - 2).Height(inner).Render(detail)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) projectsBody(height int) string {
	return m.panes(m.projectList(height-2), m.projectDetail(), height, m.pane == paneList)
}

func (m Model) clientsBody(height int) string {
	return m.panes(m.clientList(height-2), m.clientDetail(), height, true)
}

// --- Header / footer ---

func (m Model) headerView() string {
	tabs := []string{
		styleTab.Render("Projects"),
		styleTab.Render("Clients"),
	}
	if m.tab == tabProjects {
		tabs[0] = styleTabActive.Render("Projects")
	} else {
		tabs[1] = styleTabActive.Render("Clients")
	}

	left := " " + styleTitle.Render("hawk") + "  " + tabs[0] + styleDim.Render(" │ ") + tabs[1]

	var right string
	switch {
	case m.scanning:
		right = m.spinner.View() + styleDim.Render("scanning ")
	default:
		if n := m.upcomingCount(); n > 0 {
			right = styleWarn.Render(fmt.Sprintf("%d payments due ", n))
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// upcomingCount counts clients whose next payment is due soon or overdue.
func (m Model) upcomingCount() int {
	today := m.deps.Now()
	n := 0
	for _, c := range m.clients {
		switch c.PaymentStatus(today) {
		case client.StateDueSoon, client.StateOverdue:
			n++
		}
	}
	return n
}

func (m Model) alertsView() string {
	if m.report.Healthy() {
		return " " + styleOK.Render(health.HealthyMessage)
	}

	top := m.report.Top(m.deps.Config.Health.MaxAlerts)
	lines := make([]string, 0, len(top)+1)
	for _, a := range top {
		lines = append(lines, " "+styleWarn.Render("⚠ "+a.String()))
	}
	if extra := len(m.report.Alerts) - len(top); extra > 0 {
		lines = append(lines, " "+styleDim.Render(fmt.Sprintf("…and %d more, see hawk check --all", extra)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) statusView() string {
	if m.status != "" {
		return " " + styleWarn.Render(m.status)
	}

	help := "q quit · tab clients · j/k move · e editor · s session · L link · u unlink · R routine · ? health · r rescan"
	if m.tab == tabClients {
		help = "q quit · tab projects · j/k move · a add · E edit · D delete · r rescan"
	}
	return " " + styleStatusBar.Render(help)
}

// --- Projects tab ---

func (m Model) projectList(height int) string {
	if len(m.summaries) == 0 {
		if m.scanning {
			return styleDim.Render("Scanning…")
		}
		return styleDim.Render("No projects under\n" + m.deps.Config.Paths.Projects)
	}

	alerted := make(map[string]bool, len(m.report.Alerts))
	for _, a := range m.report.Alerts {
		alerted[a.Project] = true
	}

	width := m.listOuterWidth() - 4
	lines := make([]string, 0, len(m.summaries))
	for i, sum := range m.summaries {
		lines = append(lines, m.projectLine(sum, alerted[sum.Name], i == m.cursor, width))
	}
	return strings.Join(window(lines, m.cursor, height), "\n")
}

func (m Model) projectLine(sum project.Summary, alerted, selected bool, width int) string {
	icon := styleOK.Render("●")
	if sum.Status == project.StatusArchived {
		icon = styleDim.Render("○")
	}

	name := sum.Name
	suffix := ""
	if alerted || sum.Warning() {
		suffix = " ⚠"
	}

	if selected {
		return styleSelected.Render(pad("▸ "+name+suffix, width))
	}
	line := icon + " " + name
	if suffix != "" {
		line += styleWarn.Render(suffix)
	}
	return line
}

func (m Model) projectDetail() string {
	sum, ok := m.selectedProject()
	if !ok {
		return styleDim.Render("Select a project")
	}

	var b strings.Builder

	title := styleHeader.Render(sum.Name)
	if sum.Status == project.StatusArchived {
		title += styleDim.Render("  (archived)")
	}
	b.WriteString(title + "\n")

	switch {
	case !sum.HasProject:
		b.WriteString(styleAlert.Render(defs.ProjectFile+" missing") + "\n")
	case sum.RepoPath == "":
		b.WriteString(styleAlert.Render("Repo: missing") + "\n")
	default:
		line := "Repo: " + styleDim.Render(sum.RepoPath)
		if !sum.RepoExists {
			line += styleAlert.Render(" (not found)")
		}
		b.WriteString(line + "\n")
	}

	if sum.Branch != "" {
		b.WriteString("Branch: " + styleBranch.Render(sum.Branch) + "\n")
	}

	if owner, linked := m.owners[sum.Name]; linked {
		line := "Client: " + styleClient.Render(owner.Name)
		if badge := paymentBadge(owner, m.deps.Now()); badge != "" {
			line += "  " + badge
		}
		b.WriteString(line + "\n")
	}

	if !sum.LastModified.IsZero() {
		b.WriteString(styleDim.Render(fmt.Sprintf("%s (%s)",
			RelativeTime(sum.LastModified, m.deps.Now()),
			sum.LastModified.Format("Jan 02"))) + "\n")
	}

	if sum.TotalTasks > 0 {
		b.WriteString(fmt.Sprintf("%s %d/%d tasks\n",
			styleOK.Render(TaskBar(sum.DoneTasks, sum.TotalTasks)),
			sum.DoneTasks, sum.TotalTasks))
	}

	b.WriteString("\n")
	if digest := Digest(sum); digest != "" {
		b.WriteString(m.renderMarkdown(digest))
	} else {
		b.WriteString(styleDim.Render("No " + defs.SessionFile + " found"))
	}

	return b.String()
}

// paymentBadge is the compact payment marker shown next to a client name.
func paymentBadge(c client.Client, today time.Time) string {
	days, _ := c.DaysUntilPayment(today)
	switch c.PaymentStatus(today) {
	case client.StateOverdue:
		return styleAlert.Render("✗ overdue")
	case client.StateDueSoon:
		return styleWarn.Render(fmt.Sprintf("⚠ due in %dd", days))
	case client.StatePaid:
		return styleOK.Render("✓ paid")
	}
	return ""
}

// renderMarkdown renders the digest through glamour, falling back to the
// raw text when no renderer is available.
func (m Model) renderMarkdown(text string) string {
	if m.md == nil {
		return text
	}
	out, err := m.md.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// --- Clients tab ---

func (m Model) clientList(height int) string {
	if len(m.clients) == 0 {
		return styleDim.Render("No clients yet.\nPress a to add one.")
	}

	today := m.deps.Now()
	width := m.listOuterWidth() - 4
	lines := make([]string, 0, len(m.clients))
	for i, c := range m.clients {
		lines = append(lines, m.clientLine(c, today, i == m.clientCursor, width))
	}
	return strings.Join(window(lines, m.clientCursor, height), "\n")
}

func (m Model) clientLine(c client.Client, today time.Time, selected bool, width int) string {
	var icon string
	switch c.PaymentStatus(today) {
	case client.StateOverdue:
		icon = styleAlert.Render("✗")
	case client.StateDueSoon:
		icon = styleWarn.Render("⚠")
	default:
		icon = styleOK.Render("✓")
	}

	if selected {
		return styleSelected.Render(pad("▸ "+c.Name, width))
	}
	line := icon + " " + c.Name
	if c.Company != "" {
		line += styleDim.Render(" · " + c.Company)
	}
	return line
}

func (m Model) clientDetail() string {
	c, ok := m.selectedClient()
	if !ok {
		return styleDim.Render("Select a client")
	}

	today := m.deps.Now()
	var b strings.Builder

	b.WriteString(styleHeader.Render(c.Name) + styleDim.Render("  ("+c.ID+")") + "\n")

	days, _ := c.DaysUntilPayment(today)
	switch c.PaymentStatus(today) {
	case client.StateOverdue:
		b.WriteString(styleAlert.Render(fmt.Sprintf("⚠ OVERDUE by %d days", -days)) + "\n")
	case client.StateDueSoon:
		b.WriteString(styleWarn.Render(fmt.Sprintf("Due in %d days", days)) + "\n")
	case client.StatePaid:
		b.WriteString(styleOK.Render("✓ Paid") + styleDim.Render(" (next: "+c.NextPayment+")") + "\n")
	}

	if c.Amount > 0 {
		currency := c.Currency
		if currency == "" {
			currency = client.DefaultCurrency
		}
		b.WriteString(fmt.Sprintf("Amount: $%d %s", c.Amount, currency) +
			styleDim.Render(" ("+c.BillingCycle+")") + "\n")
	}

	for _, row := range []struct{ label, value string }{
		{"Company", c.Company},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"Address", c.Address},
	} {
		if row.value != "" {
			b.WriteString(styleBranch.Render(row.label+": ") + row.value + "\n")
		}
	}

	if c.Notes != "" {
		b.WriteString("\n" + styleDim.Render(c.Notes) + "\n")
	}

	b.WriteString("\n" + styleHeader.Render("Projects") + "\n")
	if len(c.Projects) == 0 {
		b.WriteString(styleDim.Render("No linked projects"))
	} else {
		for _, p := range c.Projects {
			b.WriteString("  • " + p + "\n")
		}
	}

	return b.String()
}

// --- Overlays ---

func (m Model) overlayView() string {
	var title, content string
	switch m.overlay {
	case overlayRoutine:
		title = "Session Routine"
		content = RenderRoutine(m.routine)
	case overlayHealth:
		title = "Health checks"
		content = healthHelp(m.deps.Config.Health.StaleDays)
	default:
		return ""
	}

	body := styleTitle.Render(title) + "\n\n" + content +
		"\n\n" + styleDim.Render("esc to close")
	return styleOverlay.Render(body)
}

// --- Helpers ---

// window trims a line list to the visible rows, keeping the cursor in
// view.
func window(lines []string, cursor, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > len(lines) {
		start = len(lines) - height
	}
	return lines[start : start+height]
}

// pad right-pads s to width so a selection background covers the row.
func pad(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
