package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/hawklabs/hawk/internal/client"
	"github.com/hawklabs/hawk/internal/health"
	"github.com/hawklabs/hawk/internal/project"
	"github.com/hawklabs/hawk/internal/ui"
)

// CLI output styles, sharing the dashboard's gruvbox palette.
var (
	cliOK     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#79740E", Dark: "#B8BB26"})
	cliWarn   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B57614", Dark: "#FABD2F"})
	cliError  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9D0006", Dark: "#FB4934"})
	cliMuted  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#7C6F64", Dark: "#A89984"})
	cliAccent = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#076678", Dark: "#83A598"})
	cliBorder = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D5C4A1", Dark: "#504945"})
)

func symOK() string   { return cliOK.Render("✓") }
func symWarn() string { return cliWarn.Render("⚠") }
func symErr() string  { return cliError.Render("✗") }

// cardStyle returns the style for a rounded-border card.
func cardStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder.GetForeground()).
		Padding(0, 2)
}

// card renders content inside a rounded border with a styled title.
func card(title, content string) string {
	titleLine := cliOK.Bold(true).Render(title)
	return cardStyle().Render(titleLine + "\n\n" + content)
}

// reportView renders the health report for terminal output. max caps the
// alert lines; zero or negative shows everything.
func reportView(report health.Report, max int) string {
	if report.Healthy() {
		return cliOK.Render(health.HealthyMessage)
	}

	alerts := report.Alerts
	if max > 0 {
		alerts = report.Top(max)
	}

	lines := make([]string, 0, len(alerts)+1)
	for _, a := range alerts {
		lines = append(lines, symWarn()+" "+a.String())
	}
	if extra := len(report.Alerts) - len(alerts); extra > 0 {
		lines = append(lines, cliMuted.Render(fmt.Sprintf("…and %d more, rerun with --all", extra)))
	}
	return card("Health", strings.Join(lines, "\n"))
}

// projectTable renders one fixed-width row per project.
func projectTable(summaries []project.Summary, now time.Time) string {
	if len(summaries) == 0 {
		return cliMuted.Render("No projects found")
	}

	var b strings.Builder
	for _, sum := range summaries {
		icon := symOK()
		switch {
		case sum.Status == project.StatusArchived:
			icon = cliMuted.Render("○")
		case sum.Warning():
			icon = symWarn()
		}

		tasks := ""
		if sum.TotalTasks > 0 {
			tasks = fmt.Sprintf("%d/%d", sum.DoneTasks, sum.TotalTasks)
		}

		updated := ""
		if !sum.LastModified.IsZero() {
			updated = ui.RelativeTime(sum.LastModified, now)
		}

		_, _ = fmt.Fprintf(&b, "%s %-24s %s %-8s %s\n",
			icon,
			sum.Name,
			cliAccent.Render(fmt.Sprintf("%-16s", sum.Branch)),
			tasks,
			cliMuted.Render(updated),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// clientTable renders one row per client, sorted by name, with payment
// standing up front.
func clientTable(clients []client.Client, now time.Time) string {
	if len(clients) == 0 {
		return cliMuted.Render("No clients in the ledger")
	}

	sorted := make([]client.Client, len(clients))
	copy(sorted, clients)
	client.SortByName(sorted)

	var b strings.Builder
	for _, c := range sorted {
		icon := symOK()
		payment := ""
		days, _ := c.DaysUntilPayment(now)
		switch c.PaymentStatus(now) {
		case client.StateOverdue:
			icon = symErr()
			payment = cliError.Render(fmt.Sprintf("OVERDUE by %d days", -days))
		case client.StateDueSoon:
			icon = symWarn()
			payment = cliWarn.Render(fmt.Sprintf("due in %d days", days))
		case client.StatePaid:
			payment = cliMuted.Render("next " + c.NextPayment)
		}

		amount := ""
		if c.Amount > 0 {
			currency := c.Currency
			if currency == "" {
				currency = client.DefaultCurrency
			}
			amount = fmt.Sprintf("$%d %s (%s)", c.Amount, currency, c.BillingCycle)
		}

		_, _ = fmt.Fprintf(&b, "%s %-20s %-24s %s\n", icon, c.Name, amount, payment)
		if len(c.Projects) > 0 {
			_, _ = fmt.Fprintf(&b, "  %s\n", cliMuted.Render("projects: "+strings.Join(c.Projects, ", ")))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
