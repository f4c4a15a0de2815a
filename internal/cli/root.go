package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/hawklabs/hawk/internal/ui"
	"github.com/hawklabs/hawk/pkg/version"
)

// scanTimeout bounds one synchronous scan in headless commands.
const scanTimeout = 10 * time.Second

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "hawk",
	Short: "Personal dashboard for AI-assisted projects",
	Long: `hawk scans a directory of project notes, checks their health, tracks
client billing, and launches editors and AI tool sessions from one
terminal dashboard.

Run with no arguments to open the dashboard. In pipes and scripts hawk
prints a non-interactive summary instead.`,
	Version: version.GetVersion(),
	RunE:    runRoot,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if deps != nil {
			return nil
		}
		return initDependencies(configFlag)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("hawk %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"Config file (default ~/.config/hawk/config.yaml, or HAWK_CONFIG)")
	rootCmd.Flags().Bool("headless", false, "Print the summary without opening the dashboard")
}

// runRoot opens the dashboard, or prints a one-shot summary when stdin is
// not a terminal.
func runRoot(cmd *cobra.Command, _ []string) error {
	headless := ui.NewHeadlessManager()
	if getBoolFlag(cmd, "headless") {
		headless.ForceHeadless(true)
	}
	if headless.IsHeadless() {
		return runHeadlessSummary(cmd)
	}

	model := ui.New(ui.Deps{
		Config:   deps.Config,
		Scanner:  deps.Scanner,
		Checker:  deps.Checker,
		Store:    deps.Store,
		Launcher: deps.Launcher,
		Logger:   deps.Logger,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

// runHeadlessSummary prints the project table and health report.
func runHeadlessSummary(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	summaries, err := deps.Scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan projects: %w", err)
	}
	report := deps.Checker.Check(summaries)

	_, _ = fmt.Fprintln(out, projectTable(summaries, time.Now()))
	_, _ = fmt.Fprintln(out, reportView(report, deps.Config.Health.MaxAlerts))
	return nil
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
