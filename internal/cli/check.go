package cli

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"
)

// errUnhealthy signals a non-zero exit when alerts remain after a check.
var errUnhealthy = errors.New("health check failed")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run project health checks",
	Long: `Scan the projects directory and report every failed health check:
missing note files, stale sessions, broken repo paths, and missing or
misdirected repo marker files.

Exits non-zero when any alert remains, so the command works as a cron or
shell-prompt probe.`,
	RunE:         runCheck,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("fix", false, "Scaffold missing note files, then re-check")
	checkCmd.Flags().Bool("all", false, "Show every alert instead of the configured cap")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	summaries, err := deps.Scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan projects: %w", err)
	}
	report := deps.Checker.Check(summaries)

	if getBoolFlag(cmd, "fix") && len(report.MissingFiles) > 0 {
		for _, name := range slices.Sorted(maps.Keys(report.MissingFiles)) {
			created, err := deps.Scanner.Scaffold(name)
			if err != nil {
				_, _ = fmt.Fprintf(out, "%s %s: %v\n", symErr(), name, err)
				continue
			}
			for _, file := range created {
				_, _ = fmt.Fprintf(out, "%s created %s\n", symOK(), filepath.Join(name, file))
			}
		}

		// Re-check so the report reflects the scaffolded files.
		summaries, err = deps.Scanner.Scan(ctx)
		if err != nil {
			return fmt.Errorf("rescan projects: %w", err)
		}
		report = deps.Checker.Check(summaries)
	}

	max := deps.Config.Health.MaxAlerts
	if getBoolFlag(cmd, "all") {
		max = 0
	}
	_, _ = fmt.Fprintln(out, reportView(report, max))

	if !report.Healthy() {
		return fmt.Errorf("%w: %d alerts", errUnhealthy, len(report.Alerts))
	}
	return nil
}
