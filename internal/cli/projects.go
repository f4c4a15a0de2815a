package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List scanned projects",
	Long:  "Scan the projects directory and print one line per project: status, name, branch, task progress, and last activity.",
	RunE:  runProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}

func runProjects(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	summaries, err := deps.Scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan projects: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), projectTable(summaries, time.Now()))
	return nil
}
