package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hawklabs/hawk/internal/project"
)

var openCmd = &cobra.Command{
	Use:   "open <project>",
	Short: "Open a project's repository in the editor",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	sum, err := findProject(ctx, args[0])
	if err != nil {
		return err
	}
	if sum.RepoPath == "" || !sum.RepoExists {
		return fmt.Errorf("project %q has no usable repo path; check its project.md", sum.Name)
	}

	if err := deps.Launcher.OpenEditor(ctx, sum.RepoPath); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s opened %s in %s\n",
		symOK(), sum.RepoPath, deps.Config.Tools.Editor)
	return nil
}

// findProject scans and returns the summary matching name.
func findProject(ctx context.Context, name string) (project.Summary, error) {
	summaries, err := deps.Scanner.Scan(ctx)
	if err != nil {
		return project.Summary{}, fmt.Errorf("scan projects: %w", err)
	}
	for _, sum := range summaries {
		if sum.Name == name {
			return sum, nil
		}
	}
	return project.Summary{}, fmt.Errorf("unknown project %q under %s", name, deps.Config.Paths.Projects)
}
