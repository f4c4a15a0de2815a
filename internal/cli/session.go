package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hawklabs/hawk/internal/launch"
)

var sessionCmd = &cobra.Command{
	Use:   "session <project>",
	Short: "Start an AI tool session for a project",
	Long: `Create a detached tmux session at the project's repository, start the
AI tool with a prompt to read the session notes, and add a shell pane.
Inside tmux the client switches to the new session; otherwise the attach
command is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runSession,
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.Flags().String("tool", "", "AI tool command to run (default from config)")
}

func runSession(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	sum, err := findProject(ctx, args[0])
	if err != nil {
		return err
	}
	if sum.RepoPath == "" || !sum.RepoExists {
		return fmt.Errorf("project %q has no usable repo path; check its project.md", sum.Name)
	}

	tools := deps.Config.Tools
	tool := getStringFlag(cmd, "tool")
	if tool == "" {
		tool = tools.DefaultAITool
	}
	if tool == "" && len(tools.AITools) == 1 {
		tool = tools.AITools[0]
	}
	if tool == "" {
		return fmt.Errorf("no default AI tool configured; pass --tool (one of: %s)",
			strings.Join(tools.AITools, ", "))
	}

	result, err := deps.Launcher.OpenSession(ctx, launch.SessionConfig{
		Project: sum.Name,
		Dir:     sum.RepoPath,
		Tool:    tool,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Switched {
		_, _ = fmt.Fprintf(out, "%s switched to %s\n", symOK(), result.Name)
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s session %s ready, attach with: tmux attach -t %s\n",
		symOK(), result.Name, result.Name)
	return nil
}
