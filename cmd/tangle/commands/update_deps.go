package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tangle/internal/app"
)

func (c *CLI) newUpdateDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update-deps [configuration]",
		Short: "Clone and check out every dependency of the current module",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			localChanges, _ := cmd.Flags().GetString("local-changes")
			jobs, _ := cmd.Flags().GetInt("jobs")
			return c.app.UpdateDeps(cmd.Context(), configurationArg(args), app.UpdateOptions{
				LocalChanges: localChanges,
				Jobs:         jobs,
			})
		},
	}
	cmd.Flags().String("local-changes", "", "What to do with modules that have local changes: fail, reset or keep")
	cmd.Flags().IntP("jobs", "j", 0, "Number of modules synchronized in parallel")
	return cmd
}
