package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tangle/internal/app"
)

func (c *CLI) newBuildDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build-deps [configuration]",
		Short: "Build the dependencies of the current module",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.BuildDeps(cmd.Context(), configurationArg(args), buildOptions(cmd))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [configuration]",
		Short: "Build the current module and its dependencies",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Build(cmd.Context(), configurationArg(args), buildOptions(cmd))
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("rebuild", "r", false, "Rebuild every module, bypassing the build cache")
	cmd.Flags().IntP("jobs", "j", 0, "Number of modules built in parallel")
}

func buildOptions(cmd *cobra.Command) app.BuildOptions {
	rebuild, _ := cmd.Flags().GetBool("rebuild")
	jobs, _ := cmd.Flags().GetInt("jobs")
	return app.BuildOptions{Rebuild: rebuild, Jobs: jobs}
}
