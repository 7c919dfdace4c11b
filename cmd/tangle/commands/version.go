package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/tangle/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version",
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(c.app.Stdout(), "tangle version %s\n", build.Version)
			return err
		},
	}
}
