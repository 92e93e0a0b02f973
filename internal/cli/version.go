package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starrupture/srfactory/pkg/buildinfo"
)

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(c.Out, buildinfo.String())
		},
	}
}
