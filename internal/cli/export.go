package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starrupture/srfactory/pkg/factory"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output string
		format string
	)

	cmd := &cobra.Command{
		Use:   "export [layout.json]",
		Short: "Write a validated layout in normalised form",
		Long: `Write a validated layout in normalised form.

The layout is loaded and verified, then written back with entries in their
original order, teleporter names trimmed and null entries dropped. YAML output
uses the same structure. Output goes to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatYAML {
				return fmt.Errorf("invalid format: %s (must be 'json' or 'yaml')", format)
			}
			cat, err := c.loadCatalogue()
			if err != nil {
				return err
			}
			n, err := c.loadNetwork(cat, args[0])
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if format == formatYAML {
				err = factory.WriteYAML(n, &buf)
			} else {
				err = factory.WriteJSON(n, &buf)
			}
			if err != nil {
				return err
			}

			if output == "" {
				output = stdoutPath
			}
			return c.writeOutput(output, buf.Bytes())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, yaml")

	return cmd
}
