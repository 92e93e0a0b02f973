package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starrupture/srfactory/pkg/factory"
)

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify [layout.json...]",
		Short: "Check factory layouts against the item catalogue",
		Long: `Check factory layouts against the item catalogue.

Each layout is parsed, built and validated in three passes: item existence,
connectivity and flow compatibility. The first problem in a layout is printed
with the JSON path of the offending entry and the command exits non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cat, err := c.loadCatalogue()
			if err != nil {
				return err
			}
			failed := 0
			for _, path := range args {
				prog := newProgress(logger)
				n, err := c.loadNetwork(cat, path)
				if errors.Is(err, ErrReported) {
					failed++
					continue
				}
				if err != nil {
					return err
				}
				printSuccess(c.Out, "%s is valid", path)
				printStats(c.Out, networkStats(n)...)
				prog.done(fmt.Sprintf("Verified %s", path))
			}
			if len(args) > 1 {
				printInfo(c.Out, "Checked %d layouts, %d failed", len(args), failed)
			}
			if failed > 0 {
				return ErrReported
			}
			return nil
		},
	}
}

func networkStats(n *factory.Network) []stat {
	var factories, machines, storage, links int
	for _, s := range n.Sites {
		factories += len(s.Factories)
		for _, f := range s.Factories {
			machines += len(f.Machines)
			storage += len(f.Storage)
			links += len(f.Inputs)
		}
	}
	return []stat{
		{len(n.Sites), "sites"},
		{factories, "factories"},
		{machines, "machines"},
		{storage, "storage"},
		{links, "links"},
	}
}
