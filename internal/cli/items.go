package cli

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/starrupture/srfactory/pkg/catalogue"
)

// itemsCommand creates the items command.
func (c *CLI) itemsCommand() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List the items a layout may use",
		Long: `List the items a layout may use.

Craftable items are shown with the building that produces them and the
output rate. With --raw, extractable raw items are listed with their
resource node variants instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.loadCatalogue()
			if err != nil {
				return err
			}
			if raw {
				printRawItems(c, cat)
			} else {
				printItems(c, cat)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "list raw items and their variants")
	return cmd
}

func printItems(c *CLI, cat *catalogue.Catalogue) {
	items := slices.SortedFunc(slices.Values(cat.Items), func(a, b catalogue.Item) int {
		return cmp.Compare(a.Name, b.Name)
	})
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.Name, it.Building, strconv.Itoa(it.ItemsPerMinute),
			joinOrDash(cat.RecipeInputs(it.Name))})
	}
	fmt.Fprintln(c.Out, StyleTitle.Render("Items"))
	fmt.Fprintln(c.Out, renderTable([]string{"Item", "Building", "Per min", "Inputs"}, rows))
	printDetail(c.Out, "%s items", StyleNumber.Render(strconv.Itoa(len(items))))
}

func printRawItems(c *CLI, cat *catalogue.Catalogue) {
	raw := slices.SortedFunc(slices.Values(cat.RawItems), func(a, b catalogue.RawItem) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Variant, b.Variant))
	})
	rows := make([][]string, 0, len(raw))
	for _, it := range raw {
		rows = append(rows, []string{it.Name, it.Variant, it.Building, strconv.Itoa(it.ItemsPerMinute)})
	}
	fmt.Fprintln(c.Out, StyleTitle.Render("Raw items"))
	fmt.Fprintln(c.Out, renderTable([]string{"Item", "Variant", "Building", "Per min"}, rows))
	printDetail(c.Out, "%s raw items", StyleNumber.Render(strconv.Itoa(len(raw))))
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "—"
	}
	return strings.Join(names, ", ")
}
