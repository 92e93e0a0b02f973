package cli

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/starrupture/srfactory/pkg/calc"
	"github.com/starrupture/srfactory/pkg/errors"
)

// calcOpts holds the command-line flags for the calc command.
type calcOpts struct {
	ipm        int    // requested items per minute
	machines   int    // requested machine count, instead of ipm
	depth      int    // tree levels printed below the root, 0 for all
	request    string // request file
	template   string // request template to write
	withInputs bool   // template carries an inputs section
}

// calcCommand creates the calc command.
func (c *CLI) calcCommand() *cobra.Command {
	var opts calcOpts

	cmd := &cobra.Command{
		Use:   "calc [item]",
		Short: "Work out the machines needed to produce an item",
		Long: `Work out the machines needed to produce an item.

The recipe chain of the item is followed down to raw resources, assuming
normal resource nodes. A table totals each item with its machine count and
building cost, followed by a tree showing how the machines feed each other.

Without --ipm or --machines the rate of a single machine is used. A request
file given with --request may list supplies you already have at points in
the chain; --template writes a template for one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var item string
			if len(args) == 1 {
				item = args[0]
			}
			if opts.template != "" {
				if item == "" {
					return fmt.Errorf("--template needs an item")
				}
				var buf bytes.Buffer
				if err := calc.WriteRequest(&buf, item, opts.ipm, opts.withInputs); err != nil {
					return err
				}
				return c.writeOutput(opts.template, buf.Bytes())
			}

			req, err := c.calcRequest(item, opts)
			if err != nil {
				return err
			}
			cat, err := c.loadCatalogue()
			if err != nil {
				return err
			}
			plan, err := calc.Calculate(cat, req)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("calculated plan", "item", plan.Item, "ipm", plan.IPM,
				"items", len(plan.Lines))
			printPlan(c, plan, opts.depth)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.ipm, "ipm", "c", 0, "items per minute to produce")
	cmd.Flags().IntVarP(&opts.machines, "machines", "m", 0, "number of machines producing the item")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", 0, "levels of the machine tree to print, 0 for all")
	cmd.Flags().StringVarP(&opts.request, "request", "r", "", "request file (JSON or YAML)")
	cmd.Flags().StringVar(&opts.template, "template", "", "write a request template for the item, - for stdout")
	cmd.Flags().BoolVar(&opts.withInputs, "with-inputs", false, "include an inputs section in the template")
	cmd.MarkFlagsMutuallyExclusive("ipm", "machines")
	cmd.MarkFlagsMutuallyExclusive("request", "template")

	return cmd
}

// calcRequest builds the request from the flags, or reads it from the
// request file.
func (c *CLI) calcRequest(item string, opts calcOpts) (calc.Request, error) {
	if opts.request == "" {
		if item == "" {
			return calc.Request{}, fmt.Errorf("an item or --request is required")
		}
		if opts.ipm < 0 || opts.machines < 0 {
			return calc.Request{}, fmt.Errorf("--ipm and --machines must not be negative")
		}
		return calc.Request{Item: item, IPM: opts.ipm, Machines: opts.machines}, nil
	}

	f, err := os.Open(opts.request)
	if err != nil {
		if os.IsNotExist(err) {
			return calc.Request{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open request")
		}
		return calc.Request{}, err
	}
	defer f.Close()
	req, err := calc.ReadRequest(f)
	if err != nil {
		return calc.Request{}, err
	}
	c.Logger.Debug("read request", "file", opts.request, "item", req.Item, "inputs", len(req.Supplies))
	if item != "" && item != req.Item {
		return calc.Request{}, fmt.Errorf("item %q does not match the request file's %q", item, req.Item)
	}
	if opts.ipm > 0 {
		req.IPM = opts.ipm
	}
	return req, nil
}

var styleBanner = lipgloss.NewStyle().
	Border(lipgloss.DoubleBorder()).
	BorderForeground(colorCyan).
	Padding(0, 2).
	Bold(true)

func printPlan(c *CLI, plan *calc.Plan, depth int) {
	fmt.Fprintln(c.Out, styleBanner.Render(fmt.Sprintf("Requesting %d ipm of %s", plan.IPM, plan.Item)))

	rows := make([][]string, 0, len(plan.Lines))
	for _, l := range plan.Lines {
		rows = append(rows, []string{
			l.Item,
			strconv.Itoa(l.PerMachineIPM),
			formatRate(l.RequiredIPM),
			fmt.Sprintf("%.2f (%d)", l.Ratio(), l.Machines()),
			l.Building,
			strconv.Itoa(l.Cost.Heat),
			l.Cost.String(),
		})
	}
	fmt.Fprintln(c.Out, renderTable(
		[]string{"Item", "Provided IPM", "Required IPM", "Machines", "Building", "Heat", "Cost"}, rows))
	printDetail(c.Out, "%s heat in total", StyleNumber.Render(strconv.Itoa(plan.Heat())))

	fmt.Fprintln(c.Out)
	fmt.Fprintln(c.Out, StyleTitle.Render("Machines"))
	fmt.Fprintln(c.Out, machineTree(plan.Root, depth))
}

// machineTree renders n and its inputs, depth levels deep when depth > 0.
func machineTree(n *calc.Node, depth int) *tree.Tree {
	t := tree.Root(nodeLabel(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim)
	addInputs(t, n, 1, depth)
	return t
}

func addInputs(t *tree.Tree, n *calc.Node, level, depth int) {
	for _, in := range n.Inputs {
		if len(in.Inputs) == 0 || (depth > 0 && level >= depth) {
			t.Child(nodeLabel(in))
			continue
		}
		sub := tree.Root(nodeLabel(in))
		addInputs(sub, in, level+1, depth)
		t.Child(sub)
	}
}

func nodeLabel(n *calc.Node) string {
	if n.Supplied {
		return fmt.Sprintf("%s %s", StyleValue.Render(n.Item),
			StyleDim.Render(fmt.Sprintf("existing supply, %d ipm", n.PerMachineIPM)))
	}
	return fmt.Sprintf("%s %s", StyleValue.Render(n.Item),
		StyleDim.Render(fmt.Sprintf("%d x %s, %s of %d ipm", n.Machines(), n.Building,
			formatRate(n.RequiredIPM), n.ProvidedIPM())))
}

// formatRate prints a rate to two decimals, whole rates without any.
func formatRate(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
