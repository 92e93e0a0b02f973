package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/starrupture/srfactory/pkg/factory"
	"github.com/starrupture/srfactory/pkg/render/flowgraph"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPDF = "pdf"
	formatPNG = "png"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string  // output file path, "-" for stdout
	format   string  // dot, svg, pdf or png
	detailed bool    // rates and variants in the diagram
	scale    float64 // PNG resolution multiplier
}

// graphCommand creates the graph command.
func (c *CLI) graphCommand() *cobra.Command {
	opts := graphOpts{format: formatSVG, scale: 2.0}

	cmd := &cobra.Command{
		Use:   "graph [layout.json]",
		Short: "Draw a validated layout as a flow diagram",
		Long: `Draw a validated layout as a flow diagram.

Each factory is drawn as a cluster inside its site. Machines, storage and
factory inputs and outputs are connected in the direction items travel, and
links between factories are dashed. The layout must pass verification.

The output file defaults to the layout name with the format's extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case formatDOT, formatSVG, formatPDF, formatPNG:
			default:
				return fmt.Errorf("invalid format: %s (must be 'dot', 'svg', 'pdf', or 'png')", opts.format)
			}
			return c.runGraph(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: dot, svg, pdf, png")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show rate limits, variants and stack counts")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, input string, opts graphOpts) error {
	logger := loggerFromContext(ctx)

	cat, err := c.loadCatalogue()
	if err != nil {
		return err
	}
	n, err := c.loadNetwork(cat, input)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	data, err := c.renderGraph(ctx, n, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	path := outputPath(opts.output, input, opts.format)
	if err := c.writeOutput(path, data); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", input))
	return nil
}

func (c *CLI) renderGraph(ctx context.Context, n *factory.Network, opts graphOpts) ([]byte, error) {
	dot := flowgraph.ToDOT(n, flowgraph.Options{Detailed: opts.detailed})
	if opts.format == formatDOT {
		return []byte(dot), nil
	}

	spinner := newSpinner(ctx, c.Err, fmt.Sprintf("Rendering %s...", opts.format))
	spinner.Start()

	var (
		data []byte
		err  error
	)
	switch opts.format {
	case formatSVG:
		data, err = flowgraph.RenderSVG(ctx, dot)
	case formatPDF:
		data, err = flowgraph.RenderPDF(ctx, dot)
	case formatPNG:
		data, err = flowgraph.RenderPNG(ctx, dot, opts.scale)
	}
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return nil, fmt.Errorf("render %s: %w", opts.format, err)
	}
	spinner.Stop()
	return data, nil
}
