// Package flowgraph renders a factory network as a Graphviz flow diagram.
//
// Sites and factories become nested clusters. Machines are boxes (raw
// extractors are drawn as inverted houses), storage is a cylinder, and
// factory inputs and outputs are arrow-shaped markers on the cluster. Edges
// follow the direction items travel. Links between factories are dashed
// and labelled with the dispatched item.
//
//	dot := flowgraph.ToDOT(n, flowgraph.Options{Detailed: true})
//	svg, err := flowgraph.RenderSVG(ctx, dot)
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG output requires librsvg (rsvg-convert).
package flowgraph
