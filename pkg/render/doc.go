// Package render converts rendered diagrams between output formats.
//
// Diagram generators such as [flowgraph] produce SVG. [ToPDF] and [ToPNG]
// convert that SVG with the external rsvg-convert tool (from librsvg):
//
//	svg, err := flowgraph.RenderSVG(ctx, flowgraph.ToDOT(n, flowgraph.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [flowgraph]: github.com/starrupture/srfactory/pkg/render/flowgraph
package render
