package flowgraph

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/starrupture/srfactory/pkg/factory"
)

// Options configures flow diagram rendering.
type Options struct {
	// Detailed adds rate limits to edges and purity variants to extractors.
	Detailed bool
}

// Node kinds, used as DOT id prefixes so that a machine and a storage with
// the same id never collide.
const (
	kindMachine = "m"
	kindStorage = "s"
	kindInput   = "i"
	kindOutput  = "o"
)

// ToDOT converts a loaded network to Graphviz DOT format. Each factory is a
// cluster nested in a cluster for its site. Edges point from producer to
// consumer; links between factories are drawn dashed from the output to
// every input that draws from it.
//
// The network must have passed validation: unresolved references are
// skipped silently.
func ToDOT(n *factory.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")

	for si, site := range n.Sites {
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", si)
		fmt.Fprintf(&buf, "    label=%q;\n", siteLabel(site))
		buf.WriteString("    style=\"rounded\";\n    color=grey40;\n")
		for fi, f := range site.Factories {
			writeFactory(&buf, f, fmt.Sprintf("%d_%d", si, fi), opts)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, site := range n.Sites {
		for _, f := range site.Factories {
			for _, in := range f.Inputs {
				out, ok := n.Outputs.Resolve(in)
				if !ok {
					continue
				}
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=steelblue, label=%q];\n",
					nodeID(out.Factory, kindOutput, out.ID), nodeID(f, kindInput, in.ID), out.DispatchedItem)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeFactory(buf *bytes.Buffer, f *factory.Factory, cluster string, opts Options) {
	fmt.Fprintf(buf, "    subgraph \"cluster_%s\" {\n", cluster)
	fmt.Fprintf(buf, "      label=%q;\n", f.ID+"\n"+f.Purpose)
	buf.WriteString("      style=\"rounded,filled\";\n      fillcolor=grey95;\n")

	for _, m := range f.Machines {
		fmt.Fprintf(buf, "      %q [%s];\n", nodeID(f, kindMachine, m.ID), strings.Join(machineAttrs(m, opts), ", "))
	}
	for _, s := range f.Storage {
		label := s.ID + "\n" + strings.Join(s.Items, ", ")
		if opts.Detailed {
			label += fmt.Sprintf("\nstacks: %d", s.NumStacks)
		}
		fmt.Fprintf(buf, "      %q [label=%q, shape=cylinder, style=filled, fillcolor=lightyellow];\n",
			nodeID(f, kindStorage, s.ID), label)
	}
	for _, in := range f.Inputs {
		fmt.Fprintf(buf, "      %q [label=%q, shape=cds, style=filled, fillcolor=lightblue];\n",
			nodeID(f, kindInput, in.ID), in.ID)
	}
	for _, out := range f.Outputs {
		fmt.Fprintf(buf, "      %q [label=%q, shape=cds, style=filled, fillcolor=palegreen];\n",
			nodeID(f, kindOutput, out.ID), out.ID+"\n"+out.DispatchedItem)
	}

	for _, m := range f.Machines {
		for _, in := range m.Inputs {
			writeEdges(buf, f, in.FromMachineIDs, in.FromFactoryInputIDs, in.FromStorageIDs,
				nodeID(f, kindMachine, m.ID), in.RateLimitIPM, opts)
		}
	}
	for _, s := range f.Storage {
		for _, in := range s.Inputs {
			writeEdges(buf, f, in.FromMachineIDs, in.FromFactoryInputIDs, in.FromStorageIDs,
				nodeID(f, kindStorage, s.ID), in.RateLimitIPM, opts)
		}
	}
	for _, out := range f.Outputs {
		for _, src := range out.Sources {
			writeEdges(buf, f, src.FromMachineIDs, nil, src.FromStorageIDs,
				nodeID(f, kindOutput, out.ID), src.RateLimitIPM, opts)
		}
	}
	buf.WriteString("    }\n")
}

func writeEdges(buf *bytes.Buffer, f *factory.Factory, machineIDs, inputIDs, storageIDs []string, to string, rate int, opts Options) {
	attrs := ""
	if opts.Detailed {
		attrs = fmt.Sprintf(" [label=%q]", fmt.Sprintf("%d/min", rate))
	}
	for _, id := range machineIDs {
		fmt.Fprintf(buf, "      %q -> %q%s;\n", nodeID(f, kindMachine, id), to, attrs)
	}
	for _, id := range inputIDs {
		fmt.Fprintf(buf, "      %q -> %q%s;\n", nodeID(f, kindInput, id), to, attrs)
	}
	for _, id := range storageIDs {
		fmt.Fprintf(buf, "      %q -> %q%s;\n", nodeID(f, kindStorage, id), to, attrs)
	}
}

func machineAttrs(m *factory.Machine, opts Options) []string {
	label := m.ID + "\n" + m.Item
	if m.IsExtractor() {
		if opts.Detailed {
			label += "\n(" + m.Variant + ")"
		}
		return []string{fmt.Sprintf("label=%q", label), "shape=invhouse", "fillcolor=wheat"}
	}
	return []string{fmt.Sprintf("label=%q", label)}
}

func siteLabel(s *factory.Site) string {
	label := s.ID
	if s.Teleporter != "" {
		label += " (" + s.Teleporter + ")"
	}
	return label + fmt.Sprintf("\nheat %d/%d", s.HeatCurrent, s.HeatLimit)
}

// nodeID returns a DOT node id unique across the whole network.
func nodeID(f *factory.Factory, kind, id string) string {
	return f.Site.ID + ";" + f.ID + ";" + kind + ":" + id
}
