package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/matzehuels/screenflow/pkg/engine"
	"github.com/matzehuels/screenflow/pkg/graph"
)

// AllNetworks renders every connected component. Any value >= 0 restricts
// output to that single component.
const AllNetworks = -1

// Supported output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// Options configures artifact rendering.
type Options struct {
	// Network restricts output to one connected component, AllNetworks for
	// the whole graph.
	Network int

	// Labels adds action type and weight labels to edges. When false, edges
	// are drawn bare.
	Labels bool
}

// ToDOT converts a layout result to Graphviz DOT. Node positions are pinned
// from the layout pass ("pos=x,y!"), so rendering with neato in no-op layout
// mode reproduces the engine's geometry. Graphviz uses a y-up coordinate
// system, so y coordinates are negated on the way out.
func ToDOT(res *engine.Result, g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph screenflow {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [color=\"#555555\", arrowsize=0.7];\n")
	buf.WriteString("\n")

	for _, id := range sortedNodeIDs(res) {
		n := res.Nodes[id]
		if opts.Network != AllNetworks && n.Component != opts.Network {
			continue
		}
		c := n.Rect.Center()
		fmt.Fprintf(&buf, "  %q [pos=\"%.2f,%.2f!\", width=%.3f, height=%.3f, fixedsize=true];\n",
			id, c.X/pointsPerInch, -c.Y/pointsPerInch, n.Rect.W/pointsPerInch, n.Rect.H/pointsPerInch)
	}

	buf.WriteString("\n")
	for _, t := range g.Transitions {
		if !visibleEdge(res, t, opts.Network) {
			continue
		}
		if opts.Labels {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", t.From, t.To, edgeLabel(t))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", t.From, t.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// pointsPerInch converts layout pixels (treated as points) to the inch
// units Graphviz expects for width/height and pinned positions.
const pointsPerInch = 72.0

func sortedNodeIDs(res *engine.Result) []string {
	ids := make([]string, 0, len(res.Nodes))
	for id := range res.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// visibleEdge reports whether both endpoints are placed and inside the
// selected network. Dangling transitions are skipped, matching the layout
// engine.
func visibleEdge(res *engine.Result, t graph.Transition, network int) bool {
	from, ok := res.Nodes[t.From]
	if !ok {
		return false
	}
	to, ok := res.Nodes[t.To]
	if !ok {
		return false
	}
	if network == AllNetworks {
		return true
	}
	return from.Component == network && to.Component == network
}

func edgeLabel(t graph.Transition) string {
	parts := []string{t.Action.Type}
	if t.Weight > graph.DefaultWeight {
		parts = append(parts, fmt.Sprintf("w=%d", t.Weight))
	}
	return strings.Join(parts, " ")
}
