package layout

import (
	"fmt"
	"sort"

	sugiyama "github.com/gverger/go-graph-layout/layout"

	"github.com/matzehuels/screenflow/pkg/core/geom"
)

// SugiyamaEngine adapts the layered-graph layout algorithm from
// nikolaydubina/go-graph-layout to the [Engine] interface.
//
// The library lays layers top-to-bottom; the adapter transposes the returned
// coordinates so layers run left to right, which matches the reading
// direction of a screen-transition diagram.
//
// Two request shapes the library cannot express are normalized here:
//   - parallel edges collapse onto one representative per ordered pair, and
//     every sibling receives the representative's route (the multi-edge
//     disambiguator separates them afterwards),
//   - self-loops are excluded from the layered graph and get a degenerate
//     two-point route at the node center.
type SugiyamaEngine struct {
	// OrderingEpochs bounds the crossing-minimization iterations.
	// Zero means DefaultOrderingEpochs.
	OrderingEpochs int
}

// DefaultOrderingEpochs is the crossing minimization budget per component.
const DefaultOrderingEpochs = 30

// Layout computes positions and orthogonal-ish polyline routes for one
// component. Components without usable edges are stacked in a simple column,
// using node sizes alone.
func (e SugiyamaEngine) Layout(req Request) (Result, error) {
	ids := make([]string, 0, len(req.Nodes))
	sizes := make(map[string]NodeSpec, len(req.Nodes))
	for _, n := range req.Nodes {
		ids = append(ids, n.ID)
		sizes[n.ID] = n
	}
	sort.Strings(ids) // deterministic numeric ids regardless of input order

	toNum := make(map[string]sugiyama.NodeID, len(ids))
	for i, id := range ids {
		toNum[id] = sugiyama.NodeID(i + 1)
	}

	// Collapse parallels, drop self-loops and dangling endpoints.
	pairs := make(map[[2]sugiyama.NodeID]bool)
	for _, edge := range req.Edges {
		from, okF := toNum[edge.From]
		to, okT := toNum[edge.To]
		if !okF || !okT || from == to {
			continue
		}
		pairs[[2]sugiyama.NodeID{from, to}] = true
	}

	if len(pairs) == 0 {
		return e.columnLayout(req, ids, sizes), nil
	}

	g := sugiyama.Graph{
		Nodes: make(map[sugiyama.NodeID]sugiyama.Node, len(ids)),
		Edges: make(map[[2]sugiyama.NodeID]sugiyama.Edge, len(pairs)),
	}
	for _, id := range ids {
		spec := sizes[id]
		g.Nodes[toNum[id]] = sugiyama.Node{W: int(spec.Width), H: int(spec.Height)}
	}
	for pair := range pairs {
		g.Edges[pair] = sugiyama.Edge{}
	}

	if err := e.run(g, req.Spacing); err != nil {
		return Result{}, err
	}

	out := Result{
		Positions: make(map[string]geom.Point, len(ids)),
		Routes:    make(map[string][]geom.Point, len(req.Edges)),
	}

	// Transpose: the library's vertical layering becomes horizontal. A node
	// box keeps its own width and height; only its center moves.
	for _, id := range ids {
		node, ok := g.Nodes[toNum[id]]
		if !ok {
			continue
		}
		c := node.CenterXY()
		out.Positions[id] = geom.Point{
			X: float64(c.Y) - sizes[id].Width/2,
			Y: float64(c.X) - sizes[id].Height/2,
		}
	}

	for _, edge := range req.Edges {
		from, okF := toNum[edge.From]
		to, okT := toNum[edge.To]
		if !okF || !okT {
			continue
		}
		if from == to {
			if p, ok := out.Positions[edge.From]; ok {
				center := geom.Point{X: p.X + sizes[edge.From].Width/2, Y: p.Y + sizes[edge.From].Height/2}
				out.Routes[edge.ID] = []geom.Point{center, center}
			}
			continue
		}
		raw, ok := g.Edges[[2]sugiyama.NodeID{from, to}]
		if !ok || len(raw.Path) < 2 {
			continue
		}
		path := make([]geom.Point, len(raw.Path))
		for i, p := range raw.Path {
			path[i] = geom.Point{X: float64(p.Y), Y: float64(p.X)}
		}
		out.Routes[edge.ID] = path
	}

	return out, nil
}

// run executes the Sugiyama phases. The library panics on inconsistent
// layerings, so the call is fenced and surfaced as an error; the caller
// falls back to origin placement rather than dropping nodes.
func (e SugiyamaEngine) run(g sugiyama.Graph, sp Spacing) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("layered layout: %v", r)
		}
	}()

	epochs := e.OrderingEpochs
	if epochs <= 0 {
		epochs = DefaultOrderingEpochs
	}

	algo := sugiyama.SugiyamaLayersStrategyGraphLayout{
		CycleRemover:   sugiyama.NewSimpleCycleRemover(),
		LevelsAssigner: sugiyama.NewLayeredGraph,
		OrderingAssigner: sugiyama.WarfieldOrderingOptimizer{
			Epochs:                   epochs,
			LayerOrderingInitializer: sugiyama.BFSOrderingInitializer{},
			LayerOrderingOptimizer: sugiyama.CompositeLayerOrderingOptimizer{
				Optimizers: []sugiyama.LayerOrderingOptimizer{
					sugiyama.WMedianOrderingOptimizer{},
					sugiyama.SwitchAdjacentOrderingOptimizer{},
				},
			},
		}.Optimize,
		// The library has no separate edge-node clearance knob; folding it
		// into the within-layer separation keeps routes that pass beside a
		// node at least that far from its box.
		NodesHorizontalCoordinatesAssigner: sugiyama.BrandesKopfLayersNodesHorizontalAssigner{
			Delta: int(sp.NodeGap + sp.EdgeNodeGap),
		},
		NodesVerticalCoordinatesAssigner: sugiyama.BasicNodesVerticalCoordinatesAssigner{
			MarginLayers:   int(sp.LayerGap),
			FakeNodeHeight: int(sp.EdgeEdgeGap),
		},
		EdgePathAssigner: sugiyama.StraightEdgePathAssigner{}.UpdateGraphLayout,
	}
	algo.UpdateGraphLayout(g)
	return nil
}

// columnLayout stacks edge-less nodes vertically, spaced by the node gap.
func (e SugiyamaEngine) columnLayout(req Request, ids []string, sizes map[string]NodeSpec) Result {
	out := Result{
		Positions: make(map[string]geom.Point, len(ids)),
		Routes:    map[string][]geom.Point{},
	}
	y := 0.0
	for _, id := range ids {
		out.Positions[id] = geom.Point{X: 0, Y: y}
		y += sizes[id].Height + req.Spacing.NodeGap
	}

	// Self-loops still deserve a route.
	for _, edge := range req.Edges {
		if edge.From != edge.To {
			continue
		}
		if p, ok := out.Positions[edge.From]; ok {
			center := geom.Point{X: p.X + sizes[edge.From].Width/2, Y: p.Y + sizes[edge.From].Height/2}
			out.Routes[edge.ID] = []geom.Point{center, center}
		}
	}
	return out
}

var _ Engine = SugiyamaEngine{}
