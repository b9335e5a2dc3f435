package layout

import (
	"github.com/matzehuels/screenflow/pkg/core/geom"
	"github.com/matzehuels/screenflow/pkg/core/partition"
	"github.com/matzehuels/screenflow/pkg/core/scale"
	"github.com/matzehuels/screenflow/pkg/graph"
)

// Tuning holds the driver's spacing constants. Bases are reference-unit
// values at scale 1; the effective spacing grows with the node scale and the
// dynamic port spacing of the current graph.
type Tuning struct {
	ComponentGap float64 // horizontal gap between placed components

	LayerGapBase    float64
	NodeGapBase     float64
	EdgeNodeGapBase float64
	EdgeEdgeGapBase float64
}

// DefaultTuning returns the calibrated driver constants.
func DefaultTuning() Tuning {
	return Tuning{
		ComponentGap:    420,
		LayerGapBase:    120,
		NodeGapBase:     60,
		EdgeNodeGapBase: 24,
		EdgeEdgeGapBase: 18,
	}
}

// NodePlacement is one screen's global rectangle and owning component.
type NodePlacement struct {
	Rect      geom.Rect `json:"rect" bson:"rect"`
	Component int       `json:"component" bson:"component"`
}

// Placements is the assembled output of one layout pass over all components:
// global node rectangles, raw edge routes, and per-component bounds. Values
// are immutable once returned; a reload produces a fresh Placements.
type Placements struct {
	Nodes           map[string]NodePlacement `json:"nodes" bson:"nodes"`
	Routes          map[string][]geom.Point  `json:"routes" bson:"routes"`
	ComponentBounds []geom.Rect              `json:"component_bounds" bson:"component_bounds"`
}

// Driver lays out each connected component through the external layout
// algorithm and assembles the results left to right in a shared global frame.
type Driver struct {
	Engine Engine
	Tuning Tuning
}

// NewDriver builds a driver over the given engine with default tuning.
func NewDriver(engine Engine) *Driver {
	return &Driver{Engine: engine, Tuning: DefaultTuning()}
}

// Layout runs one placement pass. Components are processed in index order
// and merged deterministically; the horizontal cursor advances by each
// component's width plus the component gap, so components never overlap.
//
// Failure of the layout algorithm for a component degrades to origin-local
// positions for its nodes and direct center-to-center routes; no screen is
// ever omitted.
func (d *Driver) Layout(components []partition.Component, transitions []graph.Transition, sc scale.Scale) Placements {
	spacing := d.spacing(sc)

	out := Placements{
		Nodes:           make(map[string]NodePlacement),
		Routes:          make(map[string][]geom.Point),
		ComponentBounds: make([]geom.Rect, 0, len(components)),
	}

	cursor := 0.0
	for _, comp := range components {
		internal := partition.Internal(comp, transitions)
		res := d.layoutComponent(comp, internal, sc, spacing)

		// Local node rects, defaulting missing geometry to the origin.
		local := make(map[string]geom.Rect, len(comp.Screens))
		for _, id := range comp.Screens {
			pos := res.Positions[id] // zero value is the local origin
			local[id] = geom.Rect{X: pos.X, Y: pos.Y, W: sc.NodeWidth, H: sc.NodeHeight}
		}

		routes := make(map[string][]geom.Point, len(internal))
		for _, t := range internal {
			route := res.Routes[t.ID]
			if len(route) < 2 {
				route = []geom.Point{local[t.From].Center(), local[t.To].Center()}
			}
			routes[t.ID] = route
		}

		// Normalize the local frame so its bounding box starts at (0, 0),
		// then shift it to the cursor.
		var bounds geom.Bounds
		for _, r := range local {
			bounds.AddRect(r)
		}
		for _, route := range routes {
			for _, p := range route {
				bounds.AddPoint(p)
			}
		}
		box := bounds.Rect()
		shift := geom.Point{X: cursor - box.X, Y: -box.Y}

		for id, r := range local {
			out.Nodes[id] = NodePlacement{
				Rect:      geom.Rect{X: r.X + shift.X, Y: r.Y + shift.Y, W: r.W, H: r.H},
				Component: comp.Index,
			}
		}
		for id, route := range routes {
			shifted := make([]geom.Point, len(route))
			for i, p := range route {
				shifted[i] = p.Add(shift)
			}
			out.Routes[id] = shifted
		}

		out.ComponentBounds = append(out.ComponentBounds, geom.Rect{
			X: cursor, Y: 0, W: box.W, H: box.H,
		})
		cursor += box.W + d.Tuning.ComponentGap
	}

	return out
}

// layoutComponent invokes the engine for one component. Errors collapse to an
// empty result; the caller substitutes origin placement.
func (d *Driver) layoutComponent(comp partition.Component, internal []graph.Transition, sc scale.Scale, spacing Spacing) Result {
	req := Request{
		Nodes:   make([]NodeSpec, 0, len(comp.Screens)),
		Edges:   make([]EdgeSpec, 0, len(internal)),
		Spacing: spacing,
	}
	for _, id := range comp.Screens {
		req.Nodes = append(req.Nodes, NodeSpec{ID: id, Width: sc.NodeWidth, Height: sc.NodeHeight})
	}
	for _, t := range internal {
		req.Edges = append(req.Edges, EdgeSpec{ID: t.ID, From: t.From, To: t.To})
	}

	res, err := d.Engine.Layout(req)
	if err != nil {
		return Result{}
	}
	return res
}

// spacing scales the base constants by the graph's node scale and dynamic
// port spacing.
func (d *Driver) spacing(sc scale.Scale) Spacing {
	return Spacing{
		LayerGap:    d.Tuning.LayerGapBase*sc.NodeScale + sc.PortSpacing*2,
		NodeGap:     d.Tuning.NodeGapBase*sc.NodeScale + sc.PortSpacing,
		EdgeNodeGap: d.Tuning.EdgeNodeGapBase*sc.NodeScale + sc.PortSpacing/2,
		EdgeEdgeGap: d.Tuning.EdgeEdgeGapBase*sc.NodeScale + sc.PortSpacing/2,
	}
}
