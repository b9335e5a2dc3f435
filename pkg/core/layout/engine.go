// Package layout places connected components of the screen graph.
//
// Geometric placement of a single component is delegated to an external
// layered-graph algorithm behind the [Engine] interface; this package builds
// the per-component requests, applies degree-derived spacing, and assembles
// the per-component results into one global coordinate space with components
// laid out side by side.
package layout

import "github.com/matzehuels/screenflow/pkg/core/geom"

// NodeSpec is one abstractly-sized node in a layout request.
type NodeSpec struct {
	ID     string
	Width  float64
	Height float64
}

// EdgeSpec is one directed edge in a layout request. Parallel edges between
// the same ordered pair are allowed and carry distinct ids.
type EdgeSpec struct {
	ID   string
	From string
	To   string
}

// Spacing carries the tuning parameters handed to the layout algorithm.
// All values are in global pixels, already scaled for the current graph.
type Spacing struct {
	LayerGap float64 // distance between adjacent layers
	NodeGap  float64 // distance between nodes within a layer

	// EdgeNodeGap is the clearance between edge routes and node boxes. It is
	// added to the within-layer separation, since the layered algorithm
	// routes edges through the gaps between nodes.
	EdgeNodeGap float64

	EdgeEdgeGap float64 // clearance between neighboring edge routes
}

// Request describes one connected component for the layout algorithm.
type Request struct {
	Nodes   []NodeSpec
	Edges   []EdgeSpec
	Spacing Spacing
}

// Result is the geometry returned for one component, in a local coordinate
// frame. Positions are node top-left corners; Routes are ordered polylines
// keyed by edge id, running source to target.
//
// A node absent from Positions is treated as placed at the local origin by
// the caller; no node is ever dropped.
type Result struct {
	Positions map[string]geom.Point
	Routes    map[string][]geom.Point
}

// Engine computes geometry for a single connected component. Implementations
// must be pure with respect to the request: the same request yields the same
// result.
type Engine interface {
	Layout(req Request) (Result, error)
}
