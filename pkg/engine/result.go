package engine

import (
	"sync"

	"github.com/matzehuels/screenflow/pkg/core/geom"
	"github.com/matzehuels/screenflow/pkg/core/layout"
	"github.com/matzehuels/screenflow/pkg/core/multiedge"
	"github.com/matzehuels/screenflow/pkg/core/partition"
	"github.com/matzehuels/screenflow/pkg/core/scale"
	"github.com/matzehuels/screenflow/pkg/graph"
)

// Result is the immutable output of one layout pass: the partition,
// the derived scale, global node placements, disambiguated edge routes,
// and the overall bounds. A graph reload produces a fresh Result; nothing
// is patched in place.
//
// Result implements focus.Scene, so it can be handed directly to the
// viewport focus calculator.
type Result struct {
	// GraphHash identifies the snapshot this result was computed from.
	GraphHash string `json:"graph_hash"`

	Components []partition.Component           `json:"components"`
	Scale      scale.Scale                     `json:"scale"`
	Nodes      map[string]layout.NodePlacement `json:"nodes"`
	Routes     map[string]multiedge.Route      `json:"routes"`

	// Transitions is the normalized snapshot the routes belong to, in
	// input order. It carries the (from, to) pairs route lookups need.
	Transitions []graph.Transition `json:"transitions"`

	ComponentBounds []geom.Rect `json:"component_bounds"`
	Bounds          geom.Rect   `json:"bounds"`

	pairOnce  sync.Once
	pairIndex map[[2]string][]string // ordered pair -> transition ids
}

// NodeRect implements focus.Scene.
func (r *Result) NodeRect(id string) (geom.Rect, bool) {
	n, ok := r.Nodes[id]
	return n.Rect, ok
}

// RoutesBetween implements focus.Scene. It returns the adjusted polylines
// of every transition on the exact directed pair.
func (r *Result) RoutesBetween(from, to string) [][]geom.Point {
	r.pairOnce.Do(r.buildPairIndex)
	ids := r.pairIndex[[2]string{from, to}]
	if len(ids) == 0 {
		return nil
	}
	routes := make([][]geom.Point, 0, len(ids))
	for _, id := range ids {
		if route, ok := r.Routes[id]; ok {
			routes = append(routes, route.Points)
		}
	}
	return routes
}

// Density implements focus.Scene.
func (r *Result) Density() float64 {
	return r.Scale.Density
}

func (r *Result) buildPairIndex() {
	r.pairIndex = make(map[[2]string][]string, len(r.Transitions))
	for _, t := range r.Transitions {
		key := t.Pair()
		r.pairIndex[key] = append(r.pairIndex[key], t.ID)
	}
}

// Component returns the component a screen belongs to, or -1.
func (r *Result) Component(id string) int {
	if n, ok := r.Nodes[id]; ok {
		return n.Component
	}
	return -1
}

// ScreenCount returns the number of placed screens.
func (r *Result) ScreenCount() int { return len(r.Nodes) }
