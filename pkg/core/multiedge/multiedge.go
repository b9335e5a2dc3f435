// Package multiedge separates parallel transitions that share the same
// ordered (from, to) pair.
//
// The layout algorithm routes one centerline per ordered pair; this package
// assigns each sibling transition a deterministic rank and a signed
// perpendicular offset so parallel edges fan out symmetrically around that
// centerline without escaping the feasible envelope around the two nodes.
package multiedge

import (
	"math"
	"sort"

	"github.com/matzehuels/screenflow/pkg/core/geom"
	"github.com/matzehuels/screenflow/pkg/core/scale"
)

// Tuning holds the empirically tuned offset constants.
type Tuning struct {
	PreferredStep float64 // base spacing between sibling edges
	DensityBoost  float64 // extra spacing per unit of graph density
	MinStepFloor  float64 // hard floor for the minimum step
	MinStepRatio  float64 // preferred-step fraction acting as minimum
	FeasibleFloor float64 // smallest allowed maximum-feasible step
	EnvelopeScale float64 // node footprint factor of the feasible envelope
	EnvelopePorts float64 // port spacings added to the feasible envelope
}

// DefaultTuning returns the calibrated offset constants.
func DefaultTuning() Tuning {
	return Tuning{
		PreferredStep: 14,
		DensityBoost:  0.55,
		MinStepFloor:  10,
		MinStepRatio:  0.68,
		FeasibleFloor: 6,
		EnvelopeScale: 1.1,
		EnvelopePorts: 6,
	}
}

// Edge identifies one transition in a disambiguation pass.
type Edge struct {
	ID   string
	From string
	To   string
}

// Route is one transition's adjusted geometry: the shifted polyline, the
// signed perpendicular offset that produced it, and the number of sibling
// transitions sharing the ordered pair (itself included).
type Route struct {
	Points   []geom.Point `json:"points" bson:"points"`
	Offset   float64      `json:"offset" bson:"offset"`
	Siblings int          `json:"siblings" bson:"siblings"`
}

// Disambiguate computes adjusted routes for all edges.
//
// Within a group of k siblings, ranks are assigned by lexical transition id,
// and rank i receives offset (i - (k-1)/2) * step, so offsets sum to zero,
// are pairwise distinct, and collapse to exactly 0 for k == 1. The step is
// the preferred density-boosted spacing clamped into the feasible envelope
// derived from the node footprint.
//
// Every point of the raw route is translated rigidly along the unit normal
// of the straight line between the two node centers, so orthogonal routes
// keep their shape. Edges without a raw route or without both node centers
// are passed through unshifted with offset 0.
func Disambiguate(edges []Edge, raw map[string][]geom.Point, centers map[string]geom.Point, sc scale.Scale, t Tuning) map[string]Route {
	groups := make(map[[2]string][]Edge)
	for _, e := range edges {
		key := [2]string{e.From, e.To}
		groups[key] = append(groups[key], e)
	}

	out := make(map[string]Route, len(edges))
	for _, group := range groups {
		sort.Slice(group, func(i, j int) bool { return group[i].ID < group[j].ID })

		k := len(group)
		step := stepFor(k, sc, t)

		for rank, e := range group {
			offset := (float64(rank) - float64(k-1)/2) * step
			route := Route{
				Points:   raw[e.ID],
				Offset:   offset,
				Siblings: k,
			}

			fromC, okF := centers[e.From]
			toC, okT := centers[e.To]
			if okF && okT && offset != 0 && len(route.Points) > 0 {
				n := unitNormal(fromC, toC)
				shifted := make([]geom.Point, len(route.Points))
				for i, p := range route.Points {
					shifted[i] = p.Add(n.Scale(offset))
				}
				route.Points = shifted
			}
			if !okF || !okT {
				route.Offset = 0
			}

			out[e.ID] = route
		}
	}
	return out
}

// stepFor computes the clamped sibling spacing for a group of size k.
func stepFor(k int, sc scale.Scale, t Tuning) float64 {
	if k <= 1 {
		return 0
	}

	preferred := t.PreferredStep * (1 + sc.Density*t.DensityBoost)

	maxAbsOffset := math.Max(sc.NodeWidth, sc.NodeHeight)*t.EnvelopeScale + sc.PortSpacing*t.EnvelopePorts
	maxFeasible := math.Max(t.FeasibleFloor, maxAbsOffset/math.Max(1, float64(k-1)/2))
	minStep := math.Min(math.Max(t.MinStepFloor, preferred*t.MinStepRatio), maxFeasible)

	return geom.Clamp(preferred, minStep, maxFeasible)
}

// unitNormal returns the unit perpendicular of the from→to center line.
// Coincident centers fall back to a vertical normal so the shift stays
// well-defined.
func unitNormal(from, to geom.Point) geom.Point {
	dx := to.X - from.X
	dy := to.Y - from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return geom.Point{X: 0, Y: -1}
	}
	return geom.Point{X: -dy / length, Y: dx / length}
}
