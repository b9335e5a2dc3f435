// Package scale derives the size and spacing scale for a layout pass from the
// graph's degree distribution.
//
// Dense fan-in or fan-out would otherwise force overlapping connection points
// on a node's edge. Growing the node footprint in proportion to the worst
// single-node port pressure keeps connection points distinguishable without
// enlarging sparse regions of the diagram.
package scale

import (
	"math"

	"github.com/matzehuels/screenflow/pkg/core/geom"
	"github.com/matzehuels/screenflow/pkg/graph"
)

// Tuning holds the empirically tuned constants of the scale formulas. They
// are configurable rather than load-bearing; DefaultTuning matches the values
// the rendering was calibrated against.
type Tuning struct {
	BaseWidth  float64 // reference node width
	BaseHeight float64 // reference node height

	PortSpacingBase   float64 // minimum spacing between connection points
	PortSpacingGrowth float64 // sqrt growth per unit of combined degree

	WidthFill  float64 // fraction of the node width usable for ports
	HeightFill float64 // fraction of the node height usable for ports

	LineScaleMin float64 // lower clamp for edge line width multiplier

	MediaHeightRatio float64 // media area as a fraction of node height
	MediaHeightBase  float64 // minimum media height at scale 1

	DensitySpan float64 // nodeScale units mapped onto density 0..1
}

// DefaultTuning returns the calibrated constants.
func DefaultTuning() Tuning {
	return Tuning{
		BaseWidth:         300,
		BaseHeight:        200,
		PortSpacingBase:   14,
		PortSpacingGrowth: 1.8,
		WidthFill:         0.62,
		HeightFill:        0.92,
		LineScaleMin:      0.28,
		MediaHeightRatio:  0.84,
		MediaHeightBase:   150,
		DensitySpan:       3,
	}
}

// Scale is the derived size record for one layout pass. It is a pure function
// of the graph's degree distribution: identical graphs produce identical
// scales.
type Scale struct {
	NodeScale float64 `json:"node_scale" bson:"node_scale"` // >= 1
	LineScale float64 `json:"line_scale" bson:"line_scale"` // in [LineScaleMin, 1]

	NodeWidth   float64 `json:"node_width" bson:"node_width"`
	NodeHeight  float64 `json:"node_height" bson:"node_height"`
	MediaHeight float64 `json:"media_height" bson:"media_height"`
	PortSpacing float64 `json:"port_spacing" bson:"port_spacing"`

	// Density is a normalized 0..1 congestion signal derived from NodeScale,
	// consumed by edge offsetting and focus padding.
	Density float64 `json:"density" bson:"density"`

	MaxSideLoad int `json:"max_side_load" bson:"max_side_load"`
}

// Compute derives the scale for the given screens and transitions.
// Dangling transition endpoints still count toward the load of the endpoint
// that does exist; they only ever make nodes larger, never smaller.
func Compute(screenIDs []string, transitions []graph.Transition, t Tuning) Scale {
	incoming := make(map[string]int, len(screenIDs))
	outgoing := make(map[string]int, len(screenIDs))
	for _, tr := range transitions {
		outgoing[tr.From]++
		incoming[tr.To]++
	}

	// maxSideLoad is the worst single-side (incoming or outgoing) count;
	// maxCombined the worst total degree. Both are per-node maxima.
	maxSideLoad := 0
	maxCombined := 0
	for _, id := range screenIDs {
		in, out := incoming[id], outgoing[id]
		if in > maxSideLoad {
			maxSideLoad = in
		}
		if out > maxSideLoad {
			maxSideLoad = out
		}
		if in+out > maxCombined {
			maxCombined = in + out
		}
	}

	portSpacing := t.PortSpacingBase + math.Sqrt(math.Max(float64(maxCombined), 1))*t.PortSpacingGrowth
	requiredSideSpan := float64(maxSideLoad) * portSpacing

	nodeScale := math.Max(1, math.Max(
		requiredSideSpan*t.WidthFill/t.BaseWidth,
		requiredSideSpan/(t.BaseHeight*t.HeightFill),
	))

	lineScale := geom.Clamp(1/math.Sqrt(nodeScale), t.LineScaleMin, 1)

	nodeWidth := t.BaseWidth * nodeScale
	nodeHeight := t.BaseHeight * nodeScale
	mediaHeight := math.Max(
		math.Round(nodeHeight*t.MediaHeightRatio),
		math.Round(t.MediaHeightBase*nodeScale),
	)

	return Scale{
		NodeScale:   nodeScale,
		LineScale:   lineScale,
		NodeWidth:   nodeWidth,
		NodeHeight:  nodeHeight,
		MediaHeight: mediaHeight,
		PortSpacing: portSpacing,
		Density:     geom.Clamp((nodeScale-1)/t.DensitySpan, 0, 1),
		MaxSideLoad: maxSideLoad,
	}
}
