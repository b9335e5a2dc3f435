// Package focus computes viewport fit requests against an already-laid-out
// scene: single-node focus, selection focus on a transition's endpoints, and
// route focus over an ordered path of screens.
//
// Focus requests carry a monotonically increasing version; a superseded
// request never reaches the rendering surface even when its deferred
// bounding-box computation fires later.
package focus

import (
	"time"

	"github.com/matzehuels/screenflow/pkg/core/geom"
)

// FitOptions tunes a single fit command issued to the rendering surface.
type FitOptions struct {
	Padding  float64       // fraction of the viewport kept free around the target
	MaxZoom  float64       // zoom ceiling; <= 0 means unlimited
	Duration time.Duration // animation duration
}

// Surface is the rendering surface the calculator drives. Implementations
// translate fit commands into whatever the presentation layer understands
// (an SVG viewBox, a canvas transform, a terminal viewport).
type Surface interface {
	// FitToNodes fits the view to the rectangles of the given screens.
	FitToNodes(ids []string, opts FitOptions)

	// FitToBounds fits the view to an explicit bounding box.
	FitToBounds(bounds geom.Rect, opts FitOptions)
}

// NoopSurface discards every fit command. Useful for headless runs.
type NoopSurface struct{}

var _ Surface = (*NoopSurface)(nil)

// FitToNodes implements Surface.
func (NoopSurface) FitToNodes([]string, FitOptions) {}

// FitToBounds implements Surface.
func (NoopSurface) FitToBounds(geom.Rect, FitOptions) {}
