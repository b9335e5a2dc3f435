package focus

import (
	"sync"
	"time"

	"github.com/matzehuels/screenflow/pkg/core/geom"
	"github.com/matzehuels/screenflow/pkg/errors"
)

// ============================================================================
// Scene
// ============================================================================

// Scene exposes the laid-out geometry the calculator measures against.
// A freshly computed layout result implements Scene; swapping the scene
// supersedes every in-flight focus request.
type Scene interface {
	// NodeRect returns the placed rectangle for a screen id.
	NodeRect(id string) (geom.Rect, bool)

	// RoutesBetween returns the route polylines of every transition going
	// from one screen to another, exact directed pair only.
	RoutesBetween(from, to string) [][]geom.Point

	// Density is the normalized graph density in [0, 1].
	Density() float64
}

// ============================================================================
// Tuning
// ============================================================================

// Tuning holds the padding and zoom knobs of the calculator. Padding values
// are viewport fractions; both padding and zoom taper off as density rises
// so dense graphs are not drowned in whitespace.
type Tuning struct {
	NodePadding  float64
	RoutePadding float64
	PaddingTaper float64
	MaxZoom      float64
	ZoomTaper    float64
	Duration     time.Duration
}

// DefaultTuning returns the tuning used in production.
func DefaultTuning() Tuning {
	return Tuning{
		NodePadding:  0.55,
		RoutePadding: 0.25,
		PaddingTaper: 0.45,
		MaxZoom:      1.6,
		ZoomTaper:    0.35,
		Duration:     600 * time.Millisecond,
	}
}

func (t Tuning) padding(base, density float64) float64 {
	return base * (1 - geom.Clamp(density, 0, 1)*t.PaddingTaper)
}

func (t Tuning) maxZoom(density float64) float64 {
	z := t.MaxZoom * (1 - geom.Clamp(density, 0, 1)*t.ZoomTaper)
	if z < 1 {
		z = 1
	}
	return z
}

// ============================================================================
// Calculator
// ============================================================================

// Calculator turns focus requests into fit commands on a Surface.
//
// Node and selection focus are issued synchronously. Route focus waits two
// chained frames so the surface has committed fresh positions before the
// bounding box is measured, retries once when the measurement comes back
// degenerate, and falls back to a node-only fit after that.
type Calculator struct {
	surface Surface
	frames  FrameScheduler
	tuning  Tuning

	mu      sync.Mutex
	scene   Scene
	version uint64
	cancel  func()
}

// NewCalculator creates a calculator driving the given surface.
func NewCalculator(surface Surface, frames FrameScheduler, tuning Tuning) *Calculator {
	return &Calculator{
		surface: surface,
		frames:  frames,
		tuning:  tuning,
	}
}

// SetScene installs a new scene. Any pending focus request is cancelled:
// stale geometry must never produce a fit against the new layout.
func (c *Calculator) SetScene(scene Scene) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scene = scene
	c.supersedeLocked()
}

// Close cancels any pending deferred computation. Call on teardown.
func (c *Calculator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.supersedeLocked()
}

// supersedeLocked bumps the version and drops the pending frame, if any.
// Callers must hold c.mu.
func (c *Calculator) supersedeLocked() uint64 {
	c.version++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return c.version
}

// FocusNode fits the view to a single screen's rectangle.
func (c *Calculator) FocusNode(id string) error {
	c.mu.Lock()
	scene := c.scene
	if scene == nil {
		c.mu.Unlock()
		return errors.New(errors.ErrCodeScreenNotFound, "no layout computed yet")
	}
	if _, ok := scene.NodeRect(id); !ok {
		c.mu.Unlock()
		return errors.New(errors.ErrCodeScreenNotFound, "screen %q has no placement", id)
	}
	c.supersedeLocked()
	c.mu.Unlock()

	density := scene.Density()
	c.surface.FitToNodes([]string{id}, FitOptions{
		Padding:  c.tuning.padding(c.tuning.NodePadding, density),
		MaxZoom:  c.tuning.maxZoom(density),
		Duration: c.tuning.Duration,
	})
	return nil
}

// FocusSelection fits the view to a transition's two endpoints. No route
// measurement happens here; the endpoints are enough.
func (c *Calculator) FocusSelection(from, to string) error {
	c.mu.Lock()
	scene := c.scene
	if scene == nil {
		c.mu.Unlock()
		return errors.New(errors.ErrCodeScreenNotFound, "no layout computed yet")
	}
	for _, id := range []string{from, to} {
		if _, ok := scene.NodeRect(id); !ok {
			c.mu.Unlock()
			return errors.New(errors.ErrCodeScreenNotFound, "screen %q has no placement", id)
		}
	}
	c.supersedeLocked()
	c.mu.Unlock()

	density := scene.Density()
	c.surface.FitToNodes([]string{from, to}, FitOptions{
		Padding:  c.tuning.padding(c.tuning.NodePadding, density),
		MaxZoom:  c.tuning.maxZoom(density),
		Duration: c.tuning.Duration,
	})
	return nil
}

// FocusRoute fits the view to an ordered path of screens, covering every
// node rectangle on the path plus every route point between consecutive
// pairs. Paths shorter than one hop are a no-op.
func (c *Calculator) FocusRoute(path []string) error {
	if len(path) < 2 {
		return nil
	}

	c.mu.Lock()
	scene := c.scene
	if scene == nil {
		c.mu.Unlock()
		return errors.New(errors.ErrCodeScreenNotFound, "no layout computed yet")
	}
	for _, id := range path {
		if _, ok := scene.NodeRect(id); !ok {
			c.mu.Unlock()
			return errors.New(errors.ErrCodeScreenNotFound, "screen %q has no placement", id)
		}
	}
	version := c.supersedeLocked()
	c.mu.Unlock()

	ids := append([]string(nil), path...)

	// Two chained frames before measuring, one retry after a degenerate
	// measurement, then a node-only fallback.
	c.defer1(version, func() {
		c.defer1(version, func() {
			c.measureRoute(version, scene, ids, true)
		})
	})
	return nil
}

// defer1 schedules fn one frame out, tied to a request version. The frame
// is dropped when a newer request or teardown has superseded the version.
func (c *Calculator) defer1(version uint64, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		return
	}
	c.cancel = c.frames.Schedule(func() {
		c.mu.Lock()
		stale := version != c.version
		if !stale {
			c.cancel = nil
		}
		c.mu.Unlock()
		if !stale {
			fn()
		}
	})
}

func (c *Calculator) measureRoute(version uint64, scene Scene, path []string, retry bool) {
	var b geom.Bounds
	for _, id := range path {
		if r, ok := scene.NodeRect(id); ok {
			b.AddRect(r)
		}
	}
	for i := 0; i+1 < len(path); i++ {
		for _, route := range scene.RoutesBetween(path[i], path[i+1]) {
			for _, p := range route {
				b.AddPoint(p)
			}
		}
	}

	if degenerate(b) {
		if retry {
			c.defer1(version, func() {
				c.measureRoute(version, scene, path, false)
			})
			return
		}
		// Coordinates never materialized; fall back to fitting the
		// path's nodes without an explicit box.
		c.fitNodes(version, scene, path)
		return
	}

	c.mu.Lock()
	stale := version != c.version
	c.mu.Unlock()
	if stale {
		return
	}

	density := scene.Density()
	c.surface.FitToBounds(b.Rect(), FitOptions{
		Padding:  c.tuning.padding(c.tuning.RoutePadding, density),
		MaxZoom:  c.tuning.maxZoom(density),
		Duration: c.tuning.Duration,
	})
}

func (c *Calculator) fitNodes(version uint64, scene Scene, ids []string) {
	c.mu.Lock()
	stale := version != c.version
	c.mu.Unlock()
	if stale {
		return
	}
	density := scene.Density()
	c.surface.FitToNodes(ids, FitOptions{
		Padding:  c.tuning.padding(c.tuning.NodePadding, density),
		MaxZoom:  c.tuning.maxZoom(density),
		Duration: c.tuning.Duration,
	})
}

// degenerate reports whether a measured bounding box carries no usable
// extent, which happens when no coordinates were cached yet.
func degenerate(b geom.Bounds) bool {
	if b.IsEmpty() {
		return true
	}
	r := b.Rect()
	return r.W == 0 && r.H == 0
}
