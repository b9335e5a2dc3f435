package focus

import (
	"testing"

	"github.com/matzehuels/screenflow/pkg/core/geom"
	"github.com/matzehuels/screenflow/pkg/errors"
)

// ============================================================================
// Fakes
// ============================================================================

type fitCall struct {
	kind   string // "nodes" or "bounds"
	ids    []string
	bounds geom.Rect
	opts   FitOptions
}

type recordingSurface struct {
	calls []fitCall
}

func (s *recordingSurface) FitToNodes(ids []string, opts FitOptions) {
	s.calls = append(s.calls, fitCall{kind: "nodes", ids: ids, opts: opts})
}

func (s *recordingSurface) FitToBounds(b geom.Rect, opts FitOptions) {
	s.calls = append(s.calls, fitCall{kind: "bounds", bounds: b, opts: opts})
}

type fakeScene struct {
	rects   map[string]geom.Rect
	routes  map[[2]string][][]geom.Point
	density float64
}

func (s *fakeScene) NodeRect(id string) (geom.Rect, bool) {
	r, ok := s.rects[id]
	return r, ok
}

func (s *fakeScene) RoutesBetween(from, to string) [][]geom.Point {
	return s.routes[[2]string{from, to}]
}

func (s *fakeScene) Density() float64 { return s.density }

func chainScene() *fakeScene {
	// X -> Y -> Z laid out left to right.
	return &fakeScene{
		rects: map[string]geom.Rect{
			"x": {X: 0, Y: 0, W: 100, H: 60},
			"y": {X: 300, Y: 40, W: 100, H: 60},
			"z": {X: 600, Y: 0, W: 100, H: 60},
		},
		routes: map[[2]string][][]geom.Point{
			{"x", "y"}: {{{X: 100, Y: 30}, {X: 300, Y: 70}}},
			{"y", "z"}: {{{X: 400, Y: 70}, {X: 600, Y: 30}}},
		},
	}
}

func newTestCalculator() (*Calculator, *recordingSurface, *ManualScheduler) {
	surface := &recordingSurface{}
	frames := &ManualScheduler{}
	calc := NewCalculator(surface, frames, DefaultTuning())
	return calc, surface, frames
}

// ============================================================================
// Node and selection focus
// ============================================================================

func TestFocusNode(t *testing.T) {
	calc, surface, _ := newTestCalculator()
	calc.SetScene(chainScene())

	if err := calc.FocusNode("y"); err != nil {
		t.Fatalf("FocusNode: %v", err)
	}

	if len(surface.calls) != 1 {
		t.Fatalf("got %d fit calls, want 1", len(surface.calls))
	}
	call := surface.calls[0]
	if call.kind != "nodes" || len(call.ids) != 1 || call.ids[0] != "y" {
		t.Errorf("unexpected fit call: %+v", call)
	}
	if call.opts.Duration != DefaultTuning().Duration {
		t.Errorf("duration = %v, want %v", call.opts.Duration, DefaultTuning().Duration)
	}
	if call.opts.Padding <= 0 || call.opts.MaxZoom < 1 {
		t.Errorf("implausible fit options: %+v", call.opts)
	}
}

func TestFocusNodeUnknownID(t *testing.T) {
	calc, surface, _ := newTestCalculator()
	calc.SetScene(chainScene())

	err := calc.FocusNode("stale")
	if !errors.Is(err, errors.ErrCodeScreenNotFound) {
		t.Fatalf("err = %v, want SCREEN_NOT_FOUND", err)
	}
	if len(surface.calls) != 0 {
		t.Errorf("surface received %d calls, want 0", len(surface.calls))
	}
}

func TestFocusNodeWithoutScene(t *testing.T) {
	calc, _, _ := newTestCalculator()
	if err := calc.FocusNode("x"); !errors.Is(err, errors.ErrCodeScreenNotFound) {
		t.Fatalf("err = %v, want SCREEN_NOT_FOUND", err)
	}
}

func TestFocusSelection(t *testing.T) {
	calc, surface, _ := newTestCalculator()
	calc.SetScene(chainScene())

	if err := calc.FocusSelection("x", "y"); err != nil {
		t.Fatalf("FocusSelection: %v", err)
	}

	if len(surface.calls) != 1 {
		t.Fatalf("got %d fit calls, want 1", len(surface.calls))
	}
	call := surface.calls[0]
	if call.kind != "nodes" || len(call.ids) != 2 || call.ids[0] != "x" || call.ids[1] != "y" {
		t.Errorf("unexpected fit call: %+v", call)
	}
}

// ============================================================================
// Route focus
// ============================================================================

func TestFocusRouteCoversPath(t *testing.T) {
	calc, surface, frames := newTestCalculator()
	scene := chainScene()
	calc.SetScene(scene)

	if err := calc.FocusRoute([]string{"x", "y", "z"}); err != nil {
		t.Fatalf("FocusRoute: %v", err)
	}
	if len(surface.calls) != 0 {
		t.Fatal("fit issued before the deferred frames fired")
	}

	frames.Flush()

	if len(surface.calls) != 1 {
		t.Fatalf("got %d fit calls, want 1", len(surface.calls))
	}
	call := surface.calls[0]
	if call.kind != "bounds" {
		t.Fatalf("fit kind = %q, want bounds", call.kind)
	}
	// The box must cover every node rectangle on the path.
	for id, r := range scene.rects {
		if call.bounds.X > r.X || call.bounds.Y > r.Y ||
			call.bounds.MaxX() < r.MaxX() || call.bounds.MaxY() < r.MaxY() {
			t.Errorf("bounds %+v do not cover %s rect %+v", call.bounds, id, r)
		}
	}
}

func TestFocusRouteShortPathIsNoop(t *testing.T) {
	calc, surface, frames := newTestCalculator()
	calc.SetScene(chainScene())

	if err := calc.FocusRoute([]string{"x"}); err != nil {
		t.Fatalf("single-node path: %v", err)
	}
	if err := calc.FocusRoute(nil); err != nil {
		t.Fatalf("empty path: %v", err)
	}

	frames.Flush()
	if len(surface.calls) != 0 {
		t.Errorf("surface received %d calls, want 0", len(surface.calls))
	}
}

func TestFocusRouteUnknownScreen(t *testing.T) {
	calc, surface, frames := newTestCalculator()
	calc.SetScene(chainScene())

	err := calc.FocusRoute([]string{"x", "ghost"})
	if !errors.Is(err, errors.ErrCodeScreenNotFound) {
		t.Fatalf("err = %v, want SCREEN_NOT_FOUND", err)
	}
	frames.Flush()
	if len(surface.calls) != 0 {
		t.Errorf("surface received %d calls, want 0", len(surface.calls))
	}
}

func TestFocusRouteSupersededVersion(t *testing.T) {
	calc, surface, frames := newTestCalculator()
	scene := chainScene()
	calc.SetScene(scene)

	if err := calc.FocusRoute([]string{"x", "y"}); err != nil {
		t.Fatalf("first FocusRoute: %v", err)
	}
	// A newer request lands before the first's frames fire.
	if err := calc.FocusRoute([]string{"y", "z"}); err != nil {
		t.Fatalf("second FocusRoute: %v", err)
	}

	frames.Flush()

	if len(surface.calls) != 1 {
		t.Fatalf("got %d fit calls, want exactly 1 (newest only)", len(surface.calls))
	}
	b := surface.calls[0].bounds
	yz := scene.rects["y"]
	if b.X > yz.X || b.MaxX() < scene.rects["z"].MaxX() {
		t.Errorf("fit bounds %+v belong to the superseded request", b)
	}
	// The box must not reach back to x.
	if b.X <= scene.rects["x"].X {
		t.Errorf("bounds %+v cover the stale path start", b)
	}
}

func TestFocusRouteDegenerateRetries(t *testing.T) {
	calc, surface, frames := newTestCalculator()
	// Placeholder rects: present but without extent, the shape a scene has
	// before coordinates are committed.
	scene := &fakeScene{
		rects: map[string]geom.Rect{
			"a": {},
			"b": {},
		},
	}
	calc.SetScene(scene)

	if err := calc.FocusRoute([]string{"a", "b"}); err != nil {
		t.Fatalf("FocusRoute: %v", err)
	}

	// Two chained frames, then the first degenerate measurement.
	frames.Fire()
	frames.Fire()
	if len(surface.calls) != 0 {
		t.Fatal("fit issued from a degenerate measurement")
	}

	// Coordinates arrive before the retry fires.
	scene.rects["a"] = geom.Rect{X: 0, Y: 0, W: 50, H: 50}
	scene.rects["b"] = geom.Rect{X: 200, Y: 0, W: 50, H: 50}
	frames.Flush()

	if len(surface.calls) != 1 || surface.calls[0].kind != "bounds" {
		t.Fatalf("expected one bounds fit after retry, got %+v", surface.calls)
	}
}

func TestFocusRouteFallsBackToNodeFit(t *testing.T) {
	calc, surface, frames := newTestCalculator()
	scene := &fakeScene{
		rects: map[string]geom.Rect{
			"a": {},
			"b": {},
		},
	}
	calc.SetScene(scene)

	if err := calc.FocusRoute([]string{"a", "b"}); err != nil {
		t.Fatalf("FocusRoute: %v", err)
	}
	frames.Flush()

	if len(surface.calls) != 1 {
		t.Fatalf("got %d fit calls, want 1", len(surface.calls))
	}
	call := surface.calls[0]
	if call.kind != "nodes" {
		t.Fatalf("fallback kind = %q, want nodes", call.kind)
	}
	if len(call.ids) != 2 || call.ids[0] != "a" || call.ids[1] != "b" {
		t.Errorf("fallback ids = %v, want [a b]", call.ids)
	}
}

func TestCloseCancelsPendingFit(t *testing.T) {
	calc, surface, frames := newTestCalculator()
	calc.SetScene(chainScene())

	if err := calc.FocusRoute([]string{"x", "y"}); err != nil {
		t.Fatalf("FocusRoute: %v", err)
	}
	calc.Close()
	frames.Flush()

	if len(surface.calls) != 0 {
		t.Errorf("surface received %d calls after Close, want 0", len(surface.calls))
	}
}

func TestSetSceneSupersedesPendingFit(t *testing.T) {
	calc, surface, frames := newTestCalculator()
	calc.SetScene(chainScene())

	if err := calc.FocusRoute([]string{"x", "y"}); err != nil {
		t.Fatalf("FocusRoute: %v", err)
	}
	calc.SetScene(chainScene()) // full reload replaces derived state
	frames.Flush()

	if len(surface.calls) != 0 {
		t.Errorf("stale fit issued against the reloaded scene: %+v", surface.calls)
	}
}

func TestPaddingTapersWithDensity(t *testing.T) {
	sparse, sparseSurface, _ := newTestCalculator()
	s1 := chainScene()
	s1.density = 0
	sparse.SetScene(s1)
	if err := sparse.FocusNode("x"); err != nil {
		t.Fatal(err)
	}

	dense, denseSurface, _ := newTestCalculator()
	s2 := chainScene()
	s2.density = 1
	dense.SetScene(s2)
	if err := dense.FocusNode("x"); err != nil {
		t.Fatal(err)
	}

	sp := sparseSurface.calls[0].opts
	dp := denseSurface.calls[0].opts
	if dp.Padding >= sp.Padding {
		t.Errorf("padding did not taper: sparse %v, dense %v", sp.Padding, dp.Padding)
	}
	if dp.MaxZoom >= sp.MaxZoom {
		t.Errorf("zoom ceiling did not taper: sparse %v, dense %v", sp.MaxZoom, dp.MaxZoom)
	}
}
