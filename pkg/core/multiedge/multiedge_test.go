package multiedge

import (
	"math"
	"testing"

	"github.com/matzehuels/screenflow/pkg/core/geom"
	"github.com/matzehuels/screenflow/pkg/core/scale"
)

func testScale() scale.Scale {
	return scale.Compute([]string{"a", "b"}, nil, scale.DefaultTuning())
}

func horizontalFixture() (map[string][]geom.Point, map[string]geom.Point) {
	// a at (0,0), b at (1000,0): the center line runs along +X, so the unit
	// normal is (0, 1) and offsets move routes vertically.
	centers := map[string]geom.Point{
		"a": {X: 0, Y: 0},
		"b": {X: 1000, Y: 0},
	}
	raw := map[string][]geom.Point{}
	return raw, centers
}

func TestSingleEdgeZeroOffset(t *testing.T) {
	raw, centers := horizontalFixture()
	raw["t1"] = []geom.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}}

	routes := Disambiguate([]Edge{{ID: "t1", From: "a", To: "b"}}, raw, centers, testScale(), DefaultTuning())

	r := routes["t1"]
	if r.Offset != 0 {
		t.Errorf("k=1 offset = %v, want exactly 0", r.Offset)
	}
	if r.Siblings != 1 {
		t.Errorf("siblings = %d, want 1", r.Siblings)
	}
	if r.Points[0] != (geom.Point{X: 0, Y: 0}) {
		t.Errorf("k=1 route must be unshifted, got %+v", r.Points[0])
	}
}

func TestFourSiblingsSymmetricRanks(t *testing.T) {
	raw, centers := horizontalFixture()
	edges := []Edge{
		{ID: "t3", From: "a", To: "b"},
		{ID: "t1", From: "a", To: "b"},
		{ID: "t4", From: "a", To: "b"},
		{ID: "t2", From: "a", To: "b"},
	}
	for _, e := range edges {
		raw[e.ID] = []geom.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}}
	}

	routes := Disambiguate(edges, raw, centers, testScale(), DefaultTuning())

	// Lexical rank order t1..t4 maps to multipliers {-1.5, -0.5, 0.5, 1.5}.
	step := routes["t2"].Offset * -2 // rank 1 multiplier is -0.5
	if step <= 0 {
		t.Fatalf("derived step %v should be positive", step)
	}
	want := map[string]float64{
		"t1": -1.5 * step,
		"t2": -0.5 * step,
		"t3": 0.5 * step,
		"t4": 1.5 * step,
	}
	for id, w := range want {
		if got := routes[id].Offset; math.Abs(got-w) > 1e-9 {
			t.Errorf("offset[%s] = %v, want %v", id, got, w)
		}
		if routes[id].Siblings != 4 {
			t.Errorf("siblings[%s] = %d, want 4", id, routes[id].Siblings)
		}
	}
}

func TestOffsetsSumToZeroAndDistinct(t *testing.T) {
	for k := 1; k <= 7; k++ {
		raw, centers := horizontalFixture()
		var edges []Edge
		for i := 0; i < k; i++ {
			id := string(rune('a' + i))
			edges = append(edges, Edge{ID: id, From: "a", To: "b"})
			raw[id] = []geom.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}}
		}

		routes := Disambiguate(edges, raw, centers, testScale(), DefaultTuning())

		sum := 0.0
		seen := map[float64]bool{}
		for _, e := range edges {
			off := routes[e.ID].Offset
			sum += off
			if seen[off] {
				t.Errorf("k=%d: duplicate offset %v", k, off)
			}
			seen[off] = true
		}
		if math.Abs(sum) > 1e-9 {
			t.Errorf("k=%d: offsets sum to %v, want 0", k, sum)
		}
	}
}

func TestShiftIsRigidAlongNormal(t *testing.T) {
	raw, centers := horizontalFixture()
	// An orthogonal dog-leg route; the shift must preserve its shape.
	leg := []geom.Point{{X: 0, Y: 0}, {X: 500, Y: 0}, {X: 500, Y: 80}, {X: 1000, Y: 80}}
	raw["t1"] = leg
	raw["t2"] = append([]geom.Point{}, leg...)

	routes := Disambiguate([]Edge{
		{ID: "t1", From: "a", To: "b"},
		{ID: "t2", From: "a", To: "b"},
	}, raw, centers, testScale(), DefaultTuning())

	r := routes["t1"]
	if len(r.Points) != 4 {
		t.Fatalf("point count changed: %d", len(r.Points))
	}
	for i, p := range r.Points {
		if p.X != leg[i].X {
			t.Errorf("point %d X moved: %v -> %v (normal is vertical here)", i, leg[i].X, p.X)
		}
		if got := p.Y - leg[i].Y; math.Abs(got-r.Offset) > 1e-9 {
			t.Errorf("point %d shifted by %v, want uniform %v", i, got, r.Offset)
		}
	}
}

func TestStepClampedToFeasibleEnvelope(t *testing.T) {
	sc := testScale()
	tuning := DefaultTuning()

	maxAbs := math.Max(sc.NodeWidth, sc.NodeHeight)*tuning.EnvelopeScale + sc.PortSpacing*tuning.EnvelopePorts

	// A very large group: every offset stays within the envelope.
	raw, centers := horizontalFixture()
	var edges []Edge
	for i := 0; i < 120; i++ {
		id := string(rune('a'+i%26)) + string(rune('a'+i/26))
		edges = append(edges, Edge{ID: id, From: "a", To: "b"})
		raw[id] = []geom.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}}
	}

	routes := Disambiguate(edges, raw, centers, testScale(), tuning)
	for _, e := range edges {
		if off := math.Abs(routes[e.ID].Offset); off > maxAbs+1e-6 {
			t.Errorf("offset %v escapes feasible envelope %v", off, maxAbs)
		}
	}
}

func TestMissingCentersPassThrough(t *testing.T) {
	raw := map[string][]geom.Point{
		"t1": {{X: 0, Y: 0}, {X: 10, Y: 0}},
		"t2": {{X: 0, Y: 0}, {X: 10, Y: 0}},
	}
	routes := Disambiguate([]Edge{
		{ID: "t1", From: "ghost", To: "b"},
		{ID: "t2", From: "ghost", To: "b"},
	}, raw, map[string]geom.Point{"b": {}}, testScale(), DefaultTuning())

	for id, r := range routes {
		if r.Offset != 0 {
			t.Errorf("%s: edges with unknown endpoints should not be offset, got %v", id, r.Offset)
		}
		if r.Points[1] != (geom.Point{X: 10, Y: 0}) {
			t.Errorf("%s: route must pass through unshifted", id)
		}
	}
}

func TestGroupsAreIndependent(t *testing.T) {
	raw, centers := horizontalFixture()
	centers["c"] = geom.Point{X: 0, Y: 1000}
	raw["ab1"] = []geom.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}}
	raw["ab2"] = []geom.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}}
	raw["ac"] = []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1000}}

	routes := Disambiguate([]Edge{
		{ID: "ab1", From: "a", To: "b"},
		{ID: "ab2", From: "a", To: "b"},
		{ID: "ac", From: "a", To: "c"},
	}, raw, centers, testScale(), DefaultTuning())

	if routes["ac"].Offset != 0 || routes["ac"].Siblings != 1 {
		t.Errorf("a->c is alone in its ordered pair: %+v", routes["ac"])
	}
	if routes["ab1"].Offset == routes["ab2"].Offset {
		t.Error("a->b siblings must differ")
	}
}
