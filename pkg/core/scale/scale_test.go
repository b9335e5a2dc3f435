package scale

import (
	"fmt"
	"testing"

	"github.com/matzehuels/screenflow/pkg/graph"
)

// fanIn builds a hub graph with n screens all pointing at one target.
func fanIn(n int) ([]string, []graph.Transition) {
	ids := []string{"hub"}
	var ts []graph.Transition
	for i := 0; i < n; i++ {
		src := fmt.Sprintf("s%d", i)
		ids = append(ids, src)
		ts = append(ts, graph.Transition{ID: fmt.Sprintf("t%d", i), From: src, To: "hub", Weight: 1})
	}
	return ids, ts
}

func TestNodeScaleAtLeastOne(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 20, 100} {
		ids, ts := fanIn(n)
		sc := Compute(ids, ts, DefaultTuning())
		if sc.NodeScale < 1 {
			t.Errorf("n=%d: NodeScale = %v, want >= 1", n, sc.NodeScale)
		}
	}
}

func TestNodeScaleMonotoneInSideLoad(t *testing.T) {
	prev := 0.0
	for _, n := range []int{1, 5, 10, 20, 40, 80, 160} {
		ids, ts := fanIn(n)
		sc := Compute(ids, ts, DefaultTuning())
		if sc.NodeScale < prev {
			t.Errorf("NodeScale decreased at n=%d: %v < %v", n, sc.NodeScale, prev)
		}
		prev = sc.NodeScale
	}

	// Once past the saturation floor the growth must be strict.
	a := computeFan(40)
	b := computeFan(80)
	if b.NodeScale <= a.NodeScale {
		t.Errorf("NodeScale should strictly increase with side load: %v vs %v", a.NodeScale, b.NodeScale)
	}
	if a.NodeScale <= 1 {
		t.Fatalf("test premise broken: fan-in 40 should exceed scale 1, got %v", a.NodeScale)
	}
}

func computeFan(n int) Scale {
	ids, ts := fanIn(n)
	return Compute(ids, ts, DefaultTuning())
}

func TestLineScaleBoundsAndMonotone(t *testing.T) {
	tuning := DefaultTuning()
	prev := 2.0
	for _, n := range []int{0, 1, 10, 40, 100, 400} {
		ids, ts := fanIn(n)
		sc := Compute(ids, ts, tuning)
		if sc.LineScale < tuning.LineScaleMin || sc.LineScale > 1 {
			t.Errorf("n=%d: LineScale = %v outside [%v, 1]", n, sc.LineScale, tuning.LineScaleMin)
		}
		if sc.LineScale > prev {
			t.Errorf("n=%d: LineScale increased as graph densified: %v > %v", n, sc.LineScale, prev)
		}
		prev = sc.LineScale
	}
}

func TestPortSpacingFormula(t *testing.T) {
	// Empty graph: combined degree floor of 1 applies.
	sc := Compute([]string{"lonely"}, nil, DefaultTuning())
	want := 14 + 1.8 // sqrt(1) == 1
	if diff := sc.PortSpacing - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("PortSpacing = %v, want %v", sc.PortSpacing, want)
	}
	if sc.MaxSideLoad != 0 {
		t.Errorf("MaxSideLoad = %d, want 0", sc.MaxSideLoad)
	}
}

func TestSideLoadCountsSidesSeparately(t *testing.T) {
	// One node with 3 in and 3 out: side load is 3, not 6.
	ids := []string{"mid", "a", "b", "c", "x", "y", "z"}
	ts := []graph.Transition{
		{ID: "1", From: "a", To: "mid"}, {ID: "2", From: "b", To: "mid"}, {ID: "3", From: "c", To: "mid"},
		{ID: "4", From: "mid", To: "x"}, {ID: "5", From: "mid", To: "y"}, {ID: "6", From: "mid", To: "z"},
	}
	sc := Compute(ids, ts, DefaultTuning())
	if sc.MaxSideLoad != 3 {
		t.Errorf("MaxSideLoad = %d, want 3 (incoming and outgoing counted separately)", sc.MaxSideLoad)
	}
}

func TestMediaHeightFloor(t *testing.T) {
	tuning := DefaultTuning()
	sc := Compute([]string{"a"}, nil, tuning)
	// At scale 1: max(round(200*0.84), round(150)) = max(168, 150) = 168.
	if sc.MediaHeight != 168 {
		t.Errorf("MediaHeight = %v, want 168", sc.MediaHeight)
	}
}

func TestDeterministic(t *testing.T) {
	g := graph.Seed()
	a := Compute(g.ScreenIDs(), g.Transitions, DefaultTuning())
	b := Compute(g.ScreenIDs(), g.Transitions, DefaultTuning())
	if a != b {
		t.Errorf("scale should be a pure function of the graph: %+v vs %+v", a, b)
	}
}

func TestDensityRange(t *testing.T) {
	for _, n := range []int{0, 10, 1000} {
		ids, ts := fanIn(n)
		sc := Compute(ids, ts, DefaultTuning())
		if sc.Density < 0 || sc.Density > 1 {
			t.Errorf("n=%d: Density = %v outside [0,1]", n, sc.Density)
		}
	}
}
