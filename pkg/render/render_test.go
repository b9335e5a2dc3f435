package render

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/screenflow/pkg/engine"
	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/graph"
)

// twoNetworkFixture lays out two disjoint screen pairs so network filtering
// is observable.
func twoNetworkFixture(t *testing.T) (*engine.Result, *graph.Graph) {
	t.Helper()

	g := &graph.Graph{
		Screens: []graph.Screen{
			{ID: "a"}, {ID: "b"},
			{ID: "c"}, {ID: "d"},
		},
		Transitions: []graph.Transition{
			{ID: "t1", From: "a", To: "b", Weight: 1, Action: graph.Action{Type: graph.ActionClick}},
			{ID: "t2", From: "c", To: "d", Weight: 3, Action: graph.Action{Type: graph.ActionSwipe}},
			{ID: "t3", From: "c", To: "ghost", Weight: 1},
		},
	}

	e := engine.New(nil, nil, nil)
	res, err := e.LayoutPass(context.Background(), g)
	if err != nil {
		t.Fatalf("LayoutPass() error = %v", err)
	}
	return res, g
}

func TestToDOTPinsAllNodes(t *testing.T) {
	res, g := twoNetworkFixture(t)

	dot := ToDOT(res, g, Options{Network: AllNetworks})

	if !strings.HasPrefix(dot, "digraph screenflow {") {
		t.Fatalf("DOT does not open a digraph:\n%s", dot)
	}
	for _, id := range []string{"a", "b", "c", "d"} {
		if !strings.Contains(dot, `"`+id+`" [pos="`) {
			t.Errorf("node %q is not pinned in DOT output", id)
		}
	}
	if strings.Count(dot, "!\"") != 4 {
		t.Errorf("expected 4 pinned positions, got %d", strings.Count(dot, "!\""))
	}
	if !strings.Contains(dot, `"a" -> "b"`) || !strings.Contains(dot, `"c" -> "d"`) {
		t.Errorf("edges missing from DOT output:\n%s", dot)
	}
	// Dangling transitions never make it into the artifact.
	if strings.Contains(dot, "ghost") {
		t.Errorf("dangling edge leaked into DOT output:\n%s", dot)
	}
}

func TestToDOTNetworkFilter(t *testing.T) {
	res, g := twoNetworkFixture(t)

	network := res.Component("a")
	dot := ToDOT(res, g, Options{Network: network})

	if !strings.Contains(dot, `"a"`) || !strings.Contains(dot, `"b"`) {
		t.Errorf("selected network nodes missing:\n%s", dot)
	}
	for _, id := range []string{`"c"`, `"d"`} {
		if strings.Contains(dot, id) {
			t.Errorf("node %s from another network leaked:\n%s", id, dot)
		}
	}
}

func TestToDOTEdgeLabels(t *testing.T) {
	res, g := twoNetworkFixture(t)

	dot := ToDOT(res, g, Options{Network: AllNetworks, Labels: true})

	if !strings.Contains(dot, `label="click"`) {
		t.Errorf("click label missing:\n%s", dot)
	}
	// Non-default weights show up in the label.
	if !strings.Contains(dot, `label="swipe w=3"`) {
		t.Errorf("weighted label missing:\n%s", dot)
	}
}

func TestRenderDOTUsesCacheByHashAndOptions(t *testing.T) {
	res, g := twoNetworkFixture(t)

	c := newCountingCache()
	r := NewRenderer(c, nil, nil)
	ctx := context.Background()

	first, err := r.Render(ctx, res, g, FormatDOT, Options{Network: AllNetworks})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	second, err := r.Render(ctx, res, g, FormatDOT, Options{Network: AllNetworks})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(first) != string(second) {
		t.Error("cached artifact differs from original")
	}
	if c.sets != 1 {
		t.Errorf("cache sets = %d, want 1", c.sets)
	}
	if c.hits != 1 {
		t.Errorf("cache hits = %d, want 1", c.hits)
	}

	// A different network selection is a different artifact.
	if _, err := r.Render(ctx, res, g, FormatDOT, Options{Network: 0}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if c.sets != 2 {
		t.Errorf("cache sets after option change = %d, want 2", c.sets)
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	res, g := twoNetworkFixture(t)
	r := NewRenderer(nil, nil, nil)
	ctx := context.Background()

	if _, err := r.Render(ctx, nil, g, FormatDOT, Options{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("nil result error = %v, want INVALID_INPUT", err)
	}
	if _, err := r.Render(ctx, res, g, "tiff", Options{}); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("bad format error = %v, want UNSUPPORTED", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg xmlns="http://www.w3.org/2000/svg" width="4in" height="2in" viewBox="0.00 -144.00 288.00 144.00">` +
		`<g></g></svg>`)

	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 288.00 144.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="288" height="144"`) {
		t.Errorf("pixel dimensions missing: %s", out)
	}
}

func TestNormalizeViewBoxPassthrough(t *testing.T) {
	in := []byte(`<svg><g></g></svg>`)
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("svg without viewBox was modified: %s", got)
	}
}

// countingCache is an in-memory cache that counts operations.
type countingCache struct {
	data map[string][]byte
	hits int
	sets int
}

func newCountingCache() *countingCache {
	return &countingCache{data: make(map[string][]byte)}
}

func (c *countingCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	data, ok := c.data[key]
	if ok {
		c.hits++
	}
	return data, ok, nil
}

func (c *countingCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.data[key] = data
	c.sets++
	return nil
}

func (c *countingCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *countingCache) Close() error { return nil }
