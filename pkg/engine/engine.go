// Package engine runs the complete layout pass for Screenflow.
//
// This package implements the partition → scale → layout → disambiguate
// pipeline that CLI and API components share. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// A pass consists of four stages:
//
//  1. Partition: split the graph into connected components
//  2. Scale: derive node sizes and spacing from the degree distribution
//  3. Layout: place each component through the layered layout algorithm
//     and merge the results into one global frame
//  4. Disambiguate: fan out parallel edges so every transition is visible
//
// All stages are synchronous and pure; a pass never mutates shared state.
// Reloading the graph means running a fresh pass and atomically replacing
// the previous Result.
//
// # Usage
//
// Create an Engine and run a pass:
//
//	eng := engine.New(cache, nil, logger)
//	result, err := eng.LayoutPass(ctx, g)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rect, ok := result.NodeRect("welcome")
package engine

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screenflow/pkg/cache"
	"github.com/matzehuels/screenflow/pkg/core/focus"
	"github.com/matzehuels/screenflow/pkg/core/geom"
	"github.com/matzehuels/screenflow/pkg/core/layout"
	"github.com/matzehuels/screenflow/pkg/core/multiedge"
	"github.com/matzehuels/screenflow/pkg/core/partition"
	"github.com/matzehuels/screenflow/pkg/core/scale"
	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/graph"
	"github.com/matzehuels/screenflow/pkg/observability"
)

// Ensure Result satisfies the focus calculator's scene contract.
var _ focus.Scene = (*Result)(nil)

// Options tunes a layout pass. The zero value selects the defaults.
type Options struct {
	// OrderingEpochs bounds the crossing-reduction sweeps inside the
	// layered layout. 0 means the default.
	OrderingEpochs int `json:"ordering_epochs,omitempty"`

	// ComponentGap overrides the horizontal gap between components.
	// 0 means the default.
	ComponentGap float64 `json:"component_gap,omitempty"`

	// Refresh bypasses the cache and recomputes.
	Refresh bool `json:"refresh,omitempty"`
}

func (o Options) cacheKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		OrderingEpochs: o.OrderingEpochs,
		ComponentGap:   o.ComponentGap,
	}
}

// Engine encapsulates layout passes with caching.
//
// The Engine is stateless except for the cache and logger - it doesn't
// store pass results. Multiple goroutines can safely use the same Engine
// with different graphs.
type Engine struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	ScaleTuning     scale.Tuning
	MultiedgeTuning multiedge.Tuning
	LayoutTuning    layout.Tuning
}

// New creates an engine with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func New(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Engine {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		Cache:           c,
		Keyer:           keyer,
		Logger:          logger,
		ScaleTuning:     scale.DefaultTuning(),
		MultiedgeTuning: multiedge.DefaultTuning(),
		LayoutTuning:    layout.DefaultTuning(),
	}
}

// LayoutPass runs a complete pass over the graph with default options.
func (e *Engine) LayoutPass(ctx context.Context, g *graph.Graph) (*Result, error) {
	return e.LayoutPassWithOptions(ctx, g, Options{})
}

// LayoutPassWithOptions runs a complete pass over the graph.
func (e *Engine) LayoutPassWithOptions(ctx context.Context, g *graph.Graph, opts Options) (*Result, error) {
	if g == nil {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "nil graph")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Engine().OnLayoutStart(ctx, len(g.Screens), len(g.Transitions))

	data, err := graph.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "serialize graph for hashing")
	}
	hash := cache.Hash(data)
	cacheKey := e.Keyer.LayoutKey(hash, opts.cacheKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if cached, hit, err := e.Cache.Get(ctx, cacheKey); err == nil && hit {
			var result Result
			if err := json.Unmarshal(cached, &result); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				observability.Engine().OnLayoutComplete(ctx, len(result.Components), time.Since(start), nil)
				return &result, nil
			}
			// Corrupt entry; recompute.
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	result := e.compute(g, opts)
	result.GraphHash = hash

	if encoded, err := json.Marshal(result); err == nil {
		if err := e.Cache.Set(ctx, cacheKey, encoded, cache.TTLLayout); err == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(encoded))
		}
	}

	duration := time.Since(start)
	observability.Engine().OnLayoutComplete(ctx, len(result.Components), duration, nil)
	e.Logger.Info("layout pass complete",
		"screens", len(g.Screens),
		"transitions", len(g.Transitions),
		"components", len(result.Components),
		"duration", duration)

	return result, nil
}

// compute runs the pure geometry pipeline.
func (e *Engine) compute(g *graph.Graph, opts Options) *Result {
	ids := g.ScreenIDs()

	components := partition.Components(ids, g.Transitions)
	sc := scale.Compute(ids, g.Transitions, e.ScaleTuning)

	driver := layout.NewDriver(layout.SugiyamaEngine{OrderingEpochs: opts.OrderingEpochs})
	driver.Tuning = e.LayoutTuning
	if opts.ComponentGap > 0 {
		driver.Tuning.ComponentGap = opts.ComponentGap
	}
	placements := driver.Layout(components, g.Transitions, sc)

	centers := make(map[string]geom.Point, len(placements.Nodes))
	for id, n := range placements.Nodes {
		centers[id] = n.Rect.Center()
	}
	edges := make([]multiedge.Edge, 0, len(g.Transitions))
	for _, t := range g.Transitions {
		edges = append(edges, multiedge.Edge{ID: t.ID, From: t.From, To: t.To})
	}
	routes := multiedge.Disambiguate(edges, placements.Routes, centers, sc, e.MultiedgeTuning)

	var b geom.Bounds
	for _, n := range placements.Nodes {
		b.AddRect(n.Rect)
	}
	for _, route := range routes {
		for _, p := range route.Points {
			b.AddPoint(p)
		}
	}

	return &Result{
		Components:      components,
		Scale:           sc,
		Nodes:           placements.Nodes,
		Routes:          routes,
		Transitions:     append([]graph.Transition(nil), g.Transitions...),
		ComponentBounds: placements.ComponentBounds,
		Bounds:          b.Rect(),
	}
}

// Close releases resources held by the engine (primarily the cache).
func (e *Engine) Close() error {
	if e.Cache != nil {
		return e.Cache.Close()
	}
	return nil
}
