// Package pkg provides the core libraries for Screenflow, a layout and
// route-focus engine for screen-transition graphs.
//
// # Overview
//
// Screenflow takes a directed multigraph of application screens and their
// transitions and turns it into spatial layouts, focus viewports, and
// rendered diagrams. The pkg directory is organized into four main areas:
//
//  1. [core] - Domain logic (partitioning, scaling, layered layout, focus)
//  2. [engine] / [render] - Orchestration and artifact generation
//  3. [service] / [api] - Graph mutation service and HTTP surface
//  4. [graph] / [store] / [cache] - Serialization and persistence
//
// # Architecture
//
// The typical data flow through Screenflow:
//
//	Graph snapshot (JSON / file / MongoDB)
//	         ↓
//	    [core/partition] package (weakly connected components)
//	         ↓
//	    [core/scale] + [core/layout] packages (degree scaling, layered placement)
//	         ↓
//	    [core/multiedge] + [core/focus] packages (parallel-edge routes, viewport)
//	         ↓
//	    [engine] result → [render] → DOT/SVG/PDF/PNG output
//
// # Quick Start
//
// Lay out a graph and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/screenflow/pkg/engine"
//	    "github.com/matzehuels/screenflow/pkg/graph"
//	    "github.com/matzehuels/screenflow/pkg/render"
//	)
//
//	g := graph.Seed()
//	eng := engine.New(nil, nil, nil)
//	res, _ := eng.LayoutPass(context.Background(), g)
//
//	r := render.NewRenderer(nil, nil, nil)
//	svg, _ := r.Render(context.Background(), res, g, render.FormatSVG, render.Options{})
//
// # Main Packages
//
// [core/partition] - Weakly connected component discovery over the directed
// multigraph; each component becomes an independently placed network.
//
// [core/scale] - Degree-derived node scaling and dynamic port spacing.
//
// [core/layout] - Layered left-to-right placement built on the Sugiyama
// implementation from nikolaydubina/go-graph-layout, plus the component
// placement driver.
//
// [core/multiedge] - Parallel-edge disambiguation: per-sibling route offsets
// so transitions sharing an ordered screen pair stay individually visible.
//
// [core/focus] - Viewport computation for focusing a screen or a route,
// with frame scheduling for animated refocus.
//
// [core/netselect] - Network (component) selection state for browsing one
// network at a time.
//
// [engine] - The layout pass orchestrator: partition → scale → layout →
// multiedge → bounds, with hash-keyed result caching.
//
// [paths] - Shortest and simple route queries over the graph, built on
// gonum's graph algorithms.
//
// [render] - DOT generation with pinned positions, Graphviz SVG rendering,
// and PDF/PNG conversion.
//
// [service] - The mutation surface: screens, transitions, bulk import and
// export, with pluggable persistence.
//
// [api] - The chi HTTP server exposing the service, path queries, layout,
// network selection, and rendering.
//
// [graph] - Serialization types for screens and transitions (JSON + BSON).
//
// [store] - Persistence backends (file, MongoDB).
//
// [cache] - Content-addressed caching (null, file, Redis) keyed by graph
// hash.
//
// [observability] - Hook points for logging and metrics around layout, path
// queries, rendering, and HTTP handling.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...             # All tests
//	go test ./pkg/core/layout/... # Specific package
//	go test -run Example          # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/core
// [core/partition]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/core/partition
// [core/scale]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/core/scale
// [core/layout]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/core/layout
// [core/multiedge]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/core/multiedge
// [core/focus]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/core/focus
// [core/netselect]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/core/netselect
// [engine]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/engine
// [paths]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/paths
// [render]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/render
// [service]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/service
// [api]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/api
// [graph]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/graph
// [store]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/store
// [cache]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/screenflow/pkg/observability
package pkg
