// Package render turns layout results into exportable artifacts.
//
// # Overview
//
// The renderer consumes the engine's layout output (node rectangles,
// component assignment, edge routes) and produces:
//
//   - Graphviz DOT with pinned node positions
//   - SVG via Graphviz (neato in no-op layout mode, honoring the pins)
//   - PDF and PNG via rsvg-convert
//
// Because node positions come from the layout engine, Graphviz only routes
// the edges and rasterizes; the diagram geometry matches what an interactive
// viewer of the same layout result would show.
//
// # Caching
//
// Rendering shells out and is comparatively expensive, so [Renderer] caches
// artifacts keyed by the layout's graph hash plus the render options. A
// mutated graph yields a new hash, so stale artifacts are never served.
//
//	r := render.NewRenderer(c, keyer, logger)
//	svg, err := r.Render(ctx, result, snapshot, render.FormatSVG, render.Options{Network: render.AllNetworks})
package render
