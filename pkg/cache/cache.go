// Package cache provides caching for expensive Screenflow computations:
// layout passes, path queries and rendered artifacts.
//
// Three backends are provided:
//   - NullCache: caching disabled
//   - FileCache: file-based, for CLI usage
//   - RedisCache: shared, for server deployments
//
// Keys are derived from content hashes of the graph snapshot so a mutated
// graph can never serve stale geometry.
package cache

import (
	"context"
	"time"
)

// TTL values per entry kind. Layout and path entries are keyed by graph
// hash, so they never go stale in the correctness sense; the TTLs just
// bound disk/memory growth.
const (
	// TTLLayout is the lifetime of cached layout passes.
	TTLLayout = 24 * time.Hour

	// TTLPath is the lifetime of cached path query results.
	TTLPath = 24 * time.Hour

	// TTLRender is the lifetime of rendered artifacts (SVG, DOT).
	TTLRender = 7 * 24 * time.Hour

	// TTLHTTP is the lifetime of cached HTTP responses.
	TTLHTTP = time.Hour
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ============================================================================
// Keyers
// ============================================================================

// LayoutKeyOpts are the knobs that change layout output for the same graph.
type LayoutKeyOpts struct {
	OrderingEpochs int     `json:"ordering_epochs"`
	ComponentGap   float64 `json:"component_gap"`
}

// PathKeyOpts are the knobs that change path query output.
type PathKeyOpts struct {
	Simple   bool `json:"simple"`    // all simple paths vs. shortest only
	MaxDepth int  `json:"max_depth"` // hop cutoff override, 0 for default
	MaxPaths int  `json:"max_paths"` // enumeration cap
}

// RenderKeyOpts are the knobs that change rendered artifacts.
type RenderKeyOpts struct {
	Format  string `json:"format"`  // "svg" or "dot"
	Network int    `json:"network"` // active component filter, -1 for all
}

// Keyer generates cache keys for the different entry kinds.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// LayoutKey generates a key for a layout pass over a graph snapshot.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// PathKey generates a key for a path query.
	PathKey(graphHash, from, to string, opts PathKeyOpts) string

	// RenderKey generates a key for a rendered artifact.
	RenderKey(layoutHash string, opts RenderKeyOpts) string
}

// DefaultKeyer generates hash-based keys with type prefixes.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// LayoutKey generates a key for a layout pass.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// PathKey generates a key for a path query.
func (k *DefaultKeyer) PathKey(graphHash, from, to string, opts PathKeyOpts) string {
	return hashKey("path", graphHash, from, to, opts)
}

// RenderKey generates a key for a rendered artifact.
func (k *DefaultKeyer) RenderKey(layoutHash string, opts RenderKeyOpts) string {
	return hashKey("render", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
