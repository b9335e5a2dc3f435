// Package store persists the screen graph. Two backends are provided: a
// JSON file for single-process use and MongoDB for shared deployments.
//
// A store holds exactly one graph snapshot. Every mutation goes through
// Save with a complete graph; there are no partial updates, which keeps
// the layout engine's "full snapshot in, full layout out" contract intact.
package store

import (
	"context"

	"github.com/matzehuels/screenflow/pkg/graph"
)

// Store loads and saves graph snapshots.
type Store interface {
	// Load returns the current graph. A store that has never been saved
	// returns the seed graph, so a fresh deployment is browsable.
	Load(ctx context.Context) (*graph.Graph, error)

	// Save replaces the stored graph with a complete snapshot.
	Save(ctx context.Context, g *graph.Graph) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
