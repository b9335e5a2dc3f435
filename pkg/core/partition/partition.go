// Package partition splits the screen graph into weakly-connected components.
//
// Transitions are treated as undirected adjacency for partitioning only; the
// rest of the engine keeps their direction. Components are the unit of layout:
// each one is laid out independently and placed side by side.
package partition

import (
	"sort"

	"github.com/matzehuels/screenflow/pkg/graph"
)

// Component is a maximal set of screens reachable from one another when
// transition direction is ignored. Screens appear in BFS discovery order.
type Component struct {
	Index   int      // position after size ordering, stable for one layout pass
	Screens []string // screen ids, discovery order
}

// Contains reports whether the component includes the given screen id.
func (c Component) Contains(id string) bool {
	for _, s := range c.Screens {
		if s == id {
			return true
		}
	}
	return false
}

// Components partitions screenIDs into weakly-connected components.
//
// Every screen lands in exactly one component; screens with no transitions
// form singleton components. Transitions whose endpoints are not both in
// screenIDs are ignored. The result is ordered by descending component size,
// ties broken by discovery order, and component indices match slice positions.
//
// Runs in O(screens + transitions).
func Components(screenIDs []string, transitions []graph.Transition) []Component {
	known := make(map[string]bool, len(screenIDs))
	for _, id := range screenIDs {
		known[id] = true
	}

	// Undirected adjacency; dangling endpoints are skipped here so a bad
	// transition can never abort a layout pass.
	adjacency := make(map[string][]string, len(screenIDs))
	for _, t := range transitions {
		if !known[t.From] || !known[t.To] {
			continue
		}
		adjacency[t.From] = append(adjacency[t.From], t.To)
		adjacency[t.To] = append(adjacency[t.To], t.From)
	}

	visited := make(map[string]bool, len(screenIDs))
	var components []Component

	for _, start := range screenIDs {
		if visited[start] {
			continue
		}
		visited[start] = true

		current := []string{start}
		for queue := []string{start}; len(queue) > 0; {
			node := queue[0]
			queue = queue[1:]
			for _, next := range adjacency[node] {
				if visited[next] {
					continue
				}
				visited[next] = true
				current = append(current, next)
				queue = append(queue, next)
			}
		}
		components = append(components, Component{Screens: current})
	}

	// Larger components first so the dominant structure is the default view.
	// SliceStable keeps discovery order for equal sizes.
	sort.SliceStable(components, func(i, j int) bool {
		return len(components[i].Screens) > len(components[j].Screens)
	})
	for i := range components {
		components[i].Index = i
	}
	return components
}

// Internal returns the transitions whose endpoints both belong to the
// component. This is the edge set handed to the per-component layout call.
func Internal(c Component, transitions []graph.Transition) []graph.Transition {
	member := make(map[string]bool, len(c.Screens))
	for _, id := range c.Screens {
		member[id] = true
	}
	var internal []graph.Transition
	for _, t := range transitions {
		if member[t.From] && member[t.To] {
			internal = append(internal, t)
		}
	}
	return internal
}
