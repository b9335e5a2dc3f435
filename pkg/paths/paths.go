// Package paths answers reachability queries over the screen graph: the
// cheapest route between two screens, and the set of simple alternatives
// near it.
//
// The weighted search runs on a gonum directed graph. Parallel transitions
// collapse to their cheapest member for search purposes; the full transition
// list is kept so each hop can be annotated with the transition that
// realizes it.
package paths

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/graph"
)

// DefaultMaxPaths caps how many alternatives a Simple query returns.
const DefaultMaxPaths = 10

// SlackHops is how much longer (in hops) an alternative may be than the
// cheapest path before enumeration stops exploring it.
const SlackHops = 2

// Path is one ordered route through the graph.
type Path struct {
	Screens       []string `json:"screens"`
	TransitionIDs []string `json:"transition_ids"`
	Weight        int      `json:"weight"`
}

// Hops returns the number of transitions on the path.
func (p Path) Hops() int {
	if len(p.Screens) == 0 {
		return 0
	}
	return len(p.Screens) - 1
}

// Finder answers path queries against one graph snapshot. Build a new
// Finder after every graph mutation; it never observes later changes.
type Finder struct {
	ids      map[string]int64
	names    map[int64]string
	wg       *simple.WeightedDirectedGraph
	cheapest map[[2]string]graph.Transition
	adjacent map[string][]string
}

// NewFinder indexes the graph for querying.
func NewFinder(g *graph.Graph) *Finder {
	f := &Finder{
		ids:      make(map[string]int64, len(g.Screens)),
		names:    make(map[int64]string, len(g.Screens)),
		wg:       simple.NewWeightedDirectedGraph(0, math.Inf(1)),
		cheapest: make(map[[2]string]graph.Transition),
		adjacent: make(map[string][]string),
	}

	for i, s := range g.Screens {
		id := int64(i)
		f.ids[s.ID] = id
		f.names[id] = s.ID
		f.wg.AddNode(simple.Node(id))
	}

	for _, t := range g.Transitions {
		from, okFrom := f.ids[t.From]
		to, okTo := f.ids[t.To]
		if !okFrom || !okTo || t.From == t.To {
			// Dangling or self-referential transitions never shorten
			// a route.
			continue
		}
		pair := t.Pair()
		best, seen := f.cheapest[pair]
		if !seen || t.Weight < best.Weight || (t.Weight == best.Weight && t.ID < best.ID) {
			f.cheapest[pair] = t
			f.wg.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(from),
				T: simple.Node(to),
				W: float64(t.Weight),
			})
		}
		if !seen {
			f.adjacent[t.From] = append(f.adjacent[t.From], t.To)
		}
	}

	for id := range f.adjacent {
		sort.Strings(f.adjacent[id])
	}
	return f
}

// Shortest returns the cheapest path by total transition weight.
func (f *Finder) Shortest(from, to string) (Path, error) {
	fromID, toID, err := f.endpoints(from, to)
	if err != nil {
		return Path{}, err
	}
	if from == to {
		return Path{Screens: []string{from}}, nil
	}

	shortest := path.DijkstraFrom(simple.Node(fromID), f.wg)
	nodes, weight := shortest.To(toID)
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return Path{}, errors.New(errors.ErrCodePathNotFound, "no path from %q to %q", from, to)
	}

	screens := make([]string, len(nodes))
	for i, n := range nodes {
		screens[i] = f.names[n.ID()]
	}
	return f.annotate(screens), nil
}

// Simple returns simple (loop-free) paths between two screens: every path
// within the hop cutoff, capped at maxPaths and sorted by hop count, then
// total weight, then lexically. A maxDepth of 0 or less uses the default
// cutoff, SlackHops longer than the cheapest path. When enumeration finds
// nothing within the cutoff, the cheapest path alone is returned.
func (f *Finder) Simple(from, to string, maxDepth, maxPaths int) ([]Path, error) {
	if maxPaths <= 0 {
		maxPaths = DefaultMaxPaths
	}

	cheapest, err := f.Shortest(from, to)
	if err != nil {
		return nil, err
	}
	if from == to {
		return []Path{cheapest}, nil
	}

	cutoff := maxDepth
	if cutoff <= 0 {
		cutoff = cheapest.Hops() + SlackHops
	}
	var found [][]string
	onPath := map[string]bool{from: true}
	f.enumerate(from, to, cutoff, []string{from}, onPath, &found, maxPaths)

	if len(found) == 0 {
		// Deep cycles can starve the bounded enumeration; the cheapest
		// route still answers the question.
		return []Path{cheapest}, nil
	}

	out := make([]Path, len(found))
	for i, screens := range found {
		out[i] = f.annotate(screens)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hops() != out[j].Hops() {
			return out[i].Hops() < out[j].Hops()
		}
		if out[i].Weight != out[j].Weight {
			return out[i].Weight < out[j].Weight
		}
		return lessScreens(out[i].Screens, out[j].Screens)
	})
	return out, nil
}

// enumerate is a bounded depth-first walk over distinct ordered pairs.
func (f *Finder) enumerate(current, target string, cutoff int, trail []string, onPath map[string]bool, found *[][]string, maxPaths int) {
	if len(*found) >= maxPaths {
		return
	}
	if len(trail)-1 > cutoff {
		return
	}
	if current == target {
		*found = append(*found, append([]string(nil), trail...))
		return
	}
	for _, next := range f.adjacent[current] {
		if onPath[next] {
			continue
		}
		onPath[next] = true
		f.enumerate(next, target, cutoff, append(trail, next), onPath, found, maxPaths)
		delete(onPath, next)
		if len(*found) >= maxPaths {
			return
		}
	}
}

// annotate attaches per-hop transition ids and the total weight.
func (f *Finder) annotate(screens []string) Path {
	p := Path{Screens: screens}
	for i := 0; i+1 < len(screens); i++ {
		t := f.cheapest[[2]string{screens[i], screens[i+1]}]
		p.TransitionIDs = append(p.TransitionIDs, t.ID)
		p.Weight += t.Weight
	}
	return p
}

func (f *Finder) endpoints(from, to string) (int64, int64, error) {
	fromID, ok := f.ids[from]
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeScreenNotFound, "screen %q not found", from)
	}
	toID, ok := f.ids[to]
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeScreenNotFound, "screen %q not found", to)
	}
	return fromID, toID, nil
}

func lessScreens(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
