// Package service owns the mutable screen graph. It loads a snapshot from a
// store, applies validated mutations under a single lock, and persists the
// full snapshot after every change. Consumers that need geometry take a
// Snapshot and feed it to the layout engine; the service itself knows nothing
// about layout.
package service

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/graph"
	"github.com/matzehuels/screenflow/pkg/store"
)

// =============================================================================
// Service
// =============================================================================

// Service is the graph mutation layer. All methods are safe for concurrent
// use. Mutations are applied in memory first and then written to the store;
// a failed write is logged and surfaced, but the in-memory change stands so
// callers always observe their own writes.
type Service struct {
	mu     sync.RWMutex
	store  store.Store
	logger *log.Logger
	g      *graph.Graph
}

// Stats summarizes the current graph. Density is the directed-graph edge
// density E/(N*(N-1)), zero when fewer than two screens exist.
type Stats struct {
	Screens     int     `json:"num_screens"`
	Transitions int     `json:"num_transitions"`
	Density     float64 `json:"density"`
}

// New builds a service backed by the given store, loading the current
// snapshot (or the seed graph when the store is empty). A nil logger
// defaults to log.Default().
func New(ctx context.Context, st store.Store, logger *log.Logger) (*Service, error) {
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "store is required")
	}
	if logger == nil {
		logger = log.Default()
	}

	g, err := st.Load(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "loading graph snapshot")
	}

	logger.Debug("graph loaded", "screens", len(g.Screens), "transitions", len(g.Transitions))

	return &Service{
		store:  st,
		logger: logger,
		g:      g,
	}, nil
}

// Close releases the underlying store.
func (s *Service) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}

// Snapshot returns a copy of the current graph, detached from future
// mutations. The copy is safe to hand to the layout engine or to serialize.
func (s *Service) Snapshot() *graph.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyGraph(s.g)
}

// Stats returns screen and transition counts plus edge density.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.g.Screens)
	e := len(s.g.Transitions)
	density := 0.0
	if n > 1 {
		density = float64(e) / float64(n*(n-1))
	}
	return Stats{Screens: n, Transitions: e, Density: density}
}

// =============================================================================
// Screens
// =============================================================================

// AddScreen creates a new screen. An empty imagePath gets the default mock
// image for the screen id. Returns a conflict error when the id exists.
func (s *Service) AddScreen(ctx context.Context, id, imagePath string) (graph.Screen, error) {
	if err := errors.ValidateScreenID(id); err != nil {
		return graph.Screen{}, err
	}
	if imagePath != "" {
		if err := errors.ValidateImagePath(imagePath); err != nil {
			return graph.Screen{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findScreenLocked(id) >= 0 {
		return graph.Screen{}, errors.New(errors.ErrCodeConflict, "screen %q already exists", id)
	}

	screen := graph.NewScreen(id)
	if imagePath != "" {
		screen.ImagePath = imagePath
	}
	s.g.Screens = append(s.g.Screens, screen)
	s.persistLocked(ctx, "add screen")

	return screen, nil
}

// GetScreen returns the screen with the given id.
func (s *Service) GetScreen(id string) (graph.Screen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findScreenLocked(id)
	if i < 0 {
		return graph.Screen{}, errors.New(errors.ErrCodeScreenNotFound, "screen %q not found", id)
	}
	return s.g.Screens[i], nil
}

// ListScreens returns all screens in declaration order.
func (s *Service) ListScreens() []graph.Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]graph.Screen, len(s.g.Screens))
	copy(out, s.g.Screens)
	return out
}

// DeleteScreen removes a screen together with every transition that starts
// or ends at it.
func (s *Service) DeleteScreen(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findScreenLocked(id)
	if i < 0 {
		return errors.New(errors.ErrCodeScreenNotFound, "screen %q not found", id)
	}

	s.g.Screens = append(s.g.Screens[:i], s.g.Screens[i+1:]...)

	kept := s.g.Transitions[:0]
	for _, t := range s.g.Transitions {
		if t.From == id || t.To == id {
			continue
		}
		kept = append(kept, t)
	}
	s.g.Transitions = kept
	s.persistLocked(ctx, "delete screen")

	return nil
}

// RenameScreen changes a screen id, rewriting every transition endpoint that
// references it. Renaming a screen to its own id is a no-op. Returns a
// conflict error when the new id is already taken by another screen.
func (s *Service) RenameScreen(ctx context.Context, oldID, newID string) (graph.Screen, error) {
	if err := errors.ValidateScreenID(newID); err != nil {
		return graph.Screen{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findScreenLocked(oldID)
	if i < 0 {
		return graph.Screen{}, errors.New(errors.ErrCodeScreenNotFound, "screen %q not found", oldID)
	}
	if oldID == newID {
		return s.g.Screens[i], nil
	}
	if s.findScreenLocked(newID) >= 0 {
		return graph.Screen{}, errors.New(errors.ErrCodeConflict, "screen %q already exists", newID)
	}

	s.g.Screens[i].ID = newID
	for j := range s.g.Transitions {
		if s.g.Transitions[j].From == oldID {
			s.g.Transitions[j].From = newID
		}
		if s.g.Transitions[j].To == oldID {
			s.g.Transitions[j].To = newID
		}
	}
	s.persistLocked(ctx, "rename screen")

	return s.g.Screens[i], nil
}

// =============================================================================
// Transitions
// =============================================================================

// AddTransition creates a directed transition. Endpoint screens that do not
// exist yet are created with default image paths, mirroring incremental
// graph capture where transitions are discovered before their targets. An
// empty transition id gets a generated one.
func (s *Service) AddTransition(ctx context.Context, t graph.Transition) (graph.Transition, error) {
	if err := errors.ValidateScreenID(t.From); err != nil {
		return graph.Transition{}, err
	}
	if err := errors.ValidateScreenID(t.To); err != nil {
		return graph.Transition{}, err
	}
	if t.Weight == 0 {
		t.Weight = graph.DefaultWeight
	}
	if err := errors.ValidateWeight(t.Weight); err != nil {
		return graph.Transition{}, err
	}
	if t.ID == "" {
		t.ID = graph.NewTransitionID()
	}
	if err := errors.ValidateTransitionID(t.ID); err != nil {
		return graph.Transition{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findTransitionLocked(t.ID) >= 0 {
		return graph.Transition{}, errors.New(errors.ErrCodeConflict, "transition %q already exists", t.ID)
	}

	s.ensureScreenLocked(t.From)
	s.ensureScreenLocked(t.To)
	s.g.Transitions = append(s.g.Transitions, t)
	s.persistLocked(ctx, "add transition")

	return t, nil
}

// GetTransition returns the transition with the given id.
func (s *Service) GetTransition(id string) (graph.Transition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findTransitionLocked(id)
	if i < 0 {
		return graph.Transition{}, errors.New(errors.ErrCodeTransitionNotFound, "transition %q not found", id)
	}
	return s.g.Transitions[i], nil
}

// ListTransitions returns all transitions in declaration order.
func (s *Service) ListTransitions() []graph.Transition {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]graph.Transition, len(s.g.Transitions))
	copy(out, s.g.Transitions)
	return out
}

// UpdateTransition replaces the mutable fields of an existing transition,
// keeping its id. Moving an endpoint to a screen that does not exist yet
// creates it, same as AddTransition.
func (s *Service) UpdateTransition(ctx context.Context, id string, t graph.Transition) (graph.Transition, error) {
	if err := errors.ValidateScreenID(t.From); err != nil {
		return graph.Transition{}, err
	}
	if err := errors.ValidateScreenID(t.To); err != nil {
		return graph.Transition{}, err
	}
	if t.Weight == 0 {
		t.Weight = graph.DefaultWeight
	}
	if err := errors.ValidateWeight(t.Weight); err != nil {
		return graph.Transition{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTransitionLocked(id)
	if i < 0 {
		return graph.Transition{}, errors.New(errors.ErrCodeTransitionNotFound, "transition %q not found", id)
	}

	t.ID = id
	s.ensureScreenLocked(t.From)
	s.ensureScreenLocked(t.To)
	s.g.Transitions[i] = t
	s.persistLocked(ctx, "update transition")

	return t, nil
}

// DeleteTransition removes the transition with the given id.
func (s *Service) DeleteTransition(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTransitionLocked(id)
	if i < 0 {
		return errors.New(errors.ErrCodeTransitionNotFound, "transition %q not found", id)
	}

	s.g.Transitions = append(s.g.Transitions[:i], s.g.Transitions[i+1:]...)
	s.persistLocked(ctx, "delete transition")

	return nil
}

// Trigger resolves a transition by id and returns the screen it leads to,
// simulating the navigation the transition describes.
func (s *Service) Trigger(id string) (graph.Screen, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.findTransitionLocked(id)
	if i < 0 {
		return graph.Screen{}, errors.New(errors.ErrCodeTransitionNotFound, "transition %q not found", id)
	}

	target := s.g.Transitions[i].To
	j := s.findScreenLocked(target)
	if j < 0 {
		return graph.Screen{}, errors.New(errors.ErrCodeScreenNotFound, "transition %q leads to missing screen %q", id, target)
	}
	return s.g.Screens[j], nil
}

// =============================================================================
// Bulk Operations
// =============================================================================

// Export returns the full graph snapshot for serialization.
func (s *Service) Export() *graph.Graph {
	return s.Snapshot()
}

// Import replaces the entire graph with the given snapshot. The previous
// contents are discarded first; transitions without ids get generated ones.
// Returns the counts of imported screens and transitions.
func (s *Service) Import(ctx context.Context, g *graph.Graph) (screens, transitions int, err error) {
	if g == nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidGraph, "import payload is empty")
	}

	next := &graph.Graph{
		Conditions: append([]graph.Condition(nil), g.Conditions...),
	}

	seen := make(map[string]bool, len(g.Screens))
	for _, sc := range g.Screens {
		if err := errors.ValidateScreenID(sc.ID); err != nil {
			return 0, 0, err
		}
		if seen[sc.ID] {
			return 0, 0, errors.New(errors.ErrCodeInvalidGraph, "duplicate screen %q in import", sc.ID)
		}
		seen[sc.ID] = true
		if sc.ImagePath == "" {
			sc = graph.NewScreen(sc.ID)
		}
		next.Screens = append(next.Screens, sc)
	}

	ids := make(map[string]bool, len(g.Transitions))
	for _, t := range g.Transitions {
		if err := errors.ValidateScreenID(t.From); err != nil {
			return 0, 0, err
		}
		if err := errors.ValidateScreenID(t.To); err != nil {
			return 0, 0, err
		}
		if t.ID == "" {
			t.ID = graph.NewTransitionID()
		}
		if ids[t.ID] {
			return 0, 0, errors.New(errors.ErrCodeInvalidGraph, "duplicate transition %q in import", t.ID)
		}
		ids[t.ID] = true
		if t.Weight < 1 {
			t.Weight = graph.DefaultWeight
		}
		next.Transitions = append(next.Transitions, t)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.g = next
	s.persistLocked(ctx, "import graph")

	return len(next.Screens), len(next.Transitions), nil
}

// Clear removes every screen and transition.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.g = &graph.Graph{}
	s.persistLocked(ctx, "clear graph")
	return nil
}

// =============================================================================
// Internals
// =============================================================================

func (s *Service) findScreenLocked(id string) int {
	for i, sc := range s.g.Screens {
		if sc.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) findTransitionLocked(id string) int {
	for i, t := range s.g.Transitions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) ensureScreenLocked(id string) {
	if s.findScreenLocked(id) < 0 {
		s.g.Screens = append(s.g.Screens, graph.NewScreen(id))
	}
}

// persistLocked writes the current snapshot through the store. Failures are
// logged and swallowed so an unreachable store degrades to in-memory
// operation instead of failing every mutation.
func (s *Service) persistLocked(ctx context.Context, op string) {
	if err := s.store.Save(ctx, s.g); err != nil {
		s.logger.Warn("graph persist failed", "op", op, "error", err)
	}
}

func copyGraph(g *graph.Graph) *graph.Graph {
	out := &graph.Graph{
		Screens:     append([]graph.Screen(nil), g.Screens...),
		Transitions: append([]graph.Transition(nil), g.Transitions...),
		Conditions:  append([]graph.Condition(nil), g.Conditions...),
	}
	for i, t := range out.Transitions {
		out.Transitions[i].ConditionIDs = append([]string(nil), t.ConditionIDs...)
		if t.Action.Params != nil {
			params := make(map[string]string, len(t.Action.Params))
			for k, v := range t.Action.Params {
				params[k] = v
			}
			out.Transitions[i].Action.Params = params
		}
	}
	return out
}
