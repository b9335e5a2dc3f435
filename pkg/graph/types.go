package graph

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Action types recognized on transitions.
const (
	ActionClick          = "click"
	ActionSwipe          = "swipe"
	ActionHardwareButton = "hardware_button"
	ActionAuto           = "auto"
	ActionCondition      = "condition"
)

// DefaultWeight is the weight assigned to transitions that do not carry one.
// Weights are used by path finding and must be >= 1.
const DefaultWeight = 1

// =============================================================================
// Screen - Graph Node
// =============================================================================

// Screen is a node in the transition graph representing one application view.
// Screens are immutable once loaded into the engine; they change only by
// reloading the graph from its data source.
type Screen struct {
	ID        string `json:"screen_id" bson:"screen_id"`
	ImagePath string `json:"imagePath" bson:"imagePath"`
}

// =============================================================================
// Transition - Directed Multi-Edge
// =============================================================================

// Action describes what triggers a transition.
type Action struct {
	Type        string            `json:"type" bson:"type"`
	Description string            `json:"description" bson:"description"`
	Params      map[string]string `json:"params" bson:"params"`
}

// Transition is a directed edge between two screens. Multiple transitions may
// share the same (From, To) pair; each keeps its own id so parallel edges are
// individually addressable by layout and path finding.
type Transition struct {
	ID           string   `json:"transition_id" bson:"transition_id"`
	From         string   `json:"from_screen" bson:"from_screen"`
	To           string   `json:"to_screen" bson:"to_screen"`
	ConditionIDs []string `json:"conditionIds" bson:"conditionIds"`
	Weight       int      `json:"weight" bson:"weight"`
	Action       Action   `json:"action" bson:"action"`
}

// Pair returns the ordered (from, to) key identifying the transition's
// direction, used for grouping parallel edges.
func (t Transition) Pair() [2]string {
	return [2]string{t.From, t.To}
}

// Condition is a named guard that transitions can reference by id.
type Condition struct {
	ID          string `json:"condition_id" bson:"condition_id"`
	Name        string `json:"name" bson:"name"`
	Type        string `json:"type" bson:"type"` // boolean | string | number | expression
	Value       string `json:"value,omitempty" bson:"value,omitempty"`
	Operator    string `json:"operator,omitempty" bson:"operator,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// =============================================================================
// Graph - Full Snapshot
// =============================================================================

// Graph is the full set of screens and transitions consumed by the layout
// engine. Transition endpoints are expected to reference existing screens;
// consumers skip dangling references rather than fail.
type Graph struct {
	Screens     []Screen     `json:"screens" bson:"screens"`
	Transitions []Transition `json:"transitions" bson:"transitions"`
	Conditions  []Condition  `json:"conditions,omitempty" bson:"conditions,omitempty"`
}

// ScreenIDs returns the ids of all screens in declaration order.
func (g *Graph) ScreenIDs() []string {
	ids := make([]string, len(g.Screens))
	for i, s := range g.Screens {
		ids[i] = s.ID
	}
	return ids
}

// HasScreen reports whether a screen with the given id exists.
func (g *Graph) HasScreen(id string) bool {
	for _, s := range g.Screens {
		if s.ID == id {
			return true
		}
	}
	return false
}

// =============================================================================
// Helpers
// =============================================================================

var slugRe = regexp.MustCompile(`[^a-z0-9_]+`)

// Slug converts a screen id to a filesystem-safe slug for mock image paths.
func Slug(id string) string {
	slug := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(id), "_"), "_")
	if slug == "" {
		return "screen"
	}
	return slug
}

// NewScreen builds a screen with the default mock image path for its id.
func NewScreen(id string) Screen {
	return Screen{
		ID:        id,
		ImagePath: "/mock-screens/" + Slug(id) + ".svg",
	}
}

// NewTransitionID synthesizes a unique transition id. Used when source data
// does not carry one.
func NewTransitionID() string {
	return "t_" + uuid.NewString()
}
