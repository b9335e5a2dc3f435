package graph

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// Multi-Format Decoding
// =============================================================================

// screenJSON accepts both the current and legacy screen shapes.
type screenJSON struct {
	ID        string `json:"screen_id"`
	ImagePath string `json:"imagePath"`
	Media     *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"media"`
}

// UnmarshalJSON decodes a screen from either {"screen_id", "imagePath"} or
// the legacy {"screen_id", "media": {"imageUrl"}} shape.
func (s *Screen) UnmarshalJSON(data []byte) error {
	var raw screenJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("screen entry must be an object with 'screen_id' and 'imagePath': %w", err)
	}

	if raw.ID == "" {
		return fmt.Errorf("screen entry is missing 'screen_id'")
	}

	imagePath := raw.ImagePath
	if imagePath == "" && raw.Media != nil {
		imagePath = raw.Media.ImageURL
	}
	if imagePath == "" {
		return fmt.Errorf("screen %q is missing 'imagePath'", raw.ID)
	}

	s.ID = raw.ID
	s.ImagePath = imagePath
	return nil
}

// transitionJSON accepts every historical transition shape at once.
type transitionJSON struct {
	ID   string `json:"transition_id"`
	From string `json:"from_screen"`
	To   string `json:"to_screen"`

	Action *struct {
		Type        string          `json:"type"`
		Description string          `json:"description"`
		Params      json.RawMessage `json:"params"`
	} `json:"action"`

	// Legacy flat fields, used when "action" is absent.
	ActionType   string          `json:"action_type"`
	Description  string          `json:"description"`
	ActionParams json.RawMessage `json:"actionParams"`

	Conditions *struct {
		IDs []string `json:"ids"`
	} `json:"conditions"`
	ConditionIDs      []string `json:"conditionIds"`
	LegacyConditionID string   `json:"condition_id"`

	Weight  *int `json:"weight"`
	Metrics *struct {
		Weight *int `json:"weight"`
	} `json:"metrics"`
}

// UnmarshalJSON normalizes a transition from any supported input shape.
// Missing ids are synthesized so each parallel edge stays addressable.
func (t *Transition) UnmarshalJSON(data []byte) error {
	var raw transitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := Transition{
		ID:     raw.ID,
		From:   raw.From,
		To:     raw.To,
		Weight: DefaultWeight,
	}

	if raw.Action != nil {
		out.Action.Type = raw.Action.Type
		out.Action.Description = raw.Action.Description
		out.Action.Params = decodeParams(raw.Action.Params)
	}
	if out.Action.Type == "" {
		out.Action.Type = raw.ActionType
	}
	if out.Action.Description == "" {
		out.Action.Description = raw.Description
	}
	if out.Action.Params == nil {
		out.Action.Params = decodeParams(raw.ActionParams)
	}
	if out.Action.Params == nil {
		out.Action.Params = map[string]string{}
	}

	// metrics.weight wins over the flat field when both are present.
	switch {
	case raw.Metrics != nil && raw.Metrics.Weight != nil:
		out.Weight = *raw.Metrics.Weight
	case raw.Weight != nil:
		out.Weight = *raw.Weight
	}
	if out.Weight < 1 {
		out.Weight = DefaultWeight
	}

	switch {
	case raw.Conditions != nil && len(raw.Conditions.IDs) > 0:
		out.ConditionIDs = append(out.ConditionIDs, raw.Conditions.IDs...)
	case len(raw.ConditionIDs) > 0:
		out.ConditionIDs = append(out.ConditionIDs, raw.ConditionIDs...)
	}
	if raw.LegacyConditionID != "" && !containsString(out.ConditionIDs, raw.LegacyConditionID) {
		out.ConditionIDs = append(out.ConditionIDs, raw.LegacyConditionID)
	}
	if out.ConditionIDs == nil {
		out.ConditionIDs = []string{}
	}

	if out.ID == "" {
		out.ID = NewTransitionID()
	}

	*t = out
	return nil
}

// decodeParams accepts params either as a string map or as a legacy
// ["key=value", ...] list. Malformed list entries are skipped.
func decodeParams(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}

	var asMap map[string]string
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return asMap
	}

	var asList []string
	if err := json.Unmarshal(raw, &asList); err != nil {
		return nil
	}

	params := make(map[string]string, len(asList))
	for _, item := range asList {
		key, value, ok := strings.Cut(item, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		params[key] = strings.TrimSpace(value)
	}
	return params
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
