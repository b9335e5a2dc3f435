package graph

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestTransitionDecodeModernShape(t *testing.T) {
	data := `{
		"transition_id": "t_1",
		"from_screen": "home",
		"to_screen": "settings",
		"conditionIds": ["c1"],
		"weight": 2,
		"action": {"type": "click", "description": "Open settings", "params": {"entry": "icon"}}
	}`

	var tr Transition
	if err := json.Unmarshal([]byte(data), &tr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if tr.ID != "t_1" || tr.From != "home" || tr.To != "settings" {
		t.Errorf("identity fields wrong: %+v", tr)
	}
	if tr.Weight != 2 {
		t.Errorf("weight = %d, want 2", tr.Weight)
	}
	if tr.Action.Type != ActionClick || tr.Action.Description != "Open settings" {
		t.Errorf("action wrong: %+v", tr.Action)
	}
	if tr.Action.Params["entry"] != "icon" {
		t.Errorf("params wrong: %+v", tr.Action.Params)
	}
	if len(tr.ConditionIDs) != 1 || tr.ConditionIDs[0] != "c1" {
		t.Errorf("conditions wrong: %+v", tr.ConditionIDs)
	}
}

func TestTransitionDecodeLegacyFlatShape(t *testing.T) {
	data := `{
		"from_screen": "a",
		"to_screen": "b",
		"action_type": "swipe",
		"description": "Swipe over",
		"actionParams": ["dir=left", "malformed", " = skipped", "speed = fast"],
		"condition_id": "legacy_cond"
	}`

	var tr Transition
	if err := json.Unmarshal([]byte(data), &tr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if tr.Action.Type != ActionSwipe || tr.Action.Description != "Swipe over" {
		t.Errorf("legacy action fields not picked up: %+v", tr.Action)
	}
	if tr.Action.Params["dir"] != "left" || tr.Action.Params["speed"] != "fast" {
		t.Errorf("params list not normalized: %+v", tr.Action.Params)
	}
	if len(tr.Action.Params) != 2 {
		t.Errorf("malformed entries should be skipped, got %+v", tr.Action.Params)
	}
	if len(tr.ConditionIDs) != 1 || tr.ConditionIDs[0] != "legacy_cond" {
		t.Errorf("legacy condition_id not merged: %+v", tr.ConditionIDs)
	}
	if tr.Weight != DefaultWeight {
		t.Errorf("missing weight should default to %d, got %d", DefaultWeight, tr.Weight)
	}
	if tr.ID == "" {
		t.Error("missing transition_id should be synthesized")
	}
}

func TestTransitionDecodeMetricsWeightWins(t *testing.T) {
	data := `{"from_screen": "a", "to_screen": "b", "weight": 5,
		"metrics": {"weight": 3}, "action": {"type": "auto", "description": "x"}}`

	var tr Transition
	if err := json.Unmarshal([]byte(data), &tr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tr.Weight != 3 {
		t.Errorf("metrics.weight should win, got %d", tr.Weight)
	}
}

func TestTransitionDecodeMergesLegacyConditionID(t *testing.T) {
	data := `{"from_screen": "a", "to_screen": "b",
		"conditions": {"ids": ["c1", "c2"]}, "condition_id": "c2",
		"action": {"type": "click", "description": "x"}}`

	var tr Transition
	if err := json.Unmarshal([]byte(data), &tr); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(tr.ConditionIDs) != 2 {
		t.Errorf("duplicate legacy condition_id should not be re-added: %+v", tr.ConditionIDs)
	}
}

func TestScreenDecodeMediaFallback(t *testing.T) {
	var s Screen
	if err := json.Unmarshal([]byte(`{"screen_id": "home", "media": {"imageUrl": "/img/home.png"}}`), &s); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if s.ImagePath != "/img/home.png" {
		t.Errorf("media.imageUrl fallback not applied: %q", s.ImagePath)
	}
}

func TestScreenDecodeErrors(t *testing.T) {
	var s Screen
	if err := json.Unmarshal([]byte(`{"imagePath": "/x.svg"}`), &s); err == nil {
		t.Error("missing screen_id should be an error")
	}
	if err := json.Unmarshal([]byte(`{"screen_id": "home"}`), &s); err == nil {
		t.Error("missing imagePath should be an error")
	}
	if err := json.Unmarshal([]byte(`"just_a_string"`), &s); err == nil {
		t.Error("bare string screen entries should be rejected")
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Home Screen":  "home_screen",
		"nav-menu!":    "nav_menu",
		"___":          "screen",
		"":             "screen",
		"media_player": "media_player",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewTransitionIDUnique(t *testing.T) {
	a := NewTransitionID()
	b := NewTransitionID()
	if a == b {
		t.Error("synthesized ids must be unique")
	}
	if !strings.HasPrefix(a, "t_") {
		t.Errorf("id %q missing t_ prefix", a)
	}
}
