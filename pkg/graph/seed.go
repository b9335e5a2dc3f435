package graph

import (
	"fmt"
	"strings"
)

// Seed returns the built-in sample graph used when no persisted snapshot
// exists yet: an automotive infotainment screen map with a dense home hub,
// settings subtrees, a navigation cluster, and a pair of dummy screens wired
// with parallel transitions for exercising multi-edge rendering.
//
// Transition ids are deterministic ("t_001", "t_002", ...) so repeated seeds
// produce identical graphs.
func Seed() *Graph {
	b := &seedBuilder{}

	screenIDs := []string{
		"home",
		"nav_menu",
		"search",
		"settings",
		"profile",
		"notifications",
		"help_center",
		"display_settings",
		"audio_settings",
		"connectivity_settings",
		"privacy_settings",
		"vehicle_settings",
		"media_player",
		"phone",
		"messages",
		"calendar",
		"camera",
		"navigation",
		"trip_planner",
		"charging_map",
		"climate_control",
		"energy_dashboard",
		"drive_modes",
		"confirmation",
		"error_modal",
		"onboarding",
		"wifi_setup",
		"bluetooth_pairing",
		"update_center",
		"diagnostics",
		"dummy_screen_1",
		"dummy_screen_2",
	}
	for _, id := range screenIDs {
		b.graph.Screens = append(b.graph.Screens, Screen{
			ID:        id,
			ImagePath: fmt.Sprintf("/mock-screens/%s.svg", id),
		})
	}

	for _, entry := range []string{
		"nav_menu", "search", "settings", "media_player", "phone",
		"navigation", "climate_control", "notifications", "profile",
	} {
		b.add("home", entry, ActionClick, "Open "+entry, 1, nil, nil)
		b.add(entry, "home", ActionHardwareButton, "Back to home", 1, nil, nil)
	}

	for _, section := range []string{
		"navigation", "trip_planner", "charging_map", "media_player", "phone",
		"messages", "calendar", "camera", "help_center", "update_center", "diagnostics",
	} {
		b.add("nav_menu", section, ActionClick, "Navigate to "+section, 1, nil, nil)
	}

	b.add("search", "navigation", ActionClick, "Open route result", 2, []string{"search_query_ready"}, []string{"result_index=0"})
	b.add("search", "phone", ActionClick, "Call contact from search", 2, []string{"contact_has_phone"}, []string{"contact_type=mobile"})
	b.add("search", "settings", ActionClick, "Open settings from search", 2, nil, []string{"entry=quick_setting"})
	b.add("nav_menu", "settings", ActionClick, "Navigate to settings", 1, nil, nil)

	for _, sub := range []string{"audio_settings", "connectivity_settings", "display_settings"} {
		b.add("settings", sub, ActionClick, "Open "+sub, 1, nil, nil)
		b.add(sub, "settings", ActionClick, "Back to settings", 1, nil, nil)
	}

	b.add("connectivity_settings", "wifi_setup", ActionClick, "Configure Wi-Fi", 1, []string{"wifi_available"}, []string{"source=connectivity"})
	b.add("connectivity_settings", "bluetooth_pairing", ActionClick, "Pair Bluetooth", 1, []string{"bluetooth_enabled"}, []string{"pair_mode=manual"})
	b.add("wifi_setup", "connectivity_settings", ActionClick, "Save Wi-Fi setup", 1, nil, nil)
	b.add("bluetooth_pairing", "connectivity_settings", ActionClick, "Finish Bluetooth pairing", 1, nil, nil)

	b.add("vehicle_settings", "drive_modes", ActionClick, "Set drive mode", 1, []string{"vehicle_in_park"}, []string{"mode_target=sport"})
	b.add("vehicle_settings", "energy_dashboard", ActionClick, "Open energy dashboard", 1, nil, nil)
	b.add("drive_modes", "vehicle_settings", ActionClick, "Back to vehicle settings", 1, nil, nil)

	b.add("media_player", "phone", ActionSwipe, "Swipe to phone widget", 1, nil, nil)
	b.add("phone", "media_player", ActionSwipe, "Swipe to media widget", 1, nil, nil)
	b.add("phone", "messages", ActionClick, "Open recent message", 1, nil, nil)
	b.add("messages", "phone", ActionHardwareButton, "Back to phone", 1, nil, nil)
	b.add("messages", "calendar", ActionClick, "Schedule from message", 1, nil, nil)
	b.add("calendar", "navigation", ActionClick, "Navigate to event", 2, []string{"event_has_location"}, []string{"route_mode=fastest"})

	b.add("navigation", "trip_planner", ActionClick, "Open planner", 1, nil, nil)
	b.add("trip_planner", "navigation", ActionClick, "Start navigation", 1, nil, nil)
	b.add("navigation", "charging_map", ActionClick, "Find charging station", 1, nil, nil)
	b.add("charging_map", "navigation", ActionClick, "Route to station", 1, nil, nil)
	b.add("charging_map", "energy_dashboard", ActionClick, "Show charging stats", 1, nil, nil)

	b.add("climate_control", "energy_dashboard", ActionSwipe, "Swipe to energy panel", 1, nil, nil)
	b.add("energy_dashboard", "climate_control", ActionSwipe, "Back to climate panel", 1, nil, nil)

	// Parallel transitions between the dummy screens exercise multi-edge
	// disambiguation: three edges each way with distinct actions.
	b.add("dummy_screen_1", "dummy_screen_2", ActionSwipe, "Go to dummy screen 2", 1, nil, nil)
	b.add("dummy_screen_1", "dummy_screen_2", ActionClick, "Open dummy screen 2 via shortcut", 2, []string{"shortcut_enabled"}, []string{"entry=shortcut_button"})
	b.add("dummy_screen_1", "dummy_screen_2", ActionHardwareButton, "Jump to dummy screen 2 via hardware key", 3, []string{"hardware_key_mapped"}, []string{"key=F1"})
	b.add("dummy_screen_2", "dummy_screen_1", ActionSwipe, "Back to dummy screen 1", 1, nil, nil)
	b.add("dummy_screen_2", "dummy_screen_1", ActionClick, "Return to dummy screen 1 from quick action", 2, []string{"quick_action_available"}, []string{"entry=quick_return"})
	b.add("dummy_screen_2", "dummy_screen_1", ActionHardwareButton, "Return to dummy screen 1 via hardware key", 3, []string{"hardware_key_mapped"}, []string{"key=F2"})

	b.add("onboarding", "wifi_setup", ActionClick, "Setup internet first", 1, nil, nil)
	b.add("onboarding", "home", ActionClick, "Skip onboarding", 1, nil, nil)
	b.add("update_center", "confirmation", ActionClick, "Confirm update", 1, nil, nil)
	b.add("confirmation", "update_center", ActionHardwareButton, "Back to update center", 1, nil, nil)
	b.add("diagnostics", "error_modal", ActionAuto, "Trigger issue screen", 3, []string{"fault_detected", "severity_high"}, []string{"modal=critical_fault"})
	b.add("error_modal", "diagnostics", ActionClick, "Dismiss issue panel", 1, nil, nil)
	b.add("error_modal", "help_center", ActionClick, "Open troubleshooting", 1, nil, nil)
	b.add("help_center", "home", ActionHardwareButton, "Return to home", 1, nil, nil)

	return &b.graph
}

// seedBuilder accumulates transitions with deterministic ids and the default
// seed conditions merged in.
type seedBuilder struct {
	graph Graph
	next  int
}

var seedConditionIDs = []string{"condition_id_1", "condition_id_2"}

func (b *seedBuilder) add(from, to, actionType, description string, weight int, conditionIDs, actionParams []string) {
	params := map[string]string{}
	for _, raw := range actionParams {
		key, value, ok := strings.Cut(raw, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		params[key] = strings.TrimSpace(value)
	}
	if _, ok := params["param1"]; !ok {
		params["param1"] = "value1"
	}
	if _, ok := params["param2"]; !ok {
		params["param2"] = "value2"
	}

	conditions := append([]string{}, seedConditionIDs...)
	for _, id := range conditionIDs {
		if !containsString(conditions, id) {
			conditions = append(conditions, id)
		}
	}

	b.next++
	b.graph.Transitions = append(b.graph.Transitions, Transition{
		ID:           fmt.Sprintf("t_%03d", b.next),
		From:         from,
		To:           to,
		ConditionIDs: conditions,
		Weight:       weight,
		Action: Action{
			Type:        actionType,
			Description: description,
			Params:      params,
		},
	})
}
