// Package graph provides the normalized screen-transition graph model.
//
// This package defines the canonical wire format for ScreenFlow's graph data,
// used for JSON files, API requests and responses, caching, and document
// storage (every type carries both json and bson tags).
//
// # Core Types
//
//   - [Screen]: a node in the transition graph, one application view
//   - [Transition]: a directed, possibly-parallel edge between two screens
//   - [Condition]: a named guard referenced by transitions
//   - [Graph]: the full snapshot consumed by the layout engine
//
// # Normalization
//
// Graph data arrives in several historical shapes. Decoding accepts all of
// them and produces the single normalized form:
//
//   - action fields nested under "action" or flat ("action_type", "description")
//   - action params as a string map or a legacy ["key=value", ...] list
//   - weight under "metrics.weight" or flat "weight"
//   - condition ids under "conditions.ids", "conditionIds", or the legacy
//     singular "condition_id"
//   - screen images under "imagePath" or "media.imageUrl"
//
// Transitions without an id get one synthesized on decode, so parallel edges
// between the same screens stay individually addressable.
//
// # Serialization
//
// Output is deterministic: screens sort by id, transitions by id.
//
//	g, _ := graph.ReadFile("graph_data.json")
//	data, _ := graph.Marshal(g)
//	graph.WriteFile(g, "graph_data.json")
//
// # Concurrency
//
// Graph values are plain data. All functions are safe for concurrent reads
// but not concurrent writes.
package graph
