package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// Marshal converts a graph to indented JSON bytes.
// Screens and transitions are sorted by id for deterministic output.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes and normalizes a graph from JSON bytes.
func Unmarshal(data []byte) (*Graph, error) {
	return readGraphFrom(bytes.NewReader(data))
}

// WriteFile writes a graph to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// Write writes a graph as JSON to an io.Writer.
func Write(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadFile reads a JSON file and returns the normalized graph.
func ReadFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readGraphFrom(f)
}

// Read decodes a JSON graph from an io.Reader.
func Read(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	out := Sorted(g)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if g.Screens == nil {
		g.Screens = []Screen{}
	}
	if g.Transitions == nil {
		g.Transitions = []Transition{}
	}
	return &g, nil
}

// Sorted returns a copy of g with screens and transitions sorted by id.
// Input order is preserved in g itself; sorting happens only at the
// serialization boundary so output is deterministic.
func Sorted(g *Graph) Graph {
	out := Graph{
		Screens:     slices.Clone(g.Screens),
		Transitions: slices.Clone(g.Transitions),
		Conditions:  slices.Clone(g.Conditions),
	}
	slices.SortFunc(out.Screens, func(a, b Screen) int {
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortFunc(out.Transitions, func(a, b Transition) int {
		return strings.Compare(a.ID, b.ID)
	})
	slices.SortFunc(out.Conditions, func(a, b Condition) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}
