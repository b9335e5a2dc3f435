package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/screenflow/pkg/graph"
)

func TestFileStoreSeedFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	g, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(g.Screens) == 0 {
		t.Fatal("missing file should serve the seed graph")
	}

	// The seed is served, not persisted.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Load should not create the graph file")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "graph.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	g := &graph.Graph{
		Screens: []graph.Screen{
			{ID: "a", ImagePath: "a.png"},
			{ID: "b", ImagePath: "b.png"},
		},
		Transitions: []graph.Transition{
			{ID: "t1", From: "a", To: "b", Weight: 2},
		},
	}
	if err := s.Save(ctx, g); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Screens) != 2 || len(got.Transitions) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Transitions[0].Weight != 2 {
		t.Errorf("Weight = %d, want 2", got.Transitions[0].Weight)
	}
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	first := &graph.Graph{Screens: []graph.Screen{{ID: "a", ImagePath: "a.png"}}}
	second := &graph.Graph{Screens: []graph.Screen{{ID: "b", ImagePath: "b.png"}}}
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Screens) != 1 || got.Screens[0].ID != "b" {
		t.Errorf("Load after overwrite = %+v", got.Screens)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("stray files after save: %v", names)
	}
}

func TestFileStoreEmptyPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Fatal("empty path accepted")
	}
}
