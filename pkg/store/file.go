package store

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/graph"
)

// FileStore keeps the graph in a single JSON file. Writes go through a
// temp file and rename, so a crash mid-save never leaves a torn graph.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a file-backed store at the given path. The parent
// directory is created if needed. The file itself is created lazily on
// the first Save; until then Load serves the seed graph.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "graph file path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStore, err, "create graph dir")
		}
	}
	return &FileStore{path: path}, nil
}

// Load reads the graph from disk, or returns the seed graph when the file
// does not exist yet.
func (s *FileStore) Load(ctx context.Context) (*graph.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := graph.ReadFile(s.path)
	if stderrors.Is(err, fs.ErrNotExist) {
		return graph.Seed(), nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStore, err, "read graph file %s", s.path)
	}
	return g, nil
}

// Save writes the complete graph atomically.
func (s *FileStore) Save(ctx context.Context, g *graph.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := graph.Marshal(g)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidGraph, err, "serialize graph")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".graph-*.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "create temp graph file")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStore, err, "write temp graph file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStore, err, "close temp graph file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(errors.ErrCodeStore, err, "replace graph file %s", s.path)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close(ctx context.Context) error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
