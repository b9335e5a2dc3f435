package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/matzehuels/screenflow/pkg/cache"
	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/graph"
	"github.com/matzehuels/screenflow/pkg/observability"
	"github.com/matzehuels/screenflow/pkg/paths"
)

type shortestPathResponse struct {
	FromScreen string     `json:"from_screen"`
	ToScreen   string     `json:"to_screen"`
	Path       paths.Path `json:"path"`
}

type simplePathsResponse struct {
	FromScreen string       `json:"from_screen"`
	ToScreen   string       `json:"to_screen"`
	Paths      []paths.Path `json:"paths"`
	Count      int          `json:"count"`
}

func (s *Server) handleShortestPath(w http.ResponseWriter, r *http.Request) {
	from, to, err := pathEndpoints(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	snap := s.svc.Snapshot()
	key, ok := s.pathCacheKey(snap, from, to, cache.PathKeyOpts{Simple: false})
	if ok {
		if data, hit, cerr := s.cache.Get(r.Context(), key); cerr == nil && hit {
			observability.Cache().OnCacheHit(r.Context(), "path")
			writeRawJSON(w, http.StatusOK, data)
			return
		}
		observability.Cache().OnCacheMiss(r.Context(), "path")
	}

	observability.Engine().OnPathQueryStart(r.Context(), from, to)
	start := time.Now()
	path, err := paths.NewFinder(snap).Shortest(from, to)
	observability.Engine().OnPathQueryComplete(r.Context(), from, to, 1, time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := shortestPathResponse{FromScreen: from, ToScreen: to, Path: path}
	s.writeAndCache(w, r, key, ok, resp)
}

func (s *Server) handleSimplePaths(w http.ResponseWriter, r *http.Request) {
	from, to, err := pathEndpoints(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	maxPaths := paths.DefaultMaxPaths
	if raw := r.URL.Query().Get("max_paths"); raw != "" {
		maxPaths, err = strconv.Atoi(raw)
		if err != nil || maxPaths < 1 {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "max_paths must be a positive integer"))
			return
		}
	}

	maxDepth := 0
	if raw := r.URL.Query().Get("max_depth"); raw != "" {
		maxDepth, err = strconv.Atoi(raw)
		if err != nil || maxDepth < 1 {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "max_depth must be a positive integer"))
			return
		}
	}

	snap := s.svc.Snapshot()
	key, ok := s.pathCacheKey(snap, from, to, cache.PathKeyOpts{Simple: true, MaxDepth: maxDepth, MaxPaths: maxPaths})
	if ok {
		if data, hit, cerr := s.cache.Get(r.Context(), key); cerr == nil && hit {
			observability.Cache().OnCacheHit(r.Context(), "path")
			writeRawJSON(w, http.StatusOK, data)
			return
		}
		observability.Cache().OnCacheMiss(r.Context(), "path")
	}

	observability.Engine().OnPathQueryStart(r.Context(), from, to)
	start := time.Now()
	found, err := paths.NewFinder(snap).Simple(from, to, maxDepth, maxPaths)
	observability.Engine().OnPathQueryComplete(r.Context(), from, to, len(found), time.Since(start), err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := simplePathsResponse{FromScreen: from, ToScreen: to, Paths: found, Count: len(found)}
	s.writeAndCache(w, r, key, ok, resp)
}

func pathEndpoints(r *http.Request) (from, to string, err error) {
	from = r.URL.Query().Get("from")
	to = r.URL.Query().Get("to")
	if from == "" || to == "" {
		return "", "", errors.New(errors.ErrCodeInvalidInput, "from and to query parameters are required")
	}
	return from, to, nil
}

// pathCacheKey derives the cache key for a path query against one snapshot.
// The bool is false when the snapshot cannot be hashed; callers then skip
// caching rather than fail the query.
func (s *Server) pathCacheKey(snap *graph.Graph, from, to string, opts cache.PathKeyOpts) (string, bool) {
	data, err := graph.Marshal(snap)
	if err != nil {
		return "", false
	}
	return s.keyer.PathKey(cache.Hash(data), from, to, opts), true
}

// writeAndCache responds with v and stores the encoded body for later hits.
func (s *Server) writeAndCache(w http.ResponseWriter, r *http.Request, key string, cacheable bool, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "encoding response"))
		return
	}
	if cacheable {
		if cerr := s.cache.Set(r.Context(), key, data, cache.TTLPath); cerr == nil {
			observability.Cache().OnCacheSet(r.Context(), "path", len(data))
		}
	}
	writeRawJSON(w, http.StatusOK, data)
}

func writeRawJSON(w http.ResponseWriter, status int, data []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
