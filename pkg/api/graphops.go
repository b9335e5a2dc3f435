package api

import (
	"net/http"

	"github.com/matzehuels/screenflow/pkg/graph"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Export())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var g graph.Graph
	if err := decodeJSON(r, &g); err != nil {
		writeError(w, r, err)
		return
	}

	screens, transitions, err := s.svc.Import(r.Context(), &g)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{
		"imported_screens":     screens,
		"imported_transitions": transitions,
	})
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Clear(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Stats())
}
