package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/screenflow/pkg/graph"
)

func (s *Server) handleCreateTransition(w http.ResponseWriter, r *http.Request) {
	var t graph.Transition
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.svc.AddTransition(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTransitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.ListTransitions())
}

func (s *Server) handleGetTransition(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.GetTransition(chi.URLParam(r, "transitionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTransition(w http.ResponseWriter, r *http.Request) {
	var t graph.Transition
	if err := decodeJSON(r, &t); err != nil {
		writeError(w, r, err)
		return
	}

	updated, err := s.svc.UpdateTransition(r.Context(), chi.URLParam(r, "transitionID"), t)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransition(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteTransition(r.Context(), chi.URLParam(r, "transitionID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	target, err := s.svc.Trigger(chi.URLParam(r, "transitionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transition_id": chi.URLParam(r, "transitionID"),
		"target_screen": target,
	})
}
