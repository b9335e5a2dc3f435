package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type screenCreateRequest struct {
	ScreenID  string `json:"screen_id"`
	ImagePath string `json:"imagePath"`
}

type screenRenameRequest struct {
	OldScreenID string `json:"old_screen_id"`
	NewScreenID string `json:"new_screen_id"`
}

func (s *Server) handleCreateScreen(w http.ResponseWriter, r *http.Request) {
	var req screenCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	screen, err := s.svc.AddScreen(r.Context(), req.ScreenID, req.ImagePath)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, screen)
}

func (s *Server) handleListScreens(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.ListScreens())
}

func (s *Server) handleGetScreen(w http.ResponseWriter, r *http.Request) {
	screen, err := s.svc.GetScreen(chi.URLParam(r, "screenID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

func (s *Server) handleRenameScreen(w http.ResponseWriter, r *http.Request) {
	var req screenRenameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	screen, err := s.svc.RenameScreen(r.Context(), req.OldScreenID, req.NewScreenID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

func (s *Server) handleDeleteScreen(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteScreen(r.Context(), chi.URLParam(r, "screenID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
