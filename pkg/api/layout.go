package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/screenflow/pkg/core/netselect"
	"github.com/matzehuels/screenflow/pkg/errors"
	"github.com/matzehuels/screenflow/pkg/render"
)

type networksResponse struct {
	Count  int   `json:"count"`
	Active int   `json:"active"`
	All    bool  `json:"all"`
	Valid  []int `json:"valid,omitempty"`
}

type selectNetworkRequest struct {
	Index int `json:"index"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := s.layoutOpts
	opts.Refresh = r.URL.Query().Get("refresh") == "true"

	res, err := s.engine.LayoutPassWithOptions(r.Context(), s.svc.Snapshot(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.applyNetworkCount(len(res.Components))
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNetworks(w http.ResponseWriter, r *http.Request) {
	res, err := s.engine.LayoutPassWithOptions(r.Context(), s.svc.Snapshot(), s.layoutOpts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.netselMu.Lock()
	s.netsel.Apply(len(res.Components))
	resp := networksResponse{
		Count:  s.netsel.Count(),
		Active: s.netsel.Active(),
		All:    s.netsel.All(),
		Valid:  s.netsel.Valid(),
	}
	s.netselMu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSelectNetwork(w http.ResponseWriter, r *http.Request) {
	var req selectNetworkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.engine.LayoutPassWithOptions(r.Context(), s.svc.Snapshot(), s.layoutOpts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.netselMu.Lock()
	s.netsel.Apply(len(res.Components))
	ok := s.netsel.Select(req.Index)
	resp := networksResponse{
		Count:  s.netsel.Count(),
		Active: s.netsel.Active(),
		All:    s.netsel.All(),
		Valid:  s.netsel.Valid(),
	}
	s.netselMu.Unlock()

	if !ok {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "network index %d out of range", req.Index))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) applyNetworkCount(count int) {
	s.netselMu.Lock()
	s.netsel.Apply(count)
	s.netselMu.Unlock()
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")

	network := netselect.FilterAll
	if raw := r.URL.Query().Get("network"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "network must be an integer"))
			return
		}
		network = n
	}
	opts := render.Options{
		Network: network,
		Labels:  r.URL.Query().Get("labels") == "true",
	}

	snap := s.svc.Snapshot()
	res, err := s.engine.LayoutPassWithOptions(r.Context(), snap, s.layoutOpts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if opts.Network != render.AllNetworks && (opts.Network < 0 || opts.Network >= len(res.Components)) {
		writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "network index %d out of range", opts.Network))
		return
	}

	data, err := s.renderer.Render(r.Context(), res, snap, format, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentType(format string) string {
	switch format {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatPNG:
		return "image/png"
	case render.FormatPDF:
		return "application/pdf"
	default:
		return "text/vnd.graphviz; charset=utf-8"
	}
}
