// Package api exposes the graph service, layout engine, path finder and
// renderer over HTTP. Routing uses chi; handlers translate service errors
// to status codes through the shared error-code mapping, so transport
// concerns stay out of the domain packages.
package api

import (
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/screenflow/pkg/buildinfo"
	"github.com/matzehuels/screenflow/pkg/cache"
	"github.com/matzehuels/screenflow/pkg/core/netselect"
	"github.com/matzehuels/screenflow/pkg/engine"
	"github.com/matzehuels/screenflow/pkg/render"
	"github.com/matzehuels/screenflow/pkg/service"
)

// Server wires the domain packages behind an HTTP API. The network
// selection state is server-side so every client shares one view of which
// component is in focus.
type Server struct {
	svc      *service.Service
	engine   *engine.Engine
	renderer *render.Renderer
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger

	// layoutOpts are the deployment-wide layout defaults; per-request
	// parameters (refresh) are layered on top.
	layoutOpts engine.Options

	netselMu sync.Mutex
	netsel   *netselect.State
}

// Config carries the collaborators a server needs. Cache, Keyer and Logger
// are optional and default like the engine's constructor does.
type Config struct {
	Service *service.Service
	Engine  *engine.Engine
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Layout  engine.Options
}

// NewServer builds the HTTP server around an existing service.
func NewServer(cfg Config) *Server {
	c := cfg.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	keyer := cfg.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	eng := cfg.Engine
	if eng == nil {
		eng = engine.New(c, keyer, logger)
	}

	return &Server{
		svc:        cfg.Service,
		engine:     eng,
		renderer:   render.NewRenderer(c, keyer, logger),
		cache:      c,
		keyer:      keyer,
		logger:     logger,
		layoutOpts: cfg.Layout,
		netsel:     netselect.New(),
	}
}

// Handler returns the fully routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(s.hooksMiddleware)

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)

	r.Route("/screens", func(r chi.Router) {
		r.Post("/", s.handleCreateScreen)
		r.Get("/", s.handleListScreens)
		r.Put("/rename", s.handleRenameScreen)
		r.Get("/{screenID}", s.handleGetScreen)
		r.Delete("/{screenID}", s.handleDeleteScreen)
	})

	r.Route("/transitions", func(r chi.Router) {
		r.Post("/", s.handleCreateTransition)
		r.Get("/", s.handleListTransitions)
		r.Get("/{transitionID}", s.handleGetTransition)
		r.Put("/{transitionID}", s.handleUpdateTransition)
		r.Delete("/{transitionID}", s.handleDeleteTransition)
		r.Post("/{transitionID}/trigger", s.handleTrigger)
	})

	r.Route("/path", func(r chi.Router) {
		r.Get("/shortest", s.handleShortestPath)
		r.Get("/simple", s.handleSimplePaths)
	})

	r.Route("/graph", func(r chi.Router) {
		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/clear", s.handleClear)
		r.Get("/stats", s.handleStats)
	})

	r.Route("/layout", func(r chi.Router) {
		r.Get("/", s.handleLayout)
		r.Get("/networks", s.handleNetworks)
		r.Post("/networks/select", s.handleSelectNetwork)
	})

	r.Get("/render/{format}", s.handleRender)

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": buildinfo.AppName,
		"version": buildinfo.Version(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.svc.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          "ok",
		"num_screens":     stats.Screens,
		"num_transitions": stats.Transitions,
	})
}
