package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"github.com/slpstats/replayd/internal/replay"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	router  *chi.Mux
	replays replay.Reconstructor
	log     *logrus.Logger
}

// Config holds server configuration.
type Config struct {
	AllowedOrigins []string
}

// NewServer creates a new HTTP server around the reconstruction service.
func NewServer(replays replay.Reconstructor, log *logrus.Logger, cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		replays: replays,
		log:     log,
	}
	s.setupRoutes(cfg)
	return s
}

func (s *Server) setupRoutes(cfg Config) {
	r := s.router

	// Middleware
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Post("/replay", s.handleReplay)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
