package server

import (
	"net/http"

	"auto-collection-gen/internal/logger"
	"auto-collection-gen/internal/provider"
	"auto-collection-gen/internal/reporter"
	"auto-collection-gen/internal/spec"

	"github.com/gorilla/mux"
)

// Server exposes the spec, endpoint enumeration and generation operations.
type Server struct {
	loader *spec.Loader
	client provider.Client
	writer *reporter.Writer
	logger logger.Logger
	router *mux.Router
}

// New constructs a new Server with routes registered.
func New(loader *spec.Loader, client provider.Client, writer *reporter.Writer, log logger.Logger) *Server {
	s := &Server{
		loader: loader,
		client: client,
		writer: writer,
		logger: log,
		router: mux.NewRouter(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the http handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/api/v1/spec", s.handleSpec).Methods("GET")
	s.router.HandleFunc("/api/v1/endpoints", s.handleEndpoints).Methods("GET")
	s.router.HandleFunc("/api/v1/generate", s.handleGenerate).Methods("POST")
}
