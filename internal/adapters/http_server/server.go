package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const DefaultHandlerTimeout = 15 * time.Second

type Server struct{ mux *chi.Mux }

// New builds a router with the shared middleware stack; every route added
// afterwards runs behind it.
func New() *Server {
	m := chi.NewRouter()

	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(DefaultHandlerTimeout))
	m.Use(Observe(log.Logger))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Router exposes the router for adapters that register their own routes.
func (s *Server) Router() chi.Router { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
