package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/emiliopalmerini/execdash/internal/ports"
)

// Limits caps the query parameters accepted by the API.
type Limits struct {
	MaxWindowDays int
	MaxChannels   int
}

// DefaultLimits are the caps used when none are configured.
var DefaultLimits = Limits{MaxWindowDays: 365, MaxChannels: 50}

type Server struct {
	svc    ports.ExecutiveAnalytics
	log    zerolog.Logger
	router chi.Router
	port   int
	limits Limits

	shutdownTimeout time.Duration
}

func NewServer(svc ports.ExecutiveAnalytics, port int, limits Limits, log zerolog.Logger) *Server {
	if limits.MaxWindowDays <= 0 {
		limits.MaxWindowDays = DefaultLimits.MaxWindowDays
	}
	if limits.MaxChannels <= 0 {
		limits.MaxChannels = DefaultLimits.MaxChannels
	}

	s := &Server{
		svc:    svc,
		log:    log,
		router: chi.NewRouter(),
		port:   port,
		limits: limits,

		shutdownTimeout: 10 * time.Second,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.log))
	s.router.Use(middleware.Recoverer)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api/executive", func(r chi.Router) {
		r.Get("/kpis", s.handleKPIs)
		r.Get("/revenue", s.handleRevenue)
		r.Get("/channels", s.handleChannels)
		r.Get("/marketing", s.handleMarketing)
		r.Get("/inventory", s.handleInventory)
		r.Get("/funnel", s.handleFunnel)
	})

	s.router.Get("/api/warehouse/status", s.handleWarehouseStatus)
}

// SetShutdownTimeout bounds how long Start waits for in-flight requests.
func (s *Server) SetShutdownTimeout(d time.Duration) {
	if d > 0 {
		s.shutdownTimeout = d
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info().Int("port", s.port).Msgf("starting server at http://localhost:%d", s.port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Error().Err(err).Msg("server shutdown")
		}
	}()

	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
