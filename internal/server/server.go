package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/uktrade/export-wins-mi/internal/config"
	"github.com/uktrade/export-wins-mi/internal/database"
	"github.com/uktrade/export-wins-mi/internal/events"
	"github.com/uktrade/export-wins-mi/internal/modules/mi"
)

// Config holds server configuration
type Config struct {
	Port    int
	Log     zerolog.Logger
	DB      *database.DB
	Config  *config.Config
	DevMode bool
	MI      *mi.Handler
	Events  *events.Manager
}

// Server represents the HTTP server
type Server struct {
	router  *chi.Mux
	server  *http.Server
	log     zerolog.Logger
	db      *database.DB
	cfg     *config.Config
	mi      *mi.Handler
	wsFeed  *events.WSHandler
	metrics *requestMetrics
	started time.Time
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		log:     cfg.Log.With().Str("component", "server").Logger(),
		db:      cfg.DB,
		cfg:     cfg.Config,
		mi:      cfg.MI,
		wsFeed:  events.NewWSHandler(cfg.Events, cfg.Log),
		metrics: newRequestMetrics(),
		started: time.Now(),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Request metrics
	s.router.Use(s.metrics.middleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// Prometheus metrics
	s.router.Handle("/metrics", promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{}))

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// System
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.handleSystemStatus)
		})

		// Event feed
		r.Route("/events", func(r chi.Router) {
			r.Get("/ws", s.wsFeed.ServeHTTP)
		})

		// MI reports
		r.Route("/mi", func(r chi.Router) {
			r.Route("/sector_teams", func(r chi.Router) {
				r.Get("/", s.mi.HandleListSectorTeams)
				r.Get("/overview/", s.mi.HandleSectorTeamsOverview)
				r.Get("/{id}/", s.mi.HandleSectorTeamDetail)
				r.Get("/{id}/months/", s.mi.HandleSectorTeamMonths)
				r.Get("/{id}/campaigns/", s.mi.HandleSectorTeamCampaigns)
				r.Get("/{id}/top_non_hvcs/", s.mi.HandleSectorTeamTopNonHVC)
			})

			r.Route("/hvc_groups", func(r chi.Router) {
				r.Get("/", s.mi.HandleListHVCGroups)
				r.Get("/{id}/", s.mi.HandleHVCGroupDetail)
				r.Get("/{id}/months/", s.mi.HandleHVCGroupMonths)
				r.Get("/{id}/campaigns/", s.mi.HandleHVCGroupCampaigns)
			})

			r.Route("/os_regions", func(r chi.Router) {
				r.Get("/", s.mi.HandleListRegions)
				r.Get("/overview/", s.mi.HandleRegionsOverview)
				r.Get("/{id}/", s.mi.HandleRegionDetail)
				r.Get("/{id}/months/", s.mi.HandleRegionMonths)
				r.Get("/{id}/campaigns/", s.mi.HandleRegionCampaigns)
				r.Get("/{id}/top_non_hvcs/", s.mi.HandleRegionTopNonHVC)
			})

			r.Route("/countries", func(r chi.Router) {
				r.Get("/", s.mi.HandleListCountries)
				r.Get("/wins/", s.mi.HandleCountryWinsList)
				r.Get("/{id}/", s.mi.HandleCountryDetail)
			})

			r.Get("/parent_sectors/", s.mi.HandleListParentSectors)
			r.Get("/avg_time_to_confirm/", s.mi.HandleAvgTimeToConfirm)
		})
	})
}

// Router exposes the mux for tests
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
