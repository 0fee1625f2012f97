// Package router assembles the HTTP surface of the booking proxy.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/barkwell/frontdesk/internal/http/handlers"
	httpmiddleware "github.com/barkwell/frontdesk/internal/http/middleware"
	"github.com/barkwell/frontdesk/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	Bookings           *handlers.BookingsHandler
	Catalog            *handlers.CatalogHandler
	Roster             *handlers.RosterHandler
	Directory          *handlers.DirectoryHandler
	MetricsHandler     http.Handler
	StaffJWTSecret     string
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", handlers.Health)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Staff API
	r.Route("/api", func(api chi.Router) {
		api.Use(httpmiddleware.StaffJWT(cfg.StaffJWTSecret))

		if cfg.Bookings != nil {
			api.Post("/bookings", cfg.Bookings.Create)
			api.Post("/appointments/{appointmentID}/checkin", cfg.Bookings.CheckIn)
		}
		if cfg.Catalog != nil {
			api.Get("/services", cfg.Catalog.ListServices)
			api.Post("/catalog/refresh", cfg.Catalog.Refresh)
		}
		if cfg.Roster != nil {
			api.Get("/clients/search", cfg.Roster.Search)
			api.Post("/roster/refresh", cfg.Roster.Refresh)
		}
		if cfg.Directory != nil {
			api.Get("/locations", cfg.Directory.Locations)
			api.Get("/team-members", cfg.Directory.TeamMembers)
			api.Get("/bookings/recent", cfg.Directory.History)
		}
	})

	return r
}
