package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clinicops/booking-api/internal/booking"
	httpmiddleware "github.com/clinicops/booking-api/internal/http/middleware"
	"github.com/clinicops/booking-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	BookingHandler     *booking.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimitRPS/RateLimitBurst guard the public form endpoint; zero RPS
	// disables the limiter.
	RateLimitRPS   float64
	RateLimitBurst int
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

	r.Get("/health", cfg.BookingHandler.HealthCheck)

	r.Group(func(public chi.Router) {
		if cfg.RateLimitRPS > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
		}
		public.Post("/book-appointment", cfg.BookingHandler.BookAppointment)
		// The original deployment served the form handler at the stage root.
		public.Post("/", cfg.BookingHandler.BookAppointment)
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
