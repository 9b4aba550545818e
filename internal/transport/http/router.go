package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/scholar-notify/internal/application/appnotification"
	"github.com/scholar-notify/internal/application/deliveryrecord"
	"github.com/scholar-notify/internal/config"
	"github.com/scholar-notify/internal/transport/http/handler"
	appmiddleware "github.com/scholar-notify/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds the application services and health probes the router serves.
type Deps struct {
	Feed    appnotification.Service
	Records deliveryrecord.Service
	Checks  map[string]func() bool
}

// NewRouter builds and returns the application router. ctx bounds background
// work owned by the router, such as rate-limiter cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Applied to the endpoints that write to the feed.
	writeRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)

	healthH := handler.NewHealthHandler(deps.Checks)
	feedH := handler.NewAppNotificationHandler(deps.Feed)
	recordH := handler.NewDeliveryRecordHandler(deps.Records)

	r.Get("/health", healthH.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/app-notifications", func(r chi.Router) {
			r.Get("/user/{userId}", feedH.ListByUser)
			r.With(writeRL.Limit).Post("/", feedH.Create)
			r.With(writeRL.Limit).Post("/read", feedH.MarkMultipleRead)
			r.Post("/{id}/read", feedH.MarkRead)
			r.Delete("/{id}", feedH.Delete)
		})
		r.Get("/notifications/user/{userId}", recordH.ListByUser)
	})

	return r
}
