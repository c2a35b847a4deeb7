package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appLogger "github.com/FACorreiaa/go-tourism-content/app/logger"
	appMiddleware "github.com/FACorreiaa/go-tourism-content/app/middleware"
	_ "github.com/FACorreiaa/go-tourism-content/docs"
	"github.com/FACorreiaa/go-tourism-content/internal/api/content"
	"github.com/FACorreiaa/go-tourism-content/internal/api/publish"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ContentHandler *content.HandlerImpl
	PublishHandler *publish.HandlerImpl
	MetricsHandler http.Handler
	Logger         *slog.Logger
	AllowedOrigins []string
	// RequestTimeout must exceed the longest provider timeout.
	RequestTimeout time.Duration
}

// SetupRouter builds the full application router, server-wide middleware included.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewMux()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appLogger.StructuredLogger(cfg.Logger, "/ping", "/metrics"))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	r.Use(middleware.Compress(5, "application/json"))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1/content", func(r chi.Router) {
		r.Get("/options", cfg.ContentHandler.GetOptions)
		r.Get("/publications/{id}", cfg.PublishHandler.GetPublication)

		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.RequireJSON)
			r.Post("/generate", cfg.ContentHandler.GenerateContent)
			r.Post("/enhance", cfg.ContentHandler.EnhanceContent)
			r.Post("/publish", cfg.PublishHandler.Publish)
		})
	})

	return r
}
