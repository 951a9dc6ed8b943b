package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"comboforge/internal/handlers"
	"comboforge/internal/metrics"
	"comboforge/internal/middleware"
)

func SetupRouter(r *chi.Mux, baseLogger *zap.Logger, comboHandler *handlers.ComboHandler) {

	r.Use(metrics.Middleware)

	// base middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)

	r.Use(middleware.LoggingContext(baseLogger))
	r.Use(middleware.Recoverer())
	// Long enough for the full provider fallback chain.
	r.Use(middleware.Timeout(90 * time.Second))
	r.Use(middleware.MaxBodySize(64 * 1024)) // 64 KB max body

	// routes
	r.Route("/v1", func(r chi.Router) {
		r.Post("/combos", comboHandler.Generate)
	})

	// health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", metrics.Handler())
}
