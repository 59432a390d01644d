package api

import (
	"delivery-time-service/internal/api/handlers"
	"delivery-time-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(svc handlers.Estimator, model ports.DeliveryTimeModel, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	mux := http.NewServeMux()

	pageHandler := &handlers.PageHandler{Service: svc, Model: model}
	estimateHandler := &handlers.EstimateHandler{Service: svc, Model: model}

	mux.HandleFunc("/", pageHandler.Form)
	mux.HandleFunc("/about", pageHandler.About)
	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/v1/estimates", estimateHandler.Estimates)
	mux.HandleFunc("/api/v1/features", estimateHandler.Features)
	mux.Handle("/metrics", promhttp.Handler())

	return loggingMiddleware(logger, mux)
}
