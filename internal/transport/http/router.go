// Package httptransport assembles the public HTTP surface: webhook ingestion,
// health, and metrics. Business logic stays behind the handler's pipeline
// interface.
package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"idrelay/internal/notification/handler"
	"idrelay/pkg/platform/middleware/requestid"
)

// NewRouter wires all public endpoints.
func NewRouter(webhook *handler.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	webhook.Register(r)

	r.Get("/healthz", handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
