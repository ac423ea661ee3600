package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apiv1 "tabpulse/pkg/contracts/api/v1"
)

// HealthHandler reports process liveness and readiness.
type HealthHandler struct {
	version   string
	startedAt time.Time
}

// NewHealthHandler creates a health handler for the given build version.
func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startedAt: time.Now(),
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.Health)
	r.Get("/ready", h.Ready)
	return r
}

// Health handles GET /api/health.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, apiv1.HealthResponse{
		Status:        "healthy",
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startedAt).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /api/health/ready. The service holds all state in
// memory, so readiness follows liveness.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, apiv1.ReadyResponse{Ready: true})
}
