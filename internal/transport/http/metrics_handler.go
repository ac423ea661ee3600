package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsHandler exposes the prometheus registry at GET /metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
