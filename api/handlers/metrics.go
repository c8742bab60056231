package handlers

import (
	"net/http"

	"github.com/cityfix/cityfix-api/api"
)

// Metrics exported for testing purposes
type Metrics struct {
	Collector *api.MetricsCollector
}

// MetricsSummaryHandler returns the request metrics gathered since startup
func (m Metrics) MetricsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.Collector.Summary())
}
