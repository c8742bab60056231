package api

import (
	"io"
	"net/http"
)

// HealthCheckHandler answers liveness probes without touching the database
func HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}
