package handlers

import (
	"net/http"

	"github.com/cityfix/cityfix-api/models"
	"github.com/cityfix/cityfix-api/services"
)

// Stats exported for testing purposes
type Stats struct {
	Service services.Stats
}

// SummaryHandler returns the dashboard headline numbers
func (s Stats) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.Service.Summary(r.Context())
	if err != nil {
		writeError("failed to get summary", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ByCategoryHandler returns the per-category counts, highest first
func (s Stats) ByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.Service.ByCategory(r.Context())
	if err != nil {
		writeError("failed to get category stats", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ByStatusHandler returns the per-status counts
func (s Stats) ByStatusHandler(w http.ResponseWriter, r *http.Request) {
	res, err := s.Service.ByStatus(r.Context())
	if err != nil {
		writeError("failed to get status stats", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ByDateHandler returns the time series for ?period=day|week|month, day by default
func (s Stats) ByDateHandler(w http.ResponseWriter, r *http.Request) {
	period := models.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = models.PeriodDay
	}

	res, err := s.Service.ByDate(r.Context(), period)
	if err != nil {
		writeError("failed to get date stats", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
