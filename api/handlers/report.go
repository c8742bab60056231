package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cityfix/cityfix-api/config"
	"github.com/cityfix/cityfix-api/models"
	"github.com/cityfix/cityfix-api/services"
)

// Report exported for testing purposes
type Report struct {
	Service services.Reports
}

// CreateReportHandler files a new report for the caller
func (h Report) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	var req models.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	res, err := h.Service.Create(r.Context(), req, caller)
	if err != nil {
		writeError("failed to create report", w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// ReportsHandler lists every report, optionally filtered by status and category
func (h Report) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.ListFilter{
		Status:   models.Status(r.URL.Query().Get("status")),
		Category: models.Category(r.URL.Query().Get("category")),
	}

	res, err := h.Service.FindAll(r.Context(), filter)
	if err != nil {
		writeError("failed to get reports", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// MyReportsHandler lists the caller's own reports
func (h Report) MyReportsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	res, err := h.Service.FindByUser(r.Context(), caller.ID)
	if err != nil {
		writeError("failed to get reports", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ReportByIDHandler returns a report with its status history
func (h Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["id"]

	res, err := h.Service.FindOne(r.Context(), reportID)
	if err != nil {
		writeError("failed to get report by ID", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateReportHandler applies a partial update. A status key in the body is ignored.
func (h Report) UpdateReportHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	reportID := mux.Vars(r)["id"]

	var req models.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	res, err := h.Service.Update(r.Context(), reportID, req, caller)
	if err != nil {
		writeError("failed to update report", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// UpdateReportStatusHandler moves a report to a new status, admins only
func (h Report) UpdateReportStatusHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	reportID := mux.Vars(r)["id"]

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request", http.StatusBadRequest, w, err)
		return
	}

	res, err := h.Service.UpdateStatus(r.Context(), reportID, req, caller)
	if err != nil {
		writeError("failed to update report status", w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// DeleteReportHandler removes a report and its history
func (h Report) DeleteReportHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	reportID := mux.Vars(r)["id"]

	if err := h.Service.Remove(r.Context(), reportID, caller); err != nil {
		writeError("failed to delete report", w, err)
		return
	}
	zap.S().Debugf("report_id: %v deleted", reportID)
	w.WriteHeader(http.StatusNoContent)
}
