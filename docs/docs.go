// Package docs CityFix API.
//
// Documentation of the CityFix report and statistics API.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//     Host: cityfix-api.herokuapp.com
//
//     Consumes:
//     - application/json
//     - multipart/form-data
//
//     Produces:
//     - application/json
//
//     Security:
//     - bearer
//
//    SecurityDefinitions:
//    bearer:
//      type: apiKey
//      name: Authorization
//      in: header
//
// swagger:meta
package docs

import (
	"github.com/cityfix/cityfix-api/api"
	"github.com/cityfix/cityfix-api/models"
)

// swagger:route GET /health health healthEndpointID
// Liveness of the web service api.
// responses:
//   200: healthResponse

// true means it is alive
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body struct {
		Alive bool `json:"alive"`
	}
}

// swagger:route POST /api/v1/reports reports createReport
// Files a new report. New reports always start pending.
// responses:
//   201: reportResponse
//   400: errorResponse
//   401: errorResponse

// swagger:parameters createReport
type createReportParamsWrapper struct {
	// in:body
	Body models.CreateReportRequest
}

// swagger:route GET /api/v1/reports reports listReports
// Lists every report, newest first.
// responses:
//   200: reportsResponse
//   400: errorResponse

// swagger:parameters listReports
type listReportsParamsWrapper struct {
	// in:query
	Status string `json:"status"`
	// in:query
	Category string `json:"category"`
}

// swagger:route GET /api/v1/reports/my-reports reports myReports
// Lists the caller's reports, newest first.
// responses:
//   200: reportsResponse

// swagger:route GET /api/v1/reports/{id} reports reportByID
// Gets a single report with its status history.
// responses:
//   200: reportResponse
//   404: errorResponse

// swagger:route PATCH /api/v1/reports/{id} reports updateReport
// Partially updates a report. Only the author or an admin may do this.
// responses:
//   200: reportResponse
//   403: errorResponse
//   404: errorResponse

// swagger:parameters updateReport
type updateReportParamsWrapper struct {
	// in:path
	ID string `json:"id"`
	// in:body
	Body models.UpdateReportRequest
}

// swagger:route PATCH /api/v1/reports/{id}/status reports updateReportStatus
// Moves a report to a new status and appends a history entry. Admins only.
// responses:
//   200: reportResponse
//   403: errorResponse
//   404: errorResponse

// swagger:parameters updateReportStatus
type updateStatusParamsWrapper struct {
	// in:path
	ID string `json:"id"`
	// in:body
	Body models.UpdateStatusRequest
}

// swagger:route DELETE /api/v1/reports/{id} reports deleteReport
// Deletes a report and its history.
// responses:
//   204: description: deleted
//   403: errorResponse
//   404: errorResponse

// swagger:route POST /api/v1/reports/upload reports uploadMedia
// Stores one image or video from the multipart field "file".
// responses:
//   201: uploadResponse
//   413: errorResponse
//   415: errorResponse

// swagger:route GET /api/v1/stats/summary stats statsSummary
// Headline dashboard numbers. Admins only.
// responses:
//   200: summaryResponse

// swagger:route GET /api/v1/stats/by-category stats statsByCategory
// Counts per category, highest first. Admins only.
// responses:
//   200: categoryResponse

// swagger:route GET /api/v1/stats/by-status stats statsByStatus
// Counts per status. Admins only.
// responses:
//   200: statusResponse

// swagger:route GET /api/v1/stats/by-date stats statsByDate
// Time series of report creation. Admins only.
// responses:
//   200: dateResponse
//   400: errorResponse

// swagger:parameters statsByDate
type statsByDateParamsWrapper struct {
	// day, week or month
	// in:query
	Period string `json:"period"`
}

// swagger:route GET /api/v1/metrics/summary metrics metricsSummary
// Request latency and error metrics since startup. Admins only.
// responses:
//   200: metricsResponse

// swagger:response reportResponse
type reportResponseWrapper struct {
	// in:body
	Body models.ReportResponse
}

// swagger:response reportsResponse
type reportsResponseWrapper struct {
	// in:body
	Body []models.ReportResponse
}

// swagger:response uploadResponse
type uploadResponseWrapper struct {
	// in:body
	Body models.UploadResponse
}

// swagger:response summaryResponse
type summaryResponseWrapper struct {
	// in:body
	Body models.SummaryStats
}

// swagger:response categoryResponse
type categoryResponseWrapper struct {
	// in:body
	Body []models.CategoryCount
}

// swagger:response statusResponse
type statusResponseWrapper struct {
	// in:body
	Body []models.StatusCount
}

// swagger:response dateResponse
type dateResponseWrapper struct {
	// in:body
	Body models.DateStats
}

// swagger:response metricsResponse
type metricsResponseWrapper struct {
	// in:body
	Body api.MetricsSummary
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
