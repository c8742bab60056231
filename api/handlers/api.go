package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cityfix/cityfix-api/api"
	"github.com/cityfix/cityfix-api/api/scheduler"
	"github.com/cityfix/cityfix-api/config"
	"github.com/cityfix/cityfix-api/databases"
	"github.com/cityfix/cityfix-api/events"
	"github.com/cityfix/cityfix-api/services"
	"github.com/cityfix/cityfix-api/storage"
)

const (
	connectTimeout = 10 * time.Second
	metricsBuffer  = 1000
)

// App stores the router and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Reports   services.Reports
	Stats     services.Stats
	Storage   storage.Storage
	Resolver  *storage.Resolver
	Metrics   *api.MetricsCollector
	Events    events.Publisher
	Scheduler *scheduler.Scheduler

	client   databases.ClientHelper
	dbHelper databases.DatabaseHelper
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	if a.Metrics == nil {
		a.Metrics = api.NewMetricsCollector(metricsBuffer)
	}
	if a.Resolver == nil {
		a.Resolver = storage.NewResolver(a.Config.StorageType, a.Config.BaseURL)
	}
	authn := api.NewAuthenticator(a.Config.JWTSecret)

	r := mux.NewRouter()
	r.Use(api.TimeoutMiddleware(api.RequestTimeout))
	r.Use(a.Metrics.Middleware)

	report := Report{Service: a.Reports}
	upload := Upload{Storage: a.Storage, Resolver: a.Resolver, MaxFileSize: a.Config.MaxFileSize}
	stats := Stats{Service: a.Stats}
	metrics := Metrics{Collector: a.Metrics}

	// healthchex
	r.HandleFunc("/health", api.HealthCheckHandler).Methods("GET")

	if local, ok := a.Storage.(*storage.LocalStorage); ok {
		r.PathPrefix("/" + storage.UploadsPath + "/").Handler(
			http.StripPrefix("/"+storage.UploadsPath+"/", noDirListing(http.FileServer(http.Dir(local.Dir())))),
		).Methods("GET")
	}

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(authn.Middleware)

	// literal report paths must be registered before /reports/{id}
	apiCreate.HandleFunc("/reports/my-reports", report.MyReportsHandler).Methods("GET")
	apiCreate.HandleFunc("/reports/upload", upload.UploadFileHandler).Methods("POST")
	apiCreate.HandleFunc("/reports", report.CreateReportHandler).Methods("POST")
	apiCreate.HandleFunc("/reports", report.ReportsHandler).Methods("GET")
	apiCreate.HandleFunc("/reports/{id}/status", report.UpdateReportStatusHandler).Methods("PATCH")
	apiCreate.HandleFunc("/reports/{id}", report.ReportByIDHandler).Methods("GET")
	apiCreate.HandleFunc("/reports/{id}", report.UpdateReportHandler).Methods("PATCH")
	apiCreate.HandleFunc("/reports/{id}", report.DeleteReportHandler).Methods("DELETE")

	apiCreate.Handle("/stats/summary", api.RequireAdmin(http.HandlerFunc(stats.SummaryHandler))).Methods("GET")
	apiCreate.Handle("/stats/by-category", api.RequireAdmin(http.HandlerFunc(stats.ByCategoryHandler))).Methods("GET")
	apiCreate.Handle("/stats/by-status", api.RequireAdmin(http.HandlerFunc(stats.ByStatusHandler))).Methods("GET")
	apiCreate.Handle("/stats/by-date", api.RequireAdmin(http.HandlerFunc(stats.ByDateHandler))).Methods("GET")

	apiCreate.Handle("/metrics/summary", api.RequireAdmin(http.HandlerFunc(metrics.MetricsSummaryHandler))).Methods("GET")

	return r
}

// Initialize is invoked by main to connect with the database and create a router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		// if we fail to create a new database client, then kill the pod
		zap.S().With("error", err).Error("failed to create new client")
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err = client.Connect(ctx); err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With("error", err).Error("failed to connect to database")
		return err
	}
	a.client = client
	a.dbHelper = databases.NewDatabase(&a.Config, client)
	zap.S().Info("cityfix-api has connected to the database")

	reportDB := databases.NewReportDatabase(a.dbHelper)
	statusLogDB := databases.NewStatusLogDatabase(a.dbHelper)
	if err := reportDB.EnsureIndexes(ctx); err != nil {
		zap.S().Warnw("failed to ensure report indexes", "error", err)
	}
	if err := statusLogDB.EnsureIndexes(ctx); err != nil {
		zap.S().Warnw("failed to ensure status log indexes", "error", err)
	}

	a.Storage, err = storage.New(&a.Config)
	if err != nil {
		zap.S().With("error", err).Error("failed to set up storage")
		return err
	}
	a.Resolver = storage.NewResolver(a.Config.StorageType, a.Config.BaseURL)
	a.Events = events.New(&a.Config)

	a.Reports = services.NewReportService(
		reportDB,
		statusLogDB,
		databases.NewUserDatabase(a.dbHelper),
		databases.NewTransactor(a.dbHelper),
		a.Resolver,
		a.Events,
	)
	stats := services.NewStatsService(reportDB, statusLogDB)
	a.Stats = stats
	a.Metrics = api.NewMetricsCollector(metricsBuffer)

	var mailer scheduler.Mailer
	if m := scheduler.NewSendgridMailer(a.Config.SendgridAPIKey, a.Config.DigestFromEmail); m != nil {
		mailer = m
	}
	a.Scheduler = scheduler.NewScheduler(stats, databases.NewLockDatabase(a.dbHelper), mailer, &a.Config)
	if err := a.Scheduler.Start(); err != nil {
		zap.S().With("error", err).Error("failed to start scheduler")
		return err
	}

	// initialize api router
	a.initializeRoutes()
	return nil
}

// Shutdown stops background work and releases the database connection
func (a *App) Shutdown(ctx context.Context) error {
	if a.Scheduler != nil {
		a.Scheduler.Stop()
	}
	if a.Metrics != nil {
		a.Metrics.Stop()
	}

	var errs []error
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.client != nil {
		if err := a.client.Disconnect(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

// noDirListing hides directory indexes of the upload folder
func noDirListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
