// Package services holds the report lifecycle workflow and the statistics
// engine. Handlers translate HTTP to these calls and map the returned
// sentinel errors to status codes.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/cityfix/cityfix-api/api"
	"github.com/cityfix/cityfix-api/databases"
	"github.com/cityfix/cityfix-api/events"
	"github.com/cityfix/cityfix-api/models"
	"github.com/cityfix/cityfix-api/storage"
)

// go generate: mockery --name Reports

// Reports is the lifecycle API consumed by the HTTP handlers
type Reports interface {
	Create(ctx context.Context, req models.CreateReportRequest, actor models.Identity) (*models.ReportResponse, error)
	Update(ctx context.Context, id string, req models.UpdateReportRequest, actor models.Identity) (*models.ReportResponse, error)
	UpdateStatus(ctx context.Context, id string, req models.UpdateStatusRequest, actor models.Identity) (*models.ReportResponse, error)
	Remove(ctx context.Context, id string, actor models.Identity) error
	FindAll(ctx context.Context, filter models.ListFilter) ([]models.ReportResponse, error)
	FindByUser(ctx context.Context, userID string) ([]models.ReportResponse, error)
	FindOne(ctx context.Context, id string) (*models.ReportResponse, error)
}

// ReportService implements Reports on top of the mongo repositories
type ReportService struct {
	Reports    databases.ReportDatabase
	StatusLogs databases.StatusLogDatabase
	Users      databases.UserDatabase
	Tx         databases.Transactor
	Resolver   *storage.Resolver
	Events     events.Publisher

	now   func() time.Time
	newID func() string
}

// NewReportService wires the service with the wall clock and uuid ids
func NewReportService(reports databases.ReportDatabase, logs databases.StatusLogDatabase, users databases.UserDatabase,
	tx databases.Transactor, resolver *storage.Resolver, publisher events.Publisher) *ReportService {
	return &ReportService{
		Reports:    reports,
		StatusLogs: logs,
		Users:      users,
		Tx:         tx,
		Resolver:   resolver,
		Events:     publisher,
		now:        time.Now,
		newID:      func() string { return uuid.New().String() },
	}
}

// Create files a new report owned by actor. New reports always start pending.
func (s *ReportService) Create(ctx context.Context, req models.CreateReportRequest, actor models.Identity) (*models.ReportResponse, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	report := models.Report{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Location:    *req.Location,
		StreetName:  req.StreetName,
		Status:      models.StatusPending,
		CreatedBy:   actor.ID,
		MediaURLs:   copyRefs(req.MediaURLs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	if err := s.Reports.InsertOne(qctx, report); err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}
	zap.S().Infow("report created", "reportId", report.ID, "createdBy", actor.ID, "category", report.Category)
	s.publish(ctx, events.ReportCreated, report, actor)

	users, err := s.Users.FindByIDs(qctx, []string{report.CreatedBy})
	if err != nil {
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	res := s.toResponse(report, users)
	return &res, nil
}

// Update applies the provided content fields. Status is never touched here.
func (s *ReportService) Update(ctx context.Context, id string, req models.UpdateReportRequest, actor models.Identity) (*models.ReportResponse, error) {
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	report, err := s.findReport(qctx, id)
	if err != nil {
		return nil, err
	}
	if !canModify(report, actor) {
		return nil, fmt.Errorf("only the creator or an admin may update report %s: %w", id, models.ErrForbidden)
	}

	set := bson.M{}
	if req.Title != nil {
		report.Title = *req.Title
		set["title"] = report.Title
	}
	if req.Description != nil {
		report.Description = *req.Description
		set["description"] = report.Description
	}
	if req.Category != nil {
		report.Category = *req.Category
		set["category"] = report.Category
	}
	if req.Location != nil {
		report.Location = *req.Location
		set["location"] = report.Location
	}
	if req.ImageURL != nil {
		report.ImageURL = *req.ImageURL
		set["imageUrl"] = report.ImageURL
	}
	if req.StreetName != nil {
		report.StreetName = *req.StreetName
		set["streetName"] = report.StreetName
	}
	if req.MediaURLs != nil {
		report.MediaURLs = copyRefs(req.MediaURLs)
		set["mediaUrls"] = report.MediaURLs
	}
	report.UpdatedAt = s.now().UTC()
	set["updatedAt"] = report.UpdatedAt

	matched, err := s.Reports.UpdateOne(qctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}
	if matched == 0 {
		return nil, fmt.Errorf("report %s: %w", id, models.ErrNotFound)
	}
	s.publish(ctx, events.ReportUpdated, *report, actor)

	users, err := s.Users.FindByIDs(qctx, []string{report.CreatedBy})
	if err != nil {
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	res := s.toResponse(*report, users)
	return &res, nil
}

// UpdateStatus moves a report to a new status. The history entry and the
// status projection are written in one transaction.
func (s *ReportService) UpdateStatus(ctx context.Context, id string, req models.UpdateStatusRequest, actor models.Identity) (*models.ReportResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("only admins may change report status: %w", models.ErrForbidden)
	}
	if err := models.Validate(req); err != nil {
		return nil, err
	}

	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	report, err := s.findReport(qctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	entry := models.StatusLog{
		ID:        s.newID(),
		ReportID:  id,
		Status:    req.Status,
		Comment:   req.Comment,
		ChangedBy: actor.ID,
		CreatedAt: now,
	}
	err = s.Tx.WithTransaction(qctx, func(txCtx context.Context) error {
		if err := s.StatusLogs.InsertOne(txCtx, entry); err != nil {
			return fmt.Errorf("failed to insert status log: %w", err)
		}
		matched, err := s.Reports.UpdateOne(txCtx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": req.Status, "updatedAt": now}})
		if err != nil {
			return fmt.Errorf("failed to update report status: %w", err)
		}
		if matched == 0 {
			return fmt.Errorf("report %s: %w", id, models.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.S().Infow("report status changed", "reportId", id, "from", report.Status, "to", req.Status, "changedBy", actor.ID)
	report.Status = req.Status
	s.publish(ctx, events.ReportStatusChanged, *report, actor)

	return s.FindOne(ctx, id)
}

// Remove deletes a report together with its status history
func (s *ReportService) Remove(ctx context.Context, id string, actor models.Identity) error {
	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	report, err := s.findReport(qctx, id)
	if err != nil {
		return err
	}
	if !canModify(report, actor) {
		return fmt.Errorf("only the creator or an admin may delete report %s: %w", id, models.ErrForbidden)
	}

	err = s.Tx.WithTransaction(qctx, func(txCtx context.Context) error {
		if _, err := s.StatusLogs.DeleteByReportID(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete status logs: %w", err)
		}
		deleted, err := s.Reports.DeleteOne(txCtx, bson.M{"_id": id})
		if err != nil {
			return fmt.Errorf("failed to delete report: %w", err)
		}
		if deleted == 0 {
			return fmt.Errorf("report %s: %w", id, models.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	zap.S().Infow("report deleted", "reportId", id, "deletedBy", actor.ID)
	s.publish(ctx, events.ReportDeleted, *report, actor)
	return nil
}

// FindAll lists reports newest first, optionally narrowed by status and category
func (s *ReportService) FindAll(ctx context.Context, filter models.ListFilter) ([]models.ReportResponse, error) {
	query := bson.M{}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("unknown status %q: %w", filter.Status, models.ErrValidation)
		}
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		if !filter.Category.Valid() {
			return nil, fmt.Errorf("unknown category %q: %w", filter.Category, models.ErrValidation)
		}
		query["category"] = filter.Category
	}
	return s.list(ctx, query)
}

// FindByUser lists the reports created by userID, newest first
func (s *ReportService) FindByUser(ctx context.Context, userID string) ([]models.ReportResponse, error) {
	return s.list(ctx, bson.M{"createdBy": userID})
}

// FindOne returns a report with its full status history, oldest entry first
func (s *ReportService) FindOne(ctx context.Context, id string) (*models.ReportResponse, error) {
	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	report, err := s.findReport(qctx, id)
	if err != nil {
		return nil, err
	}
	logs, err := s.StatusLogs.FindByReportIDs(qctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("failed to get status logs: %w", err)
	}

	ids := []string{report.CreatedBy}
	for _, l := range logs {
		ids = append(ids, l.ChangedBy)
	}
	users, err := s.Users.FindByIDs(qctx, uniq(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	res := s.toResponse(*report, users)
	res.StatusLogs = make([]models.StatusLogResponse, 0, len(logs))
	for _, l := range logs {
		res.StatusLogs = append(res.StatusLogs, models.StatusLogResponse{
			ID:        l.ID,
			ReportID:  l.ReportID,
			Status:    l.Status,
			Comment:   l.Comment,
			ChangedBy: userInfo(users, l.ChangedBy),
			CreatedAt: l.CreatedAt,
		})
	}
	return &res, nil
}

func (s *ReportService) list(ctx context.Context, query bson.M) ([]models.ReportResponse, error) {
	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	reports, err := s.Reports.Find(qctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}

	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.CreatedBy)
	}
	users, err := s.Users.FindByIDs(qctx, uniq(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to load creators: %w", err)
	}

	out := make([]models.ReportResponse, 0, len(reports))
	for _, r := range reports {
		out = append(out, s.toResponse(r, users))
	}
	return out, nil
}

func (s *ReportService) findReport(ctx context.Context, id string) (*models.Report, error) {
	report, err := s.Reports.FindOne(ctx, bson.M{"_id": id})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("report %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return report, nil
}

// toResponse resolves media references to URLs. The stored report keeps the
// references.
func (s *ReportService) toResponse(r models.Report, users map[string]models.User) models.ReportResponse {
	return models.ReportResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		ImageURL:    s.Resolver.Resolve(r.ImageURL),
		MediaURLs:   s.Resolver.ResolveAll(r.MediaURLs),
		Location:    r.Location,
		StreetName:  r.StreetName,
		Status:      r.Status,
		CreatedBy:   userInfo(users, r.CreatedBy),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (s *ReportService) publish(ctx context.Context, eventType string, r models.Report, actor models.Identity) {
	if s.Events == nil {
		return
	}
	err := s.Events.Publish(ctx, events.ReportEvent{
		Type:       eventType,
		ReportID:   r.ID,
		Status:     r.Status,
		ActorID:    actor.ID,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		zap.S().Warnw("failed to publish report event", "type", eventType, "reportId", r.ID, "error", err)
	}
}

func canModify(r *models.Report, actor models.Identity) bool {
	return actor.IsAdmin() || (actor.ID != "" && r.CreatedBy == actor.ID)
}

// userInfo falls back to an id-only summary for users missing from the users collection
func userInfo(users map[string]models.User, id string) *models.UserInfo {
	if u, ok := users[id]; ok {
		return u.Info()
	}
	return &models.UserInfo{ID: id}
}

func copyRefs(refs []string) []string {
	out := make([]string, len(refs))
	copy(out, refs)
	return out
}

func uniq(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
