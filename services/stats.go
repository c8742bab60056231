package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cityfix/cityfix-api/api"
	"github.com/cityfix/cityfix-api/databases"
	"github.com/cityfix/cityfix-api/models"
)

// go generate: mockery --name Stats

// Stats is the dashboard statistics API. Every call recomputes from the
// collections, nothing is cached.
type Stats interface {
	Summary(ctx context.Context) (*models.SummaryStats, error)
	ByCategory(ctx context.Context) ([]models.CategoryCount, error)
	ByStatus(ctx context.Context) ([]models.StatusCount, error)
	ByDate(ctx context.Context, period models.Period) (*models.DateStats, error)
}

// StatsService implements Stats
type StatsService struct {
	Reports    databases.ReportDatabase
	StatusLogs databases.StatusLogDatabase

	now func() time.Time
}

// NewStatsService returns a StatsService using the wall clock
func NewStatsService(reports databases.ReportDatabase, logs databases.StatusLogDatabase) *StatsService {
	return &StatsService{Reports: reports, StatusLogs: logs, now: time.Now}
}

// Summary computes the headline numbers of the dashboard
func (s *StatsService) Summary(ctx context.Context) (*models.SummaryStats, error) {
	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	total, err := s.Reports.CountDocuments(qctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	counts, err := s.statusCounts(qctx)
	if err != nil {
		return nil, err
	}

	summary := &models.SummaryStats{
		TotalReports: total,
		ByStatus: models.StatusCounts{
			Pending:    counts[models.StatusPending],
			InProgress: counts[models.StatusInProgress],
			Resolved:   counts[models.StatusResolved],
			Rejected:   counts[models.StatusRejected],
		},
	}
	if total > 0 {
		summary.ResolutionRate = float64(summary.ByStatus.Resolved) / float64(total) * 100
	}

	resolution, firstResponse, err := s.timeMetrics(qctx)
	if err != nil {
		return nil, err
	}
	summary.AvgResolutionTimeHours = average(resolution)
	summary.MedianResolutionTimeHours = median(resolution)
	summary.AvgFirstResponseTimeHours = average(firstResponse)
	summary.MedianFirstResponseTimeHours = median(firstResponse)

	return summary, nil
}

// ByCategory counts every category, highest count first. Ties keep
// declaration order.
func (s *StatsService) ByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	groups, err := s.Reports.CountByField(qctx, "category")
	if err != nil {
		return nil, fmt.Errorf("failed to count reports by category: %w", err)
	}
	counts := make(map[models.Category]int64, len(groups))
	for _, g := range groups {
		counts[models.Category(g.Key)] = g.Count
	}

	out := make([]models.CategoryCount, 0, len(models.Categories))
	for _, c := range models.Categories {
		out = append(out, models.CategoryCount{Category: c, Count: counts[c]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out, nil
}

// ByStatus counts every status in declaration order
func (s *StatsService) ByStatus(ctx context.Context) ([]models.StatusCount, error) {
	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	counts, err := s.statusCounts(qctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.StatusCount, 0, len(models.Statuses))
	for _, st := range models.Statuses {
		out = append(out, models.StatusCount{Status: st, Count: counts[st]})
	}
	return out, nil
}

// ByDate buckets the reports created inside the period's window. Buckets
// without reports are omitted.
func (s *StatsService) ByDate(ctx context.Context, period models.Period) (*models.DateStats, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("unknown period %q: %w", period, models.ErrValidation)
	}

	now := s.now().UTC()
	since := windowStart(period, now)

	qctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()

	reports, err := s.Reports.Find(qctx, bson.M{"createdAt": bson.M{"$gte": since, "$lte": now}})
	if err != nil {
		return nil, fmt.Errorf("failed to get reports: %w", err)
	}

	buckets := map[string]*models.DateBucket{}
	for _, r := range reports {
		created := r.CreatedAt.UTC()
		if created.Before(since) || created.After(now) {
			continue
		}
		key := bucketKey(period, created)
		b, ok := buckets[key]
		if !ok {
			b = &models.DateBucket{Date: key, ByStatus: emptyStatusMap()}
			buckets[key] = b
		}
		b.Total++
		b.ByStatus[r.Status]++
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	stats := &models.DateStats{Period: period, Data: make([]models.DateBucket, 0, len(keys))}
	for _, k := range keys {
		stats.Data = append(stats.Data, *buckets[k])
	}
	return stats, nil
}

func (s *StatsService) statusCounts(ctx context.Context) (map[models.Status]int64, error) {
	groups, err := s.Reports.CountByField(ctx, "status")
	if err != nil {
		return nil, fmt.Errorf("failed to count reports by status: %w", err)
	}
	counts := make(map[models.Status]int64, len(groups))
	for _, g := range groups {
		counts[models.Status(g.Key)] = g.Count
	}
	return counts, nil
}

// timeMetrics returns resolution and first-response durations in hours for
// every resolved report. Reports without the relevant log entry are skipped.
func (s *StatsService) timeMetrics(ctx context.Context) ([]float64, []float64, error) {
	resolved, err := s.Reports.Find(ctx, bson.M{"status": models.StatusResolved})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get resolved reports: %w", err)
	}
	if len(resolved) == 0 {
		return nil, nil, nil
	}

	ids := make([]string, 0, len(resolved))
	for _, r := range resolved {
		ids = append(ids, r.ID)
	}
	logs, err := s.StatusLogs.FindByReportIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get status logs: %w", err)
	}
	byReport := make(map[string][]models.StatusLog, len(resolved))
	for _, l := range logs {
		byReport[l.ReportID] = append(byReport[l.ReportID], l)
	}

	var resolution, firstResponse []float64
	for _, r := range resolved {
		history := byReport[r.ID]
		if len(history) == 0 {
			continue
		}
		sort.SliceStable(history, func(i, j int) bool {
			return history[i].CreatedAt.Before(history[j].CreatedAt)
		})
		firstResponse = append(firstResponse, hoursBetween(r.CreatedAt, history[0].CreatedAt))
		for _, l := range history {
			if l.Status == models.StatusResolved {
				resolution = append(resolution, hoursBetween(r.CreatedAt, l.CreatedAt))
				break
			}
		}
	}
	return resolution, firstResponse, nil
}

func windowStart(period models.Period, now time.Time) time.Time {
	switch period {
	case models.PeriodWeek:
		return now.AddDate(0, 0, -28)
	case models.PeriodMonth:
		return now.AddDate(0, -6, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// bucketKey formats t (UTC) as the bucket it falls in. Weeks start on Sunday.
func bucketKey(period models.Period, t time.Time) string {
	switch period {
	case models.PeriodWeek:
		return t.AddDate(0, 0, -int(t.Weekday())).Format("2006-01-02")
	case models.PeriodMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

func emptyStatusMap() map[models.Status]int64 {
	m := make(map[models.Status]int64, len(models.Statuses))
	for _, st := range models.Statuses {
		m[st] = 0
	}
	return m
}

func hoursBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours()
}

func average(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return round2(sum / float64(len(xs)))
}

func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return round2((sorted[mid-1] + sorted[mid]) / 2)
	}
	return round2(sorted[mid])
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
