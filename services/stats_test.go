package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	mocksdb "github.com/cityfix/cityfix-api/databases/mocks"
	"github.com/cityfix/cityfix-api/models"
)

func newStatsService(now time.Time) (*StatsService, *mocksdb.ReportDatabase, *mocksdb.StatusLogDatabase) {
	reports := &mocksdb.ReportDatabase{}
	logs := &mocksdb.StatusLogDatabase{}
	s := NewStatsService(reports, logs)
	s.now = func() time.Time { return now }
	return s, reports, logs
}

func TestAverageAndMedian(t *testing.T) {
	assert.Equal(t, 0.0, average(nil))
	assert.Equal(t, 0.0, median(nil))
	assert.Equal(t, 3.0, average([]float64{2, 4}))
	assert.Equal(t, 3.0, median([]float64{2, 4}))
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.0, average([]float64{1, 2, 3}))
	assert.Equal(t, 0.33, average([]float64{0, 0, 1}))
	assert.Equal(t, 1.67, round2(1.666))
}

func TestStatsService_SummaryEmpty(t *testing.T) {
	s, reports, _ := newStatsService(fixedNow)
	reports.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(0), nil)
	reports.On("CountByField", mock.Anything, "status").Return(nil, nil)
	reports.On("Find", mock.Anything, bson.M{"status": models.StatusResolved}).Return(nil, nil)

	summary, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.SummaryStats{}, summary)
}

func TestStatsService_Summary(t *testing.T) {
	s, reports, logs := newStatsService(fixedNow)
	created := fixedNow.Add(-100 * time.Hour)

	reports.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(4), nil)
	reports.On("CountByField", mock.Anything, "status").Return([]models.GroupCount{
		{Key: "pending", Count: 1},
		{Key: "resolved", Count: 3},
	}, nil)
	reports.On("Find", mock.Anything, bson.M{"status": models.StatusResolved}).Return([]models.Report{
		{ID: "a", Status: models.StatusResolved, CreatedAt: created},
		{ID: "b", Status: models.StatusResolved, CreatedAt: created},
		{ID: "c", Status: models.StatusResolved, CreatedAt: created},
	}, nil)
	logs.On("FindByReportIDs", mock.Anything, []string{"a", "b", "c"}).Return([]models.StatusLog{
		{ReportID: "a", Status: models.StatusInProgress, CreatedAt: created.Add(1 * time.Hour)},
		{ReportID: "a", Status: models.StatusResolved, CreatedAt: created.Add(2 * time.Hour)},
		{ReportID: "b", Status: models.StatusResolved, CreatedAt: created.Add(4 * time.Hour)},
		{ReportID: "a", Status: models.StatusResolved, CreatedAt: created.Add(50 * time.Hour)},
	}, nil)

	summary, err := s.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), summary.TotalReports)
	assert.Equal(t, models.StatusCounts{Pending: 1, Resolved: 3}, summary.ByStatus)
	assert.Equal(t, 75.0, summary.ResolutionRate)
	// report c has no history and is skipped
	assert.Equal(t, 3.0, summary.AvgResolutionTimeHours)
	assert.Equal(t, 3.0, summary.MedianResolutionTimeHours)
	assert.Equal(t, 2.5, summary.AvgFirstResponseTimeHours)
	assert.Equal(t, 2.5, summary.MedianFirstResponseTimeHours)
}

func TestStatsService_SummaryResolutionRateNotRounded(t *testing.T) {
	s, reports, _ := newStatsService(fixedNow)
	reports.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(3), nil)
	reports.On("CountByField", mock.Anything, "status").Return([]models.GroupCount{{Key: "resolved", Count: 1}, {Key: "pending", Count: 2}}, nil)
	reports.On("Find", mock.Anything, bson.M{"status": models.StatusResolved}).Return(nil, nil)

	summary, err := s.Summary(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 33.3333, summary.ResolutionRate, 0.001)
}

func TestStatsService_SummaryCountError(t *testing.T) {
	s, reports, _ := newStatsService(fixedNow)
	reports.On("CountDocuments", mock.Anything, bson.M{}).Return(int64(0), errors.New("mocked-error"))

	_, err := s.Summary(context.Background())
	assert.EqualError(t, err, "failed to count reports: mocked-error")
}

func TestStatsService_ByCategory(t *testing.T) {
	s, reports, _ := newStatsService(fixedNow)
	reports.On("CountByField", mock.Anything, "category").Return([]models.GroupCount{
		{Key: "safety", Count: 5},
		{Key: "other", Count: 2},
		{Key: "infrastructure", Count: 2},
	}, nil)

	got, err := s.ByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CategoryCount{
		{Category: models.CategorySafety, Count: 5},
		{Category: models.CategoryInfrastructure, Count: 2},
		{Category: models.CategoryOther, Count: 2},
		{Category: models.CategoryEnvironment, Count: 0},
	}, got)
}

func TestStatsService_ByStatus(t *testing.T) {
	s, reports, _ := newStatsService(fixedNow)
	reports.On("CountByField", mock.Anything, "status").Return([]models.GroupCount{
		{Key: "rejected", Count: 1},
		{Key: "in_progress", Count: 7},
	}, nil)

	got, err := s.ByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.StatusCount{
		{Status: models.StatusPending, Count: 0},
		{Status: models.StatusInProgress, Count: 7},
		{Status: models.StatusResolved, Count: 0},
		{Status: models.StatusRejected, Count: 1},
	}, got)
}

func TestStatsService_ByDateDayWindow(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s, reports, _ := newStatsService(now)
	since := now.AddDate(0, 0, -7)

	reports.On("Find", mock.Anything, bson.M{"createdAt": bson.M{"$gte": since, "$lte": now}}).Return([]models.Report{
		{ID: "1", Status: models.StatusPending, CreatedAt: now.Add(-1 * time.Hour)},
		{ID: "2", Status: models.StatusResolved, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "3", Status: models.StatusPending, CreatedAt: now.AddDate(0, 0, -3)},
		{ID: "4", Status: models.StatusPending, CreatedAt: now.AddDate(0, 0, -8)},
	}, nil)

	got, err := s.ByDate(context.Background(), models.PeriodDay)
	require.NoError(t, err)

	assert.Equal(t, models.PeriodDay, got.Period)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "2024-05-07", got.Data[0].Date)
	assert.Equal(t, "2024-05-10", got.Data[1].Date)
	assert.Equal(t, int64(2), got.Data[1].Total)
	assert.Equal(t, int64(1), got.Data[1].ByStatus[models.StatusResolved])
	assert.Equal(t, int64(0), got.Data[1].ByStatus[models.StatusRejected])
	for _, b := range got.Data {
		d, err := time.Parse("2006-01-02", b.Date)
		require.NoError(t, err)
		assert.False(t, d.Before(since.Truncate(24*time.Hour)))
	}
}

func TestStatsService_ByDateWeekStartsSunday(t *testing.T) {
	// Friday
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s, reports, _ := newStatsService(now)

	reports.On("Find", mock.Anything, mock.Anything).Return([]models.Report{
		{ID: "1", Status: models.StatusPending, CreatedAt: time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Status: models.StatusPending, CreatedAt: time.Date(2024, 5, 9, 23, 0, 0, 0, time.UTC)},
		{ID: "3", Status: models.StatusPending, CreatedAt: time.Date(2024, 5, 4, 23, 0, 0, 0, time.UTC)},
	}, nil)

	got, err := s.ByDate(context.Background(), models.PeriodWeek)
	require.NoError(t, err)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "2024-04-28", got.Data[0].Date)
	assert.Equal(t, int64(1), got.Data[0].Total)
	assert.Equal(t, "2024-05-05", got.Data[1].Date)
	assert.Equal(t, int64(2), got.Data[1].Total)
}

func TestStatsService_ByDateMonthKeys(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	s, reports, _ := newStatsService(now)

	reports.On("Find", mock.Anything, mock.Anything).Return([]models.Report{
		{ID: "1", Status: models.StatusRejected, CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Status: models.StatusPending, CreatedAt: time.Date(2023, 12, 31, 22, 0, 0, 0, time.UTC)},
		{ID: "3", Status: models.StatusPending, CreatedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.FixedZone("x", 3*3600))},
	}, nil)

	got, err := s.ByDate(context.Background(), models.PeriodMonth)
	require.NoError(t, err)

	keys := make([]string, 0, len(got.Data))
	for _, b := range got.Data {
		assert.Regexp(t, `^\d{4}-\d{2}$`, b.Date)
		keys = append(keys, b.Date)
	}
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-05"}, keys)
}

func TestStatsService_ByDateUnknownPeriod(t *testing.T) {
	s, reports, _ := newStatsService(fixedNow)

	_, err := s.ByDate(context.Background(), models.Period("year"))
	assert.ErrorIs(t, err, models.ErrValidation)
	reports.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
}

func TestStatsService_ByDateEmpty(t *testing.T) {
	s, reports, _ := newStatsService(fixedNow)
	reports.On("Find", mock.Anything, mock.Anything).Return(nil, nil)

	got, err := s.ByDate(context.Background(), models.PeriodDay)
	require.NoError(t, err)
	assert.NotNil(t, got.Data)
	assert.Empty(t, got.Data)
}
