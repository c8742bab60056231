package databases

// go generate: mockery --name StatusLogDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cityfix/cityfix-api/models"
)

const statusLogName = "statuslogs"

// StatusLogDatabase contains the methods to use with the status log database.
// There is no update method, log entries are append-only.
type StatusLogDatabase interface {
	InsertOne(ctx context.Context, log models.StatusLog) error
	FindByReportIDs(ctx context.Context, reportIDs []string) ([]models.StatusLog, error)
	DeleteByReportID(ctx context.Context, reportID string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type statusLogDatabase struct {
	db DatabaseHelper
}

// NewStatusLogDatabase initializes a new instance of status log database with the provided db connection
func NewStatusLogDatabase(db DatabaseHelper) StatusLogDatabase {
	return &statusLogDatabase{
		db: db,
	}
}

func (s *statusLogDatabase) InsertOne(ctx context.Context, log models.StatusLog) error {
	_, err := s.db.Collection(statusLogName).InsertOne(ctx, log)
	return err
}

// FindByReportIDs returns the logs of the given reports, oldest first
func (s *statusLogDatabase) FindByReportIDs(ctx context.Context, reportIDs []string) ([]models.StatusLog, error) {
	if len(reportIDs) == 0 {
		return nil, nil
	}
	filter := bson.M{"reportId": bson.M{"$in": reportIDs}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cr, err := s.db.Collection(statusLogName).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var logs []models.StatusLog
	if err := cr.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *statusLogDatabase) DeleteByReportID(ctx context.Context, reportID string) (int64, error) {
	return s.db.Collection(statusLogName).DeleteMany(ctx, bson.M{"reportId": reportID})
}

func (s *statusLogDatabase) EnsureIndexes(ctx context.Context) error {
	return s.db.Collection(statusLogName).CreateIndexes(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reportId", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
}
