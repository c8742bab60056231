package databases

// go generate: mockery --name LockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const lockName = "schedulerlocks"

// LockDatabase hands out named leases so a job runs on one instance at a time
type LockDatabase interface {
	TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, owner string) error
}

type lockDatabase struct {
	db DatabaseHelper
}

// NewLockDatabase initializes a new instance of lock database with the provided db connection
func NewLockDatabase(db DatabaseHelper) LockDatabase {
	return &lockDatabase{
		db: db,
	}
}

// TryAcquireLock takes the lease when it is free, expired, or already ours. A
// live lease held by someone else surfaces as a duplicate key on the upsert.
func (l *lockDatabase) TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"_id": name,
		"$or": []bson.M{
			{"expiresAt": bson.M{"$lt": now}},
			{"owner": owner},
		},
	}
	update := bson.M{"$set": bson.M{"owner": owner, "expiresAt": now.Add(ttl)}}

	_, err := l.db.Collection(lockName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *lockDatabase) ReleaseLock(ctx context.Context, name, owner string) error {
	_, err := l.db.Collection(lockName).DeleteOne(ctx, bson.M{"_id": name, "owner": owner})
	return err
}
