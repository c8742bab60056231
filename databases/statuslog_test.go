package databases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cityfix/cityfix-api/databases"
	"github.com/cityfix/cityfix-api/databases/mocks"
	"github.com/cityfix/cityfix-api/models"
)

func TestStatusLogDatabase_FindByReportIDs(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("All", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(1).(*[]models.StatusLog)
		*arg = []models.StatusLog{{ID: "l1", ReportID: "r1", Status: models.StatusInProgress}}
	})
	collectionHelper.On("Find", mock.Anything, bson.M{"reportId": bson.M{"$in": []string{"r1"}}}, mock.MatchedBy(func(o *options.FindOptions) bool {
		return o.Sort != nil
	})).Return(cursorHelper, nil)
	dbHelper.On("Collection", "statuslogs").Return(collectionHelper)

	logs, err := databases.NewStatusLogDatabase(dbHelper).FindByReportIDs(context.Background(), []string{"r1"})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, "r1", logs[0].ReportID)
}

func TestStatusLogDatabase_FindByReportIDsEmpty(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}

	logs, err := databases.NewStatusLogDatabase(dbHelper).FindByReportIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, logs)
	dbHelper.AssertNotCalled(t, "Collection", mock.Anything)
}

func TestStatusLogDatabase_InsertAndCascade(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	log := models.StatusLog{ID: "l1", ReportID: "r1", Status: models.StatusResolved}

	collectionHelper.On("InsertOne", mock.Anything, log).Return(nil, nil)
	collectionHelper.On("DeleteMany", mock.Anything, bson.M{"reportId": "r1"}).Return(int64(4), nil)
	dbHelper.On("Collection", "statuslogs").Return(collectionHelper)

	db := databases.NewStatusLogDatabase(dbHelper)
	assert.NoError(t, db.InsertOne(context.Background(), log))

	deleted, err := db.DeleteByReportID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
