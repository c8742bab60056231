package databases

// go generate: mockery --name UserDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cityfix/cityfix-api/models"
)

const userName = "users"

// UserDatabase is the read-only view of the users collection. Registration
// and credentials live in the auth service.
type UserDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.User, error)
}

type userDatabase struct {
	db DatabaseHelper
}

// NewUserDatabase initializes a new instance of user database with the provided db connection
func NewUserDatabase(db DatabaseHelper) UserDatabase {
	return &userDatabase{
		db: db,
	}
}

func (u *userDatabase) FindOne(ctx context.Context, filter interface{}) (*models.User, error) {
	user := &models.User{}
	err := u.db.Collection(userName).FindOne(ctx, filter).Decode(user)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByIDs loads the given users keyed by id, unknown ids are simply absent
func (u *userDatabase) FindByIDs(ctx context.Context, ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	cr, err := u.db.Collection(userName).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var found []models.User
	if err := cr.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, usr := range found {
		users[usr.ID] = usr
	}
	return users, nil
}
