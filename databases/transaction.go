package databases

// go generate: mockery --name Transactor

import (
	"context"
	"fmt"
)

// Transactor runs a unit of work atomically. Every database call made inside fn
// must use the context it receives.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTransactor struct {
	db DatabaseHelper
}

// NewTransactor returns a Transactor backed by mongo sessions. Multi-document
// transactions need a replica set or sharded cluster.
func NewTransactor(db DatabaseHelper) Transactor {
	return &mongoTransactor{db: db}
}

func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.db.Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	return session.WithTransaction(ctx, fn)
}
