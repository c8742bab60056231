// Package events publishes report lifecycle events for downstream consumers
// such as notification or analytics services.
package events

import (
	"context"
	"time"

	"github.com/cityfix/cityfix-api/models"
)

// Event types
const (
	ReportCreated       = "report.created"
	ReportUpdated       = "report.updated"
	ReportStatusChanged = "report.status_changed"
	ReportDeleted       = "report.deleted"
)

// ReportEvent is the message body published for every report mutation
type ReportEvent struct {
	Type       string        `json:"type"`
	ReportID   string        `json:"reportId"`
	Status     models.Status `json:"status,omitempty"`
	ActorID    string        `json:"actorId"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// go generate: mockery --name Publisher

// Publisher sends report events somewhere. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event ReportEvent) error
	Close() error
}

// NoopPublisher drops every event, used when no broker is configured
type NoopPublisher struct{}

// Publish implements Publisher
func (NoopPublisher) Publish(ctx context.Context, event ReportEvent) error {
	return nil
}

// Close implements Publisher
func (NoopPublisher) Close() error {
	return nil
}
