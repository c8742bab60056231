package events

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
	"go.uber.org/zap"

	"github.com/cityfix/cityfix-api/config"
	"github.com/cityfix/cityfix-api/logging"
)

const publishTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a single topic keyed by report id, so every
// event of one report lands on the same partition in order
type KafkaPublisher struct {
	writer messageWriter
	log    *zap.SugaredLogger
}

// New returns a KafkaPublisher when KAFKA_BROKER is set and a NoopPublisher otherwise
func New(conf *config.Config) Publisher {
	if conf.KafkaBroker == "" {
		zap.S().Infow("kafka broker not configured, report events disabled")
		return NoopPublisher{}
	}
	return NewKafkaPublisher(conf.KafkaBroker, conf.KafkaTopic, conf.KafkaUsername, conf.KafkaPassword)
}

// NewKafkaPublisher builds the writer. Credentials switch on SASL/PLAIN over TLS.
func NewKafkaPublisher(broker, topic, username, password string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		WriteTimeout: 10 * time.Second,
	}
	if username != "" {
		w.Transport = &kafka.Transport{
			SASL: plain.Mechanism{Username: username, Password: password},
			TLS:  &tls.Config{},
		}
	}
	return &KafkaPublisher{writer: w, log: logging.New("events")}
}

// Publish implements Publisher
func (p *KafkaPublisher) Publish(ctx context.Context, event ReportEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.ReportID),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	p.log.Debugw("published report event", "type", event.Type, "reportId", event.ReportID)
	return nil
}

// Close flushes pending writes
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
