package kstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"neighborhood-share/internal/model"
)

// Publisher emits domain events. Callers treat publishing as
// fire-and-forget: a failure is logged, never surfaced to the neighbor.
type Publisher interface {
	PublishListingShared(ctx context.Context, evt model.ListingShared) error
	PublishCommunityAlert(ctx context.Context, evt model.CommunityAlertSent) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to one topic per event kind.
type KafkaPublisher struct {
	shared messageWriter
	alerts messageWriter
}

// kafkaWriter constructs a producer for topic.
func kafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // same key, same partition
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}
}

func NewKafkaPublisher(broker, sharedTopic, alertsTopic string) *KafkaPublisher {
	return &KafkaPublisher{
		shared: kafkaWriter(broker, sharedTopic),
		alerts: kafkaWriter(broker, alertsTopic),
	}
}

// PublishListingShared sends a share-form submission keyed by category so
// submissions of one category stay ordered.
func (p *KafkaPublisher) PublishListingShared(ctx context.Context, evt model.ListingShared) error {
	return write(ctx, p.shared, string(evt.Category), evt)
}

// PublishCommunityAlert sends a confirmed community alert keyed by
// emergency type.
func (p *KafkaPublisher) PublishCommunityAlert(ctx context.Context, evt model.CommunityAlertSent) error {
	return write(ctx, p.alerts, evt.Type, evt)
}

func write(ctx context.Context, w messageWriter, key string, evt any) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}
	if err := w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	err1 := p.shared.Close()
	err2 := p.alerts.Close()
	if err1 != nil {
		return err1
	}
	return err2
}

// LogPublisher records events in the log only. It is used when no broker
// is configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) PublishListingShared(_ context.Context, evt model.ListingShared) error {
	p.logger.Info("listing shared",
		zap.String("id", evt.ID),
		zap.String("category", string(evt.Category)),
		zap.Bool("duplicate", evt.Duplicate))
	return nil
}

func (p *LogPublisher) PublishCommunityAlert(_ context.Context, evt model.CommunityAlertSent) error {
	p.logger.Info("community alert", zap.String("id", evt.ID), zap.String("type", evt.Type))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
