package kstream

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"neighborhood-share/internal/model"
)

// messageReader is the subset of *kafka.Reader the consumer needs.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// realtimeGroupPrefix names the per-instance consumer groups that feed the
// websocket hubs.
const realtimeGroupPrefix = "share-api-realtime-"

// AlertReader creates a reader for the alert topic in a consumer group of
// its own, so every API instance receives every alert.
func AlertReader(broker, topic string) *kafka.Reader {
	return kafka.NewReader(alertReaderConfig(broker, topic, uuid.NewString()))
}

// alertReaderConfig starts new groups at the newest offset; alerts sent
// before the instance came up are not replayed to its clients.
func alertReaderConfig(broker, topic, instance string) kafka.ReaderConfig {
	return kafka.ReaderConfig{
		Brokers:        []string{broker},
		Topic:          topic,
		GroupID:        realtimeGroupPrefix + instance,
		StartOffset:    kafka.LastOffset,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		CommitInterval: time.Second,
	}
}

// AlertSink receives every community alert read from the topic.
type AlertSink func(model.CommunityAlertSent)

// ConsumeAlerts reads community alerts and hands each one to sink until ctx
// is cancelled. Undecodable messages are logged and skipped. It returns nil
// on cancellation.
func ConsumeAlerts(ctx context.Context, r messageReader, sink AlertSink, logger *zap.Logger) error {
	defer r.Close()

	logger.Info("alert consumer started")
	for {
		msg, err := r.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		var evt model.CommunityAlertSent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Warn("skipping undecodable alert",
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
			continue
		}
		sink(evt)
	}
}
