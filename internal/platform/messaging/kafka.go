package messaging

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/infn-datacloud/orchestrator/internal/shared/events"
)

// KafkaOptions configures the broker-backed publisher.
type KafkaOptions struct {
	Brokers         []string
	TLSEnable       bool
	MaxMessageBytes int64
	Logger          *slog.Logger
}

// KafkaBus publishes envelopes to external brokers. Writes require acks
// from all in-sync replicas so a published outbox row is never lost by
// the broker accepting it.
type KafkaBus struct {
	writer  *kafka.Writer
	brokers []string
	logger  *slog.Logger
}

func NewKafkaBus(opts KafkaOptions) (*KafkaBus, error) {
	if len(opts.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(opts.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	if opts.MaxMessageBytes > 0 {
		writer.BatchBytes = opts.MaxMessageBytes
	}
	if opts.TLSEnable {
		writer.Transport = &kafka.Transport{TLS: &tls.Config{MinVersion: tls.VersionTLS12}}
	}

	return &KafkaBus{writer: writer, brokers: opts.Brokers, logger: opts.Logger}, nil
}

func (b *KafkaBus) Publish(ctx context.Context, topic string, event events.Envelope) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal envelope %s: %w", event.EventID, err)
	}

	err = b.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(event.EntityID),
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("write to topic %s: %w", topic, err)
	}

	if b.logger != nil {
		b.logger.Info("event published",
			"event", "kafka_publish",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"topic", topic,
			"event_id", event.EventID,
			"event_type", event.EventType,
		)
	}
	return nil
}

// Ping dials the first broker; used by the health endpoint.
func (b *KafkaBus) Ping(ctx context.Context) error {
	conn, err := kafka.DialContext(ctx, "tcp", b.brokers[0])
	if err != nil {
		return fmt.Errorf("dial broker %s: %w", b.brokers[0], err)
	}
	return conn.Close()
}

func (b *KafkaBus) Close() error {
	return b.writer.Close()
}
