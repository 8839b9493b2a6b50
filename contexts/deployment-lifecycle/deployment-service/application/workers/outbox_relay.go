package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
)

// OutboxRelay drains pending outbox rows onto the message bus. A row is
// marked published only after the broker accepted it; a failing row has
// its retry count bumped and is parked as failed once MaxAttempts is
// spent, so one poisoned payload never wedges the batch.
type OutboxRelay struct {
	Outbox      ports.OutboxRepository
	Publisher   ports.EventPublisher
	Metrics     ports.RelayMetrics
	Clock       ports.Clock
	BatchSize   int
	MaxAttempts int
	Logger      *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 50
	}
	maxAttempts := r.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("outbox list failed",
			"event", "outbox_list_failed",
			"module", "deployment-lifecycle/deployment-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		logger.Debug("outbox relay found no pending rows",
			"event", "outbox_relay_noop",
			"module", "deployment-lifecycle/deployment-service",
			"layer", "worker",
			"batch_size", limit,
		)
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	published := 0
	failed := 0
	var lastErr error
	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("outbox payload decode failed",
				"event", "outbox_decode_failed",
				"module", "deployment-lifecycle/deployment-service",
				"layer", "worker",
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			r.recordFailure(ctx, row.ID, maxAttempts, logger)
			failed++
			lastErr = err
			continue
		}

		topic := row.Topic
		if topic == "" {
			topic = event.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("outbox publish failed",
				"event", "outbox_publish_failed",
				"module", "deployment-lifecycle/deployment-service",
				"layer", "worker",
				"outbox_id", row.ID,
				"event_id", event.EventID,
				"event_type", event.EventType,
				"topic", topic,
				"error", err.Error(),
			)
			r.recordFailure(ctx, row.ID, maxAttempts, logger)
			failed++
			lastErr = err
			continue
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.ID, now); err != nil {
			logger.Error("outbox mark published failed",
				"event", "outbox_mark_published_failed",
				"module", "deployment-lifecycle/deployment-service",
				"layer", "worker",
				"outbox_id", row.ID,
				"error", err.Error(),
			)
			lastErr = err
			continue
		}
		if r.Metrics != nil {
			r.Metrics.CountRelay("published")
		}
		published++
	}

	logger.Info("outbox relay cycle completed",
		"event", "outbox_relay_completed",
		"module", "deployment-lifecycle/deployment-service",
		"layer", "worker",
		"published_count", published,
		"failed_count", failed,
	)
	return lastErr
}

func (r OutboxRelay) recordFailure(ctx context.Context, outboxID string, maxAttempts int, logger *slog.Logger) {
	if r.Metrics != nil {
		r.Metrics.CountRelay("failed")
	}
	if err := r.Outbox.MarkOutboxFailed(ctx, outboxID, maxAttempts); err != nil {
		logger.Error("outbox mark failed failed",
			"event", "outbox_mark_failed_failed",
			"module", "deployment-lifecycle/deployment-service",
			"layer", "worker",
			"outbox_id", outboxID,
			"error", err.Error(),
		)
	}
}
