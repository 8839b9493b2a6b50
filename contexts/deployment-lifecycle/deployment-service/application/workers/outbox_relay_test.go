package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
	"github.com/infn-datacloud/orchestrator/internal/shared/outbox"
)

type stubOutbox struct {
	rows    []ports.OutboxMessage
	listErr error
	status  map[string]string
	retries map[string]int
}

func newStubOutbox(rows ...ports.OutboxMessage) *stubOutbox {
	status := make(map[string]string, len(rows))
	for _, row := range rows {
		status[row.ID] = outbox.StatusPending
	}
	return &stubOutbox{rows: rows, status: status, retries: map[string]int{}}
}

func (s *stubOutbox) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]ports.OutboxMessage, 0, len(s.rows))
	for _, row := range s.rows {
		if s.status[row.ID] != outbox.StatusPending {
			continue
		}
		row.RetryCount = s.retries[row.ID]
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *stubOutbox) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.status[outboxID] = outbox.StatusPublished
	return nil
}

func (s *stubOutbox) MarkOutboxFailed(_ context.Context, outboxID string, maxAttempts int) error {
	s.retries[outboxID]++
	if s.retries[outboxID] >= maxAttempts {
		s.status[outboxID] = outbox.StatusFailed
	}
	return nil
}

type publishedEvent struct {
	topic string
	event ports.EventEnvelope
}

type stubPublisher struct {
	events      []publishedEvent
	failEventID string
}

func (p *stubPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.failEventID != "" && event.EventID == p.failEventID {
		return errors.New("broker unavailable")
	}
	p.events = append(p.events, publishedEvent{topic: topic, event: event})
	return nil
}

type stubMetrics struct {
	outcomes map[string]int
}

func (m *stubMetrics) CountRelay(outcome string) {
	if m.outcomes == nil {
		m.outcomes = map[string]int{}
	}
	m.outcomes[outcome]++
}

func makeRow(t *testing.T, id string, topic string, createdAt time.Time) ports.OutboxMessage {
	t.Helper()
	payload, err := json.Marshal(ports.EventEnvelope{
		EventID:       id,
		EventType:     "deployment.creation_requested",
		OccurredAtUTC: createdAt,
	})
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return ports.OutboxMessage{
		ID:        id,
		EventType: "deployment.creation_requested",
		Topic:     topic,
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: createdAt,
	}
}

func TestOutboxRelayPublishesPendingRows(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newStubOutbox(
		makeRow(t, "evt-1", "orchestrator.deployments.create", now),
		makeRow(t, "evt-2", "", now.Add(time.Minute)),
	)
	publisher := &stubPublisher{}
	metrics := &stubMetrics{}

	relay := OutboxRelay{Outbox: repo, Publisher: publisher, Metrics: metrics, BatchSize: 10, MaxAttempts: 3}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(publisher.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(publisher.events))
	}
	if publisher.events[0].topic != "orchestrator.deployments.create" {
		t.Fatalf("topic = %q", publisher.events[0].topic)
	}
	if publisher.events[1].topic != "deployment.creation_requested" {
		t.Fatalf("empty row topic must fall back to the event type, got %q", publisher.events[1].topic)
	}
	if repo.status["evt-1"] != outbox.StatusPublished || repo.status["evt-2"] != outbox.StatusPublished {
		t.Fatalf("rows not marked published: %v", repo.status)
	}
	if metrics.outcomes["published"] != 2 {
		t.Fatalf("published counter = %d", metrics.outcomes["published"])
	}

	publisher.events = nil
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("idle run failed: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("published rows must not be republished: %d", len(publisher.events))
	}
}

func TestOutboxRelayContinuesPastFailingRow(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := newStubOutbox(
		makeRow(t, "evt-1", "orchestrator.deployments.create", now),
		makeRow(t, "evt-2", "orchestrator.deployments.create", now.Add(time.Minute)),
	)
	publisher := &stubPublisher{failEventID: "evt-1"}
	metrics := &stubMetrics{}

	relay := OutboxRelay{Outbox: repo, Publisher: publisher, Metrics: metrics, BatchSize: 10, MaxAttempts: 3}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected the publish failure to surface")
	}

	if len(publisher.events) != 1 || publisher.events[0].event.EventID != "evt-2" {
		t.Fatalf("second row must still publish: %+v", publisher.events)
	}
	if repo.status["evt-1"] != outbox.StatusPending || repo.retries["evt-1"] != 1 {
		t.Fatalf("failed row must stay pending with one retry: %v %v", repo.status, repo.retries)
	}
	if repo.status["evt-2"] != outbox.StatusPublished {
		t.Fatalf("second row not marked published: %v", repo.status)
	}
	if metrics.outcomes["published"] != 1 || metrics.outcomes["failed"] != 1 {
		t.Fatalf("outcome counters wrong: %v", metrics.outcomes)
	}
}

func TestOutboxRelayParksRowAfterRetryBudget(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	poison := ports.OutboxMessage{
		ID:        "evt-bad",
		EventType: "deployment.creation_requested",
		Topic:     "orchestrator.deployments.create",
		Payload:   []byte("{not json"),
		Status:    outbox.StatusPending,
		CreatedAt: now,
	}
	repo := newStubOutbox(poison)
	publisher := &stubPublisher{}
	metrics := &stubMetrics{}

	relay := OutboxRelay{Outbox: repo, Publisher: publisher, Metrics: metrics, BatchSize: 10, MaxAttempts: 2}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected decode failure to surface")
	}
	if repo.status["evt-bad"] != outbox.StatusPending || repo.retries["evt-bad"] != 1 {
		t.Fatalf("first failure must keep the row pending: %v %v", repo.status, repo.retries)
	}

	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected decode failure to surface")
	}
	if repo.status["evt-bad"] != outbox.StatusFailed {
		t.Fatalf("row must be parked after the budget: %v", repo.status)
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("parked rows must not error later runs: %v", err)
	}
	if len(publisher.events) != 0 {
		t.Fatalf("poison row must never publish: %+v", publisher.events)
	}
	if metrics.outcomes["failed"] != 2 {
		t.Fatalf("failed counter = %d", metrics.outcomes["failed"])
	}
}

func TestOutboxRelayListFailure(t *testing.T) {
	repo := newStubOutbox()
	repo.listErr = errors.New("db down")
	relay := OutboxRelay{Outbox: repo, Publisher: &stubPublisher{}, BatchSize: 10}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatal("expected list failure to surface")
	}
}
