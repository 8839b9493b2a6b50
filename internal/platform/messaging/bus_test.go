package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/infn-datacloud/orchestrator/internal/shared/events"
)

func TestInProcessPublishReachesSubscriber(t *testing.T) {
	bus := NewInProcess(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan events.Envelope, 1)
	err := bus.Subscribe(ctx, "orchestrator.deployments.create", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})
	if err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	event := events.Envelope{EventID: "evt-1", EventType: "deployment.creation_requested", EntityID: "dep-1"}
	if err := bus.Publish(ctx, "orchestrator.deployments.create", event); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != "evt-1" || got.EntityID != "dep-1" {
			t.Fatalf("unexpected event %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not receive event")
	}
}

func TestInProcessPublishWithoutSubscribers(t *testing.T) {
	bus := NewInProcess(nil)
	event := events.Envelope{EventID: "evt-2", EventType: "deployment.creation_requested"}
	if err := bus.Publish(context.Background(), "orchestrator.users", event); err != nil {
		t.Fatalf("publish to empty topic failed: %v", err)
	}
}
