package commands

import (
	"encoding/json"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
	eventsv1 "github.com/infn-datacloud/orchestrator/contracts/gen/events/v1"
	messagesv1 "github.com/infn-datacloud/orchestrator/contracts/gen/messages/v1"
)

// Creation events are keyed by deployment so consumers processing one
// deployment see its messages in order.
func newCreationEnvelope(
	eventID string,
	deploymentID string,
	occurredAt time.Time,
	message messagesv1.CreateDeployment,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventsv1.TypeDeploymentCreationRequested,
		SourceService: "deployment-service",
		OccurredAtUTC: occurredAt.UTC(),
		CorrelationID: eventID,
		EntityType:    "deployment",
		EntityID:      deploymentID,
		SchemaVersion: 1,
		Payload:       payload,
	}, nil
}
