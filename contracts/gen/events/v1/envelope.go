package v1

import (
	"encoding/json"
	"time"
)

// Envelope is the canonical, versioned event envelope shared with the
// provisioning workers consuming the orchestrator's topics. This package
// is generated-contract-only and must stay backward compatible; field
// names mirror internal/shared/events.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAtUTC time.Time       `json:"occurred_at_utc"`
	CorrelationID string          `json:"correlation_id"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	SchemaVersion int             `json:"schema_version"`
	Payload       json.RawMessage `json:"payload"`
}

// Event types carried on the wire.
const (
	TypeDeploymentCreationRequested = "deployment.creation_requested"
)
