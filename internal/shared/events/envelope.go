package events

import "time"

// Envelope is the shared event shape published by the orchestrator.
// Field names must stay aligned with the cross-runtime contract in
// contracts/gen/events/v1; provisioning workers outside this process
// decode the same JSON.
type Envelope struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	SourceService string    `json:"source_service"`
	OccurredAtUTC time.Time `json:"occurred_at_utc"`
	CorrelationID string    `json:"correlation_id"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	SchemaVersion int       `json:"schema_version"`
	Payload       any       `json:"payload"`
}
