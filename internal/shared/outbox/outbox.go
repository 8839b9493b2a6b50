package outbox

import "time"

// Row statuses. A row moves pending -> published on successful publish,
// pending -> failed after the retry budget is spent.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)

// Outbox row persisted inside the same DB transaction as state changes.
// The worker relay reads pending rows and publishes them to the message
// bus; Topic routes the row to the right broker topic.
type Message struct {
	ID         string
	EventType  string
	Topic      string
	Payload    []byte
	Status     string
	RetryCount int
	CreatedAt  time.Time
}
