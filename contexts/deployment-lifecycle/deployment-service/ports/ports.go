package ports

import (
	"context"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	eventsv1 "github.com/infn-datacloud/orchestrator/contracts/gen/events/v1"
	"github.com/infn-datacloud/orchestrator/internal/shared/outbox"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// TemplateSource resolves the document of a catalog template. The
// composition root backs it with the template catalog and translates
// its not-found into this context's ErrUnknownTemplate.
type TemplateSource interface {
	TemplateContent(ctx context.Context, templateID string) (string, error)
}

// OwnerKeySource reports the public SSH keys of a deployment owner.
// Backed by the user registry; an owner without a registration yields
// an empty list, not an error.
type OwnerKeySource interface {
	OwnerKeys(ctx context.Context, sub string, issuer string) ([]string, error)
}

type DeploymentFilter struct {
	UserGroup       string
	TemplateID      string
	TargetProvider  string
	TargetRegion    string
	TotalTimeoutLTE *int
	TotalTimeoutGTE *int
	CreatedBefore   *time.Time
	CreatedAfter    *time.Time
	Offset          int
	Limit           int
	OrderClause     string
}

type DeploymentPatch struct {
	UserGroup *string
}

type ResourceFilter struct {
	Status        string
	ToscaNodeName string
	ToscaNodeType string
	Offset        int
	Limit         int
	OrderClause   string
}

type ResourcePatch struct {
	Status    *entities.ResourceStatus
	IMVMIndex *int
	Info      map[string]any
}

type EventEnvelope = eventsv1.Envelope

type OutboxMessage = outbox.Message

// Repository persists deployments and their resources. CreateDeployment
// writes the deployment row and the outbox message in one transaction;
// DeleteDeployment removes the deployment's resources with it.
type Repository interface {
	CreateDeployment(ctx context.Context, deployment entities.Deployment, envelope EventEnvelope, topic string) error
	GetDeployment(ctx context.Context, id string) (entities.Deployment, error)
	ListDeployments(ctx context.Context, filter DeploymentFilter) ([]entities.Deployment, int64, error)
	UpdateDeployment(ctx context.Context, id string, patch DeploymentPatch, actor string, now time.Time) (entities.Deployment, error)
	DeleteDeployment(ctx context.Context, id string) error
	CountDeploymentsByTemplate(ctx context.Context, templateID string) (int64, error)

	CreateResource(ctx context.Context, resource entities.Resource) error
	GetResource(ctx context.Context, deploymentID string, resourceID string) (entities.Resource, error)
	ListResources(ctx context.Context, deploymentID string, filter ResourceFilter) ([]entities.Resource, int64, error)
	UpdateResource(ctx context.Context, deploymentID string, resourceID string, patch ResourcePatch, now time.Time) (entities.Resource, error)
	DeleteResource(ctx context.Context, deploymentID string, resourceID string) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
	// MarkOutboxFailed bumps the row's retry count and parks it as
	// failed once maxAttempts is spent; before that the row stays
	// pending for the next cycle.
	MarkOutboxFailed(ctx context.Context, outboxID string, maxAttempts int) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

// RelayMetrics counts relay outcomes; satisfied by the platform
// telemetry registry.
type RelayMetrics interface {
	CountRelay(outcome string)
}
