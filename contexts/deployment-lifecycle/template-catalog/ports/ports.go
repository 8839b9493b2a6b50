package ports

import (
	"context"
	"time"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ToscaDocument carries the fields extracted from a template body.
type ToscaDocument struct {
	Name                    string
	Version                 string
	TargetProviderType      string
	ToscaDefinitionsVersion string
}

// ToscaParser validates a raw document and extracts its metadata.
type ToscaParser interface {
	Parse(content string) (ToscaDocument, error)
}

// UsageChecker reports whether deployments still reference a template.
// Satisfied at the composition root by the deployment ledger.
type UsageChecker interface {
	InUse(ctx context.Context, templateID string) (bool, error)
}

type ListFilter struct {
	Name                    string
	Version                 string
	TargetProviderType      string
	ToscaDefinitionsVersion string
	CreatedBefore           *time.Time
	CreatedAfter            *time.Time
	UpdatedBefore           *time.Time
	UpdatedAfter            *time.Time
	Offset                  int
	Limit                   int
	OrderClause             string
}

// Replacement is the full set of fields rewritten when a template's
// content is replaced.
type Replacement struct {
	Content                 string
	ContentHash             string
	Name                    string
	Version                 string
	TargetProviderType      string
	ToscaDefinitionsVersion string
	UpdatedBy               string
}

type Repository interface {
	Create(ctx context.Context, template entities.Template) error
	Get(ctx context.Context, id string) (entities.Template, error)
	List(ctx context.Context, filter ListFilter) ([]entities.Template, int64, error)
	Replace(ctx context.Context, id string, replacement Replacement, now time.Time) (entities.Template, error)
	Delete(ctx context.Context, id string) error
}
