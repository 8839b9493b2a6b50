package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/services"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/ports"
)

type UpdateTemplateCommand struct {
	TemplateID string
	Content    string
	Actor      string
}

// UpdateTemplateUseCase replaces a template's document wholesale. The new
// content is re-validated and the hash and metadata columns are re-derived
// from it, so a stored row never disagrees with its own document.
type UpdateTemplateUseCase struct {
	Repo   ports.Repository
	Parser ports.ToscaParser
	Clock  ports.Clock
	Logger *slog.Logger
}

func (u UpdateTemplateUseCase) Execute(ctx context.Context, cmd UpdateTemplateCommand) (entities.Template, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Content) == "" {
		return entities.Template{}, fmt.Errorf("%w: content is required", domainerrors.ErrInvalidTemplate)
	}
	doc, err := u.Parser.Parse(cmd.Content)
	if err != nil {
		return entities.Template{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidTemplate, err)
	}

	replacement := ports.Replacement{
		Content:                 cmd.Content,
		ContentHash:             services.HashContent(cmd.Content),
		Name:                    doc.Name,
		Version:                 doc.Version,
		TargetProviderType:      doc.TargetProviderType,
		ToscaDefinitionsVersion: doc.ToscaDefinitionsVersion,
		UpdatedBy:               cmd.Actor,
	}
	template, err := u.Repo.Replace(ctx, cmd.TemplateID, replacement, u.now())
	if err != nil {
		return entities.Template{}, err
	}

	logger.Info("template replaced",
		"event", "template_replaced",
		"module", "deployment-lifecycle/template-catalog",
		"layer", "application",
		"template_id", cmd.TemplateID,
	)
	return template, nil
}

func (u UpdateTemplateUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
