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

type CreateTemplateCommand struct {
	Content string
	Actor   string
}

type CreateTemplateUseCase struct {
	Repo        ports.Repository
	Parser      ports.ToscaParser
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u CreateTemplateUseCase) Execute(ctx context.Context, cmd CreateTemplateCommand) (entities.Template, error) {
	logger := application.ResolveLogger(u.Logger)

	if strings.TrimSpace(cmd.Content) == "" {
		return entities.Template{}, fmt.Errorf("%w: content is required", domainerrors.ErrInvalidTemplate)
	}
	doc, err := u.Parser.Parse(cmd.Content)
	if err != nil {
		return entities.Template{}, fmt.Errorf("%w: %v", domainerrors.ErrInvalidTemplate, err)
	}

	id, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Template{}, err
	}
	now := u.now()
	template := entities.Template{
		ID:                      id,
		Content:                 cmd.Content,
		ContentHash:             services.HashContent(cmd.Content),
		Name:                    doc.Name,
		Version:                 doc.Version,
		TargetProviderType:      doc.TargetProviderType,
		ToscaDefinitionsVersion: doc.ToscaDefinitionsVersion,
		CreatedAt:               now,
		CreatedBy:               cmd.Actor,
		UpdatedAt:               now,
		UpdatedBy:               cmd.Actor,
	}
	if err := u.Repo.Create(ctx, template); err != nil {
		return entities.Template{}, err
	}

	logger.Info("template registered",
		"event", "template_registered",
		"module", "deployment-lifecycle/template-catalog",
		"layer", "application",
		"template_id", id,
		"template_name", doc.Name,
	)
	return template, nil
}

func (u CreateTemplateUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
