package commands

import (
	"context"
	"fmt"
	"log/slog"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/application"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/ports"
)

type DeleteTemplateCommand struct {
	TemplateID string
}

type DeleteTemplateUseCase struct {
	Repo   ports.Repository
	Usage  ports.UsageChecker
	Logger *slog.Logger
}

func (u DeleteTemplateUseCase) Execute(ctx context.Context, cmd DeleteTemplateCommand) error {
	logger := application.ResolveLogger(u.Logger)

	if _, err := u.Repo.Get(ctx, cmd.TemplateID); err != nil {
		return err
	}
	if u.Usage != nil {
		inUse, err := u.Usage.InUse(ctx, cmd.TemplateID)
		if err != nil {
			return fmt.Errorf("check template usage: %w", err)
		}
		if inUse {
			return fmt.Errorf("%w: template %s is referenced by existing deployments", domainerrors.ErrTemplateInUse, cmd.TemplateID)
		}
	}
	if err := u.Repo.Delete(ctx, cmd.TemplateID); err != nil {
		return err
	}

	logger.Info("template deleted",
		"event", "template_deleted",
		"module", "deployment-lifecycle/template-catalog",
		"layer", "application",
		"template_id", cmd.TemplateID,
	)
	return nil
}
