package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/services"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
	messagesv1 "github.com/infn-datacloud/orchestrator/contracts/gen/messages/v1"
)

const defaultCreationTopic = "orchestrator.deployments.create"

type CreateDeploymentCommand struct {
	TemplateID            string
	UserGroup             string
	Inputs                map[string]any
	PerProviderMaxRetries *int
	MaxProviders          *int
	TotalTimeout          *int
	PerProviderTimeout    *int
	KeepLastAttempt       bool
	TargetProvider        string
	TargetRegion          string
	Subject               string
	Issuer                string
	Actor                 string
}

type CreateDeploymentUseCase struct {
	Repo          ports.Repository
	Templates     ports.TemplateSource
	OwnerKeys     ports.OwnerKeySource
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	CreationTopic string
	Logger        *slog.Logger
}

func (u CreateDeploymentUseCase) Execute(ctx context.Context, cmd CreateDeploymentCommand) (entities.Deployment, error) {
	logger := application.ResolveLogger(u.Logger)

	userGroup := strings.TrimSpace(cmd.UserGroup)
	templateID := strings.TrimSpace(cmd.TemplateID)
	if userGroup == "" {
		return entities.Deployment{}, fmt.Errorf("%w: user_group is required", domainerrors.ErrInvalidDeployment)
	}
	if templateID == "" {
		return entities.Deployment{}, fmt.Errorf("%w: template_id is required", domainerrors.ErrInvalidDeployment)
	}
	knobs, err := services.ResolveKnobs(services.KnobInput{
		PerProviderMaxRetries: cmd.PerProviderMaxRetries,
		MaxProviders:          cmd.MaxProviders,
		TotalTimeout:          cmd.TotalTimeout,
		PerProviderTimeout:    cmd.PerProviderTimeout,
	})
	if err != nil {
		return entities.Deployment{}, err
	}

	content, err := u.Templates.TemplateContent(ctx, templateID)
	if err != nil {
		return entities.Deployment{}, err
	}

	ownerKeys := []string{}
	if u.OwnerKeys != nil {
		ownerKeys, err = u.OwnerKeys.OwnerKeys(ctx, cmd.Subject, cmd.Issuer)
		if err != nil {
			return entities.Deployment{}, fmt.Errorf("resolve owner keys: %w", err)
		}
	}

	id, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Deployment{}, err
	}
	eventID, err := u.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Deployment{}, err
	}
	now := u.now()

	inputs := cmd.Inputs
	if inputs == nil {
		inputs = map[string]any{}
	}
	deployment := entities.Deployment{
		ID:                    id,
		TemplateID:            templateID,
		UserGroup:             userGroup,
		Inputs:                inputs,
		PerProviderMaxRetries: knobs.PerProviderMaxRetries,
		MaxProviders:          knobs.MaxProviders,
		TotalTimeout:          knobs.TotalTimeout,
		PerProviderTimeout:    knobs.PerProviderTimeout,
		KeepLastAttempt:       cmd.KeepLastAttempt,
		TargetProvider:        strings.TrimSpace(cmd.TargetProvider),
		TargetRegion:          strings.TrimSpace(cmd.TargetRegion),
		CreatedAt:             now,
		CreatedBy:             cmd.Actor,
		UpdatedAt:             now,
		UpdatedBy:             cmd.Actor,
	}

	message := messagesv1.CreateDeployment{
		MsgVersion:             messagesv1.MsgVersion,
		DeploymentID:           id,
		Template:               content,
		Inputs:                 inputs,
		UserGroup:              userGroup,
		MaxProviders:           knobs.MaxProviders,
		PerProviderMaxRetries:  knobs.PerProviderMaxRetries,
		TotalTimeoutMins:       knobs.TotalTimeout,
		PerProviderTimeoutMins: knobs.PerProviderTimeout,
		KeepLastAttempt:        cmd.KeepLastAttempt,
		TargetProvider:         deployment.TargetProvider,
		TargetRegion:           deployment.TargetRegion,
		OwnersSSHKeys:          ownerKeys,
		CreatedBy:              cmd.Actor,
	}
	envelope, err := newCreationEnvelope(eventID, id, now, message)
	if err != nil {
		return entities.Deployment{}, err
	}
	topic := u.CreationTopic
	if topic == "" {
		topic = defaultCreationTopic
	}

	if err := u.Repo.CreateDeployment(ctx, deployment, envelope, topic); err != nil {
		return entities.Deployment{}, err
	}

	logger.Info("deployment requested",
		"event", "deployment_requested",
		"module", "deployment-lifecycle/deployment-service",
		"layer", "application",
		"deployment_id", id,
		"template_id", templateID,
		"user_group", userGroup,
	)
	return deployment, nil
}

func (u CreateDeploymentUseCase) now() time.Time {
	if u.Clock == nil {
		return time.Now().UTC()
	}
	return u.Clock.Now().UTC()
}
