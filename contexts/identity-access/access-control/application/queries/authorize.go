package queries

import (
	"context"
	"log/slog"

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/application"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/domain/entities"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/access-control/ports"
)

// AuthorizeUseCase asks the configured backend whether a request may
// proceed. Backend failures surface as errors so the transport layer can
// distinguish unavailability from denial.
type AuthorizeUseCase struct {
	Authorizer ports.Authorizer
	Metrics    ports.DecisionRecorder
	Logger     *slog.Logger
}

func (uc AuthorizeUseCase) Execute(ctx context.Context, request entities.AccessRequest) (entities.Decision, error) {
	decision, err := uc.Authorizer.Authorize(ctx, request)
	if err != nil {
		if uc.Metrics != nil {
			uc.Metrics.CountDecision(uc.Authorizer.Mode(), false)
		}
		application.ResolveLogger(uc.Logger).Error("authorization backend failed",
			"event", "authz_backend_failed",
			"module", "identity-access/access-control",
			"layer", "application",
			"mode", uc.Authorizer.Mode(),
			"method", request.Method,
			"path", request.Path,
			"error", err.Error(),
		)
		return entities.Decision{}, err
	}

	if uc.Metrics != nil {
		uc.Metrics.CountDecision(decision.Mode, decision.Allowed)
	}
	if !decision.Allowed {
		application.ResolveLogger(uc.Logger).Info("request denied",
			"event", "authz_denied",
			"module", "identity-access/access-control",
			"layer", "application",
			"mode", decision.Mode,
			"method", request.Method,
			"path", request.Path,
			"subject", request.Principal.Subject,
			"reason", decision.Reason,
		)
	}
	return decision, nil
}
