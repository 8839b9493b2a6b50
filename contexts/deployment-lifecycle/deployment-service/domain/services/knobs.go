package services

import (
	"fmt"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
)

// KnobInput carries the scheduling knobs as submitted: nil means the
// caller left the knob out and wants the default.
type KnobInput struct {
	PerProviderMaxRetries *int
	MaxProviders          *int
	TotalTimeout          *int
	PerProviderTimeout    *int
}

// Knobs is the resolved form stored on the deployment.
type Knobs struct {
	PerProviderMaxRetries int
	MaxProviders          *int
	TotalTimeout          int
	PerProviderTimeout    int
}

// ResolveKnobs applies defaults to absent knobs and range-checks the
// rest. The per-provider timeout may never exceed the total one.
func ResolveKnobs(input KnobInput) (Knobs, error) {
	knobs := Knobs{
		PerProviderMaxRetries: entities.DefaultPerProviderMaxRetries,
		TotalTimeout:          entities.DefaultTotalTimeout,
		PerProviderTimeout:    entities.DefaultPerProviderTimeout,
	}

	if input.PerProviderMaxRetries != nil {
		value := *input.PerProviderMaxRetries
		if value < 1 || value > entities.MaxPerProviderMaxRetries {
			return Knobs{}, fmt.Errorf("%w: per_provider_max_retries must be in [1,%d]",
				domainerrors.ErrInvalidDeployment, entities.MaxPerProviderMaxRetries)
		}
		knobs.PerProviderMaxRetries = value
	}
	if input.MaxProviders != nil {
		if *input.MaxProviders < 1 {
			return Knobs{}, fmt.Errorf("%w: max_providers must be at least 1", domainerrors.ErrInvalidDeployment)
		}
		capped := *input.MaxProviders
		knobs.MaxProviders = &capped
	}
	if input.TotalTimeout != nil {
		value := *input.TotalTimeout
		if value < 1 || value > entities.MaxTotalTimeout {
			return Knobs{}, fmt.Errorf("%w: total_timeout must be in [1,%d] minutes",
				domainerrors.ErrInvalidDeployment, entities.MaxTotalTimeout)
		}
		knobs.TotalTimeout = value
	}
	if input.PerProviderTimeout != nil {
		value := *input.PerProviderTimeout
		if value < 1 || value > entities.MaxPerProviderTimeout {
			return Knobs{}, fmt.Errorf("%w: per_provider_timeout must be in [1,%d] minutes",
				domainerrors.ErrInvalidDeployment, entities.MaxPerProviderTimeout)
		}
		if value > knobs.TotalTimeout {
			return Knobs{}, fmt.Errorf("%w: per_provider_timeout cannot exceed total_timeout", domainerrors.ErrInvalidDeployment)
		}
		knobs.PerProviderTimeout = value
	} else if knobs.PerProviderTimeout > knobs.TotalTimeout {
		// The stock default clamps to a shorter explicit total.
		knobs.PerProviderTimeout = knobs.TotalTimeout
	}
	return knobs, nil
}

// ParseResourceStatus maps a wire name to the enum; empty input falls
// back to the initial state.
func ParseResourceStatus(value string) (entities.ResourceStatus, error) {
	if value == "" {
		return entities.ResourceStatusInitial, nil
	}
	status := entities.ResourceStatus(value)
	if !entities.IsSupportedResourceStatus(status) {
		return "", fmt.Errorf("%w: unknown status %q", domainerrors.ErrInvalidResource, value)
	}
	return status, nil
}
