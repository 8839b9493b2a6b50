package entities

import "time"

// Knob bounds and defaults applied when a creation request leaves them
// unset. Timeouts are minutes.
const (
	DefaultPerProviderMaxRetries = 3
	MaxPerProviderMaxRetries     = 10
	DefaultTotalTimeout          = 14400
	MaxTotalTimeout              = 14400
	DefaultPerProviderTimeout    = 1440
	MaxPerProviderTimeout        = 1440
)

// Deployment is one requested instantiation of a catalog template.
// MaxProviders nil means no cap on the providers tried.
type Deployment struct {
	ID                    string
	TemplateID            string
	UserGroup             string
	Inputs                map[string]any
	PerProviderMaxRetries int
	MaxProviders          *int
	TotalTimeout          int
	PerProviderTimeout    int
	KeepLastAttempt       bool
	TargetProvider        string
	TargetRegion          string
	CreatedAt             time.Time
	CreatedBy             string
	UpdatedAt             time.Time
	UpdatedBy             string
}
