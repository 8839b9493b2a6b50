package v1

// MsgVersion is the version stamp carried by every creation message.
const MsgVersion = "v1.0.0"

// CreateDeployment is the payload consumed by the provisioning workers
// when a deployment is requested. It rides inside the event envelope on
// the deployment creation topic. Generated-contract-only; field names
// are frozen.
type CreateDeployment struct {
	MsgVersion             string         `json:"msg_version"`
	DeploymentID           string         `json:"deployment_id"`
	Template               string         `json:"template"`
	Inputs                 map[string]any `json:"inputs"`
	UserGroup              string         `json:"user_group"`
	MaxProviders           *int           `json:"max_providers"`
	PerProviderMaxRetries  int            `json:"per_provider_max_retries"`
	TotalTimeoutMins       int            `json:"total_timeout_mins"`
	PerProviderTimeoutMins int            `json:"per_provider_timeout_mins"`
	KeepLastAttempt        bool           `json:"keep_last_attempt"`
	TargetProvider         string         `json:"target_provider"`
	TargetRegion           string         `json:"target_region"`
	OwnersSSHKeys          []string       `json:"owners_ssh_keys"`
	CreatedBy              string         `json:"created_by"`
}
