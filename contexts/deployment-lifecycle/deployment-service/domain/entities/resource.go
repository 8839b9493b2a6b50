package entities

import "time"

// ResourceStatus names the provisioning state of one resource. The
// uppercase names are the wire form used by clients and workers.
type ResourceStatus string

const (
	ResourceStatusConfigured  ResourceStatus = "CONFIGURED"
	ResourceStatusConfiguring ResourceStatus = "CONFIGURING"
	ResourceStatusCreated     ResourceStatus = "CREATED"
	ResourceStatusCreating    ResourceStatus = "CREATING"
	ResourceStatusDeleted     ResourceStatus = "DELETED"
	ResourceStatusDeleting    ResourceStatus = "DELETING"
	ResourceStatusError       ResourceStatus = "ERROR"
	ResourceStatusInitial     ResourceStatus = "INITIAL"
	ResourceStatusStarted     ResourceStatus = "STARTED"
	ResourceStatusStarting    ResourceStatus = "STARTING"
	ResourceStatusStopped     ResourceStatus = "STOPPED"
	ResourceStatusStopping    ResourceStatus = "STOPPING"
)

func SupportedResourceStatuses() []ResourceStatus {
	return []ResourceStatus{
		ResourceStatusConfigured,
		ResourceStatusConfiguring,
		ResourceStatusCreated,
		ResourceStatusCreating,
		ResourceStatusDeleted,
		ResourceStatusDeleting,
		ResourceStatusError,
		ResourceStatusInitial,
		ResourceStatusStarted,
		ResourceStatusStarting,
		ResourceStatusStopped,
		ResourceStatusStopping,
	}
}

func IsSupportedResourceStatus(value ResourceStatus) bool {
	for _, status := range SupportedResourceStatuses() {
		if status == value {
			return true
		}
	}
	return false
}

// Resource is one TOSCA node materialized (or about to be) for a
// deployment. IMVMIndex is set only for compute nodes that exist in the
// infrastructure manager; Info carries the manager's view of the node.
type Resource struct {
	ID            string
	DeploymentID  string
	IMVMIndex     *int
	Status        ResourceStatus
	ToscaNodeName string
	ToscaNodeType string
	Info          map[string]any
	RequiredBy    []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
