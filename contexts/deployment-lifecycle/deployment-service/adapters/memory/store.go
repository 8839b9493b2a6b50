package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	application "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/application"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
	"github.com/infn-datacloud/orchestrator/internal/shared/outbox"

	"github.com/google/uuid"
)

// Store is an in-memory adapter implementing the deployment ports for
// local runtime and tests. Outbox rows live alongside the deployments
// they were written with, mirroring the transactional SQL adapter.
type Store struct {
	mu          sync.RWMutex
	deployments map[string]entities.Deployment
	resources   map[string]map[string]entities.Resource
	outbox      map[string]ports.OutboxMessage
	logger      *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{
		deployments: make(map[string]entities.Deployment),
		resources:   make(map[string]map[string]entities.Resource),
		outbox:      make(map[string]ports.OutboxMessage),
		logger:      application.ResolveLogger(logger),
	}
}

func (s *Store) CreateDeployment(_ context.Context, deployment entities.Deployment, envelope ports.EventEnvelope, topic string) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	createdAt := envelope.OccurredAtUTC.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.deployments[deployment.ID] = deployment
	s.outbox[outboxID] = ports.OutboxMessage{
		ID:        outboxID,
		EventType: strings.TrimSpace(envelope.EventType),
		Topic:     strings.TrimSpace(topic),
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: createdAt,
	}
	return nil
}

func (s *Store) GetDeployment(_ context.Context, id string) (entities.Deployment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deployment, ok := s.deployments[id]
	if !ok {
		return entities.Deployment{}, domainerrors.ErrDeploymentNotFound
	}
	return deployment, nil
}

func (s *Store) ListDeployments(_ context.Context, filter ports.DeploymentFilter) ([]entities.Deployment, int64, error) {
	s.mu.RLock()
	matched := make([]entities.Deployment, 0, len(s.deployments))
	for _, deployment := range s.deployments {
		if matchesDeployment(deployment, filter) {
			matched = append(matched, deployment)
		}
	}
	s.mu.RUnlock()

	sortDeployments(matched, filter.OrderClause)

	total := int64(len(matched))
	offset := filter.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return matched[offset:end], total, nil
}

func (s *Store) UpdateDeployment(_ context.Context, id string, patch ports.DeploymentPatch, actor string, now time.Time) (entities.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deployment, ok := s.deployments[id]
	if !ok {
		return entities.Deployment{}, domainerrors.ErrDeploymentNotFound
	}
	if patch.UserGroup != nil {
		deployment.UserGroup = *patch.UserGroup
	}
	deployment.UpdatedAt = now.UTC()
	deployment.UpdatedBy = actor
	s.deployments[id] = deployment
	return deployment, nil
}

func (s *Store) DeleteDeployment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.deployments[id]; !ok {
		return domainerrors.ErrDeploymentNotFound
	}
	delete(s.deployments, id)
	delete(s.resources, id)
	return nil
}

func (s *Store) CountDeploymentsByTemplate(_ context.Context, templateID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, deployment := range s.deployments {
		if deployment.TemplateID == templateID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CreateResource(_ context.Context, resource entities.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.deployments[resource.DeploymentID]; !ok {
		return domainerrors.ErrDeploymentNotFound
	}
	byDeployment := s.resources[resource.DeploymentID]
	if byDeployment == nil {
		byDeployment = make(map[string]entities.Resource)
		s.resources[resource.DeploymentID] = byDeployment
	}
	byDeployment[resource.ID] = resource
	return nil
}

func (s *Store) GetResource(_ context.Context, deploymentID string, resourceID string) (entities.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.deployments[deploymentID]; !ok {
		return entities.Resource{}, domainerrors.ErrDeploymentNotFound
	}
	resource, ok := s.resources[deploymentID][resourceID]
	if !ok {
		return entities.Resource{}, domainerrors.ErrResourceNotFound
	}
	return resource, nil
}

func (s *Store) ListResources(_ context.Context, deploymentID string, filter ports.ResourceFilter) ([]entities.Resource, int64, error) {
	s.mu.RLock()
	matched := make([]entities.Resource, 0, len(s.resources[deploymentID]))
	for _, resource := range s.resources[deploymentID] {
		if matchesResource(resource, filter) {
			matched = append(matched, resource)
		}
	}
	s.mu.RUnlock()

	sortResources(matched, filter.OrderClause)

	total := int64(len(matched))
	offset := filter.Offset
	if offset > len(matched) {
		offset = len(matched)
	}
	end := len(matched)
	if filter.Limit > 0 && offset+filter.Limit < end {
		end = offset + filter.Limit
	}
	return matched[offset:end], total, nil
}

func (s *Store) UpdateResource(_ context.Context, deploymentID string, resourceID string, patch ports.ResourcePatch, now time.Time) (entities.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.deployments[deploymentID]; !ok {
		return entities.Resource{}, domainerrors.ErrDeploymentNotFound
	}
	resource, ok := s.resources[deploymentID][resourceID]
	if !ok {
		return entities.Resource{}, domainerrors.ErrResourceNotFound
	}
	if patch.Status != nil {
		resource.Status = *patch.Status
	}
	if patch.IMVMIndex != nil {
		resource.IMVMIndex = patch.IMVMIndex
	}
	if patch.Info != nil {
		resource.Info = patch.Info
	}
	resource.UpdatedAt = now.UTC()
	s.resources[deploymentID][resourceID] = resource
	return resource, nil
}

func (s *Store) DeleteResource(_ context.Context, deploymentID string, resourceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.deployments[deploymentID]; !ok {
		return domainerrors.ErrDeploymentNotFound
	}
	if _, ok := s.resources[deploymentID][resourceID]; !ok {
		return domainerrors.ErrResourceNotFound
	}
	delete(s.resources[deploymentID], resourceID)
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.Status != outbox.StatusPending {
			continue
		}
		items = append(items, row)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return fmt.Errorf("outbox row not found: %s", outboxID)
	}
	row.Status = outbox.StatusPublished
	s.outbox[row.ID] = row
	return nil
}

func (s *Store) MarkOutboxFailed(_ context.Context, outboxID string, maxAttempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return fmt.Errorf("outbox row not found: %s", outboxID)
	}
	row.RetryCount++
	if row.RetryCount >= maxAttempts {
		row.Status = outbox.StatusFailed
	}
	s.outbox[row.ID] = row
	return nil
}

// OutboxRows returns a snapshot of all outbox rows ordered by creation
// time, for tests and diagnostics.
func (s *Store) OutboxRows() []ports.OutboxMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]ports.OutboxMessage, 0, len(s.outbox))
	for _, row := range s.outbox {
		items = append(items, row)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func matchesDeployment(deployment entities.Deployment, filter ports.DeploymentFilter) bool {
	if !containsFold(deployment.UserGroup, filter.UserGroup) ||
		!containsFold(deployment.TargetProvider, filter.TargetProvider) ||
		!containsFold(deployment.TargetRegion, filter.TargetRegion) {
		return false
	}
	if filter.TemplateID != "" && deployment.TemplateID != filter.TemplateID {
		return false
	}
	if filter.TotalTimeoutLTE != nil && deployment.TotalTimeout > *filter.TotalTimeoutLTE {
		return false
	}
	if filter.TotalTimeoutGTE != nil && deployment.TotalTimeout < *filter.TotalTimeoutGTE {
		return false
	}
	if filter.CreatedBefore != nil && !deployment.CreatedAt.Before(*filter.CreatedBefore) {
		return false
	}
	if filter.CreatedAfter != nil && !deployment.CreatedAt.After(*filter.CreatedAfter) {
		return false
	}
	return true
}

func containsFold(value string, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(needle))
}

func matchesResource(resource entities.Resource, filter ports.ResourceFilter) bool {
	if filter.Status != "" && string(resource.Status) != filter.Status {
		return false
	}
	if filter.ToscaNodeName != "" && resource.ToscaNodeName != filter.ToscaNodeName {
		return false
	}
	if filter.ToscaNodeType != "" && resource.ToscaNodeType != filter.ToscaNodeType {
		return false
	}
	return true
}

func sortDeployments(items []entities.Deployment, orderClause string) {
	field, desc := "created_at", true
	if orderClause != "" {
		parts := strings.Fields(orderClause)
		field = parts[0]
		desc = len(parts) > 1 && strings.EqualFold(parts[1], "DESC")
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return lessDeployment(items[j], items[i], field)
		}
		return lessDeployment(items[i], items[j], field)
	})
}

func lessDeployment(a, b entities.Deployment, field string) bool {
	switch field {
	case "user_group":
		return a.UserGroup < b.UserGroup
	case "template_id":
		return a.TemplateID < b.TemplateID
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func sortResources(items []entities.Resource, orderClause string) {
	field, desc := "created_at", true
	if orderClause != "" {
		parts := strings.Fields(orderClause)
		field = parts[0]
		desc = len(parts) > 1 && strings.EqualFold(parts[1], "DESC")
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return lessResource(items[j], items[i], field)
		}
		return lessResource(items[i], items[j], field)
	})
}

func lessResource(a, b entities.Resource, field string) bool {
	switch field {
	case "status":
		return a.Status < b.Status
	case "tosca_node_name":
		return a.ToscaNodeName < b.ToscaNodeName
	case "updated_at":
		return a.UpdatedAt.Before(b.UpdatedAt)
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}
