package sqladapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/deployment-service/ports"
	"github.com/infn-datacloud/orchestrator/internal/shared/outbox"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Models returns the row types this adapter migrates.
func Models() []any {
	return []any{&deploymentModel{}, &resourceModel{}, &outboxModel{}}
}

func (r *Repository) CreateDeployment(ctx context.Context, deployment entities.Deployment, envelope ports.EventEnvelope, topic string) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	depRow := deploymentModelFromEntity(deployment)
	outRow := outboxModel{
		OutboxID:  strings.TrimSpace(envelope.EventID),
		EventType: strings.TrimSpace(envelope.EventType),
		Topic:     strings.TrimSpace(topic),
		Payload:   payload,
		Status:    outbox.StatusPending,
		CreatedAt: envelope.OccurredAtUTC.UTC(),
	}
	if outRow.OutboxID == "" {
		outRow.OutboxID = uuid.NewString()
	}
	if outRow.CreatedAt.IsZero() {
		outRow.CreatedAt = time.Now().UTC()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&depRow).Error; err != nil {
			return err
		}
		return tx.Create(&outRow).Error
	})
}

func (r *Repository) GetDeployment(ctx context.Context, id string) (entities.Deployment, error) {
	var row deploymentModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Deployment{}, domainerrors.ErrDeploymentNotFound
		}
		return entities.Deployment{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListDeployments(ctx context.Context, filter ports.DeploymentFilter) ([]entities.Deployment, int64, error) {
	tx := r.db.WithContext(ctx).Model(&deploymentModel{})
	tx = applyContains(tx, "user_group", filter.UserGroup)
	tx = applyContains(tx, "target_provider", filter.TargetProvider)
	tx = applyContains(tx, "target_region", filter.TargetRegion)
	if filter.TemplateID != "" {
		tx = tx.Where("template_id = ?", filter.TemplateID)
	}
	if filter.TotalTimeoutLTE != nil {
		tx = tx.Where("total_timeout <= ?", *filter.TotalTimeoutLTE)
	}
	if filter.TotalTimeoutGTE != nil {
		tx = tx.Where("total_timeout >= ?", *filter.TotalTimeoutGTE)
	}
	if filter.CreatedBefore != nil {
		tx = tx.Where("created_at < ?", filter.CreatedBefore.UTC())
	}
	if filter.CreatedAfter != nil {
		tx = tx.Where("created_at > ?", filter.CreatedAfter.UTC())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := filter.OrderClause
	if order == "" {
		order = "created_at DESC"
	}

	var rows []deploymentModel
	if err := tx.Order(order).Offset(filter.Offset).Limit(filter.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.Deployment, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) UpdateDeployment(ctx context.Context, id string, patch ports.DeploymentPatch, actor string, now time.Time) (entities.Deployment, error) {
	updates := map[string]any{
		"updated_at": now.UTC(),
		"updated_by": actor,
	}
	if patch.UserGroup != nil {
		updates["user_group"] = *patch.UserGroup
	}

	result := r.db.WithContext(ctx).Model(&deploymentModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return entities.Deployment{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Deployment{}, domainerrors.ErrDeploymentNotFound
	}
	return r.GetDeployment(ctx, id)
}

func (r *Repository) DeleteDeployment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deployment_id = ?", id).Delete(&resourceModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&deploymentModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrDeploymentNotFound
		}
		return nil
	})
}

func (r *Repository) CountDeploymentsByTemplate(ctx context.Context, templateID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&deploymentModel{}).Where("template_id = ?", templateID).Count(&count).Error
	return count, err
}

func (r *Repository) CreateResource(ctx context.Context, resource entities.Resource) error {
	row := resourceModelFromEntity(resource)
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r *Repository) GetResource(ctx context.Context, deploymentID string, resourceID string) (entities.Resource, error) {
	var row resourceModel
	err := r.db.WithContext(ctx).Where("deployment_id = ? AND id = ?", deploymentID, resourceID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Resource{}, r.resourceNotFound(ctx, deploymentID)
		}
		return entities.Resource{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListResources(ctx context.Context, deploymentID string, filter ports.ResourceFilter) ([]entities.Resource, int64, error) {
	tx := r.db.WithContext(ctx).Model(&resourceModel{}).Where("deployment_id = ?", deploymentID)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.ToscaNodeName != "" {
		tx = tx.Where("tosca_node_name = ?", filter.ToscaNodeName)
	}
	if filter.ToscaNodeType != "" {
		tx = tx.Where("tosca_node_type = ?", filter.ToscaNodeType)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := filter.OrderClause
	if order == "" {
		order = "created_at DESC"
	}

	var rows []resourceModel
	if err := tx.Order(order).Offset(filter.Offset).Limit(filter.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.Resource, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) UpdateResource(ctx context.Context, deploymentID string, resourceID string, patch ports.ResourcePatch, now time.Time) (entities.Resource, error) {
	updates := map[string]any{
		"updated_at": now.UTC(),
	}
	if patch.Status != nil {
		updates["status"] = string(*patch.Status)
	}
	if patch.IMVMIndex != nil {
		updates["im_vm_index"] = *patch.IMVMIndex
	}
	if patch.Info != nil {
		info, err := json.Marshal(patch.Info)
		if err != nil {
			return entities.Resource{}, err
		}
		updates["info"] = info
	}

	result := r.db.WithContext(ctx).Model(&resourceModel{}).
		Where("deployment_id = ? AND id = ?", deploymentID, resourceID).
		Updates(updates)
	if result.Error != nil {
		return entities.Resource{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Resource{}, r.resourceNotFound(ctx, deploymentID)
	}
	return r.GetResource(ctx, deploymentID, resourceID)
}

func (r *Repository) DeleteResource(ctx context.Context, deploymentID string, resourceID string) error {
	result := r.db.WithContext(ctx).Where("deployment_id = ? AND id = ?", deploymentID, resourceID).Delete(&resourceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.resourceNotFound(ctx, deploymentID)
	}
	return nil
}

// resourceNotFound decides which side of a scoped lookup missed: the
// deployment itself or the resource under it.
func (r *Repository) resourceNotFound(ctx context.Context, deploymentID string) error {
	if _, err := r.GetDeployment(ctx, deploymentID); err != nil {
		return err
	}
	return domainerrors.ErrResourceNotFound
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", outbox.StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			ID:         row.OutboxID,
			EventType:  row.EventType,
			Topic:      row.Topic,
			Payload:    append([]byte(nil), row.Payload...),
			Status:     row.Status,
			RetryCount: row.RetryCount,
			CreatedAt:  row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       outbox.StatusPublished,
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("outbox row not found: %s", outboxID)
	}
	return nil
}

func (r *Repository) MarkOutboxFailed(ctx context.Context, outboxID string, maxAttempts int) error {
	id := strings.TrimSpace(outboxID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row outboxModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("outbox_id = ?", id).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("outbox row not found: %s", outboxID)
			}
			return err
		}
		updates := map[string]any{"retry_count": row.RetryCount + 1}
		if row.RetryCount+1 >= maxAttempts {
			updates["status"] = outbox.StatusFailed
		}
		return tx.Model(&outboxModel{}).Where("outbox_id = ?", id).Updates(updates).Error
	})
}

type deploymentModel struct {
	ID                    string    `gorm:"column:id;primaryKey"`
	TemplateID            string    `gorm:"column:template_id"`
	UserGroup             string    `gorm:"column:user_group"`
	Inputs                []byte    `gorm:"column:inputs"`
	PerProviderMaxRetries int       `gorm:"column:per_provider_max_retries"`
	MaxProviders          *int      `gorm:"column:max_providers"`
	TotalTimeout          int       `gorm:"column:total_timeout"`
	PerProviderTimeout    int       `gorm:"column:per_provider_timeout"`
	KeepLastAttempt       bool      `gorm:"column:keep_last_attempt"`
	TargetProvider        string    `gorm:"column:target_provider"`
	TargetRegion          string    `gorm:"column:target_region"`
	CreatedAt             time.Time `gorm:"column:created_at"`
	CreatedBy             string    `gorm:"column:created_by"`
	UpdatedAt             time.Time `gorm:"column:updated_at"`
	UpdatedBy             string    `gorm:"column:updated_by"`
}

func (deploymentModel) TableName() string {
	return "deployments"
}

func deploymentModelFromEntity(item entities.Deployment) deploymentModel {
	inputs := map[string]any{}
	if item.Inputs != nil {
		inputs = item.Inputs
	}
	inputsRaw, _ := json.Marshal(inputs)
	return deploymentModel{
		ID:                    strings.TrimSpace(item.ID),
		TemplateID:            strings.TrimSpace(item.TemplateID),
		UserGroup:             strings.TrimSpace(item.UserGroup),
		Inputs:                inputsRaw,
		PerProviderMaxRetries: item.PerProviderMaxRetries,
		MaxProviders:          item.MaxProviders,
		TotalTimeout:          item.TotalTimeout,
		PerProviderTimeout:    item.PerProviderTimeout,
		KeepLastAttempt:       item.KeepLastAttempt,
		TargetProvider:        strings.TrimSpace(item.TargetProvider),
		TargetRegion:          strings.TrimSpace(item.TargetRegion),
		CreatedAt:             item.CreatedAt.UTC(),
		CreatedBy:             item.CreatedBy,
		UpdatedAt:             item.UpdatedAt.UTC(),
		UpdatedBy:             item.UpdatedBy,
	}
}

func (m deploymentModel) toEntity() entities.Deployment {
	inputs := map[string]any{}
	if len(m.Inputs) > 0 {
		_ = json.Unmarshal(m.Inputs, &inputs)
	}
	return entities.Deployment{
		ID:                    m.ID,
		TemplateID:            m.TemplateID,
		UserGroup:             m.UserGroup,
		Inputs:                inputs,
		PerProviderMaxRetries: m.PerProviderMaxRetries,
		MaxProviders:          m.MaxProviders,
		TotalTimeout:          m.TotalTimeout,
		PerProviderTimeout:    m.PerProviderTimeout,
		KeepLastAttempt:       m.KeepLastAttempt,
		TargetProvider:        m.TargetProvider,
		TargetRegion:          m.TargetRegion,
		CreatedAt:             m.CreatedAt.UTC(),
		CreatedBy:             m.CreatedBy,
		UpdatedAt:             m.UpdatedAt.UTC(),
		UpdatedBy:             m.UpdatedBy,
	}
}

type resourceModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	DeploymentID  string    `gorm:"column:deployment_id"`
	IMVMIndex     *int      `gorm:"column:im_vm_index"`
	Status        string    `gorm:"column:status"`
	ToscaNodeName string    `gorm:"column:tosca_node_name"`
	ToscaNodeType string    `gorm:"column:tosca_node_type"`
	Info          []byte    `gorm:"column:info"`
	RequiredBy    []byte    `gorm:"column:required_by"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (resourceModel) TableName() string {
	return "resources"
}

func resourceModelFromEntity(item entities.Resource) resourceModel {
	info := map[string]any{}
	if item.Info != nil {
		info = item.Info
	}
	infoRaw, _ := json.Marshal(info)
	requiredBy := []string{}
	if item.RequiredBy != nil {
		requiredBy = item.RequiredBy
	}
	requiredByRaw, _ := json.Marshal(requiredBy)
	return resourceModel{
		ID:            strings.TrimSpace(item.ID),
		DeploymentID:  strings.TrimSpace(item.DeploymentID),
		IMVMIndex:     item.IMVMIndex,
		Status:        string(item.Status),
		ToscaNodeName: strings.TrimSpace(item.ToscaNodeName),
		ToscaNodeType: strings.TrimSpace(item.ToscaNodeType),
		Info:          infoRaw,
		RequiredBy:    requiredByRaw,
		CreatedAt:     item.CreatedAt.UTC(),
		UpdatedAt:     item.UpdatedAt.UTC(),
	}
}

func (m resourceModel) toEntity() entities.Resource {
	info := map[string]any{}
	if len(m.Info) > 0 {
		_ = json.Unmarshal(m.Info, &info)
	}
	requiredBy := []string{}
	if len(m.RequiredBy) > 0 {
		_ = json.Unmarshal(m.RequiredBy, &requiredBy)
	}
	return entities.Resource{
		ID:            m.ID,
		DeploymentID:  m.DeploymentID,
		IMVMIndex:     m.IMVMIndex,
		Status:        entities.ResourceStatus(m.Status),
		ToscaNodeName: m.ToscaNodeName,
		ToscaNodeType: m.ToscaNodeType,
		Info:          info,
		RequiredBy:    requiredBy,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

func applyContains(tx *gorm.DB, column string, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return tx
	}
	return tx.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(value)+"%")
}

type outboxModel struct {
	OutboxID    string     `gorm:"column:outbox_id;primaryKey"`
	EventType   string     `gorm:"column:event_type"`
	Topic       string     `gorm:"column:topic"`
	Payload     []byte     `gorm:"column:payload"`
	Status      string     `gorm:"column:status"`
	RetryCount  int        `gorm:"column:retry_count"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	PublishedAt *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "deployment_outbox"
}
