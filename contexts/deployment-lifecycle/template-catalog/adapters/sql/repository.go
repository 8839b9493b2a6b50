package sqladapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/deployment-lifecycle/template-catalog/ports"
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
	return []any{&templateModel{}}
}

func (r *Repository) Create(ctx context.Context, template entities.Template) error {
	row := templateModelFromEntity(template)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrTemplateAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (entities.Template, error) {
	var row templateModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Template{}, domainerrors.ErrTemplateNotFound
		}
		return entities.Template{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]entities.Template, int64, error) {
	tx := r.db.WithContext(ctx).Model(&templateModel{})
	tx = applyContains(tx, "name", filter.Name)
	tx = applyContains(tx, "version", filter.Version)
	tx = applyContains(tx, "target_provider_type", filter.TargetProviderType)
	tx = applyContains(tx, "tosca_definitions_version", filter.ToscaDefinitionsVersion)
	if filter.CreatedBefore != nil {
		tx = tx.Where("created_at < ?", filter.CreatedBefore.UTC())
	}
	if filter.CreatedAfter != nil {
		tx = tx.Where("created_at > ?", filter.CreatedAfter.UTC())
	}
	if filter.UpdatedBefore != nil {
		tx = tx.Where("updated_at < ?", filter.UpdatedBefore.UTC())
	}
	if filter.UpdatedAfter != nil {
		tx = tx.Where("updated_at > ?", filter.UpdatedAfter.UTC())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := filter.OrderClause
	if order == "" {
		order = "created_at DESC"
	}

	var rows []templateModel
	if err := tx.Order(order).Offset(filter.Offset).Limit(filter.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.Template, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) Replace(ctx context.Context, id string, replacement ports.Replacement, now time.Time) (entities.Template, error) {
	updates := map[string]any{
		"content":                   replacement.Content,
		"content_hash":              replacement.ContentHash,
		"name":                      replacement.Name,
		"version":                   replacement.Version,
		"target_provider_type":      replacement.TargetProviderType,
		"tosca_definitions_version": replacement.ToscaDefinitionsVersion,
		"updated_at":                now.UTC(),
		"updated_by":                replacement.UpdatedBy,
	}

	result := r.db.WithContext(ctx).Model(&templateModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return entities.Template{}, domainerrors.ErrTemplateAlreadyExists
		}
		return entities.Template{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Template{}, domainerrors.ErrTemplateNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&templateModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrTemplateNotFound
	}
	return nil
}

type templateModel struct {
	ID                      string    `gorm:"column:id;primaryKey;size:36"`
	Content                 string    `gorm:"column:content;type:text"`
	ContentHash             string    `gorm:"column:content_hash;size:64;uniqueIndex:uq_templates_content_hash"`
	Name                    string    `gorm:"column:name;size:255"`
	Version                 string    `gorm:"column:version;size:255"`
	TargetProviderType      string    `gorm:"column:target_provider_type;size:255"`
	ToscaDefinitionsVersion string    `gorm:"column:tosca_definitions_version;size:255"`
	CreatedAt               time.Time `gorm:"column:created_at"`
	CreatedBy               string    `gorm:"column:created_by;size:255"`
	UpdatedAt               time.Time `gorm:"column:updated_at"`
	UpdatedBy               string    `gorm:"column:updated_by;size:255"`
}

func (templateModel) TableName() string {
	return "templates"
}

func templateModelFromEntity(template entities.Template) templateModel {
	return templateModel{
		ID:                      template.ID,
		Content:                 template.Content,
		ContentHash:             template.ContentHash,
		Name:                    template.Name,
		Version:                 template.Version,
		TargetProviderType:      template.TargetProviderType,
		ToscaDefinitionsVersion: template.ToscaDefinitionsVersion,
		CreatedAt:               template.CreatedAt.UTC(),
		CreatedBy:               template.CreatedBy,
		UpdatedAt:               template.UpdatedAt.UTC(),
		UpdatedBy:               template.UpdatedBy,
	}
}

func (m templateModel) toEntity() entities.Template {
	return entities.Template{
		ID:                      m.ID,
		Content:                 m.Content,
		ContentHash:             m.ContentHash,
		Name:                    m.Name,
		Version:                 m.Version,
		TargetProviderType:      m.TargetProviderType,
		ToscaDefinitionsVersion: m.ToscaDefinitionsVersion,
		CreatedAt:               m.CreatedAt.UTC(),
		CreatedBy:               m.CreatedBy,
		UpdatedAt:               m.UpdatedAt.UTC(),
		UpdatedBy:               m.UpdatedBy,
	}
}

func applyContains(tx *gorm.DB, column string, value string) *gorm.DB {
	value = strings.TrimSpace(value)
	if value == "" {
		return tx
	}
	return tx.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(value)+"%")
}

func isDuplicateKey(err error) bool {
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
