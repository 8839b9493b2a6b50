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

	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/entities"
	domainerrors "github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/domain/errors"
	"github.com/infn-datacloud/orchestrator/contexts/identity-access/user-registry/ports"
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
	return []any{&userModel{}}
}

func (r *Repository) Create(ctx context.Context, user entities.User) error {
	row := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) GetBySubIssuer(ctx context.Context, sub string, issuer string) (entities.User, error) {
	var row userModel
	err := r.db.WithContext(ctx).Where("sub = ? AND issuer = ?", sub, issuer).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, domainerrors.ErrUserNotFound
		}
		return entities.User{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]entities.User, int64, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{})
	tx = applyContains(tx, "sub", filter.Sub)
	tx = applyContains(tx, "name", filter.Name)
	tx = applyContains(tx, "email", filter.Email)
	tx = applyContains(tx, "issuer", filter.Issuer)
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

	var rows []userModel
	if err := tx.Order(order).Offset(filter.Offset).Limit(filter.Limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	items := make([]entities.User, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, total, nil
}

func (r *Repository) Update(ctx context.Context, id string, patch ports.Patch, now time.Time) (entities.User, error) {
	updates := map[string]any{"updated_at": now.UTC()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}

	result := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return entities.User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.User{}, domainerrors.ErrUserNotFound
	}
	return r.Get(ctx, id)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

type userModel struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	Sub          string    `gorm:"column:sub;size:255;uniqueIndex:uq_users_sub_issuer"`
	Name         string    `gorm:"column:name;size:255"`
	Email        string    `gorm:"column:email;size:255"`
	Issuer       string    `gorm:"column:issuer;size:255;uniqueIndex:uq_users_sub_issuer"`
	PublicSSHKey string    `gorm:"column:public_ssh_key;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string {
	return "users"
}

func userModelFromEntity(user entities.User) userModel {
	return userModel{
		ID:           user.ID,
		Sub:          user.Sub,
		Name:         user.Name,
		Email:        user.Email,
		Issuer:       user.Issuer,
		PublicSSHKey: user.PublicSSHKey,
		CreatedAt:    user.CreatedAt.UTC(),
		UpdatedAt:    user.UpdatedAt.UTC(),
	}
}

func (m userModel) toEntity() entities.User {
	return entities.User{
		ID:           m.ID,
		Sub:          m.Sub,
		Name:         m.Name,
		Email:        m.Email,
		Issuer:       m.Issuer,
		PublicSSHKey: m.PublicSSHKey,
		CreatedAt:    m.CreatedAt.UTC(),
		UpdatedAt:    m.UpdatedAt.UTC(),
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
