package documenttype

import (
	"context"
	"errors"

	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVersionConflict = errors.New("document type version conflict")

//go:generate mockgen -source=documenttype_repo.go -destination=mock/documenttype_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, dt *DocumentType) error
	FindByID(ctx context.Context, id uuid.UUID) (*DocumentType, error)
	FindAll(ctx context.Context) ([]DocumentType, error)
	FindActive(ctx context.Context) ([]DocumentType, error)
	Update(ctx context.Context, dt *DocumentType, version int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, dt *DocumentType) error {
	return r.db.WithContext(ctx).Create(dt).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*DocumentType, error) {
	var dt DocumentType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		First(&dt, "id = ?", id).Error
	return &dt, err
}

func (r *repository) FindAll(ctx context.Context) ([]DocumentType, error) {
	var types []DocumentType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) FindActive(ctx context.Context) ([]DocumentType, error) {
	var types []DocumentType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) Update(ctx context.Context, dt *DocumentType, version int64) error {
	res := r.db.WithContext(ctx).
		Model(&DocumentType{}).
		Scopes(tenant.Scope(ctx)).
		Where("id = ? AND version = ?", dt.ID, version).
		Updates(map[string]any{
			"name":      dt.Name,
			"code":      dt.Code,
			"is_active": dt.IsActive,
			"version":   gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&DocumentType{}).
			Scopes(tenant.Scope(ctx)).
			Where("id = ?", dt.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrVersionConflict
		}
		return gorm.ErrRecordNotFound
	}
	dt.Version = version + 1
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Delete(&DocumentType{}, "id = ?", id).Error
}
