package company

import (
	"context"
	"errors"

	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrVersionConflict dikembalikan saat version token yang dibawa caller
// sudah tidak sama dengan yang tersimpan
var ErrVersionConflict = errors.New("company version conflict")

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindAll(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, company *Company, version int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var c Company
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) FindAll(ctx context.Context) ([]Company, error) {
	var companies []Company
	q := r.db.WithContext(ctx)
	// Tanpa tenant aktif (misal super-admin) daftar company tidak di-scope;
	// dengan tenant aktif hanya company milik tenant itu yang terlihat
	if tenant.HasCompany(ctx) {
		q = q.Scopes(tenant.Scope(ctx))
	}
	err := q.Order("created_at ASC").Find(&companies).Error
	return companies, err
}

func (r *repository) Update(ctx context.Context, company *Company, version int64) error {
	updates := map[string]any{
		"name":    company.Name,
		"version": gorm.Expr("version + 1"),
	}
	// Zona waktu kosong berarti pertahankan zona yang sudah tersimpan
	if company.TimeZone != "" {
		updates["time_zone"] = company.TimeZone
	}
	res := r.db.WithContext(ctx).
		Model(&Company{}).
		Scopes(tenant.Scope(ctx)).
		Where("id = ? AND version = ?", company.ID, version).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&Company{}).
			Scopes(tenant.Scope(ctx)).
			Where("id = ?", company.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrVersionConflict
		}
		return gorm.ErrRecordNotFound
	}
	company.Version = version + 1
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Delete(&Company{}, "id = ?", id).Error
}
