package documentgroup

import (
	"context"
	"errors"

	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrVersionConflict = errors.New("document group version conflict")

//go:generate mockgen -source=documentgroup_repo.go -destination=mock/documentgroup_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, group *DocumentGroup) error
	FindByID(ctx context.Context, id uuid.UUID) (*DocumentGroup, error)
	FindAll(ctx context.Context) ([]DocumentGroup, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]DocumentGroup, error)
	Update(ctx context.Context, group *DocumentGroup, version int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, group *DocumentGroup) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*DocumentGroup, error) {
	var g DocumentGroup
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Preload("Items").
		First(&g, "id = ?", id).Error
	return &g, err
}

func (r *repository) FindAll(ctx context.Context) ([]DocumentGroup, error) {
	var groups []DocumentGroup
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Preload("Items").
		Order("name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]DocumentGroup, error) {
	var groups []DocumentGroup
	if len(ids) == 0 {
		return groups, nil
	}
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(ctx)).
		Preload("Items").
		Where("id IN ?", ids).
		Find(&groups).Error
	return groups, err
}

// Update mengganti atribut group sekaligus seluruh item-nya dalam satu
// transaksi; daftar item lama dibuang dan diganti daftar baru
func (r *repository) Update(ctx context.Context, group *DocumentGroup, version int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DocumentGroup{}).
			Scopes(tenant.Scope(ctx)).
			Where("id = ? AND version = ?", group.ID, version).
			Updates(map[string]any{
				"name":      group.Name,
				"code":      group.Code,
				"is_active": group.IsActive,
				"version":   gorm.Expr("version + 1"),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&DocumentGroup{}).
				Scopes(tenant.Scope(ctx)).
				Where("id = ?", group.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrVersionConflict
			}
			return gorm.ErrRecordNotFound
		}

		if err := tx.
			Scopes(tenant.Scope(ctx)).
			Where("document_group_id = ?", group.ID).
			Delete(&DocumentGroupItem{}).Error; err != nil {
			return err
		}
		if len(group.Items) > 0 {
			if err := tx.Create(&group.Items).Error; err != nil {
				return err
			}
		}

		group.Version = version + 1
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Item dihapus dengan scope tenant; id group milik tenant lain tidak
		// boleh menyentuh item tenant tersebut
		if err := tx.
			Scopes(tenant.Scope(ctx)).
			Where("document_group_id = ?", id).
			Delete(&DocumentGroupItem{}).Error; err != nil {
			return err
		}
		return tx.
			Scopes(tenant.Scope(ctx)).
			Delete(&DocumentGroup{}, "id = ?", id).Error
	})
}
