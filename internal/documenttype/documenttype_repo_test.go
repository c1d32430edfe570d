package documenttype_test

import (
	"context"
	"testing"

	"go-doctask/internal/documenttype"
	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRepoTest(t *testing.T) documenttype.Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&documenttype.DocumentType{}))
	return documenttype.NewRepository(db)
}

func seedType(t *testing.T, repo documenttype.Repository, companyID uuid.UUID, code string) *documenttype.DocumentType {
	t.Helper()
	dt := &documenttype.DocumentType{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      code,
		Code:      code,
		IsActive:  true,
		Version:   1,
	}
	assert.NoError(t, repo.Create(context.Background(), dt))
	return dt
}

func TestDocumentTypeRepository_TenantIsolation(t *testing.T) {
	repo := setupRepoTest(t)

	companyA := uuid.New()
	companyB := uuid.New()
	ctxA := tenant.WithCompany(context.Background(), companyA)
	ctxB := tenant.WithCompany(context.Background(), companyB)

	typeA := seedType(t, repo, companyA, "PASSPORT")
	seedType(t, repo, companyB, "CONTRACT")

	t.Run("list only sees own tenant", func(t *testing.T) {
		typesA, err := repo.FindAll(ctxA)
		assert.NoError(t, err)
		assert.Len(t, typesA, 1)
		assert.Equal(t, companyA, typesA[0].CompanyID)
	})

	t.Run("lookup across tenants misses", func(t *testing.T) {
		_, err := repo.FindByID(ctxB, typeA.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("context without tenant sees nothing", func(t *testing.T) {
		types, err := repo.FindAll(context.Background())
		assert.NoError(t, err)
		assert.Empty(t, types)
	})

	t.Run("update across tenants does not leak", func(t *testing.T) {
		hijacked := *typeA
		hijacked.Name = "Hijacked"
		err := repo.Update(ctxB, &hijacked, 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		fresh, err := repo.FindByID(ctxA, typeA.ID)
		assert.NoError(t, err)
		assert.Equal(t, "PASSPORT", fresh.Name)
	})
}

func TestDocumentTypeRepository_OptimisticUpdate(t *testing.T) {
	repo := setupRepoTest(t)

	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	dt := seedType(t, repo, companyID, "PASSPORT")

	t.Run("matching version bumps version", func(t *testing.T) {
		dt.Name = "Passport (renewed)"
		err := repo.Update(ctx, dt, 1)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), dt.Version)

		fresh, err := repo.FindByID(ctx, dt.ID)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), fresh.Version)
		assert.Equal(t, "Passport (renewed)", fresh.Name)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		stale := *dt
		stale.Name = "Passport (stale writer)"
		err := repo.Update(ctx, &stale, 1)
		assert.ErrorIs(t, err, documenttype.ErrVersionConflict)

		fresh, err := repo.FindByID(ctx, dt.ID)
		assert.NoError(t, err)
		assert.Equal(t, "Passport (renewed)", fresh.Name)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		ghost := &documenttype.DocumentType{ID: uuid.New(), Name: "Ghost"}
		err := repo.Update(ctx, ghost, 1)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
