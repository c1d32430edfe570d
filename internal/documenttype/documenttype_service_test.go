package documenttype_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"go-doctask/internal/documenttype"
	documenttypeerrors "go-doctask/internal/documenttype/errors"
	documenttypeMock "go-doctask/internal/documenttype/mock"
	"go-doctask/internal/tenant"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestDocumentTypeService_Create(t *testing.T) {
	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	cacheKey := "doctask:document_type_options:" + companyID.String()

	t.Run("success uppercases code and invalidates options cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := documenttypeMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := documenttype.NewService(repo, rdb)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, dt *documenttype.DocumentType) error {
				assert.Equal(t, companyID, dt.CompanyID)
				assert.Equal(t, "PASSPORT", dt.Code)
				assert.True(t, dt.IsActive)
				return nil
			})
		redisMock.ExpectDel(cacheKey).SetVal(1)

		resp, err := svc.Create(ctx, documenttype.CreateDocumentTypeRequest{
			Name: "Passport",
			Code: " passport ",
		})

		assert.NoError(t, err)
		assert.Equal(t, "PASSPORT", resp.Code)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("duplicate code maps to conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := documenttypeMock.NewMockRepository(ctrl)
		svc := documenttype.NewService(repo, nil)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := svc.Create(ctx, documenttype.CreateDocumentTypeRequest{
			Name: "Passport",
			Code: "PASSPORT",
		})

		assert.ErrorIs(t, err, documenttypeerrors.ErrCodeAlreadyExists)
	})
}

func TestDocumentTypeService_GetOptions(t *testing.T) {
	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	cacheKey := "doctask:document_type_options:" + companyID.String()

	typeID := uuid.New()
	options := []documenttype.DocumentTypeOption{
		{ID: typeID.String(), Name: "Passport", Code: "PASSPORT"},
	}

	t.Run("cache hit skips repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := documenttypeMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := documenttype.NewService(repo, rdb)

		payload, _ := json.Marshal(options)
		redisMock.ExpectGet(cacheKey).SetVal(string(payload))

		got, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, options, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss fills from repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := documenttypeMock.NewMockRepository(ctrl)
		rdb, redisMock := redismock.NewClientMock()
		svc := documenttype.NewService(repo, rdb)

		redisMock.ExpectGet(cacheKey).RedisNil()
		repo.EXPECT().
			FindActive(ctx).
			Return([]documenttype.DocumentType{
				{ID: typeID, CompanyID: companyID, Name: "Passport", Code: "PASSPORT", IsActive: true},
			}, nil)
		payload, _ := json.Marshal(options)
		redisMock.ExpectSet(cacheKey, payload, 5*time.Minute).SetVal("OK")

		got, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Equal(t, options, got)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("works without redis", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := documenttypeMock.NewMockRepository(ctrl)
		svc := documenttype.NewService(repo, nil)

		repo.EXPECT().
			FindActive(ctx).
			Return([]documenttype.DocumentType{
				{ID: typeID, Name: "Passport", Code: "PASSPORT"},
			}, nil)

		got, err := svc.GetOptions(ctx)

		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestDocumentTypeService_Update(t *testing.T) {
	companyID := uuid.New()
	ctx := tenant.WithCompany(context.Background(), companyID)
	typeID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := documenttypeMock.NewMockRepository(ctrl)
		svc := documenttype.NewService(repo, nil)

		repo.EXPECT().
			Update(ctx, gomock.Any(), int64(1)).
			Return(gorm.ErrRecordNotFound)

		isActive := true
		_, err := svc.Update(ctx, typeID.String(), documenttype.UpdateDocumentTypeRequest{
			Name:     "Passport",
			Code:     "PASSPORT",
			IsActive: &isActive,
			Version:  1,
		})

		assert.ErrorIs(t, err, documenttypeerrors.ErrDocumentTypeNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := documenttypeMock.NewMockRepository(ctrl)
		svc := documenttype.NewService(repo, nil)

		_, err := svc.Update(ctx, "nope", documenttype.UpdateDocumentTypeRequest{Version: 1})

		assert.ErrorIs(t, err, documenttypeerrors.ErrInvalidDocumentTypeID)
	})
}
