package company_test

import (
	"context"
	"testing"

	"go-doctask/internal/company"
	companyerrors "go-doctask/internal/company/errors"
	companyMock "go-doctask/internal/company/mock"
	"go-doctask/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *company.Company) error {
				assert.Equal(t, "Acme GmbH", c.Name)
				assert.Equal(t, "Europe/Berlin", c.TimeZone)
				assert.Equal(t, c.ID, c.CompanyID)
				assert.Equal(t, int64(1), c.Version)
				return nil
			})

		resp, err := svc.Create(ctx, company.CreateCompanyRequest{
			Name:     "Acme GmbH",
			TimeZone: "Europe/Berlin",
		})

		assert.NoError(t, err)
		assert.Equal(t, "Europe/Berlin", resp.TimeZone)
	})

	t.Run("unknown time zone falls back to UTC", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *company.Company) error {
				assert.Equal(t, "UTC", c.TimeZone)
				return nil
			})

		resp, err := svc.Create(ctx, company.CreateCompanyRequest{
			Name:     "Acme GmbH",
			TimeZone: "Mars/Olympus_Mons",
		})

		assert.NoError(t, err)
		assert.Equal(t, "UTC", resp.TimeZone)
	})

	t.Run("empty time zone defaults to UTC", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, c *company.Company) error {
				assert.Equal(t, "UTC", c.TimeZone)
				return nil
			})

		_, err := svc.Create(ctx, company.CreateCompanyRequest{Name: "Acme GmbH"})

		assert.NoError(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		_, err := svc.Create(ctx, company.CreateCompanyRequest{Name: "   "})

		assert.ErrorIs(t, err, companyerrors.ErrMissingName)
	})
}

func TestCompanyService_Update(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		repo.EXPECT().
			Update(ctx, gomock.Any(), int64(3)).
			Return(nil)
		repo.EXPECT().
			FindByID(ctx, companyID).
			Return(&company.Company{ID: companyID, Name: "Acme Ltd", TimeZone: "UTC", Version: 4}, nil)

		resp, err := svc.Update(ctx, companyID.String(), company.UpdateCompanyRequest{
			Name:    "Acme Ltd",
			Version: 3,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(4), resp.Version)
	})

	t.Run("stale version", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		repo.EXPECT().
			Update(ctx, gomock.Any(), int64(1)).
			Return(company.ErrVersionConflict)

		_, err := svc.Update(ctx, companyID.String(), company.UpdateCompanyRequest{
			Name:    "Acme Ltd",
			Version: 1,
		})

		assert.ErrorIs(t, err, apperror.ErrConcurrencyConflict)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		repo.EXPECT().
			Update(ctx, gomock.Any(), int64(1)).
			Return(gorm.ErrRecordNotFound)

		_, err := svc.Update(ctx, companyID.String(), company.UpdateCompanyRequest{
			Name:    "Acme Ltd",
			Version: 1,
		})

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		_, err := svc.Update(ctx, "not-a-uuid", company.UpdateCompanyRequest{Name: "Acme"})

		assert.ErrorIs(t, err, companyerrors.ErrInvalidCompanyID)
	})
}

func TestCompanyService_GetByID(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := companyMock.NewMockRepository(ctrl)
		svc := company.NewService(repo)

		repo.EXPECT().
			FindByID(ctx, companyID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetByID(ctx, companyID.String())

		assert.ErrorIs(t, err, companyerrors.ErrCompanyNotFound)
	})
}
