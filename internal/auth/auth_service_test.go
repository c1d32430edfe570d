package auth_test

import (
	"context"
	"testing"

	"go-doctask/internal/auth"
	autherrors "go-doctask/internal/auth/errors"
	"go-doctask/internal/user"
	userMock "go-doctask/internal/user/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashPassword(t *testing.T, plain string) string {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hashed)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.New()
	companyID := uuid.New()
	activeUser := &user.User{
		ID:       userID,
		Email:    "jane@acme.test",
		FullName: "Jane Doe",
		Password: hashPassword(t, "s3cret-pass"),
		IsActive: true,
	}

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := auth.NewService(users)

		users.EXPECT().FindByEmail(ctx, "jane@acme.test").Return(activeUser, nil)
		users.EXPECT().
			RolesByUser(ctx, userID).
			Return([]user.UserCompanyRole{
				{UserID: userID, CompanyID: companyID, Role: user.RoleAdmin},
			}, nil)

		access, refresh, resp, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "jane@acme.test",
			Password: "s3cret-pass",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, companyID.String(), resp.CompanyID)
		assert.Equal(t, user.RoleAdmin, resp.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := auth.NewService(users)

		users.EXPECT().FindByEmail(ctx, "jane@acme.test").Return(activeUser, nil)

		_, _, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "jane@acme.test",
			Password: "wrong-pass",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := auth.NewService(users)

		users.EXPECT().
			FindByEmail(ctx, "nobody@acme.test").
			Return(nil, gorm.ErrRecordNotFound)

		_, _, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "nobody@acme.test",
			Password: "s3cret-pass",
		})

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := auth.NewService(users)

		inactive := *activeUser
		inactive.IsActive = false
		users.EXPECT().FindByEmail(ctx, "jane@acme.test").Return(&inactive, nil)

		_, _, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "jane@acme.test",
			Password: "s3cret-pass",
		})

		assert.ErrorIs(t, err, autherrors.ErrUserInactive)
	})

	t.Run("requested company without role", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := auth.NewService(users)

		users.EXPECT().FindByEmail(ctx, "jane@acme.test").Return(activeUser, nil)
		users.EXPECT().
			RolesByUser(ctx, userID).
			Return([]user.UserCompanyRole{
				{UserID: userID, CompanyID: companyID, Role: user.RoleAdmin},
			}, nil)

		_, _, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:     "jane@acme.test",
			Password:  "s3cret-pass",
			CompanyID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, autherrors.ErrNoCompanyRole)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	userID := uuid.New()
	companyID := uuid.New()
	activeUser := &user.User{
		ID:       userID,
		Email:    "jane@acme.test",
		FullName: "Jane Doe",
		Password: hashPassword(t, "s3cret-pass"),
		IsActive: true,
	}

	t.Run("round trip", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := auth.NewService(users)

		users.EXPECT().FindByEmail(ctx, "jane@acme.test").Return(activeUser, nil)
		users.EXPECT().
			RolesByUser(ctx, userID).
			Return([]user.UserCompanyRole{
				{UserID: userID, CompanyID: companyID, Role: user.RoleManager},
			}, nil)

		_, refresh, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "jane@acme.test",
			Password: "s3cret-pass",
		})
		assert.NoError(t, err)

		users.EXPECT().FindByID(ctx, userID).Return(activeUser, nil)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, companyID.String(), resp.CompanyID)
		assert.Equal(t, user.RoleManager, resp.Role)
	})

	t.Run("garbage token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := auth.NewService(users)

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		users := userMock.NewMockRepository(ctrl)
		svc := auth.NewService(users)

		users.EXPECT().FindByEmail(ctx, "jane@acme.test").Return(activeUser, nil)
		users.EXPECT().
			RolesByUser(ctx, userID).
			Return([]user.UserCompanyRole{
				{UserID: userID, CompanyID: companyID, Role: user.RoleManager},
			}, nil)

		_, refresh, _, err := svc.Login(ctx, auth.LoginRequest{
			Email:    "jane@acme.test",
			Password: "s3cret-pass",
		})
		assert.NoError(t, err)

		deactivated := *activeUser
		deactivated.IsActive = false
		users.EXPECT().FindByID(ctx, userID).Return(&deactivated, nil)

		_, _, _, err = svc.RefreshToken(ctx, refresh)

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}
