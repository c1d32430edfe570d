package user

import (
	"context"
	"errors"
	"strings"

	usererrors "go-doctask/internal/user/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAllByCompany(ctx context.Context, companyID string) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	AssignRole(ctx context.Context, userID string, req AssignRoleRequest) error
	RemoveRole(ctx context.Context, userID, companyID, role string) error
	Deactivate(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	u := &User{
		ID:       uuid.New(),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		FullName: req.FullName,
		Password: string(hashed),
		IsActive: true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create user success", zap.String("user_id", u.ID.String()))
	return mapToResponse(*u, nil), nil
}

func (s *service) GetAllByCompany(ctx context.Context, companyID string) ([]UserResponse, error) {
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return nil, usererrors.ErrInvalidCompanyID
	}

	users, err := s.repo.FindAllByCompany(ctx, cid)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u, nil)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	roles, err := s.repo.RolesByUser(ctx, uid)
	if err != nil {
		return UserResponse{}, err
	}

	return mapToResponse(*u, roles), nil
}

func (s *service) AssignRole(ctx context.Context, userID string, req AssignRoleRequest) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}
	cid, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return usererrors.ErrInvalidCompanyID
	}
	if !IsValidRole(req.Role) {
		return usererrors.ErrInvalidRole
	}

	if _, err := s.repo.FindByID(ctx, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	return s.repo.AssignRole(ctx, &UserCompanyRole{
		UserID:    uid,
		CompanyID: cid,
		Role:      req.Role,
	})
}

func (s *service) RemoveRole(ctx context.Context, userID, companyID, role string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}
	cid, err := uuid.Parse(companyID)
	if err != nil {
		return usererrors.ErrInvalidCompanyID
	}
	if !IsValidRole(role) {
		return usererrors.ErrInvalidRole
	}
	return s.repo.RemoveRole(ctx, uid, cid, role)
}

// Deactivate mematikan user tanpa hard delete; user yang masih dirujuk task
// memang tidak boleh hilang dari riwayat
func (s *service) Deactivate(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	referenced, err := s.repo.IsReferencedByTasks(ctx, uid)
	if err != nil {
		return err
	}

	u.IsActive = false
	if err := s.repo.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Info("deactivate user success",
		zap.String("user_id", id),
		zap.Bool("referenced_by_tasks", referenced),
	)
	return nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return usererrors.ErrEmailAlreadyExists
	}
	if strings.Contains(strings.ToLower(err.Error()), "duplicate key value") {
		return usererrors.ErrEmailAlreadyExists
	}

	return err
}

func mapToResponse(u User, roles []UserCompanyRole) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: u.IsActive,
	}
	for _, r := range roles {
		resp.Roles = append(resp.Roles, UserRoleResponse{
			CompanyID: r.CompanyID.String(),
			Role:      r.Role,
		})
	}
	return resp
}
