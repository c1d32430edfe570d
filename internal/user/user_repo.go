package user

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]User, error)
	Update(ctx context.Context, u *User) error
	AssignRole(ctx context.Context, role *UserCompanyRole) error
	RemoveRole(ctx context.Context, userID, companyID uuid.UUID, role string) error
	RolesByUser(ctx context.Context, userID uuid.UUID) ([]UserCompanyRole, error)
	IsReferencedByTasks(ctx context.Context, userID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return &u, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID uuid.UUID) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_company_roles ucr ON ucr.user_id = users.id").
		Where("ucr.company_id = ?", companyID).
		Distinct("users.*").
		Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *repository) AssignRole(ctx context.Context, role *UserCompanyRole) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) RemoveRole(ctx context.Context, userID, companyID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND company_id = ? AND role = ?", userID, companyID, role).
		Delete(&UserCompanyRole{}).Error
}

func (r *repository) RolesByUser(ctx context.Context, userID uuid.UUID) ([]UserCompanyRole, error) {
	var roles []UserCompanyRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&roles).Error
	return roles, err
}

func (r *repository) IsReferencedByTasks(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("tasks").
		Where("assignee_user_id = ? OR created_by_user_id = ?", userID, userID).
		Count(&count).Error
	return count > 0, err
}
