package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User bukan entity tenant-owned: satu user bisa punya role
// di banyak company lewat UserCompanyRole
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	Password  string    `gorm:"type:varchar(255);not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	CompanyRoles []UserCompanyRole `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

const (
	RoleAdmin     = "Admin"
	RoleManager   = "Manager"
	RoleAssistant = "Assistant"
	RoleStaff     = "Staff"
)

type UserCompanyRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(20);primaryKey"`
	CreatedAt time.Time
}

func (UserCompanyRole) TableName() string {
	return "user_company_roles"
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleAssistant, RoleStaff:
		return true
	default:
		return false
	}
}
