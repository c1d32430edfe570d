package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
	// CompanyID sama dengan ID (self-referential) supaya company ikut pola
	// tenant-scoped yang sama dengan entity lain
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(150);not null"`
	TimeZone  string    `gorm:"type:varchar(64);not null;default:'UTC'"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string {
	return "companies"
}
