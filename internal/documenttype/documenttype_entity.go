package documenttype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentType struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_document_types_company_code"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Code      string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_document_types_company_code"`
	IsActive  bool      `gorm:"not null;default:true"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (DocumentType) TableName() string {
	return "document_types"
}
