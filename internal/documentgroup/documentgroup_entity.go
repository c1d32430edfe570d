package documentgroup

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentGroup struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_document_groups_company_code"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Code      string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_document_groups_company_code"`
	IsActive  bool      `gorm:"not null;default:true"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Items []DocumentGroupItem `gorm:"foreignKey:DocumentGroupID"`
}

func (DocumentGroup) TableName() string {
	return "document_groups"
}

// DocumentGroupItem menghubungkan group dengan tipe dokumen yang menjadi
// anggotanya
type DocumentGroupItem struct {
	DocumentGroupID uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentTypeID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time
}

func (DocumentGroupItem) TableName() string {
	return "document_group_items"
}
