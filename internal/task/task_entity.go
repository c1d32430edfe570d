package task

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusOpen       = "OPEN"
	StatusInProgress = "IN_PROGRESS"
	StatusReview     = "REVIEW"
	StatusCompleted  = "COMPLETED"
	StatusCancelled  = "CANCELLED"
)

const (
	PriorityLow      = "LOW"
	PriorityNormal   = "NORMAL"
	PriorityHigh     = "HIGH"
	PriorityCritical = "CRITICAL"
)

const (
	DocumentStatusUploaded = "UPLOADED"
	DocumentStatusApproved = "APPROVED"
	DocumentStatusRejected = "REJECTED"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusOpen, StatusInProgress, StatusReview, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func IsValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

type TaskItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title           string    `gorm:"type:varchar(200);not null"`
	Description     *string   `gorm:"type:text"`
	AssigneeUserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	DueDateUtc      time.Time `gorm:"not null"`
	Priority        string    `gorm:"type:varchar(20);not null;default:'NORMAL'"`
	Status          string    `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null"`
	Version         int64     `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt `gorm:"index"`

	RequiredGroups []TaskRequiredGroup `gorm:"foreignKey:TaskID"`
	Documents      []TaskDocument      `gorm:"foreignKey:TaskID"`
}

func (TaskItem) TableName() string {
	return "tasks"
}

type TaskRequiredGroup struct {
	TaskID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentGroupID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt       time.Time
}

func (TaskRequiredGroup) TableName() string {
	return "task_required_groups"
}

type TaskDocument struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID        uuid.UUID `gorm:"type:uuid;not null;index"`
	TaskID           uuid.UUID `gorm:"type:uuid;not null;index"`
	DocumentTypeID   uuid.UUID `gorm:"type:uuid;not null;index"`
	FilePath         string    `gorm:"type:varchar(500);not null"`
	FileName         string    `gorm:"type:varchar(260);not null"`
	ContentType      string    `gorm:"type:varchar(120);not null"`
	SizeBytes        int64     `gorm:"not null"`
	Status           string    `gorm:"type:varchar(20);not null;default:'UPLOADED'"`
	Notes            *string   `gorm:"type:varchar(1000)"`
	UploadedByUserID uuid.UUID `gorm:"type:uuid;not null"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (TaskDocument) TableName() string {
	return "task_documents"
}

// DocumentTypeRef dipakai engine resolusi kebutuhan dokumen: baris tipe
// dokumen minimal (id + nama) untuk keperluan render pengingat
type DocumentTypeRef struct {
	ID   uuid.UUID
	Name string
}
