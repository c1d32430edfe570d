package mailqueue

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusFailed     = "FAILED"
	StatusSent       = "SENT"
)

type EmailQueue struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ToAddress    string    `gorm:"type:varchar(320);not null"`
	Subject      string    `gorm:"type:varchar(500);not null"`
	Body         string    `gorm:"type:text;not null"`
	EntityID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	TryCount     int       `gorm:"not null;default:0"`
	NextTryAtUtc *time.Time
	SentAtUtc    *time.Time
	Error        *string `gorm:"type:varchar(1000)"`
	Version      int64   `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (EmailQueue) TableName() string {
	return "email_queue"
}
