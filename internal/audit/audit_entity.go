package audit

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog bersifat append-only, tidak memakai token version maupun soft
// delete
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID `gorm:"type:uuid;index"`
	EventType  string     `gorm:"type:varchar(100);not null"`
	EntityType string     `gorm:"type:varchar(100);not null;index:idx_audit_logs_entity"`
	EntityID   string     `gorm:"type:varchar(64);not null;index:idx_audit_logs_entity"`
	Data       string     `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt  time.Time  `gorm:"index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
