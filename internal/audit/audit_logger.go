package audit

import (
	"context"
	"encoding/json"

	"go-doctask/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Logger menulis jejak audit sebagai side-channel best-effort: kegagalan
// penulisan hanya dicatat dan tidak pernah menggagalkan operasi utamanya
type Logger struct {
	repo   Repository
	logger *zap.Logger
}

func NewLogger(repo Repository, logger ...*zap.Logger) *Logger {
	l := zap.L().Named("audit.logger")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.logger")
	}
	return &Logger{repo: repo, logger: l}
}

func (a *Logger) Log(ctx context.Context, userID, eventType, entityType, entityID string, data any) {
	payload := "{}"
	if data != nil {
		if body, err := json.Marshal(data); err == nil {
			payload = string(body)
		} else {
			a.logger.Warn("audit payload serialization failed, storing empty object",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
		}
	}

	entry := &AuditLog{
		ID:         uuid.New(),
		CompanyID:  tenant.CompanyID(ctx),
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Data:       payload,
	}
	if uid, err := uuid.Parse(userID); err == nil {
		entry.UserID = &uid
	}

	if err := a.repo.Create(ctx, entry); err != nil {
		a.logger.Error("audit write failed",
			zap.String("event_type", eventType),
			zap.String("entity_type", entityType),
			zap.String("entity_id", entityID),
			zap.Error(err),
		)
	}
}
