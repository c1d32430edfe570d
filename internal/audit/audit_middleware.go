package audit

import (
	"github.com/gin-gonic/gin"
)

const pendingEntriesKey = "audit_pending_entries"

type pendingEntry struct {
	UserID     string
	EventType  string
	EntityType string
	EntityID   string
	Data       any
}

// Record menumpuk entri audit pada request; penulisan sebenarnya dilakukan
// Middleware setelah handler selesai supaya response tidak menunggu audit
func Record(c *gin.Context, userID, eventType, entityType, entityID string, data any) {
	var entries []pendingEntry
	if raw, ok := c.Get(pendingEntriesKey); ok {
		entries, _ = raw.([]pendingEntry)
	}
	entries = append(entries, pendingEntry{
		UserID:     userID,
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Data:       data,
	})
	c.Set(pendingEntriesKey, entries)
}

func Middleware(logger *Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		raw, ok := c.Get(pendingEntriesKey)
		if !ok {
			return
		}
		entries, ok := raw.([]pendingEntry)
		if !ok {
			return
		}

		ctx := c.Request.Context()
		for _, e := range entries {
			logger.Log(ctx, e.UserID, e.EventType, e.EntityType, e.EntityID, e.Data)
		}
	}
}
