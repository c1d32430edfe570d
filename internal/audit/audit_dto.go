package audit

import "encoding/json"

type AuditLogResponse struct {
	ID         string          `json:"id"`
	UserID     *string         `json:"user_id,omitempty"`
	EventType  string          `json:"event_type"`
	EntityType string          `json:"entity_type"`
	EntityID   string          `json:"entity_id"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  string          `json:"created_at"`
}
