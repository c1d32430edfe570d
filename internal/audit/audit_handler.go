package audit

import (
	"encoding/json"
	"net/http"
	"time"

	"go-doctask/internal/shared/apperror"
	"go-doctask/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const historyLimit = 50

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) GetHistory(c *gin.Context) {
	filter := HistoryFilter{
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
	}

	entries, err := h.repo.FindRecent(c.Request.Context(), filter, historyLimit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	resp := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		item := AuditLogResponse{
			ID:         e.ID.String(),
			EventType:  e.EventType,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Data:       json.RawMessage(e.Data),
			CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339),
		}
		if e.UserID != nil {
			uid := e.UserID.String()
			item.UserID = &uid
		}
		resp[i] = item
	}

	response.Success(c, http.StatusOK, resp, nil)
}
