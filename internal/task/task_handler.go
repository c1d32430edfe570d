package task

import (
	"net/http"

	"go-doctask/internal/audit"
	"go-doctask/internal/shared/apperror"
	"go-doctask/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("task.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("task request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	actorID := c.GetString("user_id")
	resp, err := h.service.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	audit.Record(c, actorID, "TaskCreated", "Task", resp.ID, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	filter := ListFilter{Status: c.Query("status")}
	if raw := c.Query("assignee_user_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid assignee_user_id", nil)
			return
		}
		filter.AssigneeUserID = &id
	}

	resp, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	actorID := c.GetString("user_id")
	resp, err := h.service.UpdateStatus(c.Request.Context(), actorID, c.Param("taskId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	audit.Record(c, actorID, "TaskStatusChanged", "Task", resp.ID, gin.H{
		"status": resp.Status,
	})
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetMissingDocuments(c *gin.Context) {
	resp, err := h.service.MissingDocumentTypes(c.Request.Context(), c.Param("taskId"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UploadDocument(c *gin.Context) {
	var req UploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	actorID := c.GetString("user_id")
	resp, err := h.service.UploadDocument(c.Request.Context(), actorID, c.Param("taskId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	audit.Record(c, actorID, "TaskDocumentUploaded", "TaskDocument", resp.ID, resp)
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ReviewDocument(c *gin.Context) {
	var req ReviewDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	actorID := c.GetString("user_id")
	resp, err := h.service.ReviewDocument(c.Request.Context(), c.Param("taskId"), c.Param("documentId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	audit.Record(c, actorID, "TaskDocumentReviewed", "TaskDocument", resp.ID, gin.H{
		"status": resp.Status,
		"notes":  resp.Notes,
	})
	response.Success(c, http.StatusOK, resp, nil)
}
