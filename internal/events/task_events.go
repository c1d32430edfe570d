package events

import "time"

const (
	TaskCreatedTopic          = "doctask.task.created.v1"
	TaskStatusChangedTopic    = "doctask.task.status.changed.v1"
	TaskDocumentUploadedTopic = "doctask.task.document.uploaded.v1"
)

const (
	TaskCreatedEventType          = "task.created"
	TaskStatusChangedEventType    = "task.status_changed"
	TaskDocumentUploadedEventType = "task.document_uploaded"
)

type TaskCreatedEvent struct {
	EventType      string    `json:"event_type"`
	TaskID         string    `json:"task_id"`
	CompanyID      string    `json:"company_id"`
	AssigneeUserID string    `json:"assignee_user_id"`
	DueDateUtc     time.Time `json:"due_date_utc"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type TaskStatusChangedEvent struct {
	EventType  string    `json:"event_type"`
	TaskID     string    `json:"task_id"`
	CompanyID  string    `json:"company_id"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	ChangedBy  string    `json:"changed_by"`
	OccurredAt time.Time `json:"occurred_at"`
}

type TaskDocumentUploadedEvent struct {
	EventType      string    `json:"event_type"`
	TaskID         string    `json:"task_id"`
	TaskDocumentID string    `json:"task_document_id"`
	DocumentTypeID string    `json:"document_type_id"`
	CompanyID      string    `json:"company_id"`
	UploadedBy     string    `json:"uploaded_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
