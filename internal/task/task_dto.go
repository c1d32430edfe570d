package task

type CreateTaskRequest struct {
	Title            string   `json:"title" binding:"required,max=200"`
	Description      *string  `json:"description"`
	AssigneeUserID   string   `json:"assignee_user_id" binding:"required,uuid"`
	DueDateUtc       string   `json:"due_date_utc" binding:"required"`
	Priority         string   `json:"priority"`
	RequiredGroupIDs []string `json:"required_group_ids" binding:"required,min=1"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UploadDocumentRequest struct {
	DocumentTypeID string `json:"document_type_id" binding:"required,uuid"`
	FilePath       string `json:"file_path" binding:"required,max=500"`
	FileName       string `json:"file_name" binding:"required,max=260"`
	ContentType    string `json:"content_type" binding:"required,max=120"`
	SizeBytes      int64  `json:"size_bytes" binding:"required,min=1"`
}

type ReviewDocumentRequest struct {
	Action  string  `json:"action" binding:"required"`
	Notes   *string `json:"notes"`
	Version int64   `json:"version" binding:"required"`
}

type TaskResponse struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Description      *string                `json:"description,omitempty"`
	AssigneeUserID   string                 `json:"assignee_user_id"`
	DueDateUtc       string                 `json:"due_date_utc"`
	Priority         string                 `json:"priority"`
	Status           string                 `json:"status"`
	CreatedByUserID  string                 `json:"created_by_user_id"`
	RequiredGroupIDs []string               `json:"required_group_ids"`
	Documents        []TaskDocumentResponse `json:"documents,omitempty"`
	Version          int64                  `json:"version"`
	CreatedAt        string                 `json:"created_at"`
}

type TaskDocumentResponse struct {
	ID             string  `json:"id"`
	DocumentTypeID string  `json:"document_type_id"`
	FilePath       string  `json:"file_path"`
	FileName       string  `json:"file_name"`
	ContentType    string  `json:"content_type"`
	SizeBytes      int64   `json:"size_bytes"`
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	UploadedBy     string  `json:"uploaded_by"`
	Version        int64   `json:"version"`
	UploadedAt     string  `json:"uploaded_at"`
}

type MissingDocumentTypeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
