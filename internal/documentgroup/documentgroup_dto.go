package documentgroup

type CreateDocumentGroupRequest struct {
	Name            string   `json:"name" binding:"required"`
	Code            string   `json:"code" binding:"required,max=50"`
	DocumentTypeIDs []string `json:"document_type_ids" binding:"required,min=1"`
}

type UpdateDocumentGroupRequest struct {
	Name            string   `json:"name" binding:"required"`
	Code            string   `json:"code" binding:"required,max=50"`
	IsActive        *bool    `json:"is_active" binding:"required"`
	DocumentTypeIDs []string `json:"document_type_ids" binding:"required,min=1"`
	Version         int64    `json:"version" binding:"required"`
}

type DocumentGroupResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Code            string   `json:"code"`
	IsActive        bool     `json:"is_active"`
	DocumentTypeIDs []string `json:"document_type_ids"`
	Version         int64    `json:"version"`
}
