package documenttype

type CreateDocumentTypeRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required,max=50"`
}

type UpdateDocumentTypeRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required,max=50"`
	IsActive *bool  `json:"is_active" binding:"required"`
	Version  int64  `json:"version" binding:"required"`
}

type DocumentTypeResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive bool   `json:"is_active"`
	Version  int64  `json:"version"`
}

type DocumentTypeOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}
