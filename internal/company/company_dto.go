package company

type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	TimeZone string `json:"time_zone"`
}

type UpdateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	TimeZone string `json:"time_zone"`
	Version  int64  `json:"version" binding:"required"`
}

type CompanyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TimeZone  string `json:"time_zone"`
	Version   int64  `json:"version"`
	CreatedAt string `json:"created_at"`
}
