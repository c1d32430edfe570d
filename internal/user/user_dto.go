package user

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type AssignRoleRequest struct {
	CompanyID string `json:"company_id" binding:"required,uuid"`
	Role      string `json:"role" binding:"required,oneof=Admin Manager Assistant Staff"`
}

type UserRoleResponse struct {
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

type UserResponse struct {
	ID       string             `json:"id"`
	Email    string             `json:"email"`
	FullName string             `json:"full_name"`
	IsActive bool               `json:"is_active"`
	Roles    []UserRoleResponse `json:"roles,omitempty"`
}
