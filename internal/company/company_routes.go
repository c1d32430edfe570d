package company

import (
	"go-doctask/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware(), middleware.TenantResolution())
	{
		companies.GET("", handler.GetAll)
		companies.POST("", middleware.RoleMiddleware("Admin"), handler.Create)
		companies.GET("/:companyId", handler.GetById)
		companies.PUT("/:companyId", middleware.RoleMiddleware("Admin"), handler.Update)
		companies.DELETE("/:companyId", middleware.RoleMiddleware("Admin"), handler.Delete)
	}
}
