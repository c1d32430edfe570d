package documenttype

import (
	"go-doctask/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	types := r.Group("/companies/:companyId/document-types")
	types.Use(middleware.AuthMiddleware(), middleware.TenantResolution())
	{
		types.GET("", handler.GetAll)
		types.GET("/options", handler.GetOptions)
		types.POST("", middleware.RoleMiddleware("Admin", "Manager"), handler.Create)
		types.GET("/:documentTypeId", handler.GetById)
		types.PUT("/:documentTypeId", middleware.RoleMiddleware("Admin", "Manager"), handler.Update)
		types.DELETE("/:documentTypeId", middleware.RoleMiddleware("Admin"), handler.Delete)
	}
}
