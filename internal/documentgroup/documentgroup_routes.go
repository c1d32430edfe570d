package documentgroup

import (
	"go-doctask/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	groups := r.Group("/companies/:companyId/document-groups")
	groups.Use(middleware.AuthMiddleware(), middleware.TenantResolution())
	{
		groups.GET("", handler.GetAll)
		groups.POST("", middleware.RoleMiddleware("Admin", "Manager"), handler.Create)
		groups.GET("/:documentGroupId", handler.GetById)
		groups.PUT("/:documentGroupId", middleware.RoleMiddleware("Admin", "Manager"), handler.Update)
		groups.DELETE("/:documentGroupId", middleware.RoleMiddleware("Admin"), handler.Delete)
	}
}
