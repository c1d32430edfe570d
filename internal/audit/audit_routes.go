package audit

import (
	"go-doctask/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	history := r.Group("/companies/:companyId/history")
	history.Use(middleware.AuthMiddleware(), middleware.TenantResolution())
	{
		history.GET("", middleware.RoleMiddleware("Admin", "Manager"), handler.GetHistory)
	}
}
