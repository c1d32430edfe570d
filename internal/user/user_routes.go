package user

import (
	"go-doctask/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	users := r.Group("/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.POST("", middleware.RoleMiddleware(RoleAdmin), handler.Create)
		users.GET("/:id", handler.GetById)
		users.POST("/:id/roles", middleware.RoleMiddleware(RoleAdmin), handler.AssignRole)
		users.DELETE("/:id/roles", middleware.RoleMiddleware(RoleAdmin), handler.RemoveRole)
		users.POST("/:id/deactivate", middleware.RoleMiddleware(RoleAdmin), handler.Deactivate)
	}

	companies := r.Group("/companies/:companyId")
	companies.Use(middleware.AuthMiddleware(), middleware.TenantResolution())
	{
		companies.GET("/users", handler.GetAllByCompany)
	}
}
