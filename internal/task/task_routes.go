package task

import (
	"time"

	"go-doctask/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rdb ...*redis.Client) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	tasks := r.Group("/companies/:companyId/tasks")
	tasks.Use(middleware.AuthMiddleware(), middleware.TenantResolution())
	{
		if redisClient != nil {
			tasks.POST("",
				middleware.RoleMiddleware("Admin", "Manager", "Assistant"),
				middleware.Idempotency(redisClient, 24*time.Hour),
				handler.Create,
			)
		} else {
			tasks.POST("", middleware.RoleMiddleware("Admin", "Manager", "Assistant"), handler.Create)
		}
		tasks.GET("", handler.GetAll)
		tasks.GET("/:taskId", handler.GetById)
		tasks.PATCH("/:taskId/status", middleware.RoleMiddleware("Admin", "Manager", "Assistant"), handler.UpdateStatus)
		tasks.GET("/:taskId/missing-documents", handler.GetMissingDocuments)
		tasks.POST("/:taskId/documents", handler.UploadDocument)
		tasks.POST("/:taskId/documents/:documentId/review", middleware.RoleMiddleware("Admin", "Manager"), handler.ReviewDocument)
	}
}
