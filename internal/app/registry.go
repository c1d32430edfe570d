package app

import (
	"database/sql"

	"go-doctask/internal/audit"
	"go-doctask/internal/auth"
	"go-doctask/internal/company"
	"go-doctask/internal/documentgroup"
	"go-doctask/internal/documenttype"
	"go-doctask/internal/mailqueue"
	"go-doctask/internal/messaging/kafka"
	"go-doctask/internal/middleware"
	"go-doctask/internal/shared/metrics"
	"go-doctask/internal/task"
	"go-doctask/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	auditRepo := audit.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	documentGroupRepo := documentgroup.NewRepository(gormDB)
	documentTypeRepo := documenttype.NewRepository(gormDB)
	mailRepo := mailqueue.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	taskRepo := task.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	// --- Services ---
	auditLogger := audit.NewLogger(auditRepo)
	authService := auth.NewService(userRepo)
	companyService := company.NewService(companyRepo)
	documentTypeService := documenttype.NewService(documentTypeRepo, rdb)
	documentGroupService := documentgroup.NewService(documentGroupRepo, documentTypeRepo)
	taskService := task.NewService(db, taskRepo, documentGroupRepo, userRepo, documentTypeRepo, mailRepo, outboxRepo)
	userService := user.NewService(userRepo)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditRepo)
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	documentGroupHandler := documentgroup.NewHandler(documentGroupService)
	documentTypeHandler := documenttype.NewHandler(documentTypeService)
	taskHandler := task.NewHandler(taskService)
	userHandler := user.NewHandler(userService)

	// --- Global middleware ---
	router.Use(middleware.ContextLogger(zap.L()))
	router.Use(metrics.HTTPMiddleware())
	router.Use(audit.Middleware(auditLogger))
	router.GET("/metrics", metrics.Handler())

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		audit.RegisterRoutes(api, auditHandler)
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler)
		documentgroup.RegisterRoutes(api, documentGroupHandler)
		documenttype.RegisterRoutes(api, documentTypeHandler)
		task.RegisterRoutes(api, taskHandler, rdb)
		user.RegisterRoutes(api, userHandler)
	}

	return nil
}
