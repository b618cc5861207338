package app

import (
	"context"
	"net/http"

	"go-hrm/internal/config"
	"go-hrm/internal/employee"
	"go-hrm/internal/employeestatus"
	"go-hrm/internal/lettertemplate"
	"go-hrm/internal/messaging/kafka"
	"go-hrm/internal/middleware"
	"go-hrm/internal/project"
	"go-hrm/internal/rbac"
	"go-hrm/internal/rbac/infra"
	"go-hrm/internal/report"
	"go-hrm/internal/shared/counter"
	"go-hrm/internal/storage"
	"go-hrm/internal/task"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(
	ctx context.Context,
	router *gin.Engine,
	cfg *config.Config,
	deps *infrastructure,
	logger *zap.Logger,
) error {
	db := deps.sqlDB
	gormDB := deps.gormDB
	rdb := deps.redis

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	statusRepo := employeestatus.NewRepository(gormDB)
	projectRepo := project.NewRepository(gormDB)
	taskRepo := task.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	var templateRepo lettertemplate.Repository
	if deps.mongo != nil {
		templateRepo = lettertemplate.NewRepository(
			deps.mongo.Database(cfg.Mongo.Database).Collection(lettertemplate.CollectionName),
		)
		if err := templateRepo.EnsureIndexes(ctx); err != nil {
			logger.Warn("ensure letter template indexes failed", zap.Error(err))
		}
	}

	uploader := storage.NewMinioStore(deps.minio, cfg.MinIO.Bucket, cfg.MinIO.PublicBaseURL, logger)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, logger)
	if err := rbacService.LoadPolicy(ctx); err != nil {
		return err
	}

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo, counterRepo, rdb, logger)
	statusService := employeestatus.NewService(db, statusRepo, employeeService, outboxRepo, logger)
	projectService := project.NewService(db, projectRepo, counterRepo, employeeService, uploader, task.NewCascader(taskRepo), logger)
	taskService := task.NewService(db, taskRepo, projectRepo, employeeService, uploader, outboxRepo, logger)
	templateService := lettertemplate.NewService(templateRepo, logger)
	reportService := report.NewService(projectService, statusService, taskRepo, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	statusHandler := employeestatus.NewHandler(statusService, logger)
	projectHandler := project.NewHandler(projectService, logger)
	taskHandler := task.NewHandler(taskService, logger)
	templateHandler := lettertemplate.NewHandler(templateService, logger)
	reportHandler := report.NewHandler(reportService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	router.Use(middleware.RequestID())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Routes Registration ---
	secret := cfg.JWT.Secret
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimitByIP(20, 40))
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, secret, logger)
		employeestatus.RegisterRoutes(api, statusHandler, rbacService, secret, logger)
		project.RegisterRoutes(api, projectHandler, rbacService, secret, logger, rdb)
		task.RegisterRoutes(api, taskHandler, rbacService, secret, logger, rdb)
		lettertemplate.RegisterRoutes(api, templateHandler, rbacService, secret, logger)
		report.RegisterRoutes(api, reportHandler, rbacService, secret, logger)
		rbac.RegisterRoutes(api, rbacHandler, rbacService, secret, logger)
	}

	return nil
}
