package project

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	logger *zap.Logger,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	projects := r.Group("/projects")
	projects.Use(middleware.AuthMiddleware(jwtSecret))
	projects.Use(middleware.ContextLogger(logger))
	{
		projects.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "project", "read"),
			handler.List,
		)

		projects.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "project", "create"),
			middleware.Idempotency(redisClient, logger),
			handler.Create,
		)

		// Any authenticated employee can see their own projects.
		projects.GET("/my", middleware.RateLimitByUser(3, 10), handler.GetMyProjects)
		projects.GET("/managed", middleware.RateLimitByUser(3, 10), handler.GetMyManagedProjects)

		projects.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "project", "read"),
			handler.GetByID,
		)

		projects.PUT("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "project", "update"),
			handler.Update,
		)

		projects.DELETE("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "project", "delete"),
			handler.Delete,
		)

		modules := projects.Group("/:id/modules")
		modules.Use(middleware.RateLimitByUser(1, 3))
		{
			modules.POST("",
				middleware.RBACAuthorize(rbacService, "project_module", "create"),
				handler.AddModule,
			)
			modules.PUT("/:moduleId",
				middleware.RBACAuthorize(rbacService, "project_module", "update"),
				handler.UpdateModule,
			)
			modules.DELETE("/:moduleId",
				middleware.RBACAuthorize(rbacService, "project_module", "delete"),
				handler.DeleteModule,
			)
			modules.PUT("/:moduleId/team-lead",
				middleware.RBACAuthorize(rbacService, "project_module", "assign"),
				handler.AssignModuleTeamLead,
			)
			modules.POST("/:moduleId/files",
				middleware.RBACAuthorize(rbacService, "project_module", "update"),
				handler.AttachModuleFiles,
			)
		}

		requirements := projects.Group("/:id/requirements")
		requirements.Use(middleware.RateLimitByUser(1, 3))
		{
			requirements.POST("",
				middleware.RBACAuthorize(rbacService, "project_requirement", "create"),
				handler.AddRequirement,
			)
			requirements.DELETE("/:requirementId",
				middleware.RBACAuthorize(rbacService, "project_requirement", "delete"),
				handler.DeleteRequirement,
			)
		}
	}
}
