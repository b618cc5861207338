package task

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

	tasks := r.Group("/tasks")
	tasks.Use(middleware.AuthMiddleware(jwtSecret))
	tasks.Use(middleware.ContextLogger(logger))
	{
		tasks.POST("",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "task", "create"),
			middleware.Idempotency(redisClient, logger),
			handler.Create,
		)

		tasks.GET("/my", middleware.RateLimitByUser(3, 10), handler.GetMyTasks)

		tasks.GET("/module/:moduleId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "task", "read"),
			handler.GetByModule,
		)

		// Assignees are checked by the service, so no RBAC gate here.
		tasks.PATCH("/:id/status",
			middleware.RateLimitByUser(1, 3),
			handler.UpdateStatus,
		)

		tasks.DELETE("/:id",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "task", "delete"),
			handler.Delete,
		)
	}
}
