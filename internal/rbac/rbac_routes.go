package rbac

import (
	"go-hrm/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service, jwtSecret string, logger *zap.Logger) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(jwtSecret))
	group.Use(middleware.ContextLogger(logger))
	{
		group.POST("/enforce",
			middleware.RateLimitByUser(5, 20),
			handler.Enforce,
		)
		group.POST("/reload",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(service, "rbac", "manage"),
			handler.Reload,
		)
	}
}
