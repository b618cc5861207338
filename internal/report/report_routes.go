package report

import (
	"go-hrm/internal/middleware"
	"go-hrm/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	jwtSecret string,
	logger *zap.Logger,
) {
	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware(jwtSecret))
	reports.Use(middleware.ContextLogger(logger))
	{
		reports.GET("/projects.xlsx",
			middleware.RateLimitByUser(1, 2),
			middleware.RBACAuthorize(rbacService, "report", "read"),
			handler.ExportProjects,
		)
	}
}
