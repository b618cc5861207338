package employeestatus

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
	statuses := r.Group("/employee-status")
	statuses.Use(middleware.AuthMiddleware(jwtSecret))
	statuses.Use(middleware.ContextLogger(logger))
	{
		statuses.GET("/overview",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee_status", "read"),
			handler.GetOverview,
		)

		statuses.GET("/:employeeId",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee_status", "read"),
			handler.GetStatus,
		)

		statuses.GET("/:employeeId/history",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "employee_status", "read"),
			handler.GetHistory,
		)

		statuses.PUT("/:employeeId",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "employee_status", "update"),
			handler.UpsertStatus,
		)
	}
}
