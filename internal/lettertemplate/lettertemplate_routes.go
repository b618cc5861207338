package lettertemplate

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
	templates := r.Group("/letter-templates")
	templates.Use(middleware.AuthMiddleware(jwtSecret))
	templates.Use(middleware.ContextLogger(logger))
	{
		templates.GET("",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, "letter_template", "read"),
			handler.List,
		)

		templates.GET("/type/:type",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, "letter_template", "read"),
			handler.GetByType,
		)

		templates.GET("/:name",
			middleware.RateLimitByUser(5, 10),
			middleware.RBACAuthorize(rbacService, "letter_template", "read"),
			handler.GetByName,
		)

		templates.PUT("/:name",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "letter_template", "update"),
			handler.Upsert,
		)

		templates.PATCH("/:name/active",
			middleware.RateLimitByUser(1, 3),
			middleware.RBACAuthorize(rbacService, "letter_template", "update"),
			handler.SetActive,
		)

		templates.POST("/:name/render",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "letter_template", "read"),
			handler.Render,
		)
	}
}
