package middleware

import (
	"net/http"

	"go-hrm/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// CurrentEmployeeID returns the employee id AuthMiddleware stored on the
// context. When it is missing the request is answered with 401 and ok is
// false.
func CurrentEmployeeID(c *gin.Context) (string, bool) {
	employeeID := c.GetString("employee_id")
	if employeeID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Employee is not authenticated", nil)
		c.Abort()
		return "", false
	}
	return employeeID, true
}
