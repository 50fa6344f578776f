package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sgsm/taskboard/internal/core/domain"
)

// RBAC restricts a route group to the given global roles. Project-level
// permissions are decided by the services, not here.
func RBAC(allowedRoles ...domain.GlobalRole) echo.MiddlewareFunc {
	allowed := make(map[domain.GlobalRole]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if _, ok := allowed[domain.GlobalRole(role)]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
