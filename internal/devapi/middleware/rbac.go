package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// RBAC enforces role-based access control on the account set by Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account := AccountFrom(c)
			if account == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}
			if _, ok := allowed[account.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"detail": "Admin access required"})
			}
			return next(c)
		}
	}
}
