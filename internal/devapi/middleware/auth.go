package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

const accountKey = "account"

// Auth validates the bearer token and injects the account into context.
// Suspended accounts are refused with 403.
func Auth(accounts ports.AccountService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header")
			}

			account, err := accounts.Authenticate(c.Request().Context(), parts[1])
			if errors.Is(err, domain.ErrInvalidCredentials) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}
			if err != nil {
				return err
			}
			if !account.IsActive {
				return echo.NewHTTPError(http.StatusForbidden, "Account suspended")
			}

			c.Set(accountKey, account)
			return next(c)
		}
	}
}

// AccountFrom returns the account injected by Auth, or nil.
func AccountFrom(c echo.Context) *domain.Account {
	a, _ := c.Get(accountKey).(*domain.Account)
	return a
}
