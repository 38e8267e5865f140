package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/botaxxx/dashboard/internal/api/middleware"
	"github.com/botaxxx/dashboard/internal/api/views"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/infrastructure/backend"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Turns a rejected credential into a 303 to the page the gateway chose.
//   - Shows backend errors with their status and the server's message.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, domain.ErrAuthRejected) {
			target := domain.PathLogin
			if cc := middleware.ClientFrom(c); cc != nil {
				if p, ok := cc.Redirected(); ok {
					target = p
				}
			}
			_ = c.Redirect(http.StatusSeeOther, target)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = views.Render(c, code, views.Error(code, msg))
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status >= 500 {
			log.Warn().Int("status", apiErr.Status).Str("detail", apiErr.Detail).Str("path", c.Path()).Msg("backend error")
		}
		return apiErr.Status, apiErr.Error()
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
