package views

import (
	"github.com/labstack/echo/v4"
	"maragu.dev/gomponents"
)

// Render writes node as an HTML response.
func Render(c echo.Context, status int, node gomponents.Node) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return node.Render(c.Response())
}
