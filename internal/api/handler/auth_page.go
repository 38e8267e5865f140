package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/api/views"
	"github.com/botaxxx/dashboard/internal/core/domain"
)

// AuthPageHandler serves the login, register, logout and OAuth callback views.
type AuthPageHandler struct {
	googleURL string
}

func NewAuthPageHandler(googleURL string) *AuthPageHandler {
	return &AuthPageHandler{googleURL: googleURL}
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

type registerForm struct {
	Name     string `form:"name" validate:"required"`
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// LoginForm handles GET /login. An ?error= code from the OAuth flow is shown
// above the form.
func (h *AuthPageHandler) LoginForm(c echo.Context) error {
	msg := views.OAuthErrorMessage(c.QueryParam("error"))
	return views.Render(c, http.StatusOK, views.Login("", msg, h.googleURL))
}

// Login handles POST /login.
func (h *AuthPageHandler) Login(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}

	var f loginForm
	if err := c.Bind(&f); err != nil {
		return views.Render(c, http.StatusBadRequest, views.Login("", "invalid form", h.googleURL))
	}
	if err := c.Validate(&f); err != nil {
		return views.Render(c, http.StatusUnprocessableEntity, views.Login(f.Email, err.Error(), h.googleURL))
	}

	if _, err := cc.Session.Login(c.Request().Context(), f.Email, f.Password); err != nil {
		status, msg := formFailure(err, "Login failed")
		return views.Render(c, status, views.Login(f.Email, msg, h.googleURL))
	}
	return c.Redirect(http.StatusSeeOther, domain.PathHome)
}

// RegisterForm handles GET /register.
func (h *AuthPageHandler) RegisterForm(c echo.Context) error {
	return views.Render(c, http.StatusOK, views.Register("", "", ""))
}

// Register handles POST /register. A successful registration signs the user
// in with the same credentials.
func (h *AuthPageHandler) Register(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}

	var f registerForm
	if err := c.Bind(&f); err != nil {
		return views.Render(c, http.StatusBadRequest, views.Register("", "", "invalid form"))
	}
	if err := c.Validate(&f); err != nil {
		return views.Render(c, http.StatusUnprocessableEntity, views.Register(f.Name, f.Email, err.Error()))
	}

	if _, err := cc.Session.Register(c.Request().Context(), f.Name, f.Email, f.Password); err != nil {
		status, msg := formFailure(err, "Registration failed")
		return views.Render(c, status, views.Register(f.Name, f.Email, msg))
	}
	return c.Redirect(http.StatusSeeOther, domain.PathHome)
}

// Logout handles POST /logout. The backend is not called.
func (h *AuthPageHandler) Logout(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}
	if err := cc.Session.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, domain.PathLogin)
}

// OAuthCallback handles GET /auth/google/callback?token=...
func (h *AuthPageHandler) OAuthCallback(c echo.Context) error {
	cc, err := client(c)
	if err != nil {
		return err
	}

	token := c.QueryParam("token")
	if token == "" {
		return c.Redirect(http.StatusSeeOther, domain.PathLogin)
	}
	if _, err := cc.Session.CompleteOAuth(c.Request().Context(), token); err != nil {
		if errors.Is(err, domain.ErrSessionSuperseded) {
			return c.Redirect(http.StatusSeeOther, domain.PathHome)
		}
		return c.Redirect(http.StatusSeeOther, domain.PathLogin+"?error=oauth_failed")
	}
	return c.Redirect(http.StatusSeeOther, domain.PathHome)
}
