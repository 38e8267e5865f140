// Package handler holds the HTTP handlers of the development backend. Error
// bodies follow the backend's {"detail": "..."} envelope.
package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

type detail struct {
	Detail string `json:"detail"`
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, detail{Detail: msg})
}

type AuthHandler struct {
	accounts     ports.AccountService
	dashboardURL string
}

// NewAuthHandler wires the auth endpoints. dashboardURL is where the Google
// entry point sends the browser back to.
func NewAuthHandler(accounts ports.AccountService, dashboardURL string) *AuthHandler {
	return &AuthHandler{accounts: accounts, dashboardURL: strings.TrimRight(dashboardURL, "/")}
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	_, err := h.accounts.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrUserExists):
		return fail(c, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(c, http.StatusBadRequest, "Invalid registration data")
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Registered successfully"})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusUnprocessableEntity, err.Error())
	}

	token, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fail(c, http.StatusBadRequest, "Invalid credentials")
	case errors.Is(err, domain.ErrUserSuspended):
		return fail(c, http.StatusForbidden, "Account suspended")
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, domain.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// Google handles GET /auth/google. No OAuth client is configured here, so the
// browser goes straight back to the login view with the matching error code.
func (h *AuthHandler) Google(c echo.Context) error {
	return c.Redirect(http.StatusFound, h.dashboardURL+"/login?error=oauth_not_configured")
}
