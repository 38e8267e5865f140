package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	apihandler "github.com/botaxxx/dashboard/internal/api/handler"
	"github.com/botaxxx/dashboard/internal/core/domain"
)

type stubAccountService struct {
	registerFn func(ctx context.Context, name, email, password string) (*domain.Account, error)
	loginFn    func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAccountService) Register(ctx context.Context, name, email, password string) (*domain.Account, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Authenticate(context.Context, string) (*domain.Account, error) {
	return nil, domain.ErrInvalidCredentials
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = apihandler.NewValidator()
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	s, _ := resp["detail"].(string)
	return s
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, name, email, password string) (*domain.Account, error) {
			if name != "Alice" || email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return &domain.Account{ID: 1, Name: name, Email: email, Role: domain.RoleUser}, nil
		},
	}
	handler := NewAuthHandler(stub, "http://localhost:8080")

	c, rec := postJSON(e, "/auth/register", `{"name":"Alice","email":"alice@example.com","password":"secret1"}`)
	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Registered successfully") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	e := newEcho()
	stub := &stubAccountService{
		registerFn: func(context.Context, string, string, string) (*domain.Account, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub, "")

	c, rec := postJSON(e, "/auth/register", `{"name":"Bob","email":"bob@example.com","password":"secret1"}`)
	_ = handler.Register(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "Email already registered" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAccountService{
		registerFn: func(context.Context, string, string, string) (*domain.Account, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, rec := postJSON(e, "/auth/register", "not-json")
	_ = handler.Register(c)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	c, rec = postJSON(e, "/auth/register", `{"name":"Bob","email":"not-an-email","password":"secret1"}`)
	_ = handler.Register(c)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if got := decodeDetail(t, rec); got != "email must be a valid email" {
		t.Fatalf("unexpected detail: %q", got)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (string, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, rec := postJSON(e, "/auth/login", `{"email":"alice@example.com","password":"secret"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp domain.TokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.AccessToken != "token123" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	cases := []struct {
		err    error
		status int
		detail string
	}{
		{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{domain.ErrUserSuspended, http.StatusForbidden, "Account suspended"},
	}
	for _, tc := range cases {
		e := newEcho()
		stub := &stubAccountService{
			loginFn: func(context.Context, string, string) (string, error) { return "", tc.err },
		}
		handler := NewAuthHandler(stub, "")

		c, rec := postJSON(e, "/auth/login", `{"email":"alice@example.com","password":"bad"}`)
		_ = handler.Login(c)

		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
		if got := decodeDetail(t, rec); got != tc.detail {
			t.Fatalf("%v: unexpected detail %q", tc.err, got)
		}
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	e := newEcho()
	stub := &stubAccountService{
		loginFn: func(context.Context, string, string) (string, error) {
			t.Fatalf("should not be called")
			return "", nil
		},
	}
	handler := NewAuthHandler(stub, "")

	c, rec := postJSON(e, "/auth/login", "{")
	_ = handler.Login(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Google_RedirectsToLoginWithError(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubAccountService{}, "http://localhost:8080/")

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/google", nil), rec)
	_ = handler.Google(c)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "http://localhost:8080/login?error=oauth_not_configured" {
		t.Fatalf("unexpected location %q", loc)
	}
}
