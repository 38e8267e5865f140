// Package service holds the business logic of the development backend: a
// small stand-in for the REST API the dashboard fronts.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// AccountService implements registration, login and bearer validation.
type AccountService struct {
	repo      ports.AccountRepository
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

var _ ports.AccountService = (*AccountService)(nil)

func NewAccountService(repo ports.AccountRepository, jwtSecret string, tokenTTL time.Duration) *AccountService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AccountService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Register creates an active account with the user role.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*domain.Account, error) {
	return s.create(ctx, name, email, password, domain.RoleUser)
}

func (s *AccountService) create(ctx context.Context, name, email, password string, role domain.Role) (*domain.Account, error) {
	email = normalizeEmail(email)
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return s.repo.Create(ctx, &domain.Account{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// Login checks the password and issues a bearer token. Suspended accounts
// cannot log in.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}
	if !account.IsActive {
		return "", domain.ErrUserSuspended
	}

	return s.generateToken(account)
}

// Authenticate resolves a bearer token to its account. The account is
// returned even when suspended; callers decide what that means.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	account, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	return account, err
}

// EnsureAdmin creates the account as admin, or promotes and reactivates an
// existing one with the same email.
func (s *AccountService) EnsureAdmin(ctx context.Context, name, email, password string) (*domain.Account, error) {
	existing, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return s.create(ctx, name, email, password, domain.RoleAdmin)
	case err != nil:
		return nil, err
	}
	if existing.Role != domain.RoleAdmin {
		if existing, err = s.repo.UpdateRole(ctx, existing.ID, domain.RoleAdmin); err != nil {
			return nil, fmt.Errorf("promote admin: %w", err)
		}
	}
	if !existing.IsActive {
		if existing, err = s.repo.SetActive(ctx, existing.ID, true); err != nil {
			return nil, fmt.Errorf("activate admin: %w", err)
		}
	}
	return existing, nil
}

func (s *AccountService) generateToken(account *domain.Account) (string, error) {
	now := s.now()
	claims := struct {
		Role domain.Role `json:"role"`
		jwt.RegisteredClaims
	}{
		Role: account.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(account.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
