package ports

import (
	"context"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// AccountRepository persists development-backend accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, int64, error)
	UpdateRole(ctx context.Context, id int64, role domain.Role) (*domain.Account, error)
	SetActive(ctx context.Context, id int64, active bool) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (domain.AccountStats, error)
}

// BankRepository persists bank master data and logos.
type BankRepository interface {
	List(ctx context.Context) ([]domain.Bank, error)
	FindByID(ctx context.Context, id int64) (domain.Bank, error)
	Create(ctx context.Context, bank domain.Bank) (domain.Bank, error)
	Update(ctx context.Context, id int64, settings domain.BankSettings) (domain.Bank, error)
	SetLogo(ctx context.Context, id int64, filename string, data []byte) (domain.Bank, error)
	Logo(ctx context.Context, filename string) ([]byte, error)
	Delete(ctx context.Context, id int64) error
}

// AlertRepository keeps per-user alerts.
type AlertRepository interface {
	Add(ctx context.Context, alerts ...domain.Alert) ([]domain.Alert, error)
	List(ctx context.Context, userID int64, filter domain.AlertFilter) (domain.AlertInbox, error)
	MarkRead(ctx context.Context, userID, alertID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	DeleteForUser(ctx context.Context, userID int64) error
}

// AccountService is the development backend's registration and token logic.
type AccountService interface {
	Register(ctx context.Context, name, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
}
