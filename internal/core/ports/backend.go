package ports

import (
	"context"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// AuthAPI is the slice of the REST backend the session layer depends on.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.TokenResponse, error)
	Register(ctx context.Context, name, email, password string) error
	Me(ctx context.Context) (*domain.Identity, error)
}

// MaintenanceSource reads the public maintenance flag.
type MaintenanceSource interface {
	MaintenanceStatus(ctx context.Context) (domain.MaintenanceState, error)
}

// Navigator performs a hard navigation for the client context bound to ctx.
type Navigator interface {
	Redirect(ctx context.Context, path string)
}
