package ports

import (
	"context"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// TokenStore is a blind, durable container for one client context's bearer
// credential. It never inspects the token.
type TokenStore interface {
	// Get returns the stored credential and whether one is present.
	Get(ctx context.Context) (domain.Credential, bool, error)
	Set(ctx context.Context, cred domain.Credential) error
	// Clear is idempotent and succeeds when nothing is stored.
	Clear(ctx context.Context) error
}

// TokenStoreProvider hands out the TokenStore for a client scope (a browser
// cookie id, or the backend origin for the terminal client).
type TokenStoreProvider interface {
	For(scope string) TokenStore
}
