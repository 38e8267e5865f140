package domain

// Role is the single authorization signal carried by an Identity.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Credential is an opaque bearer token. The zero value means "no credential".
type Credential string

// Identity is the user record resolved from GET /users/me. It is never built
// locally from token contents; the server is authoritative.
type Identity struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       Role    `json:"role"`
	IsActive   bool    `json:"is_active"`
	TelegramID *string `json:"telegram_id,omitempty"`
	AvatarURL  *string `json:"avatar_url,omitempty"`
	// CreatedAt is kept verbatim; the backend emits naive ISO timestamps.
	CreatedAt string `json:"created_at,omitempty"`
}

// IsAdmin is nil-safe so guards can ask it of an unresolved identity.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// TokenResponse is the body returned by POST /auth/login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
