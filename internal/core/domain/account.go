package domain

import "time"

// Account is a user record as stored by the development backend.
type Account struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity renders the account the way GET /users/me exposes it.
func (a *Account) Identity() Identity {
	return Identity{
		ID:        a.ID,
		Name:      a.Name,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt.UTC().Format("2006-01-02T15:04:05"),
	}
}

// AccountFilter drives the admin user listing.
type AccountFilter struct {
	Search string // partial, case-insensitive match on name or email
	Skip   int
	Limit  int
}

// AccountStats backs GET /admin/stats.
type AccountStats struct {
	TotalUsers     int64 `json:"total_users"`
	ActiveUsers    int64 `json:"active_users"`
	SuspendedUsers int64 `json:"suspended_users"`
	AdminUsers     int64 `json:"admin_users"`
}
