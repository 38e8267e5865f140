package service

import (
	"context"
	"fmt"
	"time"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// AdminService backs the /admin endpoints.
type AdminService struct {
	repo   ports.AccountRepository
	alerts ports.AlertRepository
	now    func() time.Time
}

func NewAdminService(repo ports.AccountRepository, alerts ports.AlertRepository) *AdminService {
	return &AdminService{repo: repo, alerts: alerts, now: time.Now}
}

func (s *AdminService) Stats(ctx context.Context) (domain.AccountStats, error) {
	return s.repo.Stats(ctx)
}

// ListUsers clamps paging to sane bounds before querying.
func (s *AdminService) ListUsers(ctx context.Context, f domain.AccountFilter) ([]*domain.Account, int64, domain.AccountFilter, error) {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	users, total, err := s.repo.List(ctx, f)
	return users, total, f, err
}

func (s *AdminService) User(ctx context.Context, id int64) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateRole changes another account's role. Admins cannot demote themselves.
func (s *AdminService) UpdateRole(ctx context.Context, actor *domain.Account, id int64, role domain.Role) (*domain.Account, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}
	if actor != nil && actor.ID == id {
		return nil, domain.ErrSelfModification
	}
	return s.repo.UpdateRole(ctx, id, role)
}

// Suspend toggles an account's active flag. Admins cannot suspend themselves.
func (s *AdminService) Suspend(ctx context.Context, actor *domain.Account, id int64, suspend bool) (*domain.Account, error) {
	if actor != nil && actor.ID == id {
		return nil, domain.ErrSelfModification
	}
	return s.repo.SetActive(ctx, id, !suspend)
}

// DeleteUser removes an account and its alerts. Admins cannot delete
// themselves.
func (s *AdminService) DeleteUser(ctx context.Context, actor *domain.Account, id int64) error {
	if actor != nil && actor.ID == id {
		return domain.ErrSelfModification
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.alerts.DeleteForUser(ctx, id); err != nil {
		return fmt.Errorf("delete alerts of user %d: %w", id, err)
	}
	return nil
}

// SendAlert drops an alert into one active user's inbox.
func (s *AdminService) SendAlert(ctx context.Context, userID int64, title, message string) (*domain.Account, error) {
	account, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, domain.ErrRecipientAbsent
	}
	_, err = s.alerts.Add(ctx, domain.Alert{
		UserID:    account.ID,
		Title:     title,
		Message:   message,
		CreatedAt: s.now().UTC(),
	})
	return account, err
}

// Broadcast gives every active user a copy of the alert and reports how many
// were reached.
func (s *AdminService) Broadcast(ctx context.Context, title, message string) (int64, error) {
	accounts, _, err := s.repo.List(ctx, domain.AccountFilter{})
	if err != nil {
		return 0, err
	}
	now := s.now().UTC()
	batch := make([]domain.Alert, 0, len(accounts))
	for _, a := range accounts {
		if !a.IsActive {
			continue
		}
		batch = append(batch, domain.Alert{UserID: a.ID, Title: title, Message: message, CreatedAt: now})
	}
	if len(batch) == 0 {
		return 0, nil
	}
	if _, err := s.alerts.Add(ctx, batch...); err != nil {
		return 0, err
	}
	return int64(len(batch)), nil
}
