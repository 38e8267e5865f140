package service

import (
	"context"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

const (
	defaultAlertLimit = 10
	maxAlertLimit     = 100
)

// AlertService is the user side of alerts: the inbox and read markers.
type AlertService struct {
	repo ports.AlertRepository
}

func NewAlertService(repo ports.AlertRepository) *AlertService {
	return &AlertService{repo: repo}
}

// Inbox clamps paging the same way the user listing does.
func (s *AlertService) Inbox(ctx context.Context, userID int64, f domain.AlertFilter) (domain.AlertInbox, error) {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = defaultAlertLimit
	}
	f.Limit = min(f.Limit, maxAlertLimit)
	return s.repo.List(ctx, userID, f)
}

func (s *AlertService) MarkRead(ctx context.Context, userID, alertID int64) error {
	return s.repo.MarkRead(ctx, userID, alertID)
}

func (s *AlertService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}
