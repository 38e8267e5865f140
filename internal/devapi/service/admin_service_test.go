package service

import (
	"context"
	"testing"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/devapi/store"
)

func TestAdminService_SelfModificationRejected(t *testing.T) {
	repo := store.NewMemoryAccounts()
	accounts := NewAccountService(repo, "secret", 0)
	admin, _ := accounts.EnsureAdmin(context.Background(), "Root", "root@x.io", "pw")
	svc := NewAdminService(repo, store.NewMemoryAlerts())

	if _, err := svc.Suspend(context.Background(), admin, admin.ID, true); err != domain.ErrSelfModification {
		t.Fatalf("expected ErrSelfModification, got %v", err)
	}
	if _, err := svc.UpdateRole(context.Background(), admin, admin.ID, domain.RoleUser); err != domain.ErrSelfModification {
		t.Fatalf("expected ErrSelfModification, got %v", err)
	}
}

func TestAdminService_SuspendAndRole(t *testing.T) {
	repo := store.NewMemoryAccounts()
	accounts := NewAccountService(repo, "secret", 0)
	admin, _ := accounts.EnsureAdmin(context.Background(), "Root", "root@x.io", "pw")
	user, _ := accounts.Register(context.Background(), "U", "u@x.io", "pw")
	svc := NewAdminService(repo, store.NewMemoryAlerts())

	got, err := svc.Suspend(context.Background(), admin, user.ID, true)
	if err != nil || got.IsActive {
		t.Fatalf("expected suspended user, got %+v, %v", got, err)
	}
	got, err = svc.UpdateRole(context.Background(), admin, user.ID, domain.RoleAdmin)
	if err != nil || got.Role != domain.RoleAdmin {
		t.Fatalf("expected promoted user, got %+v, %v", got, err)
	}
	if _, err := svc.UpdateRole(context.Background(), admin, user.ID, "owner"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected invalid role to be rejected, got %v", err)
	}

	n, _ := svc.Broadcast(context.Background(), "", "hello")
	if n != 1 {
		t.Fatalf("expected 1 active recipient, got %d", n)
	}
}

func TestAdminService_AlertsAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryAccounts()
	alerts := store.NewMemoryAlerts()
	accounts := NewAccountService(repo, "secret", 0)
	admin, _ := accounts.EnsureAdmin(ctx, "Root", "root@x.io", "pw")
	rina, _ := accounts.Register(ctx, "Rina", "rina@x.io", "pw")
	budi, _ := accounts.Register(ctx, "Budi", "budi@x.io", "pw")
	svc := NewAdminService(repo, alerts)

	got, err := svc.SendAlert(ctx, rina.ID, "Loan", "Installment due")
	if err != nil || got.Email != "rina@x.io" {
		t.Fatalf("send alert: %+v, %v", got, err)
	}
	if _, err := svc.SendAlert(ctx, 99, "", "x"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	_, _ = svc.Suspend(ctx, admin, budi.ID, true)
	if _, err := svc.SendAlert(ctx, budi.ID, "", "x"); err != domain.ErrRecipientAbsent {
		t.Fatalf("expected ErrRecipientAbsent for a suspended user, got %v", err)
	}

	n, err := svc.Broadcast(ctx, "", "Upgrade tonight")
	if err != nil || n != 2 {
		t.Fatalf("expected 2 recipients, got %d, %v", n, err)
	}
	if inbox, _ := alerts.List(ctx, rina.ID, domain.AlertFilter{}); inbox.UnreadCount != 2 {
		t.Fatalf("expected 2 alerts for rina, got %+v", inbox)
	}
	if inbox, _ := alerts.List(ctx, budi.ID, domain.AlertFilter{}); inbox.Total != 0 {
		t.Fatalf("suspended users get no broadcast, got %+v", inbox)
	}

	if err := svc.DeleteUser(ctx, admin, admin.ID); err != domain.ErrSelfModification {
		t.Fatalf("expected ErrSelfModification, got %v", err)
	}
	if err := svc.DeleteUser(ctx, admin, rina.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.User(ctx, rina.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected deleted user gone, got %v", err)
	}
	if inbox, _ := alerts.List(ctx, rina.ID, domain.AlertFilter{}); inbox.Total != 0 {
		t.Fatalf("expected alerts deleted with the user, got %+v", inbox)
	}
	if err := svc.DeleteUser(ctx, admin, rina.ID); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAdminService_ListClampsPaging(t *testing.T) {
	svc := NewAdminService(store.NewMemoryAccounts(), store.NewMemoryAlerts())
	_, _, f, err := svc.ListUsers(context.Background(), domain.AccountFilter{Skip: -3, Limit: 10_000})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if f.Skip != 0 || f.Limit != maxListLimit {
		t.Fatalf("unexpected clamped filter %+v", f)
	}
}

func TestMaintenanceSwitch(t *testing.T) {
	m := NewMaintenanceSwitch()
	if m.State().IsMaintenance {
		t.Fatalf("expected maintenance off by default")
	}
	if st := m.Set(true, ""); st.Message != domain.DefaultMaintenanceMessage {
		t.Fatalf("expected default message, got %q", st.Message)
	}
	if st := m.Set(false, "ignored"); st.IsMaintenance || st.Message != "" {
		t.Fatalf("expected cleared state, got %+v", st)
	}
}
