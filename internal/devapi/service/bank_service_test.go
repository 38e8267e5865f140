package service

import (
	"context"
	"testing"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/devapi/store"
)

func TestBankService_CreateNormalises(t *testing.T) {
	svc := NewBankService(store.NewMemoryBanks())
	b, err := svc.Create(context.Background(), domain.Bank{Name: "  Bank Central Asia ", Code: " BCA", LogoFilename: "ignored.png"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.Name != "Bank Central Asia" || b.Code != "bca" || b.Country != domain.DefaultBankCountry || !b.IsActive || b.LogoFilename != "" {
		t.Fatalf("unexpected bank %+v", b)
	}
}

func TestBankService_UpdateLogo(t *testing.T) {
	svc := NewBankService(store.NewMemoryBanks())
	ctx := context.Background()
	b, _ := svc.Create(ctx, domain.Bank{Name: "BCA", Code: "bca"})

	got, err := svc.UpdateLogo(ctx, b.ID, "Brand Logo.PNG", []byte("png"))
	if err != nil {
		t.Fatalf("update logo: %v", err)
	}
	if got.LogoFilename != "bca.png" {
		t.Fatalf("expected logo stored under the bank code, got %q", got.LogoFilename)
	}
	if data, err := svc.Logo(ctx, "bca.png"); err != nil || string(data) != "png" {
		t.Fatalf("logo: %q, %v", data, err)
	}

	cases := map[string][]byte{
		"logo.gif": []byte("gif"),
		"logo":     []byte("png"),
		"logo.png": nil,
		"big.svg":  make([]byte, MaxLogoBytes+1),
	}
	for name, data := range cases {
		if _, err := svc.UpdateLogo(ctx, b.ID, name, data); err != domain.ErrInvalidLogo {
			t.Fatalf("%s: expected ErrInvalidLogo, got %v", name, err)
		}
	}
	if _, err := svc.UpdateLogo(ctx, 99, "logo.png", []byte("png")); err != domain.ErrBankNotFound {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestAlertService_InboxClampsPaging(t *testing.T) {
	alerts := store.NewMemoryAlerts()
	ctx := context.Background()
	batch := make([]domain.Alert, 0, 120)
	for range 120 {
		batch = append(batch, domain.Alert{UserID: 1, Message: "m"})
	}
	_, _ = alerts.Add(ctx, batch...)
	svc := NewAlertService(alerts)

	inbox, _ := svc.Inbox(ctx, 1, domain.AlertFilter{Skip: -5})
	if len(inbox.Alerts) != defaultAlertLimit {
		t.Fatalf("expected default page of %d, got %d", defaultAlertLimit, len(inbox.Alerts))
	}
	inbox, _ = svc.Inbox(ctx, 1, domain.AlertFilter{Limit: 1000})
	if len(inbox.Alerts) != maxAlertLimit || inbox.Total != 120 {
		t.Fatalf("expected clamped page of %d, got %d of %d", maxAlertLimit, len(inbox.Alerts), inbox.Total)
	}
}
