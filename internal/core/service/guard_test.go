package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

var (
	maintenanceOn  = domain.MaintenanceState{IsMaintenance: true, Message: "Upgrading the database"}
	maintenanceOff = domain.MaintenanceState{}
)

func TestPrivateGuard(t *testing.T) {
	cases := []struct {
		name string
		in   GuardInput
		want domain.Intent
	}{
		{"loading without identity waits", GuardInput{Loading: true}, domain.Wait()},
		{"loading with identity still waits", GuardInput{Loading: true, Identity: userIdentity()}, domain.Wait()},
		{"loading during maintenance waits", GuardInput{Loading: true, Maintenance: maintenanceOn}, domain.Wait()},
		{"anonymous goes to login", GuardInput{}, domain.RedirectTo("/login")},
		{"user renders", GuardInput{Identity: userIdentity(), Maintenance: maintenanceOff}, domain.Allow()},
		{"user blocked by maintenance", GuardInput{Identity: userIdentity(), Maintenance: maintenanceOn}, domain.Block("Upgrading the database")},
		{"admin bypasses maintenance", GuardInput{Identity: adminIdentity(), Maintenance: maintenanceOn}, domain.Allow()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrivateGuard(tc.in))
		})
	}
}

func TestAdminGuard(t *testing.T) {
	cases := []struct {
		name string
		in   GuardInput
		want domain.Intent
	}{
		{"loading waits", GuardInput{Loading: true, Identity: adminIdentity()}, domain.Wait()},
		{"anonymous goes to login", GuardInput{}, domain.RedirectTo("/login")},
		{"user goes home", GuardInput{Identity: userIdentity()}, domain.RedirectTo("/")},
		{"user goes home during maintenance", GuardInput{Identity: userIdentity(), Maintenance: maintenanceOn}, domain.RedirectTo("/")},
		{"admin renders", GuardInput{Identity: adminIdentity()}, domain.Allow()},
		{"admin renders during maintenance", GuardInput{Identity: adminIdentity(), Maintenance: maintenanceOn}, domain.Allow()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AdminGuard(tc.in))
		})
	}
}

func TestMaintenanceGuard_DefaultNotice(t *testing.T) {
	in := GuardInput{Identity: userIdentity(), Maintenance: domain.MaintenanceState{IsMaintenance: true}}
	got := MaintenanceGuard(in)
	assert.Equal(t, domain.OutcomeBlock, got.Outcome)
	assert.Equal(t, domain.DefaultMaintenanceMessage, got.Reason)
}

func TestLookupRoute(t *testing.T) {
	r, ok := LookupRoute("/savings/")
	require.True(t, ok)
	assert.Equal(t, AccessPrivate, r.Access)

	r, ok = LookupRoute("/admin/users?skip=20")
	require.True(t, ok)
	assert.Equal(t, AccessAdmin, r.Access)

	r, ok = LookupRoute("/login")
	require.True(t, ok)
	assert.Equal(t, AccessPublic, r.Access)

	_, ok = LookupRoute("/nowhere")
	assert.False(t, ok)
}

func TestEvaluate_PublicRoutesAlwaysRender(t *testing.T) {
	for _, path := range []string{"/login", "/auth/google/callback"} {
		r, _ := LookupRoute(path)
		assert.False(t, r.ConsultsMaintenance(), path)
		assert.Equal(t, domain.Allow(), Evaluate(r, GuardInput{Loading: true}), path)
		assert.Equal(t, domain.Allow(), Evaluate(r, GuardInput{Maintenance: maintenanceOn}), path)
	}
}

func TestEvaluate_RegisterClosedDuringMaintenance(t *testing.T) {
	r, ok := LookupRoute("/register")
	require.True(t, ok)
	assert.Equal(t, AccessGated, r.Access)
	assert.True(t, r.ConsultsMaintenance())

	assert.Equal(t, domain.Allow(), Evaluate(r, GuardInput{Loading: true}))
	assert.Equal(t, domain.Allow(), Evaluate(r, GuardInput{Maintenance: maintenanceOff}))
	assert.Equal(t, domain.Block(maintenanceOn.Message), Evaluate(r, GuardInput{Maintenance: maintenanceOn}))
	// Sign-up ignores any identity, admins included.
	assert.Equal(t, domain.Block(maintenanceOn.Message), Evaluate(r, GuardInput{Identity: adminIdentity(), Maintenance: maintenanceOn}))
}

// No stored token: loading ends with no identity and /savings redirects to login.
func TestEvaluate_AnonymousSavingsRedirectsToLogin(t *testing.T) {
	s := newTestSession(&stubStore{}, &stubAPI{})
	assert.True(t, s.Snapshot().Loading)
	assert.NoError(t, s.Init(t.Context()))

	r, _ := LookupRoute("/savings")
	assert.Equal(t, domain.RedirectTo("/login"), Evaluate(r, InputFrom(s.Snapshot(), maintenanceOff)))
}

func TestEvaluate_UserOpeningAdminGoesHome(t *testing.T) {
	s := resolvedSession(t, userIdentity())
	r, _ := LookupRoute("/admin")
	assert.Equal(t, domain.RedirectTo("/"), Evaluate(r, InputFrom(s.Snapshot(), maintenanceOff)))
}

func TestEvaluate_AdminRendersEverythingDuringMaintenance(t *testing.T) {
	s := resolvedSession(t, adminIdentity())
	in := InputFrom(s.Snapshot(), maintenanceOn)

	admin, _ := LookupRoute("/admin")
	savings, _ := LookupRoute("/savings")
	assert.Equal(t, domain.Allow(), Evaluate(admin, in))
	assert.Equal(t, domain.Allow(), Evaluate(savings, in))
}

func TestEvaluate_UserSavingsBlockedDuringMaintenance(t *testing.T) {
	s := resolvedSession(t, userIdentity())
	savings, _ := LookupRoute("/savings")

	got := Evaluate(savings, InputFrom(s.Snapshot(), maintenanceOn))
	assert.Equal(t, domain.OutcomeBlock, got.Outcome)
	assert.Equal(t, maintenanceOn.Message, got.Reason)
}

func resolvedSession(t *testing.T, id *domain.Identity) *Session {
	t.Helper()
	api := &stubAPI{meFn: func(_ context.Context) (*domain.Identity, error) { return id, nil }}
	s := newTestSession(&stubStore{cred: "tok", present: true}, api)
	require.NoError(t, s.Init(t.Context()))
	require.False(t, s.Snapshot().Loading)
	return s
}
