package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

// ── stubs ─────────────────────────────────────────────────────────────────────

type stubStore struct {
	mu      sync.Mutex
	cred    domain.Credential
	present bool
	getErr  error
	clears  int
}

func (s *stubStore) Get(context.Context) (domain.Credential, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred, s.present, s.getErr
}

func (s *stubStore) Set(_ context.Context, c domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred, s.present = c, true
	return nil
}

func (s *stubStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred, s.present = "", false
	s.clears++
	return nil
}

type stubAPI struct {
	loginFn    func(email, password string) (domain.TokenResponse, error)
	registerFn func(name, email, password string) error
	meFn       func(ctx context.Context) (*domain.Identity, error)
	registered []string
}

func (a *stubAPI) Login(_ context.Context, email, password string) (domain.TokenResponse, error) {
	return a.loginFn(email, password)
}

func (a *stubAPI) Register(_ context.Context, name, email, password string) error {
	a.registered = append(a.registered, email)
	if a.registerFn != nil {
		return a.registerFn(name, email, password)
	}
	return nil
}

func (a *stubAPI) Me(ctx context.Context) (*domain.Identity, error) {
	return a.meFn(ctx)
}

var errUnauthorized = errors.New("401 unauthorized")

func userIdentity() *domain.Identity {
	return &domain.Identity{ID: 7, Name: "Rina", Email: "rina@example.com", Role: domain.RoleUser, IsActive: true}
}

func adminIdentity() *domain.Identity {
	return &domain.Identity{ID: 1, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin, IsActive: true}
}

func newTestSession(store *stubStore, api *stubAPI) *Session {
	return NewSession(store, api, zerolog.Nop())
}

// ── Init ──────────────────────────────────────────────────────────────────────

func TestSession_StartsLoading(t *testing.T) {
	s := newTestSession(&stubStore{}, &stubAPI{})
	assert.True(t, s.Snapshot().Loading)
	assert.Nil(t, s.Identity())
}

func TestSession_Init_NoCredential(t *testing.T) {
	api := &stubAPI{meFn: func(context.Context) (*domain.Identity, error) {
		t.Fatal("Me must not be called without a credential")
		return nil, nil
	}}
	s := newTestSession(&stubStore{}, api)

	require.NoError(t, s.Init(context.Background()))

	st := s.Snapshot()
	assert.False(t, st.Loading)
	assert.Nil(t, st.Identity)
}

func TestSession_Init_ValidCredential(t *testing.T) {
	store := &stubStore{cred: "tok", present: true}
	api := &stubAPI{meFn: func(context.Context) (*domain.Identity, error) { return userIdentity(), nil }}
	s := newTestSession(store, api)

	require.NoError(t, s.Init(context.Background()))

	st := s.Snapshot()
	assert.False(t, st.Loading)
	require.NotNil(t, st.Identity)
	assert.Equal(t, int64(7), st.Identity.ID)
	assert.Equal(t, 0, store.clears)
}

func TestSession_Init_RejectedCredentialIsClearedSilently(t *testing.T) {
	store := &stubStore{cred: "expired", present: true}
	api := &stubAPI{meFn: func(context.Context) (*domain.Identity, error) { return nil, errUnauthorized }}
	s := newTestSession(store, api)

	require.NoError(t, s.Init(context.Background()))

	_, ok, _ := store.Get(context.Background())
	assert.False(t, ok)
	assert.Nil(t, s.Identity())
	assert.False(t, s.Snapshot().Loading)
}

func TestSession_Init_StoreErrorEndsLoading(t *testing.T) {
	store := &stubStore{getErr: errors.New("disk gone")}
	s := newTestSession(store, &stubAPI{})

	err := s.Init(context.Background())

	require.Error(t, err)
	assert.False(t, s.Snapshot().Loading)
}

// ── Login / Register ──────────────────────────────────────────────────────────

func TestSession_Login_StoresTokenAndResolvesIdentity(t *testing.T) {
	store := &stubStore{}
	api := &stubAPI{
		loginFn: func(email, password string) (domain.TokenResponse, error) {
			return domain.TokenResponse{AccessToken: "issued", TokenType: "bearer"}, nil
		},
		meFn: func(context.Context) (*domain.Identity, error) { return userIdentity(), nil },
	}
	s := newTestSession(store, api)
	require.NoError(t, s.Init(context.Background()))

	id, err := s.Login(context.Background(), "rina@example.com", "secret")

	require.NoError(t, err)
	cred, ok, _ := store.Get(context.Background())
	assert.True(t, ok)
	assert.Equal(t, domain.Credential("issued"), cred)
	assert.Equal(t, id, s.Identity())
	assert.Equal(t, "rina@example.com", s.Identity().Email)
}

func TestSession_Login_ServerErrorPropagates(t *testing.T) {
	store := &stubStore{}
	wantErr := errors.New("Incorrect email or password")
	api := &stubAPI{loginFn: func(string, string) (domain.TokenResponse, error) {
		return domain.TokenResponse{}, wantErr
	}}
	s := newTestSession(store, api)

	_, err := s.Login(context.Background(), "a@b.c", "bad")

	assert.ErrorIs(t, err, wantErr)
	_, ok, _ := store.Get(context.Background())
	assert.False(t, ok)
}

func TestSession_Login_EmptyTokenRejected(t *testing.T) {
	api := &stubAPI{loginFn: func(string, string) (domain.TokenResponse, error) {
		return domain.TokenResponse{}, nil
	}}
	s := newTestSession(&stubStore{}, api)

	_, err := s.Login(context.Background(), "a@b.c", "pw")

	assert.ErrorIs(t, err, domain.ErrEmptyCredential)
}

func TestSession_Register_ThenLogin(t *testing.T) {
	store := &stubStore{}
	logins := 0
	api := &stubAPI{
		loginFn: func(string, string) (domain.TokenResponse, error) {
			logins++
			return domain.TokenResponse{AccessToken: "fresh"}, nil
		},
		meFn: func(context.Context) (*domain.Identity, error) { return userIdentity(), nil },
	}
	s := newTestSession(store, api)

	_, err := s.Register(context.Background(), "Rina", "rina@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, []string{"rina@example.com"}, api.registered)
	assert.Equal(t, 1, logins)
	assert.NotNil(t, s.Identity())
}

func TestSession_Register_FailureSkipsLogin(t *testing.T) {
	api := &stubAPI{
		registerFn: func(string, string, string) error { return errors.New("Email already registered") },
		loginFn: func(string, string) (domain.TokenResponse, error) {
			t.Fatal("login must not run after a failed registration")
			return domain.TokenResponse{}, nil
		},
	}
	s := newTestSession(&stubStore{}, api)

	_, err := s.Register(context.Background(), "x", "x@y.z", "pw")

	assert.EqualError(t, err, "Email already registered")
}

// ── Logout ────────────────────────────────────────────────────────────────────

func TestSession_Logout_ClearsEverything(t *testing.T) {
	for _, present := range []bool{true, false} {
		store := &stubStore{cred: "tok", present: present}
		api := &stubAPI{meFn: func(context.Context) (*domain.Identity, error) { return userIdentity(), nil }}
		s := newTestSession(store, api)
		require.NoError(t, s.Init(context.Background()))

		require.NoError(t, s.Logout(context.Background()))

		_, ok, _ := store.Get(context.Background())
		assert.False(t, ok)
		assert.Nil(t, s.Identity())
	}
}

func TestSession_LogoutDuringRefreshWins(t *testing.T) {
	store := &stubStore{cred: "tok", present: true}
	entered := make(chan struct{})
	release := make(chan struct{})
	api := &stubAPI{meFn: func(context.Context) (*domain.Identity, error) {
		close(entered)
		<-release
		return userIdentity(), nil
	}}
	s := newTestSession(store, api)

	done := make(chan error, 1)
	go func() {
		_, err := s.RefreshIdentity(context.Background())
		done <- err
	}()

	<-entered
	require.NoError(t, s.Logout(context.Background()))
	close(release)

	assert.ErrorIs(t, <-done, domain.ErrSessionSuperseded)
	assert.Nil(t, s.Identity())
}

// ── RefreshIdentity ───────────────────────────────────────────────────────────

func TestSession_RefreshIdentity_FailureNullsIdentity(t *testing.T) {
	fail := false
	api := &stubAPI{meFn: func(context.Context) (*domain.Identity, error) {
		if fail {
			return nil, errUnauthorized
		}
		return userIdentity(), nil
	}}
	s := newTestSession(&stubStore{cred: "tok", present: true}, api)
	require.NoError(t, s.Init(context.Background()))
	require.NotNil(t, s.Identity())

	fail = true
	_, err := s.RefreshIdentity(context.Background())

	assert.ErrorIs(t, err, errUnauthorized)
	assert.Nil(t, s.Identity())
}

// ── OAuth ─────────────────────────────────────────────────────────────────────

func TestSession_CompleteOAuth(t *testing.T) {
	store := &stubStore{}
	api := &stubAPI{meFn: func(context.Context) (*domain.Identity, error) { return adminIdentity(), nil }}
	s := newTestSession(store, api)

	id, err := s.CompleteOAuth(context.Background(), "google-token")

	require.NoError(t, err)
	assert.True(t, id.IsAdmin())
	cred, _, _ := store.Get(context.Background())
	assert.Equal(t, domain.Credential("google-token"), cred)
}

func TestSession_CompleteOAuth_UnresolvedTokenCleared(t *testing.T) {
	store := &stubStore{}
	api := &stubAPI{meFn: func(context.Context) (*domain.Identity, error) { return nil, errUnauthorized }}
	s := newTestSession(store, api)

	_, err := s.CompleteOAuth(context.Background(), "bogus")

	require.Error(t, err)
	_, ok, _ := store.Get(context.Background())
	assert.False(t, ok)
}

func TestSession_CompleteOAuth_EmptyToken(t *testing.T) {
	s := newTestSession(&stubStore{}, &stubAPI{})
	_, err := s.CompleteOAuth(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyCredential)
}

func TestSessionContextAccessor(t *testing.T) {
	assert.Nil(t, SessionFromContext(context.Background()))

	s := newTestSession(&stubStore{}, &stubAPI{})
	ctx := WithSession(context.Background(), s)
	assert.Same(t, s, SessionFromContext(ctx))
}
