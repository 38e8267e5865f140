package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/botaxxx/dashboard/internal/api/metrics"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

// SessionState is a consistent read of the session for guards and views.
type SessionState struct {
	Identity *domain.Identity
	Loading  bool
}

// Session owns the authenticated identity of one client context. It starts in
// the loading state; Init resolves it.
type Session struct {
	store ports.TokenStore
	api   ports.AuthAPI
	log   zerolog.Logger

	mu       sync.RWMutex
	identity *domain.Identity
	loading  bool
	// epoch advances on every login and logout. A refresh that started under
	// an older epoch drops its result.
	epoch uint64
}

// NewSession returns a session in the loading state.
func NewSession(store ports.TokenStore, api ports.AuthAPI, log zerolog.Logger) *Session {
	return &Session{
		store:   store,
		api:     api,
		log:     log.With().Str("component", "session").Logger(),
		loading: true,
	}
}

// Init runs the initialisation protocol. With no stored credential loading
// ends immediately with no identity. With one, the identity is resolved and a
// rejected credential is cleared without surfacing an error.
func (s *Session) Init(ctx context.Context) error {
	cred, ok, err := s.store.Get(ctx)
	if err != nil {
		s.finishLoading()
		return fmt.Errorf("read credential: %w", err)
	}
	if !ok || cred == "" {
		s.finishLoading()
		return nil
	}

	if _, err := s.RefreshIdentity(ctx); err != nil {
		if errors.Is(err, domain.ErrSessionSuperseded) {
			return nil
		}
		s.log.Info().Err(err).Msg("stored credential did not resolve, treating as logged out")
		if err := s.store.Clear(ctx); err != nil {
			return fmt.Errorf("clear credential: %w", err)
		}
	}
	return nil
}

// RefreshIdentity re-fetches the identity for the current credential. On
// failure the identity is nulled and the error returned so the caller can
// decide whether to clear the credential.
func (s *Session) RefreshIdentity(ctx context.Context) (*domain.Identity, error) {
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	id, err := s.api.Me(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if s.epoch != epoch {
		metrics.IdentityResolutionsTotal.WithLabelValues("stale").Inc()
		return nil, domain.ErrSessionSuperseded
	}
	if err != nil {
		metrics.IdentityResolutionsTotal.WithLabelValues("error").Inc()
		s.identity = nil
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if id == nil {
		metrics.IdentityResolutionsTotal.WithLabelValues("error").Inc()
		s.identity = nil
		return nil, fmt.Errorf("resolve identity: %w", domain.ErrUserNotFound)
	}

	metrics.IdentityResolutionsTotal.WithLabelValues("ok").Inc()
	s.identity = id
	return id, nil
}

// Login exchanges credentials for a token, stores it, and returns once the
// identity behind it is resolved.
func (s *Session) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	tok, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("login: %w", domain.ErrEmptyCredential)
	}

	if err := s.adopt(ctx, domain.Credential(tok.AccessToken), epoch); err != nil {
		return nil, err
	}
	return s.RefreshIdentity(ctx)
}

// Register creates the account and then logs in with the same credentials.
// Registration alone establishes no session.
func (s *Session) Register(ctx context.Context, name, email, password string) (*domain.Identity, error) {
	if err := s.api.Register(ctx, name, email, password); err != nil {
		return nil, err
	}
	return s.Login(ctx, email, password)
}

// CompleteOAuth stores a token handed back by the OAuth callback and resolves
// its identity. A token that does not resolve is cleared again.
func (s *Session) CompleteOAuth(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("oauth callback: %w", domain.ErrEmptyCredential)
	}

	s.mu.RLock()
	epoch := s.epoch
	s.mu.RUnlock()

	if err := s.adopt(ctx, domain.Credential(token), epoch); err != nil {
		return nil, err
	}
	id, err := s.RefreshIdentity(ctx)
	if err != nil && !errors.Is(err, domain.ErrSessionSuperseded) {
		if cerr := s.store.Clear(ctx); cerr != nil {
			s.log.Warn().Err(cerr).Msg("failed to clear unresolved oauth credential")
		}
	}
	return id, err
}

// Logout clears the stored credential and the identity. It never calls the
// backend, and any identity refresh still in flight is discarded.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.epoch++
	s.identity = nil
	s.loading = false
	s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}

// Snapshot returns the identity and loading flag read together.
func (s *Session) Snapshot() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionState{Identity: s.identity, Loading: s.loading}
}

// Identity returns the resolved identity or nil.
func (s *Session) Identity() *domain.Identity {
	return s.Snapshot().Identity
}

// adopt stores cred unless a logout or another login happened since epoch.
func (s *Session) adopt(ctx context.Context, cred domain.Credential, epoch uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return domain.ErrSessionSuperseded
	}
	if err := s.store.Set(ctx, cred); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	s.epoch++
	return nil
}

func (s *Session) finishLoading() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

type sessionKey struct{}

// WithSession binds s to ctx for handlers further down the chain.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session bound by WithSession, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
