// Package backend talks to the REST backend. Every authenticated call goes
// through a Gateway, which owns bearer attachment and the global reaction to
// a rejected credential.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/botaxxx/dashboard/internal/api/metrics"
	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
)

const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
)

// Gateway is the single outbound pipeline for one client context.
type Gateway struct {
	http  *http.Client
	store ports.TokenStore
	nav   ports.Navigator
	log   zerolog.Logger

	// mu orders credential reads against the 401 handler so no request
	// leaves with a token a prior 401 already invalidated.
	mu sync.RWMutex
}

// NewGateway returns a Gateway. A nil httpClient means http.DefaultClient.
func NewGateway(httpClient *http.Client, store ports.TokenStore, nav ports.Navigator, log zerolog.Logger) *Gateway {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Gateway{
		http:  httpClient,
		store: store,
		nav:   nav,
		log:   log.With().Str("component", "gateway").Logger(),
	}
}

// Do sends req with the stored bearer attached. Any Authorization header set
// by the caller is dropped. A 401 outside the login and register views clears
// the credential, navigates to login and yields domain.ErrAuthRejected; every
// other response is returned as received.
func (g *Gateway) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)
	out.Header.Del(AuthorizationHeader)
	if id, ok := requestIDFromContext(ctx); ok {
		out.Header.Set(RequestIDHeader, id)
	}

	g.mu.RLock()
	cred, ok, err := g.store.Get(ctx)
	g.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("read credential: %w", err)
	}
	if ok && cred != "" {
		out.Header.Set(AuthorizationHeader, "Bearer "+string(cred))
	}

	start := time.Now()
	resp, err := g.http.Do(out)
	metrics.BackendRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	metrics.BackendRequestsTotal.WithLabelValues(statusClass(resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	view := domain.ViewFromContext(ctx)
	if domain.IsAuthEntryPoint(view) {
		return resp, nil
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if err := g.reject(ctx, req, view); err != nil {
		return nil, err
	}
	return nil, domain.ErrAuthRejected
}

// reject clears the credential before navigating.
func (g *Gateway) reject(ctx context.Context, req *http.Request, view string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear rejected credential: %w", err)
	}
	metrics.ForcedLogoutsTotal.Inc()
	g.log.Warn().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("view", view).
		Msg("backend rejected credential, forcing login")
	g.nav.Redirect(ctx, domain.PathLogin)
	return nil
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}

type requestIDKey struct{}

// WithRequestID makes the gateway forward id as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}
