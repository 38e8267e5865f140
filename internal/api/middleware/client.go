package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/ports"
	"github.com/botaxxx/dashboard/internal/core/service"
	"github.com/botaxxx/dashboard/internal/infrastructure/backend"
)

// ClientCookie names the cookie that identifies one browser. Its value scopes
// the browser's credential in the TokenStore.
const ClientCookie = "dash_client"

const (
	clientKey       = "client"
	clientCookieAge = 30 * 24 * time.Hour
)

// ClientFactory builds the typed backend client for one client context.
type ClientFactory interface {
	For(store ports.TokenStore, nav ports.Navigator) *backend.Client
}

// ClientConfig configures the Client middleware.
type ClientConfig struct {
	Factory      ClientFactory
	Tokens       ports.TokenStoreProvider
	CookieSecure bool
	Log          zerolog.Logger
}

// ClientContext is everything bound to one browser for the current request.
type ClientContext struct {
	ID      string
	Store   ports.TokenStore
	API     *backend.Client
	Session *service.Session
	nav     *pageNavigator
}

// Redirected returns the path a forced logout asked the browser to load.
func (cc *ClientContext) Redirected() (string, bool) {
	return cc.nav.target()
}

// pageNavigator records a navigation so the response can carry it as a
// redirect once the handler returns.
type pageNavigator struct {
	mu   sync.Mutex
	path string
}

func (n *pageNavigator) Redirect(_ context.Context, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == "" {
		n.path = path
	}
}

func (n *pageNavigator) target() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.path, n.path != ""
}

// Client resolves the browser's client context, initialises its session and
// binds the current view so a 401 on the login or register form stays a form
// error.
func Client(cfg ClientConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := clientID(c, cfg.CookieSecure)

			req := c.Request()
			ctx := domain.WithView(req.Context(), req.URL.Path)
			if rid := c.Response().Header().Get(echo.HeaderXRequestID); rid != "" {
				ctx = backend.WithRequestID(ctx, rid)
			}

			store := cfg.Tokens.For(id)
			nav := &pageNavigator{}
			api := cfg.Factory.For(store, nav)
			sess := service.NewSession(store, api, cfg.Log.With().Str("client", id).Logger())
			if err := sess.Init(ctx); err != nil {
				return err
			}

			ctx = service.WithSession(ctx, sess)
			c.SetRequest(req.WithContext(ctx))
			c.Set(clientKey, &ClientContext{ID: id, Store: store, API: api, Session: sess, nav: nav})
			return next(c)
		}
	}
}

// ClientFrom returns the client context set by Client, or nil.
func ClientFrom(c echo.Context) *ClientContext {
	cc, _ := c.Get(clientKey).(*ClientContext)
	return cc
}

// clientID reads the browser id, issuing a fresh one when the cookie is
// missing or malformed.
func clientID(c echo.Context, secure bool) string {
	if ck, err := c.Cookie(ClientCookie); err == nil {
		if id, err := uuid.Parse(ck.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(clientCookieAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
