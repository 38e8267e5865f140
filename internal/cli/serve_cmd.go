package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/botaxxx/dashboard/internal/api"
	"github.com/botaxxx/dashboard/internal/api/handler"
	"github.com/botaxxx/dashboard/internal/core/ports"
	"github.com/botaxxx/dashboard/internal/core/service"
	"github.com/botaxxx/dashboard/internal/infrastructure/backend"
	redisdb "github.com/botaxxx/dashboard/internal/infrastructure/db/redis"
	"github.com/botaxxx/dashboard/internal/infrastructure/tokenstore"
	"github.com/botaxxx/dashboard/internal/pkg/config"
	"github.com/botaxxx/dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), o)
		},
	}
}

func runServe(ctx context.Context, o *rootOptions) error {
	cfg := o.cfg
	log := logger.For("serve")

	checks := map[string]handler.Check{}
	tokens, closeTokens, err := tokenProvider(ctx, cfg, checks)
	if err != nil {
		return err
	}
	defer closeTokens()

	factory := backend.NewFactory(o.apiURL, cfg.Backend.Timeout, logger.For("backend"))
	poller := service.NewMaintenancePoller(factory.Public(), logger.Get(),
		service.WithInterval(cfg.Maintenance.PollInterval))
	checks["backend"] = func(ctx context.Context) error {
		_, err := factory.Public().MaintenanceStatus(ctx)
		return err
	}

	e := api.NewRouter(api.Deps{
		Clients:        factory,
		Tokens:         tokens,
		Maintenance:    poller,
		GoogleURL:      factory.Public().GoogleAuthURL(),
		CookieSecure:   cfg.Tokens.CookieSecure,
		RefreshSeconds: int(cfg.Maintenance.PollInterval.Seconds()),
		Checks:         checks,
		Registerer:     prometheus.DefaultRegisterer,
		Gatherer:       prometheus.DefaultGatherer,
		Log:            logger.For("http"),
	})

	log.Info().
		Str("addr", ":"+cfg.Port).
		Str("backend", o.apiURL).
		Str("token_store", cfg.Tokens.Store).
		Msg("dashboard gateway starting")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return poller.Run(gctx) })
	g.Go(func() error { return serveEcho(gctx, e, ":"+cfg.Port, log) })
	return g.Wait()
}

// tokenProvider builds the configured TokenStore backend and registers its
// readiness check.
func tokenProvider(ctx context.Context, cfg *config.Config, checks map[string]handler.Check) (ports.TokenStoreProvider, func(), error) {
	switch cfg.Tokens.Store {
	case config.TokenStoreFile:
		return tokenstore.NewFileProvider(cfg.Tokens.File), func() {}, nil
	case config.TokenStoreRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("token store: %w", err)
		}
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		return redisdb.NewTokenStoreProvider(rdb, cfg.Tokens.TTL), func() { _ = rdb.Close() }, nil
	default:
		return tokenstore.NewMemoryProvider(), func() {}, nil
	}
}

// serveEcho runs e on addr until ctx is done, then shuts it down gracefully.
func serveEcho(ctx context.Context, e *echo.Echo, addr string, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info().Msg("shutting down")
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}
