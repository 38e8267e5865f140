package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/botaxxx/dashboard/internal/api/handler"
	"github.com/botaxxx/dashboard/internal/core/ports"
	"github.com/botaxxx/dashboard/internal/devapi"
	"github.com/botaxxx/dashboard/internal/devapi/middleware"
	devservice "github.com/botaxxx/dashboard/internal/devapi/service"
	"github.com/botaxxx/dashboard/internal/devapi/store"
	mongodb "github.com/botaxxx/dashboard/internal/infrastructure/db/mongo"
	"github.com/botaxxx/dashboard/internal/pkg/config"
	"github.com/botaxxx/dashboard/pkg/logger"
)

func newDevAPICmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "devapi",
		Short: "Run a local development backend",
		Long: "Run a local stand-in for the REST backend: accounts, bearer tokens, the " +
			"maintenance flag and the admin endpoints. Accounts are kept in MongoDB when " +
			"MONGO_URI is set and in memory otherwise.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDevAPI(cmd.Context(), o.cfg)
		},
	}
}

func runDevAPI(ctx context.Context, cfg *config.Config) error {
	log := logger.For("devapi")
	checks := map[string]handler.Check{}

	repo, closeRepo, err := accountRepository(ctx, cfg, checks)
	if err != nil {
		return err
	}
	defer closeRepo()

	accounts := devservice.NewAccountService(repo, cfg.DevAPI.JWTSecret, cfg.DevAPI.TokenTTL)
	if cfg.DevAPI.AdminEmail != "" {
		admin, err := accounts.EnsureAdmin(ctx, "Admin", cfg.DevAPI.AdminEmail, cfg.DevAPI.AdminPassword)
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info().Int64("id", admin.ID).Str("email", admin.Email).Msg("admin account ready")
	}

	alerts := store.NewMemoryAlerts()
	e := devapi.NewRouter(devapi.Deps{
		Accounts:     accounts,
		Admin:        devservice.NewAdminService(repo, alerts),
		Banks:        devservice.NewBankService(store.NewMemoryBanks()),
		Alerts:       devservice.NewAlertService(alerts),
		Maintenance:  devservice.NewMaintenanceSwitch(),
		DashboardURL: cfg.DevAPI.DashboardURL,
		LoginLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.DevAPI.LoginRPS,
			Burst:             cfg.DevAPI.LoginBurst,
		},
		Checks: checks,
		Log:    logger.For("http"),
	})

	log.Info().Str("addr", ":"+cfg.DevAPI.Port).Bool("mongo", cfg.Mongo.URI != "").Msg("development backend starting")
	return serveEcho(ctx, e, ":"+cfg.DevAPI.Port, log)
}

func accountRepository(ctx context.Context, cfg *config.Config, checks map[string]handler.Check) (ports.AccountRepository, func(), error) {
	if cfg.Mongo.URI == "" {
		return store.NewMemoryAccounts(), func() {}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	repo := mongodb.NewAccountRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	checks["mongo"] = mongodb.Checker(client)
	return repo, func() { _ = client.Disconnect(context.Background()) }, nil
}
