// Package cli holds the dashboard command tree: the gateway server, the
// development backend and the terminal client.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/botaxxx/dashboard/internal/infrastructure/backend"
	"github.com/botaxxx/dashboard/internal/pkg/config"
	"github.com/botaxxx/dashboard/pkg/logger"
)

var version = "dev"

// errNotLoggedIn is returned by commands that need a resolved identity.
var errNotLoggedIn = errors.New("not logged in: run `dashboard login`")

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var apiErr *backend.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "Error: %v (HTTP %d)\n", err, apiErr.Status)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// rootOptions are resolved once per invocation: flag > env > default.
type rootOptions struct {
	apiURL    string
	tokenFile string
	cfg       *config.Config
	lookuper  envconfig.Lookuper
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(envconfig.OsLookuper())
}

func newRootCmdWith(lookuper envconfig.Lookuper) *cobra.Command {
	o := &rootOptions{lookuper: lookuper}

	rootCmd := &cobra.Command{
		Use:           "dashboard",
		Short:         "BOTAXXX dashboard gateway and terminal client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(cmd.Context(), o.lookuper)
			if err != nil {
				return err
			}
			o.cfg = cfg

			if !cmd.Flags().Changed("api") {
				o.apiURL = cfg.Backend.BaseURL
			}
			if !cmd.Flags().Changed("token-file") {
				o.tokenFile = cfg.Tokens.File
			}

			logger.Init(logger.Options{
				Level:   cfg.LogLevel,
				Pretty:  !cfg.IsProduction(),
				Service: "dashboard",
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&o.apiURL, "api", "", "REST backend base URL (default $API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&o.tokenFile, "token-file", "", "session file for the terminal client (default ~/.botaxxx/session.yaml)")

	rootCmd.AddCommand(
		newServeCmd(o),
		newDevAPICmd(o),
		newLoginCmd(o),
		newLogoutCmd(o),
		newWhoamiCmd(o),
		newStatusCmd(o),
		newRouteCmd(o),
		newWatchCmd(o),
	)
	return rootCmd
}
