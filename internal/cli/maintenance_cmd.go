package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/service"
	"github.com/botaxxx/dashboard/pkg/logger"
)

func newStatusCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the backend maintenance flag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := o.terminal(cmd)
			if err != nil {
				return err
			}
			st, err := t.public.MaintenanceStatus(cmd.Context())
			if err != nil {
				return err
			}
			printMaintenance(cmd.OutOrStdout(), st)
			return nil
		},
	}
}

func newWatchCmd(o *rootOptions) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the maintenance flag and print every change",
		Long:  "Poll the maintenance flag until interrupted. An unreachable backend counts as no maintenance.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := o.terminal(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = o.cfg.Maintenance.PollInterval
			}

			poller := service.NewMaintenancePoller(t.public, logger.Get(), service.WithInterval(interval))
			updates, unsubscribe := poller.Subscribe()
			defer unsubscribe()

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return poller.Run(ctx) })
			g.Go(func() error {
				var last *domain.MaintenanceState
				for {
					select {
					case <-ctx.Done():
						return nil
					case st := <-updates:
						if last != nil && *last == st {
							continue
						}
						last = &st
						fmt.Fprintf(cmd.OutOrStdout(), "[%s] ", time.Now().Format(time.TimeOnly))
						printMaintenance(cmd.OutOrStdout(), st)
					}
				}
			})
			return g.Wait()
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", service.DefaultPollInterval, "poll interval (default $MAINTENANCE_POLL_INTERVAL)")
	return cmd
}

func printMaintenance(w io.Writer, st domain.MaintenanceState) {
	if !st.IsMaintenance {
		fmt.Fprintln(w, "maintenance: off")
		return
	}
	fmt.Fprintf(w, "maintenance: on (%s)\n", st.Notice())
}
