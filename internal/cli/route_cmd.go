package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/botaxxx/dashboard/internal/core/domain"
	"github.com/botaxxx/dashboard/internal/core/service"
	"github.com/botaxxx/dashboard/pkg/logger"
)

func newRouteCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Show what the dashboard would do when the current session opens path",
		Example: `  dashboard route /savings
  dashboard route /admin/users`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			route, ok := service.LookupRoute(args[0])
			if !ok {
				return fmt.Errorf("unknown route %q", args[0])
			}

			t, err := o.terminal(cmd)
			if err != nil {
				return err
			}
			ctx := domain.WithView(cmd.Context(), route.Path)
			if err := t.session.Init(ctx); err != nil {
				return err
			}

			var state domain.MaintenanceState
			if route.ConsultsMaintenance() {
				state = service.NewMaintenancePoller(t.public, logger.Get()).Refresh(ctx)
			}
			intent := service.Evaluate(route, service.InputFrom(t.session.Snapshot(), state))

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s): %s\n", route.Path, route.Access, intent)
			if intent.Outcome == domain.OutcomeBlock {
				fmt.Fprintf(w, "  %s\n", intent.Reason)
			}
			return nil
		},
	}
}
