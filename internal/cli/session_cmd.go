package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/botaxxx/dashboard/internal/core/domain"
)

func newLoginCmd(o *rootOptions) *cobra.Command {
	var (
		email    string
		password string
		name     string
		register bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		Example: `  dashboard login --email rina@example.com --password secret
  DASHBOARD_PASSWORD=secret dashboard login --email rina@example.com
  dashboard login --register --name Rina --email rina@example.com --password secret`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				password = os.Getenv("DASHBOARD_PASSWORD")
			}
			if password == "" {
				return errors.New("password is required (--password or $DASHBOARD_PASSWORD)")
			}

			t, err := o.terminal(cmd)
			if err != nil {
				return err
			}

			view := domain.PathLogin
			if register {
				view = domain.PathRegister
			}
			ctx := domain.WithView(cmd.Context(), view)

			var id *domain.Identity
			if register {
				if name == "" {
					return errors.New("--name is required with --register")
				}
				id, err = t.session.Register(ctx, name, email, password)
			} else {
				id, err = t.session.Login(ctx, email, password)
			}
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), "Logged in as ")
			printIdentity(cmd.OutOrStdout(), id)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (default $DASHBOARD_PASSWORD)")
	cmd.Flags().StringVar(&name, "name", "", "display name, with --register")
	cmd.Flags().BoolVar(&register, "register", false, "create the account first")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := o.terminal(cmd)
			if err != nil {
				return err
			}
			if err := t.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the identity behind the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := o.terminal(cmd)
			if err != nil {
				return err
			}
			ctx := domain.WithView(cmd.Context(), "/profile")
			if err := t.session.Init(ctx); err != nil {
				return err
			}
			id := t.session.Identity()
			if id == nil {
				return errNotLoggedIn
			}
			printIdentity(cmd.OutOrStdout(), id)
			return nil
		},
	}
}
