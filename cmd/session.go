package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Store the bearer token used for every request.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, _ := cmd.Flags().GetString("token")
			if strings.TrimSpace(token) == "" {
				return errors.New("--token must not be empty")
			}
			if err := a.container.Session.SetToken(token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}

			display := a.container.Session.Display()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", display.Name, display.Role)
			return nil
		},
	}
	loginCmd.Flags().String("token", "", "Bearer token issued by the accounts service")
	_ = loginCmd.MarkFlagRequired("token")

	return loginCmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.container.Session.Clear(); err != nil {
				return fmt.Errorf("clear token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who the stored token belongs to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, ok := a.container.Session.Token(); !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			display := a.container.Session.Display()
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", display.Name, display.Role)
			return nil
		},
	}
}
