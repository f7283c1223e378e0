/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imobi/client/internal/services"
	"github.com/imobi/client/internal/session"
)

var (
	loginEmail    string
	loginPassword string
	loginRedirect string
)

// errNotLoggedIn is printed by commands that need a stored session.
var errNotLoggedIn = errors.New("not logged in, run `imobi login` first")

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store the session",
	Long: `Signs in against the listing API and stores the token and user
attributes in the session backend. The password falls back to the
IMOBI_PASSWORD environment variable.

	imobi login --email admin@imobi.dev --password admin123
`,
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		password := loginPassword
		if password == "" {
			password = os.Getenv("IMOBI_PASSWORD")
		}

		auth := services.NewAuthService(e.client, e.sessions, e.logger)
		route, err := auth.Login(cmd.Context(), loginEmail, password, loginRedirect)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		user := auth.CurrentUser(cmd.Context())
		name := loginEmail
		role := "unknown"
		if user != nil {
			if user.Name != "" {
				name = user.Name
			}
			if user.Role != "" {
				role = user.Role
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s), landing page %s\n", name, role, route)
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		if err := e.sessions.ClearSession(cmd.Context()); err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	}),
}

var whoamiRemote bool

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		ctx := cmd.Context()
		if _, ok := e.sessions.Token(ctx); !ok {
			return errNotLoggedIn
		}

		if whoamiRemote {
			me, err := e.client.Me(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s (id %d)\n", me.Name, me.Email, me.Role, me.ID)
			return nil
		}

		user := e.sessions.CurrentUser(ctx)
		if user == nil {
			return errNotLoggedIn
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s, landing page %s\n",
			user.Name, user.Email, user.Role, session.ResolveLandingRoute(user))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account e-mail")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (default $IMOBI_PASSWORD)")
	loginCmd.Flags().StringVar(&loginRedirect, "redirect", "", "local path to report instead of the role landing page")
	_ = loginCmd.MarkFlagRequired("email")

	whoamiCmd.Flags().BoolVar(&whoamiRemote, "remote", false, "ask the API (GET /auth/me) instead of the stored session")
}
