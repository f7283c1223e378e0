/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/imobi/client/internal/services"
)

// usersCmd groups the account commands.
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts (requires an administrator session)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		if _, ok := e.sessions.Token(cmd.Context()); !ok {
			return errNotLoggedIn
		}
		users, err := services.NewUserService(e.client, e.sessions).List(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOME\tEMAIL\tPAPEL")
		for _, u := range users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role)
		}
		return tw.Flush()
	}),
}

var (
	brokerName     string
	brokerEmail    string
	brokerPassword string
)

var usersCreateBrokerCmd = &cobra.Command{
	Use:   "create-broker",
	Short: "Register a broker account",
	Long: `Registers an account with the CORRETOR role. The password falls back
to the IMOBI_BROKER_PASSWORD environment variable.

	imobi users create-broker --name "Joana" --email joana@imobi.dev --password secret1
`,
	Args: cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		password := brokerPassword
		if password == "" {
			password = os.Getenv("IMOBI_BROKER_PASSWORD")
		}
		user, err := services.NewUserService(e.client, e.sessions).RegisterBroker(cmd.Context(), brokerName, brokerEmail, password)
		if err != nil {
			if services.IsNotAuthenticated(err) {
				return errNotLoggedIn
			}
			return fmt.Errorf("create broker: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "broker %s <%s> created\n", user.Name, user.Email)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd, usersCreateBrokerCmd)

	usersCreateBrokerCmd.Flags().StringVar(&brokerName, "name", "", "full name")
	usersCreateBrokerCmd.Flags().StringVar(&brokerEmail, "email", "", "e-mail")
	usersCreateBrokerCmd.Flags().StringVar(&brokerPassword, "password", "", "password (default $IMOBI_BROKER_PASSWORD)")
}
