/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imobi/client/config"
	"github.com/imobi/client/internal/devapi"
)

var (
	devAdminEmail    string
	devAdminPassword string
)

// devapiCmd represents the devapi command
var devapiCmd = &cobra.Command{
	Use:   "devapi",
	Short: "Starts an in-memory listing API for local development",
	Long: `Starts an in-memory implementation of the listing API with seeded
neighborhoods, property types and an administrator account. Usage:

	JWT_SECRET=dev imobi devapi
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		logger := newLogger(cfg.LogLevel)

		srv, err := devapi.NewServer(cfg.DevAPI.Port, devapi.Options{
			JWTSecret:     cfg.DevAPI.JWTSecret,
			CORSOrigin:    cfg.DevAPI.CORSOrigin,
			AdminEmail:    devAdminEmail,
			AdminPassword: devAdminPassword,
			Logger:        logger,
		})
		if err != nil {
			return fmt.Errorf("failed to start development API: %w", err)
		}
		logger.Info("development API listening", "addr", srv.Addr(), "cors", cfg.DevAPI.CORSOrigin)
		return serve(cmd.Context(), srv.Start, srv.Shutdown)
	},
}

func init() {
	rootCmd.AddCommand(devapiCmd)

	devapiCmd.Flags().StringVar(&devAdminEmail, "admin-email", "", "seeded administrator e-mail (default admin@imobi.dev)")
	devapiCmd.Flags().StringVar(&devAdminPassword, "admin-password", "", "seeded administrator password (default admin123)")
}
