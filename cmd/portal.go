/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/imobi/client/config"
	"github.com/imobi/client/internal/api"
	"github.com/imobi/client/internal/server"
)

// portalCmd represents the portal command
var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Starts the imobi web portal",
	Long: `Starts the imobi web portal. Usage:

	API_BASE=http://localhost:8080 imobi portal
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		if cfg.APIBase == "" {
			return api.ErrMissingBaseURL
		}
		logger := newLogger(cfg.LogLevel)

		srv, err := server.New(cmd.Context(), cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to start portal: %w", err)
		}
		logger.Info("portal listening", "addr", srv.Addr(), "api", cfg.APIBase)
		return serve(cmd.Context(), srv.Start, srv.Shutdown)
	},
}

// serve runs start until it fails or ctx is cancelled, then shuts down.
func serve(ctx context.Context, start func() error, shutdown func(context.Context) error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return shutdown(shutdownCtx)
	}
}

func init() {
	rootCmd.AddCommand(portalCmd)
}
