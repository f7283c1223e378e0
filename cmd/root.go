/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/imobi/client/config"
	"github.com/imobi/client/internal/api"
	"github.com/imobi/client/internal/session"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "imobi",
	Short: "Client for the imobi real-estate listing API",
	Long: `Client for the imobi real-estate listing API. It signs in, keeps the
session on disk (or in Redis), manages listings and broker accounts, and
serves the web portal.

	imobi login --email admin@imobi.dev --password admin123
	imobi imoveis list --finalidade VENDA
	imobi portal
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it. It
// only needs to happen once, from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "imobi: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// env bundles what most commands need.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	client   *api.Client
	sessions *session.Store
	close    func() error
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func newClient(cfg config.Config, logger *slog.Logger, tokens api.TokenSource) *api.Client {
	opts := []api.Option{api.WithLogger(logger), api.WithTokenSource(tokens)}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, api.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}))
	}
	return api.New(cfg.APIBase, opts...)
}

// loadEnv reads the configuration, opens the session backend and builds
// an API client that authenticates with the stored token.
func loadEnv(ctx context.Context) (*env, error) {
	cfg := config.LoadConfig()
	logger := newLogger(cfg.LogLevel)

	backend, closeFn, err := session.Open(ctx, cfg.Session)
	if err != nil {
		return nil, err
	}
	sessions := session.NewStore(backend, logger)

	return &env{
		cfg:      cfg,
		logger:   logger,
		client:   newClient(cfg, logger, sessions),
		sessions: sessions,
		close:    closeFn,
	}, nil
}

// withEnv adapts a command body that needs an env to cobra's RunE.
func withEnv(run func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer func() {
			_ = e.close()
		}()
		return run(cmd, args, e)
	}
}
