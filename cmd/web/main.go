package main

import (
	"fmt"
	"os"

	"github.com/jesusrosales17/ecommerce-sub000/pkg/runtime/app"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/server"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/server/middleware"
	"github.com/jesusrosales17/ecommerce-sub000/pkg/services/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the reports web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to a config file; REPORTS_* environment variables and .env also apply")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	if cfg.Auth.AdminToken == "" {
		logger.Warn().Msg("REPORTS_AUTH_ADMIN_TOKEN is empty, every /api/v1 request will be rejected")
	}

	services, err := app.New(ctx, cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize report services: %w", err)
	}
	defer func() {
		if err := services.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close data source")
		}
	}()

	api := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Registry:   services.Registry,
			Resolver:   services.Resolver,
			Reports:    services.Reports,
			Exporter:   services.Exporter,
			Authorizer: middleware.NewTokenAuthorizer(cfg.Auth.AdminToken),
			Now:        services.Now,
		},
	})

	return api.Start()
}
