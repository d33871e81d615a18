package main

import (
	"alcyxob/tracker-app/internal/config"
	"alcyxob/tracker-app/internal/repository/mongo"
	"alcyxob/tracker-app/internal/service"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configDir string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "trackerctl",
		Short:         "Tracker administration tool",
		Long:          `Approve, reject and create accounts without going through the HTTP API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configDir, "config-dir", ".", "directory containing config.yaml")
	root.AddCommand(newUsersCmd())
	return root
}

// withAuthService connects to the configured database and runs fn with an AuthService.
func withAuthService(ctx context.Context, fn func(service.AuthService) error) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read .env: %w", err)
	}
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Database.Driver != config.DriverMongo {
		return fmt.Errorf("database driver %q is process-local; trackerctl needs %q", cfg.Database.Driver, config.DriverMongo)
	}

	client, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return err
	}
	defer func() {
		_ = mongo.DisconnectDB(client)
	}()

	userRepo := mongo.NewMongoUserRepository(client.Database(cfg.Database.Name))
	return fn(service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration, cfg.Admin.BootstrapEmail))
}
