package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"inkwell/internal/app"
	"inkwell/internal/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:           "kbadmin",
	Short:         "kbadmin - administration for the inkwell knowledge base",
	Long:          "kbadmin applies schema migrations and manages users and workspaces in the PostgreSQL store.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newUserCmd())
	rootCmd.AddCommand(newWorkspaceCmd())
}

// loadConfig reads the environment the same way the server does.
// Admin commands always target PostgreSQL and never migrate implicitly.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	if os.Getenv("STORAGE") == "" {
		os.Setenv("STORAGE", config.StoragePostgres)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Storage != config.StoragePostgres {
		return nil, fmt.Errorf("kbadmin requires STORAGE=%s", config.StoragePostgres)
	}
	cfg.AutoMigrate = false
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// withServices opens storage, wires the services and runs fn
func withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *app.Services) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	// Admin commands never touch attachments, so no upload policy is needed
	return fn(ctx, app.NewServices(storage, nil, nil, logger))
}
