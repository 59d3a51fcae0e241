package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inkwell/internal/repository/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, err := openMigrator(cmd)
			if err != nil {
				return err
			}
			defer migrator.Close()

			if err := migrator.Up(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, err := openMigrator(cmd)
			if err != nil {
				return err
			}
			defer migrator.Close()

			if err := migrator.Down(steps); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", steps)
			return nil
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")
	cmd.AddCommand(down)

	return cmd
}

func openMigrator(cmd *cobra.Command) (*postgres.Migrator, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return postgres.NewMigrator(cfg.DatabaseURL, newLogger(cmd))
}
