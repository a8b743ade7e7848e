package main

import (
	"errors"

	"github.com/spf13/cobra"

	"petcontrol/internal/migrate"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones de Postgres (DB_DSN)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBDSN == "" {
			return errors.New("DB_DSN is required")
		}
		if err := migrate.Up(cmd.Context(), cfg.DBDSN); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Muestra el estado de cada migración",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.DBDSN == "" {
			return errors.New("DB_DSN is required")
		}
		return migrate.Status(cmd.Context(), cfg.DBDSN)
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
}
