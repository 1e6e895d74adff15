package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Facturacion-api/internal/infrastructure/gormstore"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturacion-api/pkg/config"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplicar todas las migraciones pendientes",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if cfg.DB.Driver == config.DriverSQLite {
					db, err := gormstore.Open(cfg.DB.SQLitePath)
					if err != nil {
						return err
					}
					if sqlDB, err := db.DB(); err == nil {
						defer sqlDB.Close()
					}
					if err := gormstore.AutoMigrate(db); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), "sqlite: esquema actualizado")
					return nil
				}
				return withMigrator(cfg, func(mg *postgres.Migrator) error {
					if err := mg.Up(); err != nil {
						return err
					}
					return printVersion(cmd, mg)
				})
			},
		},
		&cobra.Command{
			Use:   "down [pasos]",
			Short: "Revertir migraciones (1 por defecto)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				steps := 1
				if len(args) == 1 {
					n, err := strconv.Atoi(args[0])
					if err != nil || n <= 0 {
						return fmt.Errorf("pasos inválidos: %q", args[0])
					}
					steps = n
				}
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if err := requirePostgres(cfg); err != nil {
					return err
				}
				return withMigrator(cfg, func(mg *postgres.Migrator) error {
					if err := mg.Down(steps); err != nil {
						return err
					}
					return printVersion(cmd, mg)
				})
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Versión actual del esquema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if err := requirePostgres(cfg); err != nil {
					return err
				}
				return withMigrator(cfg, func(mg *postgres.Migrator) error {
					return printVersion(cmd, mg)
				})
			},
		},
	)
	return cmd
}

func requirePostgres(cfg *config.Config) error {
	if cfg.DB.Driver != config.DriverPostgres {
		return fmt.Errorf("solo disponible con DB_DRIVER=postgres")
	}
	return nil
}

func withMigrator(cfg *config.Config, fn func(*postgres.Migrator) error) error {
	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString())
	if err != nil {
		return err
	}
	defer mg.Close()
	return fn(mg)
}

func printVersion(cmd *cobra.Command, mg *postgres.Migrator) error {
	v, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	if v == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "sin migraciones aplicadas")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
	return nil
}
