// Package storage elige el backend de persistencia según DB_DRIVER y expone los puertos ya armados.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/gormstore"
	"github.com/jhoicas/Facturacion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Facturacion-api/pkg/config"
)

// Store puertos de persistencia de un backend concreto.
type Store struct {
	Driver string
	Repos  repository.Repos
	Tx     repository.TxRunner

	close func()
}

// Close libera conexiones.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta al backend configurado. Con AutoMigrate aplica migraciones
// (golang-migrate en postgres, AutoMigrate de gorm en sqlite).
func Open(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DriverSQLite:
		return openSQLite(cfg)
	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*Store, error) {
	if cfg.AutoMigrate {
		if err := postgres.Migrate(cfg.ConnectionString()); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Store{
		Driver: config.DriverPostgres,
		Repos:  postgres.NewRepos(pool),
		Tx:     postgres.NewTxRunner(pool),
		close:  pool.Close,
	}, nil
}

func openSQLite(cfg config.DBConfig) (*Store, error) {
	db, err := gormstore.Open(cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	if cfg.AutoMigrate {
		if err := gormstore.AutoMigrate(db); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}
	return &Store{
		Driver: config.DriverSQLite,
		Repos:  gormstore.NewRepos(db),
		Tx:     gormstore.NewTxRunner(db),
		close:  func() { _ = sqlDB.Close() },
	}, nil
}
