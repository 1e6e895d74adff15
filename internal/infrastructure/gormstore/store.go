// Package gormstore implementa los puertos de persistencia sobre gorm + sqlite.
// Se usa en desarrollo local (DB_DRIVER=sqlite) y en los tests de casos de uso y HTTP.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jhoicas/Facturacion-api/internal/domain/repository"
)

// Open abre (o crea) la base sqlite en dsn con claves foráneas activas.
// Una sola conexión: sqlite serializa las escrituras y así la base en memoria es única.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(withForeignKeys(dsn)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// OpenMemory base en memoria ya migrada (tests).
func OpenMemory() (*gorm.DB, error) {
	db, err := Open(":memory:")
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate crea o actualiza las tablas.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func withForeignKeys(dsn string) string {
	sep := "?"
	for _, c := range dsn {
		if c == '?' {
			sep = "&"
			break
		}
	}
	return dsn + sep + "_foreign_keys=on"
}

// NewRepos arma el conjunto de repositorios sobre db (base o transacción).
func NewRepos(db *gorm.DB) repository.Repos {
	return repository.Repos{
		Companies: NewCompanyRepository(db),
		Users:     NewUserRepository(db),
		Customers: NewCustomerRepository(db),
		Invoices:  NewInvoiceRepository(db),
		Stats:     NewStatsRepository(db),
	}
}

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción gorm.
type TxRunner struct {
	db *gorm.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *gorm.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run Commit si fn devuelve nil, Rollback en otro caso.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}

// View en sqlite una transacción ya ve una foto consistente; no hace falta aislamiento extra.
func (r *TxRunner) View(ctx context.Context, fn func(repos repository.Repos) error) error {
	return r.Run(ctx, fn)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isForeignKeyViolation cubre las dos formas en que sqlite reporta una FK:
// 787 al insertar con referencia inexistente y 1811 cuando ON DELETE RESTRICT
// impide borrar el padre. TranslateError de gorm solo traduce la primera.
func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		return se.ExtendedCode == sqlite3.ErrConstraintForeignKey ||
			se.ExtendedCode == sqlite3.ErrConstraintTrigger
	}
	return false
}
