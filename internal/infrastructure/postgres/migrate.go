package postgres

import (
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registra el driver pgx5:// de golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrator aplica las migraciones SQL embebidas en el binario.
type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator abre el esquema de migraciones contra dsn (postgres:// o postgresql://).
func NewMigrator(dsn string) (*Migrator, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("migrations source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(dsn))
	if err != nil {
		return nil, fmt.Errorf("migrate init: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up aplica todas las migraciones pendientes. Sin cambios no es error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down revierte steps migraciones.
func (mg *Migrator) Down(steps int) error {
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version devuelve la versión aplicada; 0 si la base está vacía.
func (mg *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// Close libera la fuente y la conexión.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Migrate atajo para aplicar todo al arrancar (DB_AUTO_MIGRATE).
func Migrate(dsn string) error {
	mg, err := NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer mg.Close()
	return mg.Up()
}

func migrateURL(dsn string) string {
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}
