package db

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	log "github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

func setupGoose() error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("get migrations dir: %w", err)
	}
	goose.SetBaseFS(migrationsDir)
	return nil
}

// RunMigrations applies all pending migrations on db.
func RunMigrations(db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Infoln("db migrations completed")
	return nil
}

// RunPoolMigrations applies migrations through a database/sql handle borrowed from the pool.
func RunPoolMigrations(pool *pgxpool.Pool) error {
	return withPoolDB(pool, RunMigrations)
}

// MigratePoolDown rolls back the most recent migration over the pool.
func MigratePoolDown(pool *pgxpool.Pool) error {
	return withPoolDB(pool, MigrateDown)
}

func withPoolDB(pool *pgxpool.Pool, migrate func(*sql.DB) error) error {
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer func() {
		if err := sqlDB.Close(); err != nil {
			log.Warnf("close migrations db handle: %s", err)
		}
	}()
	return migrate(sqlDB)
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(db *sql.DB) error {
	if err := setupGoose(); err != nil {
		return err
	}
	if err := goose.Down(db, "."); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	log.Infoln("rolled back one migration")
	return nil
}
