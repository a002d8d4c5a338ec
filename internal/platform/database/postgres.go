package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"hotel_hub/internal/platform/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

// Connect opens the connection pool and brings the schema up to date before
// returning it.
func Connect(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DBConnStr)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	if err := applyMigrations(cfg); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// applyMigrations runs all pending schema migrations. The users.email,
// rooms.room_number and services.name unique constraints live here: they are
// the real backstop against concurrent duplicate writes, the in-transaction
// existence checks only produce friendlier errors.
func applyMigrations(cfg *config.Config) error {
	m, err := migrate.New(cfg.MigrationsURL, cfg.DBConnStr)
	if err != nil {
		return fmt.Errorf("database: migrate init: %w", err)
	}
	defer m.Close()

	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("database: migrate up: %w", err)
	}
	if err == migrate.ErrNoChange {
		log.Println("Database schema already up to date.")
	} else {
		log.Println("Database migrations applied.")
	}
	return nil
}
