// Package database opens the relational store and applies its schema.
package database

import (
	"context"
	"fmt"
	"time"

	"istqb-quiz/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
)

const (
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"

	pingTimeout = 5 * time.Second
)

func init() {
	// go-ora accepts :1, :2 placeholders positionally.
	sqlx.BindDriver("oracle", sqlx.NAMED)
}

// SQLDriverName maps the configured driver to the database/sql driver name.
func SQLDriverName(driver string) (string, error) {
	switch driver {
	case DriverPostgres, "":
		return "pgx", nil
	case DriverOracle:
		return "oracle", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open connects and pings the configured database.
func Open(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	name, err := SQLDriverName(cfg.DB.Driver)
	if err != nil {
		return nil, err
	}
	db, err := sqlx.Open(name, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DB.Driver, err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.DB.Driver, err)
	}
	return db, nil
}
